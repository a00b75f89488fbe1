package tasklink

// Diff returns the references of current whose task id is absent from
// previous, in current's order. Keyword changes on a task that was already
// referenced do not make it new.
func Diff(current, previous ReferenceSet) ReferenceSet {
	var out ReferenceSet
	for _, ref := range current.refs {
		if previous.Has(ref.TaskID) {
			continue
		}
		out.Add(ref)
	}
	return out
}

// NewReferences extracts both texts and diffs them. An empty previous text
// makes every current reference new.
func (g *Grammar) NewReferences(current, previous string) ReferenceSet {
	return Diff(g.Extract(current), g.Extract(previous))
}
