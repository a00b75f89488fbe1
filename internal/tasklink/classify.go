package tasklink

// Classify splits refs into plain and controlled task ids, keeping order.
func Classify(refs ReferenceSet) (plain, controlled []string) {
	plain = make([]string, 0, refs.Len())
	controlled = make([]string, 0, refs.Len())
	for _, ref := range refs.refs {
		if ref.Controlled() {
			controlled = append(controlled, ref.TaskID)
			continue
		}
		plain = append(plain, ref.TaskID)
	}
	return plain, controlled
}
