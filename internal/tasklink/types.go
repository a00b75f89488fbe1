package tasklink

// TaskReference is one task link found in a text.
type TaskReference struct {
	TaskID      string      // numeric task id, never empty
	ProjectID   string      // numeric project id from the link
	URL         string      // the bare task URL
	ControlWord ControlWord // empty for a plain mention
	RawMatch    string      // the matched substring
	Offset      int         // byte offset of RawMatch in the text
}

// Controlled reports whether the reference carried a control keyword.
func (r TaskReference) Controlled() bool {
	return r.ControlWord != ""
}

// ReferenceSet is an ordered set of references keyed by task id. The first
// occurrence fixes the position; a later controlled occurrence of the same
// task marks the kept entry controlled.
type ReferenceSet struct {
	refs  []TaskReference
	index map[string]int
}

// NewReferenceSet builds a set from refs in order.
func NewReferenceSet(refs ...TaskReference) ReferenceSet {
	var s ReferenceSet
	for _, ref := range refs {
		s.Add(ref)
	}
	return s
}

// Add inserts ref and reports whether its task id was new to the set.
func (s *ReferenceSet) Add(ref TaskReference) bool {
	if ref.TaskID == "" {
		return false
	}
	if s.index == nil {
		s.index = make(map[string]int)
	}

	if i, ok := s.index[ref.TaskID]; ok {
		if !s.refs[i].Controlled() && ref.Controlled() {
			s.refs[i].ControlWord = ref.ControlWord
		}
		return false
	}

	s.index[ref.TaskID] = len(s.refs)
	s.refs = append(s.refs, ref)
	return true
}

// Len returns the number of distinct tasks.
func (s ReferenceSet) Len() int {
	return len(s.refs)
}

// IsEmpty reports whether the set has no references.
func (s ReferenceSet) IsEmpty() bool {
	return len(s.refs) == 0
}

// Has reports whether taskID is in the set.
func (s ReferenceSet) Has(taskID string) bool {
	_, ok := s.index[taskID]
	return ok
}

// Get returns the reference for taskID.
func (s ReferenceSet) Get(taskID string) (TaskReference, bool) {
	i, ok := s.index[taskID]
	if !ok {
		return TaskReference{}, false
	}
	return s.refs[i], true
}

// Refs returns a copy of the references in order.
func (s ReferenceSet) Refs() []TaskReference {
	out := make([]TaskReference, len(s.refs))
	copy(out, s.refs)
	return out
}

// TaskIDs returns the task ids in order.
func (s ReferenceSet) TaskIDs() []string {
	ids := make([]string, 0, len(s.refs))
	for _, ref := range s.refs {
		ids = append(ids, ref.TaskID)
	}
	return ids
}
