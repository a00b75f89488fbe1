package tasklink

import "strings"

// Extract returns the task references in text, in first-seen order.
// Extract is pure: the same text always yields the same set.
func (g *Grammar) Extract(text string) ReferenceSet {
	var set ReferenceSet
	if text == "" {
		return set
	}

	for _, m := range g.pattern.FindAllStringSubmatchIndex(text, -1) {
		ref, ok := g.reference(text, m)
		if !ok {
			continue
		}
		set.Add(ref)
	}
	return set
}

func (g *Grammar) reference(text string, m []int) (TaskReference, bool) {
	group := func(name string) string {
		i := g.groups[name]
		start, end := m[2*i], m[2*i+1]
		if start < 0 {
			return ""
		}
		return text[start:end]
	}

	taskID := group(groupTask)
	if !isNumeric(taskID) || !isNumeric(group(groupProject)) {
		return TaskReference{}, false
	}

	return TaskReference{
		TaskID:      taskID,
		ProjectID:   group(groupProject),
		URL:         group(groupURL),
		ControlWord: g.controlWord(group(groupKeyword)),
		RawMatch:    text[m[0]:m[1]],
		Offset:      m[0],
	}, true
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	return strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' }) < 0
}
