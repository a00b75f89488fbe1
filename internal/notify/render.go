package notify

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"strings"
	"unicode"
)

// Render builds the notification for in:
//
//	[title](url) action
//
//	body (created/opened/edited only)
//
// converted to Asana rich text, entity-decoded and wrapped in <body>.
func (r *implRenderer) Render(in RenderInput) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(markdown(in)), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}

	return bodyOpen + decodeEntities(strings.TrimSpace(buf.String())) + bodyClose, nil
}

// markdown assembles the Markdown source of the notification.
func markdown(in RenderInput) string {
	ev := in.Event

	var header string
	switch {
	case ev.Title != "" && ev.TargetURL != "":
		header = fmt.Sprintf("[%s](%s)", escapeLinkText(ev.Title), ev.TargetURL)
	case ev.TargetURL != "":
		header = ev.TargetURL
	default:
		header = ev.Title
	}

	parts := make([]string, 0, 3)
	if header != "" {
		parts = append(parts, header)
	}
	if ev.EffectiveAction != "" {
		parts = append(parts, string(ev.EffectiveAction))
	}
	line := strings.Join(parts, " ")
	if in.Controlled {
		line += controlledSuffix
	}

	if bodyActions[ev.EffectiveAction] && strings.TrimSpace(in.Body) != "" {
		return line + "\n\n" + in.Body
	}
	return line
}

// escapeLinkText backslash-escapes every ASCII punctuation character so a
// title renders as literal text.
func escapeLinkText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r < 0x80 && unicode.IsPunct(r) || strings.ContainsRune(markdownSymbols, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// decodeEntities turns entities back into raw characters, except &lt; and
// &gt; which stay escaped so text never turns into markup.
func decodeEntities(s string) string {
	lt := strings.Split(s, escapedLT)
	for i, part := range lt {
		gt := strings.Split(part, escapedGT)
		for j := range gt {
			gt[j] = stdhtml.UnescapeString(gt[j])
		}
		lt[i] = strings.Join(gt, escapedGT)
	}
	return strings.Join(lt, escapedLT)
}
