package notify

import "github-asana-bridge/internal/model"

// RenderInput is the input of Renderer.Render.
type RenderInput struct {
	Event      model.EventContext
	Body       string // Markdown body of the triggering entity
	Controlled bool   // the reference carried a control keyword
}

const (
	bodyOpen  = "<body>"
	bodyClose = "</body>"

	checkedGlyph   = "☑"
	uncheckedGlyph = "☐"

	controlledSuffix = " (resolves this task)"

	escapedLT = "&lt;"
	escapedGT = "&gt;"

	// ASCII punctuation unicode.IsPunct does not cover.
	markdownSymbols = "$+<=>^`|~"
)

// bodyActions are the actions whose notification echoes the entity body.
var bodyActions = map[model.Action]bool{
	model.ActionCreated: true,
	model.ActionOpened:  true,
	model.ActionEdited:  true,
}
