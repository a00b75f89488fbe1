package notify

// Renderer turns an event into an Asana rich-text comment.
type Renderer interface {
	// Render builds the <body>-wrapped html_text for one reference.
	Render(in RenderInput) (string, error)
}
