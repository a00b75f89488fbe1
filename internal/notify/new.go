package notify

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

type implRenderer struct {
	md goldmark.Markdown
}

// New creates a Renderer backed by goldmark with GFM enabled.
func New() Renderer {
	return &implRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(
				html.WithXHTML(),
				renderer.WithNodeRenderers(util.Prioritized(newRichTextRenderer(), 100)),
			),
		),
	}
}
