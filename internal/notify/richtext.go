package notify

import (
	"github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// richTextRenderer overrides the goldmark HTML output for the tag subset
// Asana accepts: no <p>, no <br>, no <pre>, no raw HTML, glyphs for task
// list checkboxes.
type richTextRenderer struct {
	writer html.Writer
}

func newRichTextRenderer() renderer.NodeRenderer {
	return &richTextRenderer{writer: html.DefaultWriter}
}

func (r *richTextRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindParagraph, r.renderParagraph)
	reg.Register(ast.KindText, r.renderText)
	reg.Register(ast.KindCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindFencedCodeBlock, r.renderCodeBlock)
	reg.Register(ast.KindHTMLBlock, r.renderNothing)
	reg.Register(ast.KindRawHTML, r.renderNothing)
	reg.Register(extast.KindTaskCheckBox, r.renderTaskCheckBox)
}

func (r *richTextRenderer) renderParagraph(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	_ = w.WriteByte('\n')
	return ast.WalkContinue, nil
}

func (r *richTextRenderer) renderText(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	n := node.(*ast.Text)
	value := n.Segment.Value(source)
	if n.IsRaw() {
		r.writer.RawWrite(w, value)
	} else {
		r.writer.Write(w, value)
	}
	if n.SoftLineBreak() || n.HardLineBreak() {
		_ = w.WriteByte('\n')
	}
	return ast.WalkContinue, nil
}

func (r *richTextRenderer) renderCodeBlock(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<code>")
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		line := lines.At(i)
		r.writer.RawWrite(w, line.Value(source))
	}
	_, _ = w.WriteString("</code>\n")
	return ast.WalkSkipChildren, nil
}

func (r *richTextRenderer) renderTaskCheckBox(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	if node.(*extast.TaskCheckBox).IsChecked {
		_, _ = w.WriteString(checkedGlyph)
	} else {
		_, _ = w.WriteString(uncheckedGlyph)
	}
	_ = w.WriteByte(' ')
	return ast.WalkContinue, nil
}

func (r *richTextRenderer) renderNothing(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	return ast.WalkSkipChildren, nil
}
