package notify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-asana-bridge/internal/model"
	"github-asana-bridge/internal/notify"
)

func issueEvent(action model.Action) model.EventContext {
	return model.EventContext{
		EffectiveAction: action,
		Title:           "Bug",
		TargetURL:       "https://github.com/x/y/issues/1",
	}
}

func TestRenderOpened(t *testing.T) {
	r := notify.New()

	out, err := r.Render(notify.RenderInput{
		Event:      issueEvent(model.ActionOpened),
		Body:       "- fixes https://app.asana.com/0/111/222",
		Controlled: true,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<body>"), out)
	assert.True(t, strings.HasSuffix(out, "</body>"), out)
	assert.Contains(t, out, `<a href="https://github.com/x/y/issues/1">Bug</a> opened (resolves this task)`)
	assert.Contains(t, out, "https://app.asana.com/0/111/222")
	assert.Contains(t, out, "fixes")
	assert.NotContains(t, out, "<p>")
}

func TestRenderOmitsBodyForStateChanges(t *testing.T) {
	r := notify.New()

	for _, action := range []model.Action{model.ActionClosed, model.ActionMerged, model.ActionReopened, model.ActionLabeled} {
		t.Run(string(action), func(t *testing.T) {
			out, err := r.Render(notify.RenderInput{
				Event: issueEvent(action),
				Body:  "stale body text",
			})
			require.NoError(t, err)
			assert.Contains(t, out, string(action))
			assert.NotContains(t, out, "stale body text")
		})
	}
}

func TestRenderIncludesBodyForContentActions(t *testing.T) {
	r := notify.New()

	for _, action := range []model.Action{model.ActionCreated, model.ActionOpened, model.ActionEdited} {
		t.Run(string(action), func(t *testing.T) {
			out, err := r.Render(notify.RenderInput{
				Event: issueEvent(action),
				Body:  "fresh body text",
			})
			require.NoError(t, err)
			assert.Contains(t, out, "fresh body text")
		})
	}
}

func TestRenderHeader(t *testing.T) {
	r := notify.New()

	t.Run("bare url without title", func(t *testing.T) {
		out, err := r.Render(notify.RenderInput{
			Event: model.EventContext{EffectiveAction: model.ActionClosed, TargetURL: "https://github.com/x/y/pull/2"},
		})
		require.NoError(t, err)
		assert.Contains(t, out, "https://github.com/x/y/pull/2")
		assert.Contains(t, out, "closed")
	})

	t.Run("brackets in title", func(t *testing.T) {
		out, err := r.Render(notify.RenderInput{
			Event: model.EventContext{EffectiveAction: model.ActionMerged, Title: "[WIP] cache", TargetURL: "https://github.com/x/y/pull/2"},
		})
		require.NoError(t, err)
		assert.Contains(t, out, `<a href="https://github.com/x/y/pull/2">[WIP] cache</a> merged`)
	})

	t.Run("markup in title is literal", func(t *testing.T) {
		out, err := r.Render(notify.RenderInput{
			Event: model.EventContext{
				EffectiveAction: model.ActionOpened,
				Title:           "Escape <div> in *preview* a < b `x` __y__ (bug)",
				TargetURL:       "https://github.com/x/y/pull/2",
			},
		})
		require.NoError(t, err)
		assert.Contains(t, out,
			`<a href="https://github.com/x/y/pull/2">Escape &lt;div&gt; in *preview* a &lt; b `+"`x`"+` __y__ (bug)</a> opened`)
		assert.NotContains(t, out, "<em>")
		assert.NotContains(t, out, "<strong>")
	})

	t.Run("plain reference has no suffix", func(t *testing.T) {
		out, err := r.Render(notify.RenderInput{Event: issueEvent(model.ActionClosed)})
		require.NoError(t, err)
		assert.NotContains(t, out, "resolves this task")
	})
}

func TestRenderRichText(t *testing.T) {
	r := notify.New()
	render := func(body string) string {
		t.Helper()
		out, err := r.Render(notify.RenderInput{Event: issueEvent(model.ActionCreated), Body: body})
		require.NoError(t, err)
		return out
	}

	t.Run("checkboxes", func(t *testing.T) {
		out := render("- [x] done\n- [ ] todo")
		assert.Contains(t, out, "☑ done")
		assert.Contains(t, out, "☐ todo")
		assert.NotContains(t, out, "<input")
	})

	t.Run("inline code", func(t *testing.T) {
		assert.Contains(t, render("run `go test ./...` first"), "<code>go test ./...</code>")
	})

	t.Run("fenced code", func(t *testing.T) {
		out := render("```\nmake build\n```")
		assert.Contains(t, out, "<code>make build\n</code>")
		assert.NotContains(t, out, "<pre>")
	})

	t.Run("line breaks", func(t *testing.T) {
		out := render("line one\nline two")
		assert.Contains(t, out, "line one\nline two")
		assert.NotContains(t, out, "<br")
	})

	t.Run("paragraphs", func(t *testing.T) {
		assert.Contains(t, render("first\n\nsecond"), "first\n\nsecond")
	})

	t.Run("entities are decoded", func(t *testing.T) {
		out := render(`a & b "quoted" it's`)
		assert.Contains(t, out, `a & b "quoted" it's`)
		assert.NotContains(t, out, "&amp;")
		assert.NotContains(t, out, "&quot;")
	})

	t.Run("angle brackets stay escaped", func(t *testing.T) {
		out := render("if a < b && c > d")
		assert.Contains(t, out, "if a &lt; b && c &gt; d")
	})

	t.Run("raw html is dropped", func(t *testing.T) {
		out := render("<!-- pull request template -->\n\nhello")
		assert.NotContains(t, out, "template")
		assert.Contains(t, out, "hello")
	})
}
