// Package render turns diary markdown into display markup: sanitised HTML
// for the preview pane and ANSI text for the terminal client.
package render

import (
	"bytes"
	"fmt"
	"html"
	"regexp"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	emoji "github.com/yuin/goldmark-emoji"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

const codeStyle = "github"

// HTMLRenderer is safe for concurrent use.
type HTMLRenderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

var defaultHTML = NewHTMLRenderer()

// HTML renders src with the default renderer.
func HTML(src string) string {
	return defaultHTML.Render(src)
}

func NewHTMLRenderer() *HTMLRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			emoji.Emoji,
			highlighting.NewHighlighting(
				highlighting.WithStyle(codeStyle),
				highlighting.WithGuessLanguage(true),
				highlighting.WithFormatOptions(chromahtml.WithClasses(false)),
			),
		),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		// одиночный перевод строки в тексте становится <br>, как в редакторе
		goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
	)

	return &HTMLRenderer{md: md, policy: previewPolicy()}
}

// Render never panics: on any failure the raw text is shown escaped.
func (r *HTMLRenderer) Render(src string) (out string) {
	if src == "" {
		return ""
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = Fallback(src)
		}
	}()

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return Fallback(src)
	}

	return r.policy.Sanitize(buf.String())
}

// Fallback presents text verbatim.
func Fallback(src string) string {
	return fmt.Sprintf("<pre>%s</pre>", html.EscapeString(src))
}

func previewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	// подсветка chroma пишет цвета в style
	p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").
		OnElements("span", "pre", "code")

	// списки задач GFM
	p.AllowElements("input")
	p.AllowAttrs("type").Matching(regexp.MustCompile(`^checkbox$`)).OnElements("input")
	p.AllowAttrs("checked", "disabled").OnElements("input")

	return p
}
