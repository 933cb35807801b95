// Package render turns a post body (markdown) into display output: a
// sanitized HTML page for the export preview and styled text for the terminal.
//
// Every function here is a pure function of its input.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(
			extension.NewTable(
				extension.WithTableCellAlignMethod(extension.TableCellAlignAttribute),
			),
		),
		// Inline HTML such as <img> or <br> renders as on the site; the
		// policy below is what removes anything unsafe.
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	policy = newPolicy()
)

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^language-[a-zA-Z0-9]+$`)).OnElements("code")
	p.AllowAttrs("align").Matching(regexp.MustCompile(`^(left|right|center)$`)).OnElements("th", "td")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	return p
}

// HTML converts markdown into a sanitized HTML fragment. Raw HTML in the
// source passes through the sanitizer, which strips scripts, event handlers
// and javascript: URLs.
func HTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return policy.Sanitize(buf.String()), nil
}

// Colors of the site the posts are published on.
const (
	ColorBackground    = "#F8F5F2"
	ColorTextPrimary   = "#4A4441"
	ColorAccentGreen   = "#059669"
	ColorCard          = "#FFFFFF"
	ColorBorderMuted   = "#D1D5DB"
	ColorTextSecondary = "#7d746f"
)

var page = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta http-equiv="Content-Security-Policy" content="default-src 'none'; img-src * data:; style-src 'unsafe-inline'; script-src 'none'">
<title>{{.Title}}</title>
<style>
body {
    font-family: sans-serif;
    line-height: 1.6;
    background-color: {{.Colors.Card}};
    color: {{.Colors.Text}};
    padding: 15px;
}
h1, h2, h3, h4, h5, h6 {
    color: {{.Colors.Text}};
    font-family: Georgia, Times, serif;
}
h1 { font-size: 2em; }
h2 { font-size: 1.75em; }
h3 { font-size: 1.5em; }
code {
    background-color: #f0f0f0;
    padding: 2px 4px;
    border-radius: 3px;
    font-family: "Courier New", monospace;
}
pre {
    background-color: #f0f0f0;
    padding: 10px;
    border-radius: 3px;
    overflow-x: auto;
}
table {
    border-collapse: collapse;
    width: 100%;
    margin-bottom: 1em;
}
th, td {
    border: 1px solid {{.Colors.Border}};
    padding: 8px;
    text-align: left;
}
th { background-color: #f2f2f2; }
blockquote {
    border-left: 4px solid {{.Colors.Accent}};
    padding-left: 10px;
    color: {{.Colors.Muted}};
    margin-left: 0;
}
a {
    color: {{.Colors.Accent}};
    text-decoration: none;
}
a:hover { text-decoration: underline; }
</style>
</head>
<body>
{{.Content}}
</body>
</html>
`))

type palette struct {
	Card, Text, Border, Accent, Muted template.CSS
}

// Page wraps a fragment produced by HTML into a standalone document. The
// document forbids scripts through its Content-Security-Policy.
func Page(title, fragment string) (string, error) {
	var buf bytes.Buffer
	err := page.Execute(&buf, struct {
		Title   string
		Content template.HTML
		Colors  palette
	}{
		Title:   title,
		Content: template.HTML(fragment), // already sanitized
		Colors: palette{
			Card:   ColorCard,
			Text:   ColorTextPrimary,
			Border: ColorBorderMuted,
			Accent: ColorAccentGreen,
			Muted:  ColorTextSecondary,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to render page: %w", err)
	}
	return buf.String(), nil
}

// Document renders markdown straight to a full page.
func Document(title, src string) (string, error) {
	fragment, err := HTML(src)
	if err != nil {
		return "", err
	}
	return Page(title, fragment)
}
