package render

import (
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains []string
		absent   []string
	}{
		{
			name:     "heading and emphasis",
			src:      "# Title\n\nSome *text*.",
			contains: []string{"<h1>Title</h1>", "<em>text</em>"},
		},
		{
			name:     "fenced code keeps language class",
			src:      "```go\nfmt.Println(1)\n```",
			contains: []string{`<code class="language-go">`, "fmt.Println(1)"},
		},
		{
			name:     "table with alignment",
			src:      "| a | b |\n|:--|--:|\n| 1 | 2 |",
			contains: []string{"<table>", `<th align="left">a</th>`, `<td align="right">2</td>`},
		},
		{
			name:     "bullet change starts a new list",
			src:      "- one\n- two\n+ three",
			contains: []string{"<li>three</li>"},
		},
		{
			name:     "ordered list keeps start",
			src:      "3. three\n4. four",
			contains: []string{`<ol start="3">`},
		},
		{
			name:     "inline html passes through",
			src:      "line one<br>line two\n\n<img src=\"a.png\" alt=\"pic\">",
			contains: []string{"<br", `<img src="a.png"`, `alt="pic"`},
		},
		{
			name:   "unsafe raw html is stripped",
			src:    "hello <script>alert(1)</script>\n\n<div onclick=\"x()\">hi</div>",
			absent: []string{"<script", "onclick", "alert(1)</script>"},
		},
		{
			name:   "javascript links are neutralized",
			src:    "[click](javascript:alert(1))",
			absent: []string{"javascript:"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := HTML(tc.src)
			require.NoError(t, err)
			for _, want := range tc.contains {
				assert.Contains(t, got, want)
			}
			for _, bad := range tc.absent {
				assert.NotContains(t, got, bad)
			}
		})
	}
}

func TestHTML_BulletChangeSplitsList(t *testing.T) {
	got, err := HTML("- one\n- two\n+ three")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(got, "<ul>"))
}

func TestHTML_Pure(t *testing.T) {
	src := "## Same\n\n| x |\n|---|\n| y |"
	a, err := HTML(src)
	require.NoError(t, err)
	b, err := HTML(src)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestPage(t *testing.T) {
	got, err := Document("Post <1>", "# Hi")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(got, "<!DOCTYPE html>"))
	assert.Contains(t, got, "script-src 'none'")
	assert.Contains(t, got, "<h1>Hi</h1>")
	assert.Contains(t, got, "<title>Post &lt;1&gt;</title>")
	assert.Contains(t, got, ColorAccentGreen)
	assert.Contains(t, got, ColorTextSecondary)
}

func TestTerminal(t *testing.T) {
	term := NewTerminal(StyleNoTTY)

	out, err := term.Render("# Heading\n\nbody text", 40)
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
	assert.Contains(t, out, "body text")

	again, err := term.Render("# Heading\n\nbody text", 40)
	require.NoError(t, err)
	assert.Equal(t, out, again)
	assert.Len(t, term.cache, 1)

	_, err = term.Render("x", 5)
	require.NoError(t, err)
	assert.Len(t, term.cache, 2, "narrow widths share the minimum renderer")
}

func TestTerminal_ConcurrentRenders(t *testing.T) {
	term := NewTerminal(StyleNoTTY)
	src := "# Title\n\n- one\n- two\n\n> quote\n\n```go\nfmt.Println(1)\n```"

	want, err := term.Render(src, 60)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, 8*20)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				out, err := term.Render(src, 60)
				if err == nil && out != want {
					err = fmt.Errorf("render %d differs", j)
				}
				if err != nil {
					errs <- err
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
}
