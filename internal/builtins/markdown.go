// Markdown built-in over github.com/yuin/goldmark, a direct teacher
// dependency used there to render documentation pages.
package builtins

import (
	"bytes"

	"github.com/yuin/goldmark"
)

func init() {
	register("markdown_to_html", markdownToHTML)
}

func markdownToHTML(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("markdown_to_html")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("markdown_to_html")
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(s), &buf); err != nil {
		return nil, nil
	}
	return stringResult(buf.String()), nil
}
