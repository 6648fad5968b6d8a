// Package verrors provides the structured error type shared by every
// Vexel stage (lexer, parser, module loader, evaluator).
//
// The shape — a catalog of codes mapping to message/hint templates,
// rendered with text/template, plus Levenshtein "did you mean" fuzzy
// matching — follows sambeau-basil/pkg/parsley/errors/errors.go almost
// exactly; only the catalog contents and the Vexel error Classes (the
// four fatal kinds plus SecurityError) differ from the teacher's.
package verrors

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// Class is one of Vexel's four fatal error kinds (spec.md §7), or
// SecurityError for a builtin whose permission gate is closed.
type Class string

const (
	ClassLex      Class = "LexError"
	ClassParse    Class = "ParseError"
	ClassImport   Class = "ImportError"
	ClassRuntime  Class = "RuntimeError"
	ClassSecurity Class = "SecurityError"
)

// VexelError is the single error type produced by every stage.
type VexelError struct {
	Class   Class
	Code    string
	Message string
	Hints   []string
	Line    int
	Column  int
	File    string
	Data    map[string]any
}

func (e *VexelError) Error() string {
	var sb strings.Builder
	sb.WriteString(string(e.Class))
	sb.WriteString(": ")
	if e.File != "" {
		sb.WriteString(e.File)
		sb.WriteString(":")
	}
	if e.Line > 0 {
		sb.WriteString(fmt.Sprintf("%d:%d: ", e.Line, e.Column))
	}
	sb.WriteString(e.Message)
	for _, h := range e.Hints {
		sb.WriteString("\n  ")
		sb.WriteString(h)
	}
	return sb.String()
}

// WithPosition returns a copy of e with line/column set.
func (e *VexelError) WithPosition(line, col int) *VexelError {
	cp := *e
	cp.Line = line
	cp.Column = col
	return &cp
}

// WithFile returns a copy of e with the source file path set.
func (e *VexelError) WithFile(file string) *VexelError {
	cp := *e
	cp.File = file
	return &cp
}

// ErrorDef is a catalog entry: the class it belongs to and its message
// and hint templates (rendered against Data with text/template).
type ErrorDef struct {
	Class    Class
	Template string
	Hints    []string
}

// Catalog maps error codes to their definitions.
var Catalog = map[string]ErrorDef{
	"LEX-0001":     {ClassLex, "unterminated string literal", nil},
	"LEX-0002":     {ClassLex, "invalid escape sequence '\\{{.Escape}}'", nil},
	"LEX-0003":     {ClassLex, "unexpected character {{.Char}}", nil},
	"LEX-0004":     {ClassLex, "unterminated '${' interpolation", nil},
	"PARSE-0001":   {ClassParse, "expected {{.Expected}}, got {{.Got}}", nil},
	"PARSE-0002":   {ClassParse, "missing 'end' for block opened at line {{.OpenLine}}", nil},
	"PARSE-0003":   {ClassParse, "unexpected 'end' with no open block", nil},
	"PARSE-0004":   {ClassParse, "comparison operators do not associate: two comparisons in a row", []string{"wrap one side in a variable or parentheses"}},
	"PARSE-0005":   {ClassParse, "invalid integer literal {{.Literal}}", nil},
	"PARSE-0006":   {ClassParse, "'start' is not permitted here", nil},
	"RUNTIME-0001": {ClassRuntime, "undefined variable '{{.Name}}'", nil},
	"RUNTIME-0002": {ClassRuntime, "unknown function '{{.Name}}'", nil},
	"RUNTIME-0003": {ClassRuntime, "wrong number of arguments to '{{.Name}}': got {{.Got}}, want {{.Want}}", nil},
	"RUNTIME-0004": {ClassRuntime, "cannot assign into non-object value at '{{.Path}}'", nil},
	"RUNTIME-0005": {ClassRuntime, "value is not an Object", nil},
	"RUNTIME-0006": {ClassRuntime, "property '{{.Key}}' not found", nil},
	"RUNTIME-0007": {ClassRuntime, "value is not an Array", nil},
	"RUNTIME-0008": {ClassRuntime, "condition must be Boolean", nil},
	"RUNTIME-0009": {ClassRuntime, "cannot compare {{.LeftType}} and {{.RightType}} with '{{.Operator}}'", nil},
	"RUNTIME-0010": {ClassRuntime, "return outside of a function", nil},
	"RUNTIME-0011": {ClassRuntime, "Native function '{{.Name}}' failed for provided arguments", nil},
	"RUNTIME-0012": {ClassRuntime, "module '{{.Alias}}' has no exported function '{{.Name}}'", nil},
	"RUNTIME-0013": {ClassRuntime, "channel {{.ID}} is unknown or closed", nil},
	"IMPORT-0001":  {ClassImport, "module not found: {{.Path}}", nil},
	"IMPORT-0002":  {ClassImport, "import cycle detected: {{.Chain}}", nil},
	"IMPORT-0003":  {ClassImport, "error evaluating module {{.Path}}: {{.Inner}}", nil},
	"SEC-0002":     {ClassSecurity, "filesystem read is not permitted", []string{"run with --allow-read to enable it"}},
	"SEC-0003":     {ClassSecurity, "filesystem write is not permitted", []string{"run with --allow-write to enable it"}},
	"SEC-0004":     {ClassSecurity, "process execution is not permitted", []string{"run with --allow-execute to enable it"}},
	"SEC-0005":     {ClassSecurity, "network access is not permitted", []string{"run with --allow-net to enable it"}},
}

// New renders a VexelError from the catalog. Unknown codes fall back to
// a generic RuntimeError carrying data["message"] verbatim.
func New(code string, data map[string]any) *VexelError {
	def, ok := Catalog[code]
	if !ok {
		msg := code
		if data != nil {
			if m, ok := data["message"].(string); ok {
				msg = m
			}
		}
		return &VexelError{Class: ClassRuntime, Code: code, Message: msg, Data: data}
	}
	return &VexelError{
		Class:   def.Class,
		Code:    code,
		Message: render(def.Template, data),
		Hints:   renderAll(def.Hints, data),
		Data:    data,
	}
}

func render(tmplStr string, data map[string]any) string {
	if data == nil {
		return tmplStr
	}
	t, err := template.New("").Parse(tmplStr)
	if err != nil {
		return tmplStr
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return tmplStr
	}
	return buf.String()
}

func renderAll(tmpls []string, data map[string]any) []string {
	var out []string
	for _, t := range tmpls {
		if r := render(t, data); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// levenshteinDistance computes the edit distance between two strings.
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
		matrix[i][0] = i
	}
	for j := range matrix[0] {
		matrix[0][j] = j
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			del := matrix[i-1][j] + 1
			ins := matrix[i][j-1] + 1
			sub := matrix[i-1][j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			matrix[i][j] = m
		}
	}
	return matrix[len(a)][len(b)]
}

// FindClosestMatch returns the closest candidate to input within a
// length-scaled edit-distance threshold, or "" if nothing is close.
func FindClosestMatch(input string, candidates []string) string {
	if input == "" || len(candidates) == 0 {
		return ""
	}
	best, bestDist := "", -1
	for _, c := range candidates {
		d := levenshteinDistance(strings.ToLower(input), strings.ToLower(c))
		if bestDist == -1 || d < bestDist {
			bestDist, best = d, c
		}
	}
	threshold := 1
	switch {
	case len(input) >= 7:
		threshold = 3
	case len(input) >= 4:
		threshold = 2
	}
	if bestDist <= 0 || bestDist > threshold {
		return ""
	}
	return best
}
