// Package repl is Vexel's interactive mode: read a line, parse it as one
// statement, evaluate it against a persistent environment, print errors
// to stderr, continue — per spec.md §6's CLI entry.
//
// Line editing, history, Ctrl+C/Ctrl+D handling, and the start/end,
// bracket and paren continuation check are adapted from
// sambeau-basil/pkg/parsley/repl/repl.go, trimmed of its raw-mode /
// tag-balance logic (Vexel has no string-template tags) and its tab
// completer reworked against Vexel's actual keyword and built-in set.
package repl

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/stuncs69/vexel/internal/evaluator"
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/parser"
	"github.com/stuncs69/vexel/internal/verrors"
)

const prompt = ">> "
const continuationPrompt = ".. "

const logo = `
█░█ █▀▀ ▀▄▀ █▀▀ █░░
▀▄▀ ██▄ █░█ ██▄ █▄▄`

var completionWords = []string{
	"if", "while", "for", "in", "function", "return", "print", "set",
	"import", "from", "export", "test", "start", "end",
	"math_add", "math_subtract", "math_multiply", "math_divide", "math_power",
	"math_sqrt", "math_abs",
	"array_push", "array_pop", "array_length", "array_get", "array_set",
	"array_slice", "array_join", "array_to_string", "array_range",
	"string_length", "string_concat", "string_substring", "string_contains",
	"string_replace", "string_to_upper", "string_to_lower", "string_trim",
	"object_to_string", "object_keys", "object_values", "object_has_property",
	"object_merge", "object_create",
	"json_parse", "json_stringify",
	"read_file", "write_file", "file_exists", "list_dir",
	"thread_channel", "thread_send", "thread_recv", "thread_close",
	"dump", "type_of", "sleep",
	"true", "false", "null",
}

// Start runs the REPL loop. Lines are read from the terminal through
// liner (in is not read), the banner and script output go to out, and
// errors go to stderr.
func Start(in io.Reader, out io.Writer, version string) {
	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return filterCompletions(input)
	})

	historyFile := filepath.Join(os.TempDir(), ".vexel_history")
	if f, err := os.Open(historyFile); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyFile); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	ev := evaluator.New()
	ev.Out = out
	env := evaluator.NewEnvironment()
	if wd, err := os.Getwd(); err == nil {
		env.SetSourceDir(wd)
	}

	fmt.Fprintln(out, logo)
	fmt.Fprintln(out, "vexel", version)
	fmt.Fprintln(out, "Type 'exit' or Ctrl+D to quit, ':env' to show variables")
	fmt.Fprintln(out, "")

	var buf strings.Builder
	for {
		currentPrompt := prompt
		if buf.Len() > 0 {
			currentPrompt = continuationPrompt
		}
		input, err := line.Prompt(currentPrompt)
		if err != nil {
			if err == liner.ErrPromptAborted {
				if buf.Len() > 0 {
					fmt.Fprintln(out, "^C (cleared)")
				} else {
					fmt.Fprintln(out, "^C")
				}
				buf.Reset()
				continue
			}
			if err == io.EOF {
				fmt.Fprintln(out, "\nbye")
				return
			}
			fmt.Fprintf(out, "error reading input: %v\n", err)
			continue
		}

		trimmed := strings.TrimSpace(input)
		if buf.Len() == 0 && (trimmed == "exit" || trimmed == "quit") {
			fmt.Fprintln(out, "bye")
			return
		}
		if buf.Len() == 0 && trimmed == ":env" {
			printEnvironment(env, out)
			continue
		}
		if buf.Len() == 0 && trimmed == "" {
			continue
		}

		if buf.Len() > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(input)

		full := buf.String()
		if needsMoreInput(full) {
			continue
		}
		if trimmed != "" {
			line.AppendHistory(full)
		}

		prog, err := parser.ParseProgram(full)
		if err != nil {
			printError(os.Stderr, err)
			buf.Reset()
			continue
		}
		if err := ev.Eval(prog, env, ""); err != nil {
			printError(os.Stderr, err)
		}
		buf.Reset()
	}
}

func printError(out io.Writer, err error) {
	if ve, ok := err.(*verrors.VexelError); ok {
		fmt.Fprintln(out, ve.Error())
		return
	}
	fmt.Fprintln(out, err.Error())
}

func printEnvironment(env *evaluator.Environment, out io.Writer) {
	frame := env.GlobalFrame()
	if len(frame) == 0 {
		fmt.Fprintln(out, "(no variables)")
		return
	}
	names := make([]string, 0, len(frame))
	for name := range frame {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := frame[name]
		fmt.Fprintf(out, "  %s: %s = %s\n", name, object.TypeOf(v), v.Inspect())
	}
}

func filterCompletions(input string) []string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" || strings.HasSuffix(input, " ") {
		return nil
	}
	words := strings.Fields(input)
	if len(words) == 0 {
		return nil
	}
	last := words[len(words)-1]
	var matches []string
	for _, w := range completionWords {
		if strings.HasPrefix(w, last) {
			matches = append(matches, w)
		}
	}
	return matches
}

// needsMoreInput reports whether input has an unclosed `start`/`end`
// block or an unclosed bracket/paren, so the REPL keeps reading lines
// instead of parsing a truncated block. Vexel delimits blocks with the
// `start`/`end` keywords rather than braces, so the depth count tracks
// keyword pairs in addition to `[`/`]`/`(`/`)`.
func needsMoreInput(input string) bool {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return false
	}

	blockDepth := 0
	bracketDepth := 0
	parenDepth := 0
	inString := false
	escapeNext := false

	fields := tokenizeRough(input, &inString, &escapeNext, &bracketDepth, &parenDepth)
	for _, f := range fields {
		switch f {
		case "start":
			blockDepth++
		case "end":
			blockDepth--
		}
	}

	return blockDepth > 0 || bracketDepth > 0 || parenDepth > 0
}

// tokenizeRough splits input into whitespace-delimited words while
// tracking bracket/paren depth and skipping the contents of string
// literals, then returns the words (used only to find "start"/"end"
// keywords — Vexel identifiers never collide with its own delimiters).
func tokenizeRough(input string, inString, escapeNext *bool, bracketDepth, parenDepth *int) []string {
	var words []string
	var cur strings.Builder
	flush := func() {
		if cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
	}
	for i := 0; i < len(input); i++ {
		ch := input[i]
		if *escapeNext {
			*escapeNext = false
			continue
		}
		if ch == '\\' {
			*escapeNext = true
			continue
		}
		if ch == '"' {
			*inString = !*inString
			continue
		}
		if *inString {
			continue
		}
		switch ch {
		case '[':
			*bracketDepth++
		case ']':
			*bracketDepth--
		case '(':
			*parenDepth++
		case ')':
			*parenDepth--
		}
		if ch == ' ' || ch == '\t' || ch == '\n' || ch == '(' || ch == ')' || ch == '[' || ch == ']' {
			flush()
			continue
		}
		cur.WriteByte(ch)
	}
	flush()
	return words
}
