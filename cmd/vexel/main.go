// Command vexel is the CLI driver from spec.md §6: it dispatches to
// script mode, REPL mode, or WebCore mode, converting evaluator errors
// into exit codes and stderr output.
//
// Flag layout (permission gates as boolean switches, subcommands
// checked before flag.Parse, version flag) follows
// sambeau-basil/cmd/pars/main.go; printSourceContext is adapted from
// the same file's source-pointer rendering.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/stuncs69/vexel/internal/config"
	"github.com/stuncs69/vexel/internal/evaluator"
	"github.com/stuncs69/vexel/internal/parser"
	"github.com/stuncs69/vexel/internal/repl"
	"github.com/stuncs69/vexel/internal/verrors"
	"github.com/stuncs69/vexel/internal/vxlog"
	"github.com/stuncs69/vexel/internal/webcore"
)

// Version is set at compile time via -ldflags.
var Version = "0.1.0"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "webcore":
			os.Exit(webcoreCommand(os.Args[2:]))
		case "watch":
			os.Exit(watchCommand(os.Args[2:]))
		}
	}

	allowRead := flag.Bool("allow-read", false, "permit read_file/file_exists/list_dir/pdf_read_text")
	allowWrite := flag.Bool("allow-write", false, "permit write_file/append_file/delete_file/rename_file/create_dir")
	allowExecute := flag.Bool("allow-execute", false, "permit the exec built-in")
	allowNet := flag.Bool("allow-net", false, "permit http_*/mail_send/sftp_*")
	allowAll := flag.Bool("allow-all", false, "shorthand for all four --allow-* flags")
	configPath := flag.String("config", "", "path to a YAML permissions file")
	verbose := flag.Bool("verbose", false, "enable debug-level logging")
	versionFlag := flag.Bool("version", false, "print version and exit")
	flag.Usage = printHelp
	flag.Parse()

	vxlog.Init(*verbose)

	if *versionFlag {
		fmt.Println("vexel", Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vexel: loading config: %v\n", err)
		os.Exit(1)
	}
	if *allowAll {
		cfg.AllowRead, cfg.AllowWrite, cfg.AllowExecute, cfg.AllowNet = true, true, true, true
	}
	cfg.AllowRead = cfg.AllowRead || *allowRead
	cfg.AllowWrite = cfg.AllowWrite || *allowWrite
	cfg.AllowExecute = cfg.AllowExecute || *allowExecute
	cfg.AllowNet = cfg.AllowNet || *allowNet
	config.Set(cfg)

	args := flag.Args()
	if len(args) == 0 {
		repl.Start(os.Stdin, os.Stdout, Version)
		return
	}
	os.Exit(runFile(args[0]))
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `vexel - a small interpreted scripting language, version %s

Usage:
  vexel                     start the REPL
  vexel <file.vx>           evaluate a script
  vexel webcore <dir>       serve .vx route scripts as HTTP
  vexel watch <file.vx>     re-run a script on every save

Options:
  --allow-read              permit filesystem reads
  --allow-write             permit filesystem writes
  --allow-execute           permit the exec built-in
  --allow-net               permit outbound HTTP/mail/SFTP
  --allow-all               shorthand for all four --allow-* flags
  --config <path>           YAML file setting the above gates
  --verbose                 debug-level logging
  --version                 print version and exit
`, Version)
}

// runFile evaluates one script file and returns a process exit code:
// 0 on success, 1 on any parse or runtime error, 2 if the file cannot
// be read at all.
func runFile(filename string) int {
	src, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vexel: reading %s: %v\n", filename, err)
		return 2
	}

	prog, err := parser.ParseProgram(string(src))
	if err != nil {
		printError(filename, string(src), err)
		return 1
	}

	ev := evaluator.New()
	ev.Out = os.Stdout
	env := evaluator.NewEnvironment()
	env.SetSourceDir(filepath.Dir(filename))

	if err := ev.Eval(prog, env, filename); err != nil {
		printError(filename, string(src), err)
		return 1
	}
	return 0
}

func printError(filename, source string, err error) {
	ve, ok := err.(*verrors.VexelError)
	if !ok {
		fmt.Fprintln(os.Stderr, err.Error())
		return
	}
	fmt.Fprintln(os.Stderr, ve.Error())
	if ve.Line > 0 {
		printSourceContext(source, ve.Line, ve.Column)
	}
}

// printSourceContext prints the offending source line and a column
// pointer beneath it, trimming leading whitespace the same way
// sambeau-basil/cmd/pars/main.go's printSourceContext does.
func printSourceContext(source string, line, col int) {
	lines := strings.Split(source, "\n")
	if line <= 0 || line > len(lines) {
		return
	}
	raw := lines[line-1]
	trimmed := strings.TrimLeft(raw, " \t")
	trimCount := len(raw) - len(trimmed)

	fmt.Fprintf(os.Stderr, "    %s\n", trimmed)
	if col > 0 {
		pointerCol := col - 1 - trimCount
		if pointerCol < 0 {
			pointerCol = 0
		}
		fmt.Fprintf(os.Stderr, "    %s^\n", strings.Repeat(" ", pointerCol))
	}
}

func webcoreCommand(args []string) int {
	fs := flag.NewFlagSet("webcore", flag.ExitOnError)
	addr := fs.String("addr", "", "listen address (default from config, or :4747)")
	allowAll := fs.Bool("allow-all", true, "grant all four permission gates to route scripts")
	fs.Parse(args)

	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: vexel webcore <dir>")
		return 2
	}
	dir := fs.Arg(0)

	cfg := config.Default()
	if *allowAll {
		cfg.AllowRead, cfg.AllowWrite, cfg.AllowExecute, cfg.AllowNet = true, true, true, true
	}
	if *addr != "" {
		cfg.WebcoreAddr = *addr
	}
	config.Set(cfg)

	if err := webcore.Run(dir, cfg.WebcoreAddr); err != nil {
		fmt.Fprintf(os.Stderr, "vexel: %v\n", err)
		return 1
	}
	return 0
}

// watchCommand re-runs a script every time it is written or re-created.
// It watches the script's directory (so editors that save by replacing
// the file are seen) but ignores events for any other file there, using
// fsnotify the same way sambeau-basil/server/watcher.go
// watches handler directories for hot reload in dev mode.
func watchCommand(args []string) int {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: vexel watch <file.vx>")
		return 2
	}
	filename := fs.Arg(0)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vexel: starting watcher: %v\n", err)
		return 1
	}
	defer watcher.Close()

	dir := filepath.Dir(filename)
	if err := watcher.Add(dir); err != nil {
		fmt.Fprintf(os.Stderr, "vexel: watching %s: %v\n", dir, err)
		return 1
	}

	fmt.Fprintf(os.Stderr, "[watch] watching %s, running on every save (Ctrl+C to quit)\n", filename)
	runFile(filename)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return 0
			}
			if filepath.Clean(event.Name) != filepath.Clean(filename) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			fmt.Fprintf(os.Stderr, "[watch] %s changed, re-running\n", filename)
			runFile(filename)
		case err, ok := <-watcher.Errors:
			if !ok {
				return 0
			}
			fmt.Fprintf(os.Stderr, "[watch] error: %v\n", err)
		}
	}
}
