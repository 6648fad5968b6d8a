// Package webcore is the WebCore collaborator from spec.md §6: it scans
// a directory for `.vx` route scripts, evaluates each once, and serves
// HTTP by dispatching to each route's `request` function.
//
// The scan-evaluate-register-serve shape and the `{segment}` path
// placeholder matching follow original_source/src/webcore.rs. Unlike
// that prototype (a single-threaded tiny_http loop), routes here are
// served through net/http with the teacher's own request-logging
// middleware style (sambeau-basil/server/logging.go) wrapping every
// response.
package webcore

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/stuncs69/vexel/internal/evaluator"
	"github.com/stuncs69/vexel/internal/object"
	"github.com/stuncs69/vexel/internal/parser"
)

// route is one registered `.vx` endpoint: its evaluated module
// environment (so `request` can be invoked later, per request) plus the
// metadata pulled from its `path`/`method`/`mime` globals.
type route struct {
	file    string
	path    string
	method  string
	mime    string
	pattern *regexp.Regexp
	eval    *evaluator.Evaluator
	env     *evaluator.Environment
}

var placeholder = regexp.MustCompile(`\{[^/{}]+\}`)

// Run scans dir for `.vx` files, evaluates each to extract its route
// metadata, and blocks serving HTTP on addr. It returns an error only
// for setup failures (unreadable dir, no routes found, failed bind);
// per-request evaluator errors are reported as 500 responses, never
// returned here (spec.md §5: WebCore "chooses ... to report
// per-request" rather than terminate the process).
func Run(dir, addr string) error {
	routes, err := loadRoutes(dir)
	if err != nil {
		return err
	}
	if len(routes) == 0 {
		return fmt.Errorf("webcore: no .vx endpoints found in %q", dir)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", dispatch(routes))

	for _, r := range routes {
		slog.Info("webcore route registered", "method", r.method, "path", r.path, "file", r.file)
	}
	slog.Info("webcore listening", "addr", addr)
	return http.ListenAndServe(addr, requestLogger(mux))
}

func loadRoutes(dir string) ([]*route, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("webcore: reading %q: %w", dir, err)
	}

	var routes []*route
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".vx" {
			continue
		}
		r, err := loadRoute(filepath.Join(dir, entry.Name()))
		if err != nil {
			slog.Warn("webcore: skipping route", "file", entry.Name(), "err", err)
			continue
		}
		routes = append(routes, r)
	}
	return routes, nil
}

func loadRoute(path string) (*route, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	prog, err := parser.ParseProgram(string(src))
	if err != nil {
		return nil, err
	}

	ev := evaluator.New()
	ev.Out = os.Stderr
	env := evaluator.NewEnvironment()
	env.SetSourceDir(filepath.Dir(path))
	if err := ev.Eval(prog, env, path); err != nil {
		return nil, err
	}

	if _, ok := env.LookupFunction("request"); !ok {
		return nil, fmt.Errorf("does not define function 'request'")
	}

	defaultPath := "/" + strings.TrimSuffix(filepath.Base(path), ".vx")
	routePath := stringGlobal(env, "path", defaultPath)
	method := strings.ToUpper(stringGlobal(env, "method", "GET"))
	mime := stringGlobal(env, "mime", "text/plain; charset=utf-8")

	return &route{
		file:    path,
		path:    routePath,
		method:  method,
		mime:    mime,
		pattern: toPattern(routePath),
		eval:    ev,
		env:     env,
	}, nil
}

func stringGlobal(env *evaluator.Environment, name, fallback string) string {
	v, ok := env.LookupGlobal(name)
	if !ok {
		return fallback
	}
	s, ok := v.(*object.String)
	if !ok {
		return fallback
	}
	return s.Value
}

// toPattern turns a route path such as "/users/{id}" into a regexp with
// one capture group per placeholder, mirroring webcore.rs's
// regex::escape + `([^/]+)` substitution.
func toPattern(path string) *regexp.Regexp {
	if !strings.Contains(path, "{") {
		return nil
	}
	escaped := regexp.QuoteMeta(path)
	escaped = placeholder.ReplaceAllString(escaped, `([^/]+)`)
	return regexp.MustCompile("^" + escaped + "$")
}

func dispatch(routes []*route) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		for _, r := range routes {
			if r.method != req.Method {
				continue
			}
			var args []object.Value
			if r.pattern != nil {
				m := r.pattern.FindStringSubmatch(req.URL.Path)
				if m == nil {
					continue
				}
				for _, g := range m[1:] {
					args = append(args, &object.String{Value: g})
				}
			} else if r.path != req.URL.Path {
				continue
			}

			result, err := r.eval.CallFunction(r.env, "request", args)
			if err != nil {
				slog.Error("webcore request failed", "path", req.URL.Path, "file", r.file, "err", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", r.mime)
			fmt.Fprint(w, object.ToDisplayString(result))
			return
		}
		http.NotFound(w, req)
	}
}

// requestLogger is middleware logging method/path/status/duration,
// adapted from sambeau-basil/server/logging.go's requestLogger to
// log/slog instead of a hand-rolled text/JSON writer.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rc := &statusCapture{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rc, r)
		slog.Info("webcore request",
			"method", r.Method, "path", r.URL.Path,
			"status", rc.status, "duration", time.Since(start))
	})
}

type statusCapture struct {
	http.ResponseWriter
	status int
}

func (rc *statusCapture) WriteHeader(code int) {
	rc.status = code
	rc.ResponseWriter.WriteHeader(code)
}
