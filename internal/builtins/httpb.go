// HTTP built-ins. The client is shared across calls and carries a
// cookiejar seeded with golang.org/x/net/publicsuffix (a direct teacher
// dependency, used there for its own outbound HTTP helpers) so a
// script making several requests to the same host behaves like a
// normal browser session rather than discarding cookies every call.
package builtins

import (
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	"golang.org/x/net/publicsuffix"

	"github.com/stuncs69/vexel/internal/config"
)

func init() {
	register("http_get", httpGet)
	register("http_post", httpPost)
	register("http_put", httpPut)
	register("http_delete", httpDelete)
}

var httpClient = newHTTPClient()

func newHTTPClient() *http.Client {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		jar = nil
	}
	return &http.Client{Timeout: 30 * time.Second, Jar: jar}
}

func httpGet(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("http_get")
	}
	url, ok := str(args[0])
	if !ok {
		return argError("http_get")
	}
	return doHTTP(http.MethodGet, url, "")
}

func httpPost(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("http_post")
	}
	url, ok := str(args[0])
	body, bok := str(args[1])
	if !ok || !bok {
		return argError("http_post")
	}
	return doHTTP(http.MethodPost, url, body)
}

func httpPut(args []Value) (Value, error) {
	if len(args) != 2 {
		return argError("http_put")
	}
	url, ok := str(args[0])
	body, bok := str(args[1])
	if !ok || !bok {
		return argError("http_put")
	}
	return doHTTP(http.MethodPut, url, body)
}

func httpDelete(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("http_delete")
	}
	url, ok := str(args[0])
	if !ok {
		return argError("http_delete")
	}
	return doHTTP(http.MethodDelete, url, "")
}

func doHTTP(method, url, body string) (Value, error) {
	if !config.Current.AllowNet {
		return securityDenied("SEC-0005")
	}
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		return nil, nil
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, nil
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil
	}
	return stringResult(string(data)), nil
}
