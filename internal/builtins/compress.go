// Gzip built-ins over github.com/klauspost/compress/gzip, a direct
// teacher dependency (a faster drop-in for compress/gzip). Output is
// base64-encoded since Vexel's String is UTF-8 text, not raw bytes.
package builtins

import (
	"bytes"
	"encoding/base64"
	"io"

	"github.com/klauspost/compress/gzip"
)

func init() {
	register("string_gzip", stringGzip)
	register("string_gunzip", stringGunzip)
}

func stringGzip(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_gzip")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("string_gzip")
	}
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	if _, err := w.Write([]byte(s)); err != nil {
		return nil, nil
	}
	if err := w.Close(); err != nil {
		return nil, nil
	}
	return stringResult(base64.StdEncoding.EncodeToString(buf.Bytes())), nil
}

func stringGunzip(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("string_gunzip")
	}
	s, ok := str(args[0])
	if !ok {
		return argError("string_gunzip")
	}
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, nil
	}
	r, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return nil, nil
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil
	}
	return stringResult(string(data)), nil
}
