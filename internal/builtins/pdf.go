// PDF text extraction over github.com/ledongthuc/pdf, a direct teacher
// dependency — the same Open/GetPlainText pairing as the teacher's own
// pkg/search/extract_pdf.go. Gated by Config.AllowRead like the other
// filesystem built-ins.
package builtins

import (
	"bytes"

	"github.com/ledongthuc/pdf"

	"github.com/stuncs69/vexel/internal/config"
)

func init() {
	register("pdf_read_text", pdfReadText)
}

func pdfReadText(args []Value) (Value, error) {
	if len(args) != 1 {
		return argError("pdf_read_text")
	}
	if !config.Current.AllowRead {
		return securityDenied("SEC-0002")
	}
	path, ok := str(args[0])
	if !ok {
		return argError("pdf_read_text")
	}
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil
	}
	defer f.Close()
	reader, err := r.GetPlainText()
	if err != nil {
		return nil, nil
	}
	var buf bytes.Buffer
	buf.ReadFrom(reader)
	return stringResult(buf.String()), nil
}
