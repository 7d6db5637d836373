package extract

import (
	"context"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/ledongthuc/pdf"
)

const defaultPDFMaxFileBytes = 20 * 1024 * 1024

// pdfMaxFileBytes is the largest PDF parsed; the pure Go reader can use a
// lot of memory on big files. RESULTVIEW_PDF_MAX_FILE_BYTES overrides it.
func pdfMaxFileBytes() int64 {
	v := strings.TrimSpace(os.Getenv("RESULTVIEW_PDF_MAX_FILE_BYTES"))
	if v == "" {
		return defaultPDFMaxFileBytes
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return defaultPDFMaxFileBytes
	}
	return n
}

// pdfFindFirst searches page by page and stops at the first page with a hit.
// The pdf reader panics on malformed input; that is reported as an error so
// one broken file does not take down the search.
func pdfFindFirst(ctx context.Context, path string, query string, contextLen int) (found bool, snippet string, err error) {
	defer func() {
		if r := recover(); r != nil {
			found, snippet, err = false, "", errors.Newf("parse pdf %s: %v", path, r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return false, "", errors.Wrap(err, "open pdf")
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return false, "", errors.Wrap(err, "stat pdf")
	}
	if st.Size() > pdfMaxFileBytes() {
		return false, "", errors.Wrapf(ErrTooLarge, "%s (%d bytes)", path, st.Size())
	}

	r, err := pdf.NewReader(f, st.Size())
	if err != nil {
		return false, "", errors.Wrapf(err, "parse pdf %s", path)
	}

	fonts := make(map[string]*pdf.Font)
	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return false, "", err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; ok {
				continue
			}
			fnt := p.Font(name)
			fonts[name] = &fnt
		}
		text, err := p.GetPlainText(fonts)
		if err != nil || text == "" {
			continue
		}
		if snips := FindSnippets(text, query, contextLen, 1); len(snips) > 0 {
			return true, snips[0], nil
		}
	}
	return false, "", nil
}
