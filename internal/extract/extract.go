// Package extract finds a query inside document files and returns a short
// highlighted context snippet around the first hit.
package extract

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrEmptyQuery        = errors.New("extract: empty query")
	ErrUnsupportedFormat = errors.New("extract: unsupported format")
	ErrTooLarge          = errors.New("extract: file exceeds size limit")
)

type kind int

const (
	kindUnknown kind = iota
	kindText
	kindOOXML
	kindXLSX
	kindPDF
)

var kinds = map[string]kind{
	".txt":  kindText,
	".md":   kindText,
	".log":  kindText,
	".csv":  kindText,
	".json": kindText,
	".xml":  kindText,
	".ini":  kindText,
	".yaml": kindText,
	".yml":  kindText,
	".docx": kindOOXML,
	".pptx": kindOOXML,
	".xlsx": kindXLSX,
	".pdf":  kindPDF,
}

// Supported reports whether files with extension ext (".pdf", ".docx", ...)
// can be searched.
func Supported(ext string) bool {
	return kinds[strings.ToLower(ext)] != kindUnknown
}

// FindFirst searches path for query. When found, snippet holds up to
// contextLen runes on each side of the hit with the hit itself marked.
func FindFirst(ctx context.Context, path string, query string, contextLen int) (found bool, snippet string, err error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return false, "", ErrEmptyQuery
	}
	if err := ctx.Err(); err != nil {
		return false, "", err
	}

	ext := strings.ToLower(filepath.Ext(path))
	var text func(context.Context, string) (string, error)
	switch kinds[ext] {
	case kindText:
		text = textFileText
	case kindOOXML:
		return ooxmlFindFirst(ctx, path, query, contextLen)
	case kindXLSX:
		text = xlsxText
	case kindPDF:
		return pdfFindFirst(ctx, path, query, contextLen)
	default:
		return false, "", errors.Wrapf(ErrUnsupportedFormat, "%q", ext)
	}

	body, err := text(ctx, path)
	if err != nil {
		return false, "", err
	}
	snips := FindSnippets(body, query, contextLen, 1)
	if len(snips) == 0 {
		return false, "", nil
	}
	return true, snips[0], nil
}
