package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"io"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// ooxmlParts maps a document extension to the zip folder holding its text.
var ooxmlParts = map[string]string{
	".docx": "word/",
	".pptx": "ppt/",
}

func ooxmlFindFirst(ctx context.Context, path string, query string, contextLen int) (bool, string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return false, "", errors.Wrapf(err, "open %s", path)
	}
	defer zr.Close()

	prefix := ooxmlParts[strings.ToLower(filepath.Ext(path))]
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return false, "", err
		}
		name := strings.ToLower(f.Name)
		if !strings.HasPrefix(name, prefix) || !strings.HasSuffix(name, ".xml") {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			continue
		}
		found, snip, _ := xmlFindFirst(ctx, rc, query, contextLen)
		rc.Close()
		if found {
			return true, snip, nil
		}
	}
	return false, "", nil
}

// xmlFindFirst matches query against each character-data run of the XML
// stream. Runs are matched one at a time, so a hit split across two
// formatting runs is not found.
func xmlFindFirst(ctx context.Context, r io.Reader, query string, contextLen int) (bool, string, error) {
	dec := xml.NewDecoder(r)
	for {
		if err := ctx.Err(); err != nil {
			return false, "", err
		}
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return false, "", nil
		}
		if err != nil {
			return false, "", errors.Wrap(err, "decode xml")
		}
		cd, ok := tok.(xml.CharData)
		if !ok {
			continue
		}
		if snips := FindSnippets(string(cd), query, contextLen, 1); len(snips) > 0 {
			return true, snips[0], nil
		}
	}
}
