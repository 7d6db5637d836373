package extract

import (
	"context"
	"io"
	"os"

	"github.com/cockroachdb/errors"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxTextBytes caps how much of a plain-text file is read.
const maxTextBytes = 20 * 1024 * 1024

func textFileText(ctx context.Context, path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "open text file")
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return "", err
	}
	b, err := io.ReadAll(io.LimitReader(f, maxTextBytes+1))
	if err != nil {
		return "", errors.Wrapf(err, "read %s", path)
	}
	if len(b) > maxTextBytes {
		return "", errors.Wrapf(ErrTooLarge, "%s", path)
	}
	return decodeText(b), nil
}

// decodeText honours UTF-8 and UTF-16 byte order marks and otherwise
// treats the bytes as UTF-8.
func decodeText(b []byte) string {
	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), b)
	if err != nil {
		return string(b)
	}
	return string(out)
}
