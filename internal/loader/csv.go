package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	apperrors "tableqc/internal/errors"
	"tableqc/pkg/contracts/domain"
)

// loadCSV reads a delimited file. The csv reader enforces a constant field
// count per record, so a jagged file fails as a whole rather than producing
// a partially populated table.
func (l *Loader) loadCSV(ctx context.Context, path, encoding string) (*domain.Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.LoadFailed(path, err)
	}
	defer file.Close()

	decoded, err := decodeReader(file, encoding)
	if err != nil {
		return nil, apperrors.LoadFailed(path, err)
	}

	reader := csv.NewReader(decoded)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.LoadFailed(path, err)
	}
	if len(records) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeMalformedTable, nil, "%s has no header row", path)
	}

	return buildTable(path, records[0], records[1:]), nil
}

// decodeReader wraps r for the requested character encoding. UTF-8 input
// has any byte-order mark stripped.
func decodeReader(r io.Reader, encoding string) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return skipBOM(r), nil
	case "latin-1", "latin1", "iso-8859-1":
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(r, charmap.Windows1252.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", encoding)
	}
}

// skipBOM removes a leading UTF-8 byte-order mark if present.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	head, err := br.Peek(3)
	if err == nil && head[0] == 0xEF && head[1] == 0xBB && head[2] == 0xBF {
		br.Discard(3)
	}
	return br
}
