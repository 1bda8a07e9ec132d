package loader

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	apperrors "tableqc/internal/errors"
	"tableqc/pkg/contracts/domain"
)

// loadExcel reads one sheet of a workbook. Excelize drops trailing empty
// cells, so short rows are padded back out to the header width to keep the
// table rectangular.
func (l *Loader) loadExcel(ctx context.Context, path, sheet string) (*domain.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.LoadFailed(path, err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, apperrors.Wrap(apperrors.CodeMalformedTable, nil, "%s has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, apperrors.LoadFailed(path, fmt.Errorf("failed to read sheet %q: %w", sheet, err))
	}
	if len(rows) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeMalformedTable, nil, "sheet %q of %s has no header row", sheet, path)
	}

	header := rows[0]
	data := rows[1:]

	// Pad every data row to the header width; the missing marker is added
	// during cell parsing since an absent cell reads as the empty string.
	width := len(header)
	for i := range data {
		for len(data[i]) < width {
			data[i] = append(data[i], "")
		}
		if len(data[i]) > width {
			data[i] = data[i][:width]
		}
	}

	// Unnamed header cells get positional names.
	for j, name := range header {
		if name == "" {
			header[j] = fmt.Sprintf("column_%d", j+1)
		}
	}

	return buildTable(path, header, data), nil
}
