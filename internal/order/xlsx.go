package order

import (
	"path/filepath"

	"github.com/xuri/excelize/v2"

	pkgerrors "github.com/ginjaninja78/eaglebom/pkg/errors"
)

// ReadXLSX reads an order saved as a workbook. Only the first sheet is used.
func ReadXLSX(path string, cols Columns) ([]Record, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, pkgerrors.NewFileError("order", path, err)
	}
	defer f.Close()

	name := filepath.Base(path)

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, pkgerrors.NewHeaderError(name, cols.PartNumber)
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, pkgerrors.NewFileError("order", path, err)
	}

	// GetRows drops trailing empty rows but keeps inner ones, so the slice
	// index is the sheet row minus one.
	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}

	return parseTable(rows, lines, name, cols)
}
