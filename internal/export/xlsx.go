package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const SheetName = "Sheet1"

// WriteXLSX writes the rows starting at A1 of the default sheet, overwriting
// any existing file at path.
func WriteXLSX(path string, rows Rows) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, row := range rows.All() {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v
		}
		err = f.SetSheetRow(SheetName, cell, &values)
		if err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}

	err := f.SaveAs(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// ReadXLSX reads back every row of the default sheet.
func ReadXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.GetRows(SheetName)
}
