package export

import (
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
)

const gridSheet = "Presencas"

// GridWorkbook writes the grid into a single-sheet workbook with a bold,
// frozen header row.
func GridWorkbook(table grid.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", gridSheet); err != nil {
		return nil, errors.Wrap(err, "naming sheet")
	}

	header := make([]interface{}, 0, len(table.Columns))
	for _, col := range table.Columns {
		header = append(header, col)
	}
	if err := f.SetSheetRow(gridSheet, "A1", &header); err != nil {
		return nil, errors.Wrap(err, "writing header")
	}

	for i, row := range table.Rows {
		values := make([]interface{}, 0, len(table.Columns))
		for _, col := range table.Columns {
			values = append(values, row[col])
		}

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, errors.Wrap(err, "locating row")
		}
		if err = f.SetSheetRow(gridSheet, cell, &values); err != nil {
			return nil, errors.Wrap(err, "writing row")
		}
	}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#DDEBF7"}},
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating header style")
	}

	if len(table.Columns) > 0 {
		last, err := excelize.CoordinatesToCellName(len(table.Columns), 1)
		if err != nil {
			return nil, errors.Wrap(err, "locating header")
		}
		if err = f.SetCellStyle(gridSheet, "A1", last, style); err != nil {
			return nil, errors.Wrap(err, "styling header")
		}
		if err = f.SetColWidth(gridSheet, "A", "A", 32); err != nil {
			return nil, errors.Wrap(err, "sizing columns")
		}
	}

	if err = f.SetPanes(gridSheet, &excelize.Panes{
		Freeze:      true,
		XSplit:      1,
		YSplit:      1,
		TopLeftCell: "B2",
		ActivePane:  "bottomRight",
	}); err != nil {
		return nil, errors.Wrap(err, "freezing header")
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, errors.Wrap(err, "writing workbook")
	}

	return buf.Bytes(), nil
}
