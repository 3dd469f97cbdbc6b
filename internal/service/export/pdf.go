package export

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
)

// statusCodes are the short forms printed in PDF cells.
var statusCodes = map[string]string{
	entity.StatusPresent:                    "P",
	entity.StatusCompTime:                   "BH",
	entity.StatusLate:                       "AT",
	entity.StatusAbsent:                     "F",
	entity.StatusVacation:                   "FE",
	entity.StatusMedicalLeave:               "AM",
	entity.StatusAway:                       "AF",
	entity.StatusBirthday:                   "AN",
	entity.StatusEarlyDeparture:             "SA",
	entity.StatusUnjustifiedAbsence:         "FI",
	entity.StatusUnjustifiedAbsenceDelivery: "FD",
	entity.StatusUnjustifiedAbsenceOnline:   "FC",
	entity.StatusDayOff:                     "FG",
	entity.StatusTraining:                   "TR",
	entity.StatusTerminated:                 "DE",
}

// StatusCode returns the PDF abbreviation of status.
func StatusCode(status string) string {
	if code, ok := statusCodes[status]; ok {
		return code
	}
	return status
}

// GridPDF renders the grid on landscape A4 pages, one column per day, with a
// legend of the status abbreviations.
func GridPDF(table grid.Table, title string) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(8, 8, 8)
	pdf.SetAutoPageBreak(true, 8)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 16

	var dates []string
	for _, col := range table.Columns {
		if col != grid.ColumnEmployee && col != grid.ColumnSector && col != grid.ColumnShift {
			dates = append(dates, col)
		}
	}

	nameW := 52.0
	shiftW := 14.0
	dayW := 6.0
	if len(dates) > 0 {
		if w := (contentW - nameW - shiftW) / float64(len(dates)); w < dayW {
			dayW = w
		}
	}

	header := func() {
		pdf.SetFont("Helvetica", "B", 7)
		pdf.SetFillColor(221, 235, 247)
		pdf.CellFormat(nameW, 5, tr("Colaborador"), "1", 0, "L", true, 0, "")
		pdf.CellFormat(shiftW, 5, tr("Turno"), "1", 0, "C", true, 0, "")
		for _, d := range dates {
			day := d
			if len(d) == 10 {
				day = d[8:]
			}
			pdf.CellFormat(dayW, 5, day, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(contentW, 7, tr(title), "", 1, "L", false, 0, "")
		header()
	})
	pdf.AddPage()

	for _, row := range table.Rows {
		pdf.SetFont("Helvetica", "", 7)
		name := row[grid.ColumnEmployee]
		if len([]rune(name)) > 34 {
			name = string([]rune(name)[:33]) + "."
		}
		pdf.CellFormat(nameW, 4.5, tr(name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(shiftW, 4.5, tr(row[grid.ColumnShift]), "1", 0, "C", false, 0, "")
		for _, d := range dates {
			pdf.CellFormat(dayW, 4.5, StatusCode(row[d]), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "", 6)
	legend := make([]string, 0, len(entity.Statuses))
	for _, s := range entity.Statuses {
		if s != "" {
			legend = append(legend, StatusCode(s)+" = "+s)
		}
	}
	pdf.MultiCell(contentW, 3.5, strings.Join(legend, "   "), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "rendering pdf")
	}

	return buf.Bytes(), nil
}
