// Package export renders attendance reports and grids as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
)

// CSVHeader is the column order of report downloads.
var CSVHeader = []string{"colaborador", "data", "status", "setor", "turno", "leader_nome"}

// WriteCSV writes rows as UTF-8 CSV with a byte order mark so spreadsheet
// tools detect the encoding.
func WriteCSV(w io.Writer, rows []attendance.ReportRow) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return errors.Wrap(err, "writing csv bom")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return errors.Wrap(err, "writing csv header")
	}

	for _, r := range rows {
		if err := cw.Write([]string{r.Employee, r.Date, r.Status, r.Sector, r.Shift, r.LeaderName}); err != nil {
			return errors.Wrap(err, "writing csv row")
		}
	}

	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing csv")
}

// FileName builds presencas_<sector|global>[_<shift>]_<start>[_<end>].<ext>.
// A single-day report carries one date.
func FileName(sector, shift, start, end, ext string) string {
	parts := []string{"presencas"}

	if sector == "" {
		parts = append(parts, "global")
	} else {
		parts = append(parts, slug(sector))
	}
	if shift != "" {
		parts = append(parts, slug(shift))
	}

	parts = append(parts, start)
	if end != "" && end != start {
		parts = append(parts, end)
	}

	return fmt.Sprintf("%s.%s", strings.Join(parts, "_"), ext)
}

func slug(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, strings.TrimSpace(s))
}
