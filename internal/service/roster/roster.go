// Package roster imports employee shift lists from spreadsheets.
package roster

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/employee"
)

var (
	ErrSectorRequired = errors.New("sector required: add a SETOR column, name the sheet after a sector or choose a sector")
	ErrUnknownSector  = errors.New("unknown sector")
)

type Store interface {
	UpsertShifts(ctx context.Context, rows []employee.RosterRow) (int, error)
}

type Result struct {
	Processed     int      `json:"processed"`
	Sheets        []string `json:"sheets"`
	SkippedSheets []string `json:"skipped_sheets"`
}

type Importer struct {
	store Store
	log   zerolog.Logger
}

func NewImporter(store Store, log zerolog.Logger) *Importer {
	return &Importer{store: store, log: log}
}

// Import reads a roster and upserts every row. Rows are resolved before
// anything is written: a single row without a sector fails the whole file.
func (i *Importer) Import(ctx context.Context, filename string, r io.Reader, defaultSector string) (Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Result{}, web.NewRequestError(errors.Wrap(err, "reading roster"), http.StatusBadRequest)
	}

	sheets, err := readSheets(filename, data)
	if err != nil {
		return Result{}, web.NewRequestError(err, http.StatusBadRequest)
	}

	rows, result, err := i.resolve(sheets, defaultSector)
	if err != nil {
		return Result{}, err
	}

	if len(rows) == 0 {
		return result, nil
	}

	n, err := i.store.UpsertShifts(ctx, rows)
	if err != nil {
		return Result{}, err
	}
	result.Processed = n

	i.log.Info().Str("file", filename).Int("rows", n).Strs("sheets", result.Sheets).Msg("roster imported")

	return result, nil
}

type columns struct {
	name, shift, sector int
}

func (i *Importer) resolve(sheets []sheet, defaultSector string) ([]employee.RosterRow, Result, error) {
	result := Result{Sheets: []string{}, SkippedSheets: []string{}}
	fallback, err := canonicalSector(defaultSector)
	if err != nil {
		return nil, Result{}, web.NewRequestError(errors.Wrap(err, "default sector"), http.StatusUnprocessableEntity)
	}

	var rows []employee.RosterRow
	for _, s := range sheets {
		header, cols, ok := findHeader(s.rows)
		if !ok {
			i.log.Debug().Str("sheet", s.name).Msg("sheet without name and shift columns skipped")
			result.SkippedSheets = append(result.SkippedSheets, s.name)
			continue
		}
		result.Sheets = append(result.Sheets, s.name)

		hint, _ := entity.NormalizeSector(s.name)

		for n, record := range s.rows[header+1:] {
			name := strings.Join(strings.Fields(cell(record, cols.name)), " ")
			if name == "" {
				continue
			}

			sector, err := canonicalSector(cell(record, cols.sector))
			if err != nil {
				err = errors.Wrapf(err, "sheet %q row %d (%s)", s.name, header+n+2, name)
				return nil, Result{}, web.NewRequestError(err, http.StatusUnprocessableEntity)
			}
			if sector == "" {
				sector = hint
			}
			if sector == "" {
				sector = fallback
			}
			if sector == "" {
				err := errors.Wrapf(ErrSectorRequired, "sheet %q row %d (%s)", s.name, header+n+2, name)
				return nil, Result{}, web.NewRequestError(err, http.StatusUnprocessableEntity)
			}

			rows = append(rows, employee.RosterRow{
				Name:   name,
				Sector: sector,
				Shift:  entity.NormalizeShift(cell(record, cols.shift)),
			})
		}
	}

	return rows, result, nil
}

// findHeader locates the first row naming both a name and a shift column.
func findHeader(rows [][]string) (int, columns, bool) {
	for r, record := range rows {
		cols := columns{name: -1, shift: -1, sector: -1}
		short := -1

		for c, v := range record {
			switch strings.ToUpper(strings.TrimSpace(v)) {
			case "NOME COMPLETO":
				cols.name = c
			case "NOME":
				short = c
			case "TURNO":
				cols.shift = c
			case "SETOR":
				cols.sector = c
			}
		}
		if cols.name < 0 {
			cols.name = short
		}

		if cols.name >= 0 && cols.shift >= 0 {
			return r, cols, true
		}
	}

	return 0, columns{}, false
}

func cell(record []string, i int) string {
	if i < 0 || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

// canonicalSector resolves a sector cell. An empty cell gives no sector; a
// value outside the known sectors is an error.
func canonicalSector(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	canonical, ok := entity.NormalizeSector(s)
	if !ok {
		return "", errors.Wrapf(ErrUnknownSector, "%q", s)
	}
	return canonical, nil
}

// AutoImport imports the first seed file that exists and imports cleanly.
// Missing or broken files are logged and skipped; nothing here is fatal.
func (i *Importer) AutoImport(ctx context.Context, paths []string) (Result, bool) {
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			i.log.Debug().Err(err).Str("file", path).Msg("seed roster not available")
			continue
		}

		result, err := i.Import(ctx, filepath.Base(path), f, "")
		_ = f.Close()
		if err != nil {
			i.log.Warn().Err(err).Str("file", path).Msg("seed roster import failed")
			continue
		}

		return result, true
	}

	return Result{}, false
}
