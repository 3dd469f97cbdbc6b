// Package grid pivots attendance facts into the employee-by-day table edited
// by leaders and turns an edited table back into save entries.
package grid

import (
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/period"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
)

// Reference columns. Every other column named as a yyyy-mm-dd date holds a
// status.
const (
	ColumnEmployee = "employee"
	ColumnSector   = "sector"
	ColumnShift    = "shift"
)

var ErrInvalidStatus = errors.New("invalid status")

// Row maps a column name to its cell value.
type Row map[string]string

type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// Cell is one un-pivoted (employee, date) value.
type Cell struct {
	Employee string
	Sector   string
	Shift    string
	Date     string
	Status   string
}

// Build pivots statuses into one row per employee and one column per date.
// Days without a stored status are empty.
func Build(employees []entity.Employee, dates []time.Time, statuses map[attendance.Key]string) Table {
	columns := make([]string, 0, len(dates)+3)
	columns = append(columns, ColumnEmployee, ColumnSector, ColumnShift)

	isoDates := make([]string, 0, len(dates))
	for _, d := range dates {
		isoDates = append(isoDates, period.ISO(d))
	}
	columns = append(columns, isoDates...)

	rows := make([]Row, 0, len(employees))
	for _, e := range employees {
		row := make(Row, len(columns))
		row[ColumnEmployee] = e.Name
		row[ColumnSector] = e.Sector
		row[ColumnShift] = e.Shift

		for _, d := range isoDates {
			row[d] = statuses[attendance.Key{EmployeeID: e.ID, Date: d}]
		}

		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows}
}

// Unpivot produces one cell per (row, date column). Reference and other
// non-date columns are skipped. A missing cell is empty.
func Unpivot(t Table) []Cell {
	dates := dateColumns(t)

	cells := make([]Cell, 0, len(t.Rows)*len(dates))
	for _, row := range t.Rows {
		for _, col := range dates {
			cells = append(cells, Cell{
				Employee: row[ColumnEmployee],
				Sector:   row[ColumnSector],
				Shift:    row[ColumnShift],
				Date:     col.iso,
				Status:   strings.TrimSpace(row[col.name]),
			})
		}
	}

	return cells
}

// Resolve maps cell employees to ids through index. Cells whose employee
// cannot be identified are dropped. Any status outside the closed set fails
// the whole batch.
func Resolve(cells []Cell, index Index) ([]attendance.Entry, error) {
	entries := make([]attendance.Entry, 0, len(cells))

	for _, c := range cells {
		if !entity.IsStatus(c.Status) {
			return nil, errors.Wrapf(ErrInvalidStatus, "%q for %s on %s", c.Status, c.Employee, c.Date)
		}

		id, ok := index.Lookup(c.Employee, c.Sector)
		if !ok {
			continue
		}

		entries = append(entries, attendance.Entry{
			EmployeeID: id,
			Date:       c.Date,
			Status:     c.Status,
			Sector:     c.Sector,
			Shift:      c.Shift,
		})
	}

	return entries, nil
}

type member struct {
	name   string
	sector string
}

// Index identifies employees by name within a sector. Names are not unique
// across sectors, so a row is matched on its sector column.
type Index struct {
	ids    map[member]int
	byName map[string][]int
}

// NewIndex indexes employees. When two employees share a name in the same
// sector the later one wins.
func NewIndex(employees []entity.Employee) Index {
	index := Index{
		ids:    make(map[member]int, len(employees)),
		byName: make(map[string][]int, len(employees)),
	}

	for _, e := range employees {
		index.ids[member{name: e.Name, sector: e.Sector}] = e.ID
	}
	for key, id := range index.ids {
		index.byName[key.name] = append(index.byName[key.name], id)
	}

	return index
}

// Lookup returns the id of name in sector. A row without a sector only
// resolves when the name is unambiguous.
func (ix Index) Lookup(name, sector string) (int, bool) {
	sector = strings.TrimSpace(sector)
	if sector == "" {
		ids := ix.byName[name]
		if len(ids) != 1 {
			return 0, false
		}
		return ids[0], true
	}

	if canonical, ok := entity.NormalizeSector(sector); ok {
		sector = canonical
	}
	id, ok := ix.ids[member{name: name, sector: sector}]
	return id, ok
}

type dateColumn struct {
	name string
	iso  string
}

func dateColumns(t Table) []dateColumn {
	names := t.Columns
	if len(names) == 0 {
		seen := map[string]bool{}
		for _, row := range t.Rows {
			for k := range row {
				if !seen[k] {
					seen[k] = true
					names = append(names, k)
				}
			}
		}
		sort.Strings(names)
	}

	list := make([]dateColumn, 0, len(names))
	for _, name := range names {
		if name == ColumnEmployee || name == ColumnSector || name == ColumnShift {
			continue
		}
		d, err := period.ParseISO(strings.TrimSpace(name))
		if err != nil {
			continue
		}
		list = append(list, dateColumn{name: name, iso: period.ISO(d)})
	}

	return list
}
