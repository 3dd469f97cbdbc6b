package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/period"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
)

var employees = []entity.Employee{
	{ID: 1, Name: "Ana", Sector: "Fabric", Shift: "1°"},
	{ID: 2, Name: "Bia", Sector: "Fabric", Shift: "2°"},
}

func TestBuild(t *testing.T) {
	dates := period.Dates(time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 18, 0, 0, 0, 0, time.UTC))
	statuses := map[attendance.Key]string{
		{EmployeeID: 1, Date: "2024-03-17"}: entity.StatusPresent,
	}

	table := Build(employees, dates, statuses)

	assert.Equal(t, []string{"employee", "sector", "shift", "2024-03-16", "2024-03-17", "2024-03-18"}, table.Columns)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, "Ana", table.Rows[0][ColumnEmployee])
	assert.Equal(t, entity.StatusPresent, table.Rows[0]["2024-03-17"])
	assert.Equal(t, "", table.Rows[0]["2024-03-16"])
	assert.Equal(t, "2°", table.Rows[1][ColumnShift])
}

func TestUnpivotSkipsReferenceColumns(t *testing.T) {
	table := Table{
		Columns: []string{"employee", "sector", "shift", "notes", "2024-03-16"},
		Rows: []Row{
			{"employee": "Ana", "sector": "Fabric", "shift": "1°", "notes": "x", "2024-03-16": " LATE "},
		},
	}

	cells := Unpivot(table)
	require.Len(t, cells, 1)
	assert.Equal(t, Cell{Employee: "Ana", Sector: "Fabric", Shift: "1°", Date: "2024-03-16", Status: "LATE"}, cells[0])
}

func TestUnpivotWithoutColumnList(t *testing.T) {
	table := Table{Rows: []Row{
		{"employee": "Ana", "2024-03-17": "ABSENT", "2024-03-16": "PRESENT"},
		{"employee": "Bia", "2024-03-16": "PRESENT"},
	}}

	cells := Unpivot(table)
	require.Len(t, cells, 4)
	assert.Equal(t, "2024-03-16", cells[0].Date)
	assert.Equal(t, "2024-03-17", cells[1].Date)
	assert.Equal(t, "", cells[3].Status, "missing cell reads as empty")
}

func TestResolveSkipsUnknownEmployees(t *testing.T) {
	cells := []Cell{
		{Employee: "Ana", Date: "2024-03-16", Status: "PRESENT"},
		{Employee: "Ghost", Date: "2024-03-16", Status: "PRESENT"},
	}

	entries, err := Resolve(cells, NewIndex(employees))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].EmployeeID)
}

func TestResolveRejectsUnknownStatus(t *testing.T) {
	_, err := Resolve([]Cell{{Employee: "Ana", Date: "2024-03-16", Status: "HOLIDAY"}}, NewIndex(employees))
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestIndexLastWinsWithinSector(t *testing.T) {
	index := NewIndex(append(employees, entity.Employee{ID: 9, Name: "Ana", Sector: "Fabric"}))

	id, ok := index.Lookup("Ana", "Fabric")
	require.True(t, ok)
	assert.Equal(t, 9, id)

	id, ok = index.Lookup("Ana", "")
	require.True(t, ok)
	assert.Equal(t, 9, id)
}

func TestIndexSeparatesNamesakesBySector(t *testing.T) {
	index := NewIndex([]entity.Employee{
		{ID: 1, Name: "Jane Doe", Sector: "Receiving"},
		{ID: 2, Name: "Jane Doe", Sector: "Shipping"},
	})

	id, ok := index.Lookup("Jane Doe", "Receiving")
	require.True(t, ok)
	assert.Equal(t, 1, id)

	id, ok = index.Lookup("Jane Doe", "EXPEDIÇÃO")
	require.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = index.Lookup("Jane Doe", "")
	assert.False(t, ok, "ambiguous name without a sector")

	_, ok = index.Lookup("Jane Doe", "Fabric")
	assert.False(t, ok)
}

func TestResolveNamesakes(t *testing.T) {
	index := NewIndex([]entity.Employee{
		{ID: 1, Name: "Jane Doe", Sector: "Receiving"},
		{ID: 2, Name: "Jane Doe", Sector: "Shipping"},
	})
	cells := []Cell{
		{Employee: "Jane Doe", Sector: "Receiving", Date: "2024-03-16", Status: entity.StatusPresent},
		{Employee: "Jane Doe", Sector: "Shipping", Date: "2024-03-16", Status: entity.StatusAbsent},
	}

	entries, err := Resolve(cells, index)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].EmployeeID)
	assert.Equal(t, 2, entries[1].EmployeeID)
}

func TestRoundTrip(t *testing.T) {
	start := time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC)
	dates := period.Dates(start, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC))

	stored := map[attendance.Key]string{
		{EmployeeID: 1, Date: "2024-02-16"}: entity.StatusPresent,
		{EmployeeID: 1, Date: "2024-02-29"}: entity.StatusVacation,
		{EmployeeID: 2, Date: "2024-03-15"}: entity.StatusLate,
		{EmployeeID: 2, Date: "2024-03-01"}: entity.StatusDayOff,
	}

	entries, err := Resolve(Unpivot(Build(employees, dates, stored)), NewIndex(employees))
	require.NoError(t, err)

	got := map[attendance.Key]string{}
	for _, e := range entries {
		if e.Status != "" {
			got[attendance.Key{EmployeeID: e.EmployeeID, Date: e.Date}] = e.Status
		}
	}
	assert.Equal(t, stored, got)
	assert.Len(t, entries, len(employees)*len(dates))
}
