package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/grid"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
)

func sampleTable() grid.Table {
	return grid.Table{
		Columns: []string{grid.ColumnEmployee, grid.ColumnSector, grid.ColumnShift, "2024-03-16", "2024-03-17"},
		Rows: []grid.Row{
			{grid.ColumnEmployee: "João", grid.ColumnSector: "Fabric", grid.ColumnShift: "1°", "2024-03-16": entity.StatusPresent, "2024-03-17": ""},
			{grid.ColumnEmployee: "Ana", grid.ColumnSector: "Fabric", grid.ColumnShift: "ÚNICO", "2024-03-16": entity.StatusVacation, "2024-03-17": entity.StatusLate},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []attendance.ReportRow{
		{Employee: "João, Silva", Date: "2024-03-16", Status: "PRESENT", Sector: "Fabric", Shift: "1°", LeaderName: "Lia"},
	})
	require.NoError(t, err)

	out := buf.Bytes()
	require.True(t, bytes.HasPrefix(out, []byte{0xEF, 0xBB, 0xBF}))

	records, err := csv.NewReader(bytes.NewReader(out[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, CSVHeader, records[0])
	assert.Equal(t, []string{"João, Silva", "2024-03-16", "PRESENT", "Fabric", "1°", "Lia"}, records[1])
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "presencas_global_2024-03-16_2024-04-15.csv", FileName("", "", "2024-03-16", "2024-04-15", "csv"))
	assert.Equal(t, "presencas_Receiving_2024-03-20.csv", FileName("Receiving", "", "2024-03-20", "2024-03-20", "csv"))
	assert.Equal(t, "presencas_E-commerce_1°_2024-03-20.xlsx", FileName("E-commerce", "1°", "2024-03-20", "", "xlsx"))
}

func TestGridWorkbook(t *testing.T) {
	data, err := GridWorkbook(sampleTable())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(gridSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "employee", rows[0][0])
	assert.Equal(t, "2024-03-17", rows[0][4])
	assert.Equal(t, "João", rows[1][0])
	assert.Equal(t, entity.StatusLate, rows[2][4])
}

func TestGridPDF(t *testing.T) {
	data, err := GridPDF(sampleTable(), "Fabric – 16 mar 2024 – 15 abr 2024")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestStatusCodesCoverEveryStatus(t *testing.T) {
	seen := map[string]string{}
	for _, s := range entity.Statuses {
		if s == "" {
			continue
		}
		code := StatusCode(s)
		assert.NotEqual(t, s, code, s)
		if other, dup := seen[code]; dup {
			t.Errorf("%s and %s share code %s", s, other, code)
		}
		seen[code] = s
	}
	assert.Equal(t, "", StatusCode(""))
}

func TestQRCode(t *testing.T) {
	url := EntryURL("http://localhost:8080", "E-commerce", "1°")
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/api/v1/attendance/grid?"))
	assert.Contains(t, url, "sector=E-commerce")

	png, err := QRCode(url, 256)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))
}
