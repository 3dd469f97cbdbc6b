package report

import (
	"bytes"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/entity"
	"github.com/projetos-logistica/Cadastro-HC/internal/period"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/export"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"
)

const (
	contentTypeCSV  = "text/csv; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypePDF  = "application/pdf"
	contentTypePNG  = "image/png"
	qrSize          = 512
)

type Controller struct {
	attendance Attendance
	timesheet  Timesheet
	baseURL    string
	now        func() time.Time
}

func NewController(attendance Attendance, timesheet Timesheet, baseURL string, now func() time.Time) *Controller {
	if now == nil {
		now = time.Now
	}
	return &Controller{attendance: attendance, timesheet: timesheet, baseURL: strings.TrimRight(baseURL, "/"), now: now}
}

type query struct {
	sector string
	shift  string
	rng    period.Period
}

// parseQuery reads sector, shift and the day range. Missing sector and shift
// mean all, which is the global report.
func (uc Controller) parseQuery(c *web.Context) (query, error) {
	var q query

	if sector, ok := c.GetQueryFunc(reflect.String, "sector").(*string); ok && !strings.EqualFold(*sector, "all") {
		q.sector = *sector
		if canonical, ok := entity.NormalizeSector(*sector); ok {
			q.sector = canonical
		}
	}
	if shift, ok := c.GetQueryFunc(reflect.String, "shift").(*string); ok && !strings.EqualFold(*shift, "all") {
		q.shift = *shift
	}
	date, _ := c.GetQueryFunc(reflect.String, "date").(*string)
	start, _ := c.GetQueryFunc(reflect.String, "start").(*string)
	end, _ := c.GetQueryFunc(reflect.String, "end").(*string)

	if err := c.ValidQuery(); err != nil {
		return query{}, err
	}

	rng, err := timesheet.Range(date, start, end, uc.now())
	if err != nil {
		return query{}, err
	}
	q.rng = rng

	return q, nil
}

func (q query) filter() attendance.ReportFilter {
	return attendance.ReportFilter{
		Start:  period.ISO(q.rng.Start),
		End:    period.ISO(q.rng.End),
		Sector: q.sector,
		Shift:  q.shift,
	}
}

func (q query) fileName(ext string) string {
	return export.FileName(q.sector, q.shift, period.ISO(q.rng.Start), period.ISO(q.rng.End), ext)
}

func (uc Controller) GetList(c *web.Context) error {
	q, err := uc.parseQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.Report(c.Ctx, q.filter())
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"period":  q.rng,
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) ExportCSV(c *web.Context) error {
	q, err := uc.parseQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.attendance.Report(c.Ctx, q.filter())
	if err != nil {
		return c.RespondError(err)
	}

	var buf bytes.Buffer
	if err = export.WriteCSV(&buf, list); err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondFile(buf.Bytes(), contentTypeCSV, q.fileName("csv"))
}

func (uc Controller) ExportExcel(c *web.Context) error {
	q, err := uc.parseQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	table, err := uc.timesheet.Load(c.Ctx, timesheet.Query{Sector: q.sector, Shift: q.shift, Range: q.rng})
	if err != nil {
		return c.RespondError(err)
	}

	data, err := export.GridWorkbook(table)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondFile(data, contentTypeXLSX, q.fileName("xlsx"))
}

func (uc Controller) ExportPDF(c *web.Context) error {
	q, err := uc.parseQuery(c)
	if err != nil {
		return c.RespondError(err)
	}

	table, err := uc.timesheet.Load(c.Ctx, timesheet.Query{Sector: q.sector, Shift: q.shift, Range: q.rng})
	if err != nil {
		return c.RespondError(err)
	}

	title := q.sector
	if title == "" {
		title = "Todos os setores"
	}
	if q.shift != "" {
		title += " / " + q.shift
	}
	title += " - " + q.rng.Label

	data, err := export.GridPDF(table, title)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondFile(data, contentTypePDF, q.fileName("pdf"))
}

// GetQRCode returns a PNG pointing at the daily grid of a sector, to be
// posted at the sector's station.
func (uc Controller) GetQRCode(c *web.Context) error {
	sector, _ := c.GetQueryFunc(reflect.String, "sector").(*string)
	shift, _ := c.GetQueryFunc(reflect.String, "shift").(*string)

	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	if sector == nil {
		return c.RespondError(web.NewRequestError(errors.New("sector is required"), http.StatusBadRequest))
	}
	canonical, ok := entity.NormalizeSector(*sector)
	if !ok {
		return c.RespondError(web.NewRequestError(errors.Errorf("unknown sector %q", *sector), http.StatusBadRequest))
	}

	shiftValue := ""
	if shift != nil {
		shiftValue = entity.NormalizeShift(*shift)
	}

	png, err := export.QRCode(export.EntryURL(uc.baseURL, canonical, shiftValue), qrSize)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusInternalServerError))
	}

	return c.RespondFile(png, contentTypePNG, export.FileName(canonical, shiftValue, "qrcode", "", "png"))
}
