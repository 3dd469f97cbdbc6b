package router

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/projetos-logistica/Cadastro-HC/foundation/web"
	"github.com/projetos-logistica/Cadastro-HC/internal/auth"
	"github.com/projetos-logistica/Cadastro-HC/internal/middleware"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/config"
	"github.com/projetos-logistica/Cadastro-HC/internal/pkg/repository/sqldb"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/attendance"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/employee"
	"github.com/projetos-logistica/Cadastro-HC/internal/repository/db/leader"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/roster"
	"github.com/projetos-logistica/Cadastro-HC/internal/service/timesheet"

	attendance_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/attendance"
	auth_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/auth"
	diagnostics_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/diagnostics"
	employee_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/employee"
	meta_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/meta"
	period_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/period"
	report_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/report"
	roster_controller "github.com/projetos-logistica/Cadastro-HC/internal/controller/http/v1/roster"
)

type Router struct {
	*web.App
	db   *sqldb.Database
	auth *auth.Auth
	gate *auth.Gate
	cfg  config.Web
	log  zerolog.Logger
}

func NewRouter(
	app *web.App,
	db *sqldb.Database,
	auth *auth.Auth,
	gate *auth.Gate,
	cfg config.Web,
	log zerolog.Logger,
) *Router {
	return &Router{
		app,
		db,
		auth,
		gate,
		cfg,
		log,
	}
}

// Init mounts every route. Serving is left to the caller.
func (r Router) Init() {

	r.HandleMethodNotAllowed = true
	r.Use(middleware.Logger(r.log))
	r.Use(middleware.CORS(r.cfg.AllowedOrigins))

	// - sql
	leaderDB := leader.NewRepository(r.db)
	employeeDB := employee.NewRepository(r.db)
	attendanceDB := attendance.NewRepository(r.db)

	// service
	timesheetService := timesheet.NewService(employeeDB, attendanceDB, r.log)
	rosterImporter := roster.NewImporter(employeeDB, r.log)

	// controller
	authController := auth_controller.NewController(r.gate, r.auth, leaderDB)
	periodController := period_controller.NewController(time.Now)
	attendanceController := attendance_controller.NewController(timesheetService, time.Now)
	reportController := report_controller.NewController(attendanceDB, timesheetService, r.cfg.BaseURL, time.Now)
	employeeController := employee_controller.NewController(employeeDB)
	rosterController := roster_controller.NewController(rosterImporter)
	diagnosticsController := diagnostics_controller.NewController(r.db)
	metaController := meta_controller.NewController()

	// #auth
	r.Post("/api/v1/sign-in", authController.SignIn)
	r.Post("/api/v1/sign-out", authController.SignOut, middleware.Authenticate(r.auth))
	r.Post("/api/v1/leader/sign-in", authController.LeaderSignIn, middleware.Authenticate(r.auth))

	// #period
	r.Get("/api/v1/period/current", periodController.GetCurrent, middleware.Authenticate(r.auth))
	r.Get("/api/v1/period/list", periodController.GetList, middleware.Authenticate(r.auth))

	// #attendance
	r.Get("/api/v1/attendance/grid", attendanceController.GetGrid, middleware.Authenticate(r.auth))
	r.Post("/api/v1/attendance/grid", attendanceController.SaveGrid, middleware.Authenticate(r.auth))

	// #report
	r.Get("/api/v1/report/list", reportController.GetList, middleware.Authenticate(r.auth))
	r.Get("/api/v1/report/csv", reportController.ExportCSV, middleware.Authenticate(r.auth))
	r.Get("/api/v1/report/excel", reportController.ExportExcel, middleware.Authenticate(r.auth))
	r.Get("/api/v1/report/pdf", reportController.ExportPDF, middleware.Authenticate(r.auth))
	r.Get("/api/v1/report/qrcode", reportController.GetQRCode, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #employee
	r.Get("/api/v1/employee/list", employeeController.GetList, middleware.Authenticate(r.auth))
	r.Post("/api/v1/employee/create", employeeController.Create, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Put("/api/v1/employee/shift", employeeController.UpsertShift, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/shifts", employeeController.UpdateShifts, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/active", employeeController.SetActive, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Patch("/api/v1/employee/:id/shift", employeeController.UpdateShift, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/employee/seed", employeeController.Seed, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #roster
	r.Post("/api/v1/roster/import", rosterController.Import, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #diagnostics
	r.Get("/api/v1/diagnostics/config", diagnosticsController.GetConfig, middleware.Authenticate(r.auth, auth.RoleAdmin))
	r.Post("/api/v1/diagnostics/ping", diagnosticsController.Ping, middleware.Authenticate(r.auth, auth.RoleAdmin))

	// #meta
	r.Get("/api/v1/meta/options", metaController.GetOptions, middleware.Authenticate(r.auth))
}
