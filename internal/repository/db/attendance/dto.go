package attendance

// Key identifies one attendance fact. Date is yyyy-mm-dd.
type Key struct {
	EmployeeID int
	Date       string
}

// Entry is one resolved grid cell. An empty Status clears the day. Sector
// and Shift are the employee's own and are used when the save does not fix
// them.
type Entry struct {
	EmployeeID int
	Date       string
	Status     string
	Sector     string
	Shift      string
}

// SaveParams are the values stamped on every written row.
type SaveParams struct {
	Sector     string
	Shift      string
	LeaderName string
}

type SaveResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
}

// ReportFilter bounds are inclusive yyyy-mm-dd dates. Empty Sector or Shift
// means all.
type ReportFilter struct {
	Start  string
	End    string
	Sector string
	Shift  string
}

type ReportRow struct {
	Employee   string `json:"colaborador" bun:"colaborador"`
	Date       string `json:"data"        bun:"date"`
	Status     string `json:"status"      bun:"status"`
	Sector     string `json:"setor"       bun:"sector"`
	Shift      string `json:"turno"       bun:"shift"`
	LeaderName string `json:"leader_nome" bun:"leader_name"`
}
