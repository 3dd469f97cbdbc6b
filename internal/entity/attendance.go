package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Attendance is one recorded status for an employee on a day. Only non-empty
// statuses are stored: clearing a day deletes the row.
type Attendance struct {
	bun.BaseModel `bun:"table:presencas"`

	ID         int       `json:"id"          bun:"id,pk,autoincrement"`
	EmployeeID int       `json:"employee_id" bun:"colaborador_id,notnull,unique:presencas_colaborador_date"`
	Date       string    `json:"date"        bun:"date,type:varchar(10),notnull,unique:presencas_colaborador_date"`
	Status     string    `json:"status"      bun:"status,type:varchar(40),notnull"`
	Sector     string    `json:"sector"      bun:"sector,type:varchar(60),notnull"`
	Shift      string    `json:"shift"       bun:"shift,type:varchar(30),notnull"`
	LeaderName string    `json:"leader_name" bun:"leader_name,type:varchar(200)"`
	CreatedAt  time.Time `json:"created_at"  bun:"created_at,notnull"`
	UpdatedAt  time.Time `json:"updated_at"  bun:"updated_at,notnull"`
}
