package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Employee (colaborador) is a tracked worker. Active is a soft delete flag:
// inactive employees keep their attendance history.
type Employee struct {
	bun.BaseModel `bun:"table:colaboradores"`

	ID        int       `json:"id"         bun:"id,pk,autoincrement"`
	Name      string    `json:"name"       bun:"name,type:varchar(200),notnull"`
	Sector    string    `json:"sector"     bun:"sector,type:varchar(60),notnull"`
	Shift     string    `json:"shift"      bun:"shift,type:varchar(30),notnull"`
	Active    bool      `json:"active"     bun:"active,notnull"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull"`
}
