package entity

import (
	"time"

	"github.com/uptrace/bun"
)

// Leader is the person filling in a day's attendance.
type Leader struct {
	bun.BaseModel `bun:"table:leaders"`

	ID        int       `json:"id"         bun:"id,pk,autoincrement"`
	Name      string    `json:"name"       bun:"name,type:varchar(200),notnull"`
	Sector    string    `json:"sector"     bun:"sector,type:varchar(60),notnull"`
	Shift     string    `json:"shift"      bun:"shift,type:varchar(30),notnull"`
	CreatedAt time.Time `json:"created_at" bun:"created_at,notnull"`
}
