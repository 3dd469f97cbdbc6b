package employee

// Filter narrows List. Empty Sector or Shift means all.
type Filter struct {
	Sector     string
	Shift      string
	ActiveOnly bool
}

// RosterRow is one resolved line of an imported roster.
type RosterRow struct {
	Name   string
	Sector string
	Shift  string
}

type CreateRequest struct {
	Name   string `json:"name"   form:"name"   validate:"required"`
	Sector string `json:"sector" form:"sector" validate:"required"`
	Shift  string `json:"shift"  form:"shift"`
}

type UpsertShiftRequest struct {
	Name   string `json:"name"   form:"name"   validate:"required"`
	Sector string `json:"sector" form:"sector" validate:"required"`
	Shift  string `json:"shift"  form:"shift"  validate:"required"`
}

type UpdateShiftRequest struct {
	ID    int    `json:"-"`
	Shift string `json:"shift" form:"shift" validate:"required"`
}

// ShiftChange sets the shift of one employee in a bulk edit.
type ShiftChange struct {
	ID    int    `json:"id"    validate:"required"`
	Shift string `json:"shift" validate:"required"`
}

type UpdateShiftsRequest struct {
	Changes []ShiftChange `json:"changes" validate:"required,dive"`
}

type SetActiveRequest struct {
	Deactivate []int `json:"deactivate"`
	Activate   []int `json:"activate"`
}

// SeedRequest maps a sector to the names that must exist in it.
type SeedRequest struct {
	Lists map[string][]string `json:"lists" validate:"required"`
	Shift string              `json:"shift"`
}
