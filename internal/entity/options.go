package entity

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Attendance statuses. The empty status means "not recorded" and is never
// stored.
const (
	StatusPresent                    = "PRESENT"
	StatusCompTime                   = "COMP-TIME"
	StatusLate                       = "LATE"
	StatusAbsent                     = "ABSENT"
	StatusVacation                   = "VACATION"
	StatusMedicalLeave               = "MEDICAL-LEAVE"
	StatusAway                       = "AWAY"
	StatusBirthday                   = "BIRTHDAY"
	StatusEarlyDeparture             = "EARLY-DEPARTURE"
	StatusUnjustifiedAbsence         = "UNJUSTIFIED-ABSENCE"
	StatusUnjustifiedAbsenceDelivery = "UNJUSTIFIED-ABSENCE-DISTRIBUTION"
	StatusUnjustifiedAbsenceOnline   = "UNJUSTIFIED-ABSENCE-ECOMMERCE"
	StatusDayOff                     = "DAY-OFF"
	StatusTraining                   = "TRAINING"
	StatusTerminated                 = "TERMINATED"
)

// Statuses lists the selectable statuses in display order, empty first.
var Statuses = []string{
	"",
	StatusPresent,
	StatusCompTime,
	StatusLate,
	StatusAbsent,
	StatusVacation,
	StatusMedicalLeave,
	StatusAway,
	StatusBirthday,
	StatusEarlyDeparture,
	StatusUnjustifiedAbsence,
	StatusUnjustifiedAbsenceDelivery,
	StatusUnjustifiedAbsenceOnline,
	StatusDayOff,
	StatusTraining,
	StatusTerminated,
}

// Sectors are the fixed organisational units of the warehouse.
var Sectors = []string{
	"Trimmings",
	"Fabric",
	"Distribution",
	"Stockroom",
	"PAF",
	"Receiving",
	"Shipping",
	"E-commerce",
}

// Shifts are the fixed shift labels. The first one is the fallback for
// unrecognised input.
var Shifts = []string{"1°", "2°", "3°", "ÚNICO", "INTERMEDIARIO"}

// sectorAliases maps upper-cased, accent-free names (Portuguese sheet names
// included) to the canonical sector.
var sectorAliases = map[string]string{
	"TRIMMINGS":    "Trimmings",
	"AVIAMENTO":    "Trimmings",
	"FABRIC":       "Fabric",
	"TECIDO":       "Fabric",
	"DISTRIBUTION": "Distribution",
	"DISTRIBUICAO": "Distribution",
	"STOCKROOM":    "Stockroom",
	"ALMOXARIFADO": "Stockroom",
	"PAF":          "PAF",
	"RECEIVING":    "Receiving",
	"RECEBIMENTO":  "Receiving",
	"SHIPPING":     "Shipping",
	"EXPEDICAO":    "Shipping",
	"E-COMMERCE":   "E-commerce",
	"ECOMMERCE":    "E-commerce",
	"E COMMERCE":   "E-commerce",
}

// IsStatus reports whether s is a member of the closed status set. The empty
// status is a member.
func IsStatus(s string) bool {
	for _, v := range Statuses {
		if v == s {
			return true
		}
	}
	return false
}

// IsSector reports whether s is a canonical sector name.
func IsSector(s string) bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

// IsShift reports whether s is a canonical shift label.
func IsShift(s string) bool {
	for _, v := range Shifts {
		if v == s {
			return true
		}
	}
	return false
}

// NormalizeShift maps free-form shift input to a canonical shift. Unknown
// values fall back to the first shift.
func NormalizeShift(s string) string {
	t := strings.ToUpper(strings.TrimSpace(s))
	t = strings.NewReplacer("º", "°", "˚", "°").Replace(t)

	switch t {
	case "UNICO":
		t = "ÚNICO"
	case "INTERMEDIÁRIO":
		t = "INTERMEDIARIO"
	}

	if IsShift(t) {
		return t
	}
	return Shifts[0]
}

// NormalizeSector resolves a sector name or alias to its canonical form.
// ok is false when the name is not a known sector.
func NormalizeSector(s string) (string, bool) {
	key := strings.ToUpper(stripAccents(strings.TrimSpace(s)))
	if key == "" {
		return "", false
	}
	canonical, ok := sectorAliases[key]
	return canonical, ok
}

func stripAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
