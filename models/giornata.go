package models

import (
	"encoding/json"
	"sort"
	"time"

	"gorm.io/gorm"
)

// PastiValidi lists the five meal slots of a day, in presentation order.
var PastiValidi = []string{"colazione", "spuntinoMattina", "pranzo", "spuntinoPomeriggio", "cena"}

func PastoValido(pasto string) bool {
	for _, p := range PastiValidi {
		if p == pasto {
			return true
		}
	}
	return false
}

// VoceAlimento is one consumed-food entry in a meal slot. The nutrient
// snapshot is absolute for the consumed quantity, frozen at insert time so
// later catalog edits do not rewrite history.
type VoceAlimento struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	GiornataID uint   `gorm:"index;not null" json:"-"`
	Pasto      string `gorm:"not null" json:"-"`
	Posizione  int    `gorm:"not null" json:"-"`

	Nome     string  `json:"nome"`
	Quantita float64 `json:"quantita"` // grams

	Nutrienti `gorm:"embedded"`
}

// Integratore is a supplement entry: a dosage note only, it contributes
// nothing to the nutrient totals.
type Integratore struct {
	ID         uint   `gorm:"primarykey" json:"-"`
	GiornataID uint   `gorm:"index;not null" json:"-"`
	Pasto      string `gorm:"not null" json:"-"`
	Posizione  int    `gorm:"not null" json:"-"`

	Nome     string `json:"nome"`
	Dosaggio string `json:"dosaggio"`
}

// GiornataAlimentare is the per-user, per-calendar-day food log. Data is
// stored normalized to local midnight; at most one row per (user, day).
type GiornataAlimentare struct {
	gorm.Model
	UserID uint      `gorm:"index;uniqueIndex:idx_giornate_utente_data;not null" json:"utente"`
	Data   time.Time `gorm:"uniqueIndex:idx_giornate_utente_data;not null" json:"data"`

	Voci        []VoceAlimento `gorm:"foreignKey:GiornataID" json:"-"`
	Integratori []Integratore  `gorm:"foreignKey:GiornataID" json:"-"`

	Totali Nutrienti `gorm:"embedded;embeddedPrefix:tot_" json:"totaliGiornalieri"`
}

// PastiMap groups the entries by meal slot, ordered by position. Every slot
// is present in the result, empty slots as empty slices.
func (g *GiornataAlimentare) PastiMap() map[string][]VoceAlimento {
	out := make(map[string][]VoceAlimento, len(PastiValidi))
	for _, p := range PastiValidi {
		out[p] = []VoceAlimento{}
	}
	voci := make([]VoceAlimento, len(g.Voci))
	copy(voci, g.Voci)
	sort.SliceStable(voci, func(i, j int) bool { return voci[i].Posizione < voci[j].Posizione })
	for _, v := range voci {
		out[v.Pasto] = append(out[v.Pasto], v)
	}
	return out
}

// IntegratoriMap groups the supplement entries by meal slot.
func (g *GiornataAlimentare) IntegratoriMap() map[string][]Integratore {
	out := make(map[string][]Integratore, len(PastiValidi))
	for _, p := range PastiValidi {
		out[p] = []Integratore{}
	}
	integratori := make([]Integratore, len(g.Integratori))
	copy(integratori, g.Integratori)
	sort.SliceStable(integratori, func(i, j int) bool { return integratori[i].Posizione < integratori[j].Posizione })
	for _, i := range integratori {
		out[i.Pasto] = append(out[i.Pasto], i)
	}
	return out
}

// RicalcolaTotali recomputes the daily totals from scratch as the sum of
// every entry in every slot. Idempotent, no incremental drift.
func (g *GiornataAlimentare) RicalcolaTotali() {
	totali := Nutrienti{}
	for _, v := range g.Voci {
		totali.Somma(v.Nutrienti)
	}
	g.Totali = totali
}

// MarshalJSON renders the API shape of a daily log: slots always present,
// totals rounded to two decimals.
func (g GiornataAlimentare) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]interface{}{
		"id":                g.ID,
		"utente":            g.UserID,
		"data":              g.Data.Format("2006-01-02"),
		"pasti":             g.PastiMap(),
		"integratori":       g.IntegratoriMap(),
		"totaliGiornalieri": g.Totali.Arrotondata(),
		"createdAt":         g.CreatedAt,
		"updatedAt":         g.UpdatedAt,
	})
}
