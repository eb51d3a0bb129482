package client

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// intestazioniCSV mirrors the column set of the web app's data export.
var intestazioniCSV = []string{
	"Data",
	"Proteine (g)",
	"Carboidrati (g)",
	"Grassi (g)",
	"Calorie (kcal)",
	"Ferro (mg)",
	"Calcio (mg)",
	"B12 (µg)",
	"Omega-3 (g)",
}

// CSV renders the range as one daily-totals row per log, in the range's
// order, dates in the dd/mm/yyyy form of the original export.
func (s Storico) CSV() string {
	var b strings.Builder
	b.WriteString(strings.Join(intestazioniCSV, ","))
	b.WriteByte('\n')

	for _, g := range s {
		t := g.TotaliGiornalieri
		riga := []string{
			dataItaliana(g.Data),
			fmt.Sprintf("%.1f", t.Proteine),
			fmt.Sprintf("%.1f", t.Carboidrati),
			fmt.Sprintf("%.1f", t.Grassi),
			fmt.Sprintf("%.0f", t.Calorie),
			fmt.Sprintf("%.1f", t.Ferro),
			fmt.Sprintf("%.0f", t.Calcio),
			fmt.Sprintf("%.1f", t.VitB12),
			fmt.Sprintf("%.1f", t.Omega3),
		}
		b.WriteString(strings.Join(riga, ","))
		b.WriteByte('\n')
	}
	return b.String()
}

// JSON renders the range as an indented backup document, the full wire
// shape of every log.
func (s Storico) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// NomeFileExport builds the dated file name the exports are saved under.
func NomeFileExport(prefisso, estensione string) string {
	return fmt.Sprintf("%s-%s.%s", prefisso, time.Now().Format("2006-01-02"), estensione)
}

func dataItaliana(data string) string {
	t, err := time.Parse("2006-01-02", data)
	if err != nil {
		return data
	}
	return t.Format("02/01/2006")
}
