package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalaPer(t *testing.T) {
	lenticchie := Nutrienti{Proteine: 9, Carboidrati: 16.5, Ferro: 2.5, Calorie: 115}

	porzione := lenticchie.ScalaPer(150)
	assert.InDelta(t, 13.5, porzione.Proteine, 0.0001)
	assert.InDelta(t, 24.75, porzione.Carboidrati, 0.0001)
	assert.InDelta(t, 172.5, porzione.Calorie, 0.0001)

	zero := lenticchie.ScalaPer(0)
	assert.Equal(t, Nutrienti{}, zero)
}

func TestRicalcolaTotali(t *testing.T) {
	g := GiornataAlimentare{
		Voci: []VoceAlimento{
			{Pasto: "pranzo", Nome: "Lenticchie rosse", Quantita: 150, Nutrienti: Nutrienti{Proteine: 13.5, Calorie: 172.5}},
			{Pasto: "cena", Nome: "Tofu", Quantita: 100, Nutrienti: Nutrienti{Proteine: 12, Calorie: 120}},
		},
	}

	g.RicalcolaTotali()
	assert.InDelta(t, 25.5, g.Totali.Proteine, 0.0001)
	assert.InDelta(t, 292.5, g.Totali.Calorie, 0.0001)

	// Idempotent: a second pass must not drift.
	g.RicalcolaTotali()
	assert.InDelta(t, 25.5, g.Totali.Proteine, 0.0001)

	// Removing every entry brings the totals back to zero.
	g.Voci = nil
	g.RicalcolaTotali()
	assert.Equal(t, Nutrienti{}, g.Totali)
}

func TestPastiMapSlotSemprePresenti(t *testing.T) {
	g := GiornataAlimentare{}
	pasti := g.PastiMap()

	require.Len(t, pasti, len(PastiValidi))
	for _, slot := range PastiValidi {
		voci, ok := pasti[slot]
		require.True(t, ok, "slot %s mancante", slot)
		assert.NotNil(t, voci)
		assert.Empty(t, voci)
	}
}

func TestPastiMapOrdinePerPosizione(t *testing.T) {
	g := GiornataAlimentare{
		Voci: []VoceAlimento{
			{Pasto: "pranzo", Posizione: 1, Nome: "Riso"},
			{Pasto: "pranzo", Posizione: 0, Nome: "Ceci"},
			{Pasto: "colazione", Posizione: 0, Nome: "Avena"},
		},
	}

	pasti := g.PastiMap()
	require.Len(t, pasti["pranzo"], 2)
	assert.Equal(t, "Ceci", pasti["pranzo"][0].Nome)
	assert.Equal(t, "Riso", pasti["pranzo"][1].Nome)
	assert.Equal(t, "Avena", pasti["colazione"][0].Nome)
}

func TestPastoValido(t *testing.T) {
	for _, slot := range PastiValidi {
		assert.True(t, PastoValido(slot))
	}
	assert.False(t, PastoValido("merenda"))
	assert.False(t, PastoValido(""))
}

func TestGiornataMarshalJSON(t *testing.T) {
	g := GiornataAlimentare{
		UserID: 7,
		Voci: []VoceAlimento{
			{Pasto: "pranzo", Nome: "Lenticchie rosse", Quantita: 150, Nutrienti: Nutrienti{Proteine: 13.5}},
		},
	}
	g.RicalcolaTotali()

	raw, err := json.Marshal(g)
	require.NoError(t, err)

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Contains(t, decoded, "pasti")
	assert.Contains(t, decoded, "integratori")
	assert.Contains(t, decoded, "totaliGiornalieri")

	var pasti map[string][]VoceAlimento
	require.NoError(t, json.Unmarshal(decoded["pasti"], &pasti))
	assert.Len(t, pasti, len(PastiValidi))
	assert.Len(t, pasti["pranzo"], 1)
	assert.Empty(t, pasti["cena"])
}
