package client

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

func TestStoricoCSV(t *testing.T) {
	s := Storico{
		{
			Data: "2024-03-15",
			TotaliGiornalieri: models.Nutrienti{
				Proteine: 63.25, Carboidrati: 280.4, Grassi: 55.07,
				Calorie: 2190.6, Ferro: 14.5, Calcio: 987.3,
				VitB12: 2.8, Omega3: 1.62,
			},
		},
		{
			Data: "2024-03-14",
			TotaliGiornalieri: models.Nutrienti{
				Proteine: 58, Calorie: 1980, Calcio: 1040,
			},
		},
	}

	righe := strings.Split(strings.TrimRight(s.CSV(), "\n"), "\n")
	require.Len(t, righe, 3)

	assert.Equal(t,
		"Data,Proteine (g),Carboidrati (g),Grassi (g),Calorie (kcal),Ferro (mg),Calcio (mg),B12 (µg),Omega-3 (g)",
		righe[0])
	assert.Equal(t, "15/03/2024,63.2,280.4,55.1,2191,14.5,987,2.8,1.6", righe[1])
	assert.Equal(t, "14/03/2024,58.0,0.0,0.0,1980,0.0,1040,0.0,0.0", righe[2])
}

func TestStoricoCSVVuoto(t *testing.T) {
	csv := Storico{}.CSV()
	righe := strings.Split(strings.TrimRight(csv, "\n"), "\n")
	require.Len(t, righe, 1)
	assert.True(t, strings.HasPrefix(righe[0], "Data,"))
}

func TestStoricoJSON(t *testing.T) {
	s := Storico{
		{Data: "2024-03-15", TotaliGiornalieri: models.Nutrienti{Proteine: 63}},
	}

	raw, err := s.JSON()
	require.NoError(t, err)

	var decoded []Giornata
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "2024-03-15", decoded[0].Data)
	assert.Equal(t, 63.0, decoded[0].TotaliGiornalieri.Proteine)
}

func TestNomeFileExport(t *testing.T) {
	nome := NomeFileExport("nutrition-tracker-data", "csv")
	assert.True(t, strings.HasPrefix(nome, "nutrition-tracker-data-"))
	assert.True(t, strings.HasSuffix(nome, ".csv"))
}
