package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

func TestParseData(t *testing.T) {
	giorno, err := ParseData("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2024, giorno.Year())
	assert.Equal(t, time.March, giorno.Month())
	assert.Equal(t, 15, giorno.Day())

	_, err = ParseData("15/03/2024")
	assert.ErrorIs(t, err, ErrValidation)
	_, err = ParseData("")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestInizioGiornata(t *testing.T) {
	mezzogiorno := time.Date(2024, 3, 15, 12, 34, 56, 789, time.Local)
	inizio := InizioGiornata(mezzogiorno)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.Local), inizio)
}

func TestLunediCorrente(t *testing.T) {
	// 2024-03-15 is a Friday; its week starts Monday the 11th.
	venerdi := time.Date(2024, 3, 15, 18, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), LunediCorrente(venerdi))

	// Sunday belongs to the week that started the previous Monday.
	domenica := time.Date(2024, 3, 17, 9, 0, 0, 0, time.Local)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local), LunediCorrente(domenica))

	lunedi := time.Date(2024, 3, 11, 0, 0, 0, 0, time.Local)
	assert.Equal(t, lunedi, LunediCorrente(lunedi))
}

func TestGetOrCreateByDate(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")

	giorno := mustParse(t, "2024-03-15")
	giornata, err := svc.GetOrCreateByDate(user.ID, giorno)
	require.NoError(t, err)
	require.NotZero(t, giornata.ID)

	// An untouched day is a valid empty log with every slot present.
	pasti := giornata.PastiMap()
	require.Len(t, pasti, len(models.PastiValidi))
	for _, slot := range models.PastiValidi {
		assert.Empty(t, pasti[slot])
	}
	assert.Equal(t, models.Nutrienti{}, giornata.Totali)

	// Same day, any time of day: same row.
	stessa, err := svc.GetOrCreateByDate(user.ID, giorno.Add(18*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, giornata.ID, stessa.ID)

	// Different user, same day: a different row.
	altro := creaUtente(t, db, "altro@example.com")
	altra, err := svc.GetOrCreateByDate(altro.ID, giorno)
	require.NoError(t, err)
	assert.NotEqual(t, giornata.ID, altra.ID)
}

func TestAddVoceScalaNutrienti(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")
	lenticchie := creaAlimentoPubblico(t, db, "Lenticchie rosse", "legumi",
		models.Nutrienti{Proteine: 9, Carboidrati: 20, Calorie: 116})

	giornata, err := svc.GetOrCreateByDate(user.ID, mustParse(t, "2024-03-15"))
	require.NoError(t, err)

	aggiornata, err := svc.AddVoce(user.ID, giornata.ID, "pranzo", lenticchie.ID, 150)
	require.NoError(t, err)

	voci := aggiornata.PastiMap()["pranzo"]
	require.Len(t, voci, 1)
	assert.Equal(t, "Lenticchie rosse", voci[0].Nome)
	assert.Equal(t, 150.0, voci[0].Quantita)
	assert.InDelta(t, 13.5, voci[0].Proteine, 0.0001)
	assert.InDelta(t, 30, voci[0].Carboidrati, 0.0001)

	assert.InDelta(t, 13.5, aggiornata.Totali.Proteine, 0.0001)
	assert.InDelta(t, 174, aggiornata.Totali.Calorie, 0.0001)
}

func TestAddVoceValidazione(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")
	lenticchie := creaAlimentoPubblico(t, db, "Lenticchie rosse", "legumi", models.Nutrienti{Proteine: 9})

	giornata, err := svc.GetOrCreateByDate(user.ID, mustParse(t, "2024-03-15"))
	require.NoError(t, err)

	_, err = svc.AddVoce(user.ID, giornata.ID, "merenda", lenticchie.ID, 100)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddVoce(user.ID, giornata.ID, "pranzo", lenticchie.ID, 0)
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.AddVoce(user.ID, giornata.ID, "pranzo", 99999, 100)
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user's private food is invisible here.
	altro := creaUtente(t, db, "altro@example.com")
	privato, err := NewAlimentoService(db).Create(altro.ID, AlimentoInput{Nome: "Mix segreto", Categoria: "altro"})
	require.NoError(t, err)
	_, err = svc.AddVoce(user.ID, giornata.ID, "pranzo", privato.ID, 100)
	assert.ErrorIs(t, err, ErrNotFound)

	// Someone else's day is off limits.
	_, err = svc.AddVoce(altro.ID, giornata.ID, "pranzo", lenticchie.ID, 100)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestRemoveVoce(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")
	lenticchie := creaAlimentoPubblico(t, db, "Lenticchie rosse", "legumi", models.Nutrienti{Proteine: 9, Calorie: 116})
	pasta := creaAlimentoPubblico(t, db, "Pasta integrale", "cereali", models.Nutrienti{Proteine: 4.5, Calorie: 131})

	giornata, err := svc.GetOrCreateByDate(user.ID, mustParse(t, "2024-03-15"))
	require.NoError(t, err)
	_, err = svc.AddVoce(user.ID, giornata.ID, "pranzo", lenticchie.ID, 100)
	require.NoError(t, err)
	_, err = svc.AddVoce(user.ID, giornata.ID, "pranzo", pasta.ID, 80)
	require.NoError(t, err)

	aggiornata, err := svc.RemoveVoce(user.ID, giornata.ID, "pranzo", 0)
	require.NoError(t, err)

	// The survivor moved up to position 0, totals follow.
	voci := aggiornata.PastiMap()["pranzo"]
	require.Len(t, voci, 1)
	assert.Equal(t, "Pasta integrale", voci[0].Nome)
	assert.Equal(t, 0, voci[0].Posizione)
	assert.InDelta(t, 3.6, aggiornata.Totali.Proteine, 0.0001)

	// Removing the last entry brings the totals back to zero.
	aggiornata, err = svc.RemoveVoce(user.ID, giornata.ID, "pranzo", 0)
	require.NoError(t, err)
	assert.Empty(t, aggiornata.PastiMap()["pranzo"])
	assert.Equal(t, models.Nutrienti{}, aggiornata.Totali)

	_, err = svc.RemoveVoce(user.ID, giornata.ID, "pranzo", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpsertSostituisceContenuto(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")

	prima, err := svc.Upsert(user.ID, GiornataInput{
		Data: "2024-03-15",
		Pasti: map[string][]VoceInput{
			"colazione": {{Nome: "Fiocchi di avena", Quantita: 40, Nutrienti: models.Nutrienti{Proteine: 5.4}}},
		},
		Integratori: map[string][]IntegratoreInput{
			"colazione": {{Nome: "Vitamina B12", Dosaggio: "1000 mcg"}},
		},
	})
	require.NoError(t, err)
	assert.InDelta(t, 5.4, prima.Totali.Proteine, 0.0001)
	require.Len(t, prima.IntegratoriMap()["colazione"], 1)

	// Same day again: same row, content replaced wholesale.
	seconda, err := svc.Upsert(user.ID, GiornataInput{
		Data: "2024-03-15",
		Pasti: map[string][]VoceInput{
			"cena": {{Nome: "Tofu al naturale", Quantita: 100, Nutrienti: models.Nutrienti{Proteine: 12}}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, prima.ID, seconda.ID)
	assert.Empty(t, seconda.PastiMap()["colazione"])
	require.Len(t, seconda.PastiMap()["cena"], 1)
	assert.InDelta(t, 12, seconda.Totali.Proteine, 0.0001)
	assert.Empty(t, seconda.IntegratoriMap()["colazione"])

	_, err = svc.Upsert(user.ID, GiornataInput{})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = svc.Upsert(user.ID, GiornataInput{
		Data:  "2024-03-16",
		Pasti: map[string][]VoceInput{"merenda": {}},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateGiornata(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")
	altro := creaUtente(t, db, "altro@example.com")

	giornata, err := svc.GetOrCreateByDate(user.ID, mustParse(t, "2024-03-15"))
	require.NoError(t, err)

	input := GiornataInput{
		Pasti: map[string][]VoceInput{
			"pranzo": {{Nome: "Ceci", Quantita: 80, Nutrienti: models.Nutrienti{Proteine: 7.1}}},
		},
	}
	aggiornata, err := svc.Update(user.ID, giornata.ID, input)
	require.NoError(t, err)
	assert.InDelta(t, 7.1, aggiornata.Totali.Proteine, 0.0001)

	_, err = svc.Update(altro.ID, giornata.ID, input)
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = svc.Update(user.ID, 99999, input)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddRicetta(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")

	_, err := NewRicettaService(db).Create(user.ID, "Pasta e ceci", []VoceInput{
		{Nome: "Pasta integrale", Quantita: 80, Nutrienti: models.Nutrienti{Proteine: 3.6, Calorie: 104.8}},
		{Nome: "Ceci", Quantita: 100, Nutrienti: models.Nutrienti{Proteine: 8.9, Calorie: 164}},
	})
	require.NoError(t, err)
	ricette, err := NewRicettaService(db).List(user.ID)
	require.NoError(t, err)
	require.Len(t, ricette, 1)

	giornata, err := svc.GetOrCreateByDate(user.ID, mustParse(t, "2024-03-15"))
	require.NoError(t, err)

	aggiornata, err := svc.AddRicetta(user.ID, giornata.ID, ricette[0].ID, "pranzo")
	require.NoError(t, err)

	voci := aggiornata.PastiMap()["pranzo"]
	require.Len(t, voci, 2)
	assert.Equal(t, "Pasta integrale", voci[0].Nome)
	assert.Equal(t, "Ceci", voci[1].Nome)
	assert.InDelta(t, 12.5, aggiornata.Totali.Proteine, 0.0001)
	assert.InDelta(t, 268.8, aggiornata.Totali.Calorie, 0.0001)

	_, err = svc.AddRicetta(user.ID, giornata.ID, 99999, "pranzo")
	assert.ErrorIs(t, err, ErrNotFound)

	// Another user's recipe is not addressable.
	altro := creaUtente(t, db, "altro@example.com")
	giornataAltro, err := svc.GetOrCreateByDate(altro.ID, mustParse(t, "2024-03-15"))
	require.NoError(t, err)
	_, err = svc.AddRicetta(altro.ID, giornataAltro.ID, ricette[0].ID, "pranzo")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListRange(t *testing.T) {
	db := setupDB(t)
	svc := NewGiornataService(db)
	user := creaUtente(t, db, "io@example.com")

	for _, data := range []string{"2024-03-11", "2024-03-13", "2024-03-15"} {
		_, err := svc.GetOrCreateByDate(user.ID, mustParse(t, data))
		require.NoError(t, err)
	}

	// Inclusive on both ends, newest first.
	giornate, err := svc.ListRange(user.ID, mustParse(t, "2024-03-11"), mustParse(t, "2024-03-13"))
	require.NoError(t, err)
	require.Len(t, giornate, 2)
	assert.Equal(t, "2024-03-13", giornate[0].Data.Format("2006-01-02"))
	assert.Equal(t, "2024-03-11", giornate[1].Data.Format("2006-01-02"))

	// Empty range: empty list, not an error.
	giornate, err = svc.ListRange(user.ID, mustParse(t, "2024-04-01"), mustParse(t, "2024-04-07"))
	require.NoError(t, err)
	assert.Empty(t, giornate)
}
