package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalcolaObiettiviSenzaProfiloCompleto(t *testing.T) {
	// Weight only: flat estimate peso * 22 * fattore.
	u := &User{Peso: 70, LivelloAttivita: "moderato"}
	u.CalcolaObiettivi()

	assert.InDelta(t, 2387, u.Obiettivi.Calorie, 0.5) // 70 * 22 * 1.55
	assert.InDelta(t, 63, u.Obiettivi.Proteine, 0.01) // 70 * 0.9
	assert.Equal(t, 30.0, u.Obiettivi.Fibre)
	assert.Equal(t, 1000.0, u.Obiettivi.Calcio)
}

func TestCalcolaObiettiviMifflin(t *testing.T) {
	u := &User{Peso: 70, Altezza: 175, Eta: 30, Sesso: "M", LivelloAttivita: "moderato"}
	u.CalcolaObiettivi()

	// BMR = 10*70 + 6.25*175 - 5*30 + 5 = 1648.75, * 1.55 = 2555.56
	assert.InDelta(t, 2556, u.Obiettivi.Calorie, 1)

	donna := &User{Peso: 70, Altezza: 175, Eta: 30, Sesso: "F", LivelloAttivita: "moderato"}
	donna.CalcolaObiettivi()
	assert.Less(t, donna.Obiettivi.Calorie, u.Obiettivi.Calorie)
}

func TestCalcolaObiettiviMonotonoInAttivita(t *testing.T) {
	livelli := []string{"sedentario", "leggero", "moderato", "intenso", "atleta"}

	precedente := 0.0
	for _, livello := range livelli {
		u := &User{Peso: 70, Altezza: 175, Eta: 30, Sesso: "M", LivelloAttivita: livello}
		u.CalcolaObiettivi()
		assert.Greater(t, u.Obiettivi.Calorie, precedente, "calorie devono crescere con %s", livello)
		precedente = u.Obiettivi.Calorie
	}
}

func TestCalcolaObiettiviLivelloSconosciuto(t *testing.T) {
	u := &User{Peso: 70, LivelloAttivita: "maratoneta"}
	u.CalcolaObiettivi()

	// Falls back to moderato.
	assert.InDelta(t, 2387, u.Obiettivi.Calorie, 0.5)
}
