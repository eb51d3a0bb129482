package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

// RitardoSalvataggio is the auto-save quiet window: rapid successive edits
// coalesce into one network write.
const RitardoSalvataggio = 1500 * time.Millisecond

// GiornataDraft is an editable working copy of one day's log. Every mutation
// recomputes the local totals and schedules a debounced save; the save is
// suppressed while the initial load is still in flight. Concurrent edits of
// the same day from two drafts are last-write-wins, like two browser tabs.
//
// The debounced save runs on a timer goroutine, so all access to the
// working copy goes through the mutex. A save sends a snapshot taken under
// the lock; its response is dropped when the draft was edited while the
// save was in flight, since that edit has already scheduled a fresh save.
type GiornataDraft struct {
	client      *Client
	salvataggio *debouncer
	onError     func(error)

	mu          sync.Mutex
	giornata    *Giornata
	revisione   uint64
	caricamento bool
}

// NuovaGiornataDraft loads (lazily creating) the log for a calendar day and
// returns a draft over it. onError receives async save failures; nil means
// they are dropped, as the UI banner would be elsewhere.
func (c *Client) NuovaGiornataDraft(ctx context.Context, data string, onError func(error)) (*GiornataDraft, error) {
	if onError == nil {
		onError = func(error) {}
	}

	d := &GiornataDraft{
		client:      c,
		onError:     onError,
		caricamento: true,
	}
	d.salvataggio = newDebouncer(RitardoSalvataggio, d.salva)

	g, err := c.GetGiornata(ctx, data)
	if err != nil {
		return nil, err
	}
	d.giornata = g
	d.caricamento = false
	return d, nil
}

// Giornata returns a copy of the current working state.
func (d *GiornataDraft) Giornata() *Giornata {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.giornata.clona()
}

// AggiungiAlimento appends an entry to a meal slot and schedules a save.
// The entry carries its absolute nutrient snapshot already (per-100g values
// scaled by the caller or taken from a recipe).
func (d *GiornataDraft) AggiungiAlimento(pasto string, voce models.VoceAlimento) error {
	if !models.PastoValido(pasto) {
		return fmt.Errorf("pasto non valido: %s", pasto)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.giornata.Pasti[pasto] = append(d.giornata.Pasti[pasto], voce)
	d.modificata()
	return nil
}

// AggiungiAlimentoDalCatalogo scales a catalog entry's per-100g profile to
// the consumed quantity and appends it.
func (d *GiornataDraft) AggiungiAlimentoDalCatalogo(pasto string, alimento models.Alimento, grammi float64) error {
	if grammi <= 0 {
		return fmt.Errorf("la quantità deve essere positiva")
	}
	return d.AggiungiAlimento(pasto, models.VoceAlimento{
		Nome:      alimento.Nome,
		Quantita:  grammi,
		Nutrienti: alimento.Nutrienti.ScalaPer(grammi),
	})
}

// AggiungiRicetta appends every entry of a recipe, in stored order, with a
// single totals recomputation at the end.
func (d *GiornataDraft) AggiungiRicetta(pasto string, ricetta models.Ricetta) error {
	if !models.PastoValido(pasto) {
		return fmt.Errorf("pasto non valido: %s", pasto)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range ricetta.Alimenti {
		d.giornata.Pasti[pasto] = append(d.giornata.Pasti[pasto], models.VoceAlimento{
			Nome:      a.Nome,
			Quantita:  a.Quantita,
			Nutrienti: a.Nutrienti,
		})
	}
	d.modificata()
	return nil
}

// RimuoviAlimento removes the entry at a position within a slot.
func (d *GiornataDraft) RimuoviAlimento(pasto string, indice int) error {
	if !models.PastoValido(pasto) {
		return fmt.Errorf("pasto non valido: %s", pasto)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	voci := d.giornata.Pasti[pasto]
	if indice < 0 || indice >= len(voci) {
		return fmt.Errorf("indice fuori dal pasto: %d", indice)
	}
	d.giornata.Pasti[pasto] = append(voci[:indice], voci[indice+1:]...)
	d.modificata()
	return nil
}

// AggiungiIntegratore records a supplement; totals are not touched because
// supplements carry a dosage note, not nutrients.
func (d *GiornataDraft) AggiungiIntegratore(pasto string, integratore models.Integratore) error {
	if !models.PastoValido(pasto) {
		return fmt.Errorf("pasto non valido: %s", pasto)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.giornata.Integratori[pasto] = append(d.giornata.Integratori[pasto], integratore)
	d.modificata()
	return nil
}

func (d *GiornataDraft) RimuoviIntegratore(pasto string, indice int) error {
	if !models.PastoValido(pasto) {
		return fmt.Errorf("pasto non valido: %s", pasto)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	integratori := d.giornata.Integratori[pasto]
	if indice < 0 || indice >= len(integratori) {
		return fmt.Errorf("indice fuori dal pasto: %d", indice)
	}
	d.giornata.Integratori[pasto] = append(integratori[:indice], integratori[indice+1:]...)
	d.modificata()
	return nil
}

// Totali returns the raw daily totals, rounded for display.
func (d *GiornataDraft) Totali() models.Nutrienti {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.giornata.TotaliGiornalieri.Arrotondata()
}

// ProteineEffettive returns the complementarity bonus and the effective
// protein figure for the day. Display only: the bonus never feeds back into
// the persisted totals.
func (d *GiornataDraft) ProteineEffettive() (bonus, effettive float64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return ProteineEffettive(d.giornata)
}

// Flush cancels any pending debounced save and saves immediately.
func (d *GiornataDraft) Flush(ctx context.Context) error {
	d.salvataggio.Stop()
	snapshot, revisione := d.istantanea()

	aggiornata, err := d.client.SalvaGiornata(ctx, snapshot)
	if err != nil {
		return err
	}
	d.applicaRisposta(aggiornata, revisione)
	return nil
}

// Close cancels any pending save without firing it, the teardown path.
func (d *GiornataDraft) Close() {
	d.salvataggio.Stop()
}

// modificata recomputes the totals, bumps the revision and schedules a
// save. Callers hold the lock.
func (d *GiornataDraft) modificata() {
	totali := models.Nutrienti{}
	for _, voci := range d.giornata.Pasti {
		for _, v := range voci {
			totali.Somma(v.Nutrienti)
		}
	}
	d.giornata.TotaliGiornalieri = totali
	d.revisione++

	if !d.caricamento {
		d.salvataggio.Schedule()
	}
}

// istantanea takes a deep copy of the working state for a network send, so
// the owner can keep editing while the save is in flight.
func (d *GiornataDraft) istantanea() (*Giornata, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.giornata.clona(), d.revisione
}

// applicaRisposta swaps the server's authoritative copy in, unless the
// draft moved on while the save was in flight: that edit has already
// scheduled the next save, which supersedes this response.
func (d *GiornataDraft) applicaRisposta(aggiornata *Giornata, revisione uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.revisione == revisione {
		d.giornata = aggiornata
	}
}

func (d *GiornataDraft) salva() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, revisione := d.istantanea()
	aggiornata, err := d.client.SalvaGiornata(ctx, snapshot)
	if err != nil {
		d.onError(err)
		return
	}
	// Two drafts of the same day still race server-side; documented
	// last-write-wins, no retry.
	d.applicaRisposta(aggiornata, revisione)
}

func (g *Giornata) clona() *Giornata {
	out := &Giornata{
		ID:                g.ID,
		Data:              g.Data,
		TotaliGiornalieri: g.TotaliGiornalieri,
		Pasti:             make(map[string][]models.VoceAlimento, len(g.Pasti)),
		Integratori:       make(map[string][]models.Integratore, len(g.Integratori)),
	}
	for pasto, voci := range g.Pasti {
		out.Pasti[pasto] = append([]models.VoceAlimento(nil), voci...)
	}
	for pasto, integratori := range g.Integratori {
		out.Integratori[pasto] = append([]models.Integratore(nil), integratori...)
	}
	return out
}
