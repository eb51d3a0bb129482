package client

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"regexp"

	"github.com/sim1zzo/vegan-nutrition-tracker/models"
)

// Name keywords identifying the two protein families of the
// complementarity heuristic.
var (
	legumiRe  = regexp.MustCompile(`(?i)lenticchie|ceci|fagioli|piselli|lupini|soia|edamame|tempeh|tofu`)
	cerealiRe = regexp.MustCompile(`(?i)pasta|riso|quinoa|farro|orzo|cous|miglio|grano|polenta|avena|pane`)
)

// BonusComplementarita credits extra "effective protein" when legume and
// grain sources co-occur anywhere in the day: min of the two family totals,
// times 0.23. Zero when either family is absent.
func BonusComplementarita(voci []models.VoceAlimento) float64 {
	var legumi, cereali float64
	for _, v := range voci {
		if legumiRe.MatchString(v.Nome) {
			legumi += v.Proteine
		}
		if cerealiRe.MatchString(v.Nome) {
			cereali += v.Proteine
		}
	}
	if legumi > 0 && cereali > 0 {
		return math.Min(legumi, cereali) * 0.23
	}
	return 0
}

// ProteineEffettive returns the day's bonus and raw+bonus protein. The bonus
// is a display heuristic and is never persisted.
func ProteineEffettive(g *Giornata) (bonus, effettive float64) {
	var tutte []models.VoceAlimento
	for _, voci := range g.Pasti {
		tutte = append(tutte, voci...)
	}
	bonus = BonusComplementarita(tutte)
	return bonus, g.TotaliGiornalieri.Proteine + bonus
}

// Storico is a fetched range of daily logs, newest first, with the read-only
// projections the charts are built from.
type Storico []Giornata

func (c *Client) UltimiGiorni(ctx context.Context, n int) (Storico, error) {
	return c.storico(ctx, url.Values{"ultimiGiorni": {fmt.Sprint(n)}})
}

func (c *Client) SettimanaCorrente(ctx context.Context) (Storico, error) {
	return c.storico(ctx, url.Values{"finestra": {"settimana"}})
}

func (c *Client) MeseCorrente(ctx context.Context) (Storico, error) {
	return c.storico(ctx, url.Values{"finestra": {"mese"}})
}

func (c *Client) storico(ctx context.Context, query url.Values) (Storico, error) {
	env, err := c.do(ctx, "GET", "/giornate?"+query.Encode(), nil)
	if err != nil {
		return nil, err
	}
	return Storico(env.Giornate), nil
}

// Media averages a nutrient over the range; 0 on an empty range.
func (s Storico) Media(nutriente string) float64 {
	if len(s) == 0 {
		return 0
	}
	var somma float64
	for _, g := range s {
		somma += valoreNutriente(g.TotaliGiornalieri, nutriente)
	}
	return somma / float64(len(s))
}

// PuntoSerie is one chart point.
type PuntoSerie struct {
	Data   string  `json:"data"`
	Valore float64 `json:"valore"`
}

// Serie projects the range into chart points, one per day.
func (s Storico) Serie(nutriente string) []PuntoSerie {
	punti := make([]PuntoSerie, 0, len(s))
	for _, g := range s {
		punti = append(punti, PuntoSerie{
			Data:   g.Data,
			Valore: valoreNutriente(g.TotaliGiornalieri, nutriente),
		})
	}
	return punti
}

// MinMax returns the extremes over the range; ok is false on an empty range.
func (s Storico) MinMax(nutriente string) (min, max float64, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	min = math.Inf(1)
	max = math.Inf(-1)
	for _, g := range s {
		v := valoreNutriente(g.TotaliGiornalieri, nutriente)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max, true
}

func valoreNutriente(n models.Nutrienti, nome string) float64 {
	switch nome {
	case "proteine":
		return n.Proteine
	case "carboidrati":
		return n.Carboidrati
	case "grassi":
		return n.Grassi
	case "fibre":
		return n.Fibre
	case "ferro":
		return n.Ferro
	case "calcio":
		return n.Calcio
	case "vitB12":
		return n.VitB12
	case "vitB2":
		return n.VitB2
	case "vitD":
		return n.VitD
	case "omega3":
		return n.Omega3
	case "iodio":
		return n.Iodio
	case "zinco":
		return n.Zinco
	case "calorie":
		return n.Calorie
	default:
		return 0
	}
}
