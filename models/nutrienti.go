package models

import "math"

// Nutrienti is the tracked nutrient profile. On an Alimento the values are
// per 100 g of product; on a VoceAlimento and on the daily totals they are
// absolute amounts for the consumed quantity.
type Nutrienti struct {
	Proteine    float64 `json:"proteine"`
	Carboidrati float64 `json:"carboidrati"`
	Grassi      float64 `json:"grassi"`
	Fibre       float64 `json:"fibre"`
	Ferro       float64 `json:"ferro"`
	Calcio      float64 `json:"calcio"`
	VitB12      float64 `json:"vitB12"`
	VitB2       float64 `json:"vitB2"`
	VitD        float64 `json:"vitD"`
	Omega3      float64 `json:"omega3"`
	Iodio       float64 `json:"iodio"`
	Zinco       float64 `json:"zinco"`
	Calorie     float64 `json:"calorie"`
}

// ScalaPer converts a per-100g profile into the absolute profile for the
// given quantity in grams.
func (n Nutrienti) ScalaPer(grammi float64) Nutrienti {
	f := grammi / 100.0
	return Nutrienti{
		Proteine:    n.Proteine * f,
		Carboidrati: n.Carboidrati * f,
		Grassi:      n.Grassi * f,
		Fibre:       n.Fibre * f,
		Ferro:       n.Ferro * f,
		Calcio:      n.Calcio * f,
		VitB12:      n.VitB12 * f,
		VitB2:       n.VitB2 * f,
		VitD:        n.VitD * f,
		Omega3:      n.Omega3 * f,
		Iodio:       n.Iodio * f,
		Zinco:       n.Zinco * f,
		Calorie:     n.Calorie * f,
	}
}

// Somma accumulates another profile into this one. Accumulation stays in
// full floating point precision; rounding happens only at presentation time.
func (n *Nutrienti) Somma(o Nutrienti) {
	n.Proteine += o.Proteine
	n.Carboidrati += o.Carboidrati
	n.Grassi += o.Grassi
	n.Fibre += o.Fibre
	n.Ferro += o.Ferro
	n.Calcio += o.Calcio
	n.VitB12 += o.VitB12
	n.VitB2 += o.VitB2
	n.VitD += o.VitD
	n.Omega3 += o.Omega3
	n.Iodio += o.Iodio
	n.Zinco += o.Zinco
	n.Calorie += o.Calorie
}

// Arrotondata returns a copy rounded to two decimals, for responses.
func (n Nutrienti) Arrotondata() Nutrienti {
	r := func(v float64) float64 { return math.Round(v*100) / 100 }
	return Nutrienti{
		Proteine:    r(n.Proteine),
		Carboidrati: r(n.Carboidrati),
		Grassi:      r(n.Grassi),
		Fibre:       r(n.Fibre),
		Ferro:       r(n.Ferro),
		Calcio:      r(n.Calcio),
		VitB12:      r(n.VitB12),
		VitB2:       r(n.VitB2),
		VitD:        r(n.VitD),
		Omega3:      r(n.Omega3),
		Iodio:       r(n.Iodio),
		Zinco:       r(n.Zinco),
		Calorie:     r(n.Calorie),
	}
}
