package utils

import "errors"

// CalcolaBMI expects height in centimeters and weight in kilograms.
func CalcolaBMI(altezzaCm, pesoKg float64) (float64, error) {
	if altezzaCm <= 0 || pesoKg <= 0 {
		return 0, errors.New("altezza e peso devono essere positivi")
	}
	// Sanity checks to avoid garbage input
	if altezzaCm < 50 || altezzaCm > 250 || pesoKg < 10 || pesoKg > 400 {
		return 0, errors.New("altezza o peso fuori range plausibile")
	}

	h := altezzaCm / 100.0 // to meters
	return pesoKg / (h * h), nil
}

func CategoriaBMI(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "sottopeso"
	case bmi < 25.0:
		return "normopeso"
	case bmi < 30.0:
		return "sovrappeso"
	default:
		return "obesità"
	}
}
