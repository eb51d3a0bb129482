package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sim1zzo/vegan-nutrition-tracker/middlewares"
	"github.com/sim1zzo/vegan-nutrition-tracker/models"
	"github.com/sim1zzo/vegan-nutrition-tracker/services"
)

type GiornataController struct {
	svc     *services.GiornataService
	storico *services.StoricoService
}

func NewGiornataController(svc *services.GiornataService, storico *services.StoricoService) *GiornataController {
	return &GiornataController{svc: svc, storico: storico}
}

// List serves the caller's logs. `data` narrows to one calendar day (lazily
// created, empty but valid, never 404); `dataInizio`/`dataFine` select a
// range; `ultimiGiorni` and `finestra` are the charting windows.
func (ct *GiornataController) List(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	if data := c.Query("data"); data != "" {
		giorno, err := services.ParseData(data)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		giornata, err := ct.svc.GetOrCreateByDate(user.ID, giorno)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		rispondiGiornate(c, []models.GiornataAlimentare{*giornata})
		return
	}

	if inizio, fine := c.Query("dataInizio"), c.Query("dataFine"); inizio != "" && fine != "" {
		da, err := services.ParseData(inizio)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		a, err := services.ParseData(fine)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		giornate, err := ct.storico.Range(user.ID, da, a)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		rispondiGiornate(c, giornate)
		return
	}

	if giorni := c.Query("ultimiGiorni"); giorni != "" {
		n, _ := strconv.Atoi(giorni)
		giornate, err := ct.storico.UltimiGiorni(user.ID, n)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		rispondiGiornate(c, giornate)
		return
	}

	switch c.Query("finestra") {
	case "settimana":
		giornate, err := ct.storico.SettimanaCorrente(user.ID)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		rispondiGiornate(c, giornate)
		return
	case "mese":
		giornate, err := ct.storico.MeseCorrente(user.ID)
		if err != nil {
			rispondiErrore(c, err)
			return
		}
		rispondiGiornate(c, giornate)
		return
	}

	giornate, err := ct.svc.List(user.ID)
	if err != nil {
		rispondiErrore(c, err)
		return
	}
	rispondiGiornate(c, giornate)
}

func (ct *GiornataController) Create(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.GiornataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	giornata, err := ct.svc.Upsert(user.ID, input)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"giornata": giornata,
	})
}

func (ct *GiornataController) Update(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.GiornataInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	giornata, err := ct.svc.Update(user.ID, id, input)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"giornata": giornata,
	})
}

type aggiungiVoceInput struct {
	AlimentoID uint    `json:"alimentoId"`
	Quantita   float64 `json:"quantita"`
}

// AddVoce appends a catalog food to a meal slot; the server computes the
// nutrient snapshot from the per-100g profile.
func (ct *GiornataController) AddVoce(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input aggiungiVoceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	giornata, err := ct.svc.AddVoce(user.ID, id, c.Param("pasto"), input.AlimentoID, input.Quantita)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"giornata": giornata,
	})
}

func (ct *GiornataController) RemoveVoce(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	indice, err := strconv.Atoi(c.Param("indice"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Indice non valido"})
		return
	}

	giornata, err := ct.svc.RemoveVoce(user.ID, id, c.Param("pasto"), indice)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"giornata": giornata,
	})
}

// AddRicetta applies a saved recipe to a meal slot in one shot.
func (ct *GiornataController) AddRicetta(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	ricettaID, ok := parseID(c, "ricettaId")
	if !ok {
		return
	}

	giornata, err := ct.svc.AddRicetta(user.ID, id, ricettaID, c.Param("pasto"))
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"giornata": giornata,
	})
}

func rispondiGiornate(c *gin.Context, giornate []models.GiornataAlimentare) {
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(giornate),
		"giornate": giornate,
	})
}
