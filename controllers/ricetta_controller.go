package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sim1zzo/vegan-nutrition-tracker/middlewares"
	"github.com/sim1zzo/vegan-nutrition-tracker/services"
)

type RicettaController struct {
	svc *services.RicettaService
}

func NewRicettaController(svc *services.RicettaService) *RicettaController {
	return &RicettaController{svc: svc}
}

func (ct *RicettaController) List(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	ricette, err := ct.svc.List(user.ID)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"ricette": ricette,
	})
}

type creaRicettaInput struct {
	Nome     string               `json:"nome"`
	Alimenti []services.VoceInput `json:"alimenti"`
}

func (ct *RicettaController) Create(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input creaRicettaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	ricette, err := ct.svc.Create(user.ID, input.Nome, input.Alimenti)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Ricetta salvata!",
		"ricette": ricette,
	})
}

func (ct *RicettaController) Delete(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	ricette, err := ct.svc.Delete(user.ID, id)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Ricetta eliminata",
		"ricette": ricette,
	})
}
