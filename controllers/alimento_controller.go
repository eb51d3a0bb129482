package controllers

import (
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sim1zzo/vegan-nutrition-tracker/middlewares"
	"github.com/sim1zzo/vegan-nutrition-tracker/services"
)

type AlimentoController struct {
	svc *services.AlimentoService
}

func NewAlimentoController(svc *services.AlimentoService) *AlimentoController {
	return &AlimentoController{svc: svc}
}

// List serves the catalog. Public callers see public-and-verified entries;
// an authenticated caller asking miei=true sees their own foods merged in.
func (ct *AlimentoController) List(c *gin.Context) {
	filter := services.AlimentiFilter{
		Categoria:    c.Query("categoria"),
		Search:       c.Query("search"),
		AltoProteico: c.Query("altoProteico") == "true",
		Ipocalorico:  c.Query("ipocalorico") == "true",
		IncludiMiei:  c.Query("miei") == "true",
	}
	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "1000"))
	// Garbage or zero values would otherwise skew totalPages below.
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 1000
	}

	var callerID *uint
	if user := middlewares.CurrentUser(c); user != nil {
		callerID = &user.ID
	}

	alimenti, count, err := ct.svc.List(filter, callerID)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"count":       count,
		"totalPages":  int(math.Ceil(float64(count) / float64(filter.Limit))),
		"currentPage": filter.Page,
		"alimenti":    alimenti,
	})
}

func (ct *AlimentoController) ByCategoria(c *gin.Context) {
	alimenti, err := ct.svc.GetByCategoria(c.Param("categoria"))
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(alimenti),
		"alimenti": alimenti,
	})
}

func (ct *AlimentoController) Miei(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	alimenti, err := ct.svc.Miei(user.ID)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"count":    len(alimenti),
		"alimenti": alimenti,
	})
}

func (ct *AlimentoController) Create(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.AlimentoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	alimento, err := ct.svc.Create(user.ID, input)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Alimento creato con successo",
		"alimento": alimento,
	})
}

func (ct *AlimentoController) Update(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var patch services.AlimentoPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	alimento, err := ct.svc.Update(user.ID, id, patch)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Alimento aggiornato con successo",
		"alimento": alimento,
	})
}

func (ct *AlimentoController) Delete(c *gin.Context) {
	user := middlewares.CurrentUser(c)
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := ct.svc.Delete(user.ID, id); err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Alimento eliminato con successo",
	})
}

func (ct *AlimentoController) Verifica(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	alimento, err := ct.svc.Verifica(id)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Alimento verificato con successo",
		"alimento": alimento,
	})
}
