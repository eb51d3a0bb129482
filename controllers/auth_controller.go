package controllers

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sim1zzo/vegan-nutrition-tracker/middlewares"
	"github.com/sim1zzo/vegan-nutrition-tracker/services"
	"github.com/sim1zzo/vegan-nutrition-tracker/utils"
)

type AuthController struct {
	svc *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{svc: svc}
}

func (ct *AuthController) Register(c *gin.Context) {
	var input services.RegistrazioneInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	user, token, err := ct.svc.Register(input)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registrazione completata con successo",
		"user":    user,
		"token":   token,
	})
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (ct *AuthController) Login(c *gin.Context) {
	var input loginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	user, token, err := ct.svc.Login(input.Email, input.Password)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login effettuato con successo",
		"user":    user,
		"token":   token,
	})
}

func (ct *AuthController) GetProfilo(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	completo, err := ct.svc.GetProfile(user.ID)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	payload := gin.H{
		"success":                true,
		"user":                   completo,
		"alimentiPersonalizzati": completo.AlimentiPersonalizzati,
	}
	if bmi, err := utils.CalcolaBMI(completo.Altezza, completo.Peso); err == nil {
		payload["bmi"] = math.Round(bmi*10) / 10
		payload["categoriaBmi"] = utils.CategoriaBMI(bmi)
	}

	c.JSON(http.StatusOK, payload)
}

func (ct *AuthController) UpdateProfilo(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input services.ProfiloInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	aggiornato, err := ct.svc.UpdateProfile(user.ID, input)
	if err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profilo aggiornato con successo",
		"user":    aggiornato,
	})
}

type cambioPasswordInput struct {
	PasswordCorrente string `json:"passwordCorrente"`
	NuovaPassword    string `json:"nuovaPassword"`
}

func (ct *AuthController) ChangePassword(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input cambioPasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	if err := ct.svc.ChangePassword(user.ID, input.PasswordCorrente, input.NuovaPassword); err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Password aggiornata con successo",
	})
}

type eliminaAccountInput struct {
	Password string `json:"password"`
}

func (ct *AuthController) DeleteAccount(c *gin.Context) {
	user := middlewares.CurrentUser(c)

	var input eliminaAccountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		rispondiJSONNonValido(c)
		return
	}

	if err := ct.svc.DeleteAccount(user.ID, input.Password); err != nil {
		rispondiErrore(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Account eliminato con successo",
	})
}
