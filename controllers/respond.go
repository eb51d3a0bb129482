package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sim1zzo/vegan-nutrition-tracker/services"
)

// rispondiErrore maps the service error taxonomy onto HTTP statuses and the
// standard {success, message} envelope. Unexpected errors never leak their
// internals to the client.
func rispondiErrore(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrValidation), errors.Is(err, services.ErrDuplicate):
		status = http.StatusBadRequest
	case errors.Is(err, services.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "Errore interno del server"
	}

	c.JSON(status, gin.H{"success": false, "message": message})
}

func rispondiJSONNonValido(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Corpo della richiesta non valido"})
}

func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Identificativo non valido"})
		return 0, false
	}
	return uint(id), true
}
