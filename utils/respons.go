package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tomdewit/bartab-app/models"
)

type JSONResponse struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func RespondJSON(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, JSONResponse{
		Status:  code >= 200 && code < 300,
		Message: message,
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, err error) {
	c.JSON(code, JSONResponse{
		Status:  false,
		Message: err.Error(),
		Data:    nil,
	})
}

// RespondDomainError maps the domain error taxonomy onto HTTP statuses.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, models.ErrDuplicate), errors.Is(err, models.ErrConflict):
		RespondError(c, http.StatusConflict, err)
	case errors.Is(err, models.ErrInvalidArgument):
		RespondError(c, http.StatusBadRequest, err)
	case errors.Is(err, models.ErrInvalidState):
		RespondError(c, http.StatusConflict, err)
	default:
		RespondError(c, http.StatusInternalServerError, err)
	}
}
