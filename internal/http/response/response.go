package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/abdos10/think-like-genius/internal/platform/apierr"
)

// ErrorBody is the error payload of every endpoint.
type ErrorBody struct {
	Message string `json:"message"`
}

const internalMessage = "Internal server error"

// RespondError writes {"message": ...} with the status carried by err.
// Errors without an *apierr.Error and a 5xx status never leak their text.
func RespondError(c *gin.Context, err error) {
	status := apierr.StatusOf(err)
	msg := internalMessage

	var ae *apierr.Error
	switch {
	case errors.As(err, &ae):
		msg = ae.Message()
	case err != nil && status < http.StatusInternalServerError:
		msg = err.Error()
	}
	if err != nil {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(status, ErrorBody{Message: msg})
}

// RespondBadRequest is shorthand for bind and query parse failures.
func RespondBadRequest(c *gin.Context, msg string) {
	RespondError(c, apierr.BadRequest(msg))
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}
