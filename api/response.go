package api

import (
	"errors"
	"net/http"

	"foodgram-api/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

// ListEnvelope wraps paginated results; count is the size of the returned
// page, not the total table size.
type ListEnvelope struct {
	Count   int `json:"count"`
	Results any `json:"results"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func RespondNoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// respondServiceError maps a service error to its HTTP status. Anything that
// is not a service error is logged and reported as a 500.
func respondServiceError(c *gin.Context, err error) {
	status := service.StatusOf(err)
	if status == http.StatusInternalServerError {
		var svcErr *service.Error
		if errors.As(err, &svcErr) && svcErr.Inner != nil {
			log.Error().Err(svcErr.Inner).Str("path", c.Request.URL.Path).Msg("request failed")
		} else {
			log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("request failed")
		}
	}
	RespondError(c, status, http.StatusText(status), err)
}

func respondList[T any](c *gin.Context, results []T) {
	if results == nil {
		results = []T{}
	}
	RespondOK(c, ListEnvelope{Count: len(results), Results: results})
}
