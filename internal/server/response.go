package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// envelope is the common response contract.
type envelope struct {
	Data  any       `json:"data,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

func respond(c *gin.Context, status int, data any) {
	c.Header("Cache-Control", "no-store")
	c.JSON(status, envelope{Data: data})
}

func respondError(c *gin.Context, err error) {
	apiErr := fromError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.Header("Cache-Control", "no-store")
	c.AbortWithStatusJSON(apiErr.Status, envelope{Error: apiErr})
}
