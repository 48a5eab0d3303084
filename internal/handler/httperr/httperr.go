// Package httperr shapes every error the booking API returns: one
// stable envelope so booking-page and dashboard clients never see raw
// storage or validation errors.
package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the wire form of a failed request. Status rides along
// for the error middleware but is never serialized; Detail carries
// machine-readable hints such as the retryable flag on slot conflicts.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError responds with the public envelope and records the
// original error on the gin context for the logging middleware.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}
