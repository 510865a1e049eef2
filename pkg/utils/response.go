package utils

import (
	"github.com/gin-gonic/gin"
)

// RequestIDKey is the gin context key holding the current request ID.
const RequestIDKey = "request_id"

// ErrorBody is the JSON envelope for every failed API call.
type ErrorBody struct {
	Message   string `json:"message"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// ErrorResponse aborts the request with an ErrorBody. Successful API calls
// return their payload directly so the /search contract stays intact.
func ErrorResponse(c *gin.Context, code int, message string, err error) {
	body := ErrorBody{
		Message:   message,
		RequestID: c.GetString(RequestIDKey),
	}
	if err != nil {
		body.Error = err.Error()
	}

	c.AbortWithStatusJSON(code, body)
}
