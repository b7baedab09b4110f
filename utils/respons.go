package utils

import (
	"github.com/gin-gonic/gin"
)

// MessageResponse is the body of every error and of plain acknowledgements.
// The frontend reads the "mensaje" key.
type MessageResponse struct {
	Message string `json:"mensaje"`
	Detail  string `json:"detalle,omitempty"`
}

// RespondJSON writes payload as-is.
func RespondJSON(c *gin.Context, code int, payload interface{}) {
	c.JSON(code, payload)
}

// RespondMessage writes {"mensaje": message}.
func RespondMessage(c *gin.Context, code int, message string) {
	c.JSON(code, MessageResponse{Message: message})
}

// RespondError writes a user-facing message and logs the underlying error.
func RespondError(c *gin.Context, code int, message string, err error) {
	if err != nil {
		entry := ErrorLogger.WithField("path", c.Request.URL.Path).WithField("status", code)
		if code >= 500 {
			entry.Errorf("%s: %v", message, err)
		} else {
			entry.Warnf("%s: %v", message, err)
		}
	}
	c.AbortWithStatusJSON(code, MessageResponse{Message: message})
}

// RespondInvalid is RespondError for client mistakes worth explaining: the
// error text goes out in "detalle".
func RespondInvalid(c *gin.Context, code int, message string, err error) {
	resp := MessageResponse{Message: message}
	if err != nil {
		resp.Detail = err.Error()
		ErrorLogger.WithField("path", c.Request.URL.Path).WithField("status", code).Warnf("%s: %v", message, err)
	}
	c.AbortWithStatusJSON(code, resp)
}
