package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Reply is the webhook response: a status code and a plain-text body.
// Only 200, 400 and 500 are produced.
type Reply struct {
	StatusCode int
	Body       string
}

// Empty is a 200 with no body.
func Empty() Reply {
	return Reply{StatusCode: http.StatusOK}
}

// BadRequest is a 400 carrying msg.
func BadRequest(msg string) Reply {
	return Reply{StatusCode: http.StatusBadRequest, Body: msg}
}

// Internal is a 500 carrying the error's description.
func Internal(err error) Reply {
	return Reply{StatusCode: http.StatusInternalServerError, Body: err.Error()}
}

// Write sends the reply on c.
func (r Reply) Write(c *gin.Context) {
	if r.Body == "" {
		c.Status(r.StatusCode)
		return
	}
	c.String(r.StatusCode, r.Body)
}
