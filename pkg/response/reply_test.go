package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github-asana-bridge/pkg/response"
)

func TestReplyWrite(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tcs := map[string]struct {
		reply    response.Reply
		wantCode int
		wantBody string
	}{
		"empty":       {reply: response.Empty(), wantCode: http.StatusOK},
		"bad request": {reply: response.BadRequest("No request body"), wantCode: http.StatusBadRequest, wantBody: "No request body"},
		"internal":    {reply: response.Internal(errors.New("render failed")), wantCode: http.StatusInternalServerError, wantBody: "render failed"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			tc.reply.Write(c)

			if w.Code != tc.wantCode {
				t.Errorf("expected %d, got %d", tc.wantCode, w.Code)
			}
			if w.Body.String() != tc.wantBody {
				t.Errorf("expected body %q, got %q", tc.wantBody, w.Body.String())
			}
		})
	}
}
