package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func ridRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })
	return r
}

func TestRequestIDGenerated(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	ridRouter().ServeHTTP(w, req)

	rid := w.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("expected a uuid request id, got %q (%v)", rid, err)
	}
	if w.Body.String() != rid {
		t.Fatalf("context id %q does not match header %q", w.Body.String(), rid)
	}
}

func TestRequestIDHonorsValidInbound(t *testing.T) {
	inbound := uuid.NewString()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, inbound)
	ridRouter().ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != inbound {
		t.Fatalf("valid inbound id should be kept, got %q", got)
	}
}

func TestRequestIDReplacesGarbage(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "not-a-uuid\r\ninjected")
	ridRouter().ServeHTTP(w, req)

	rid := w.Header().Get(HeaderRequestID)
	if _, err := uuid.Parse(rid); err != nil {
		t.Fatalf("garbage inbound id must be replaced, got %q", rid)
	}
}
