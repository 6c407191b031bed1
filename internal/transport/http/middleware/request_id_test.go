package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newRequestIDRouter(capture *string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/", func(c *gin.Context) {
		*capture = requestIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})
	return router
}

func TestRequestIDHonorsValidHeader(t *testing.T) {
	var fromCtx string
	router := newRequestIDRouter(&fromCtx)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != id {
		t.Fatalf("response header = %q, want %q", got, id)
	}
	if fromCtx != id {
		t.Fatalf("context id = %q, want %q", fromCtx, id)
	}
}

func TestRequestIDReplacesNonUUIDHeader(t *testing.T) {
	var fromCtx string
	router := newRequestIDRouter(&fromCtx)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>alert(1)</script>")

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	got := rr.Header().Get("X-Request-ID")
	if _, err := uuid.Parse(got); err != nil {
		t.Fatalf("expected a generated UUID, got %q", got)
	}
	if fromCtx != got {
		t.Fatalf("context id %q does not match header %q", fromCtx, got)
	}
}

func TestRequestIDGeneratesWhenMissing(t *testing.T) {
	var fromCtx string
	router := newRequestIDRouter(&fromCtx)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if _, err := uuid.Parse(rr.Header().Get("X-Request-ID")); err != nil {
		t.Fatalf("expected a generated UUID, got %q", rr.Header().Get("X-Request-ID"))
	}
}
