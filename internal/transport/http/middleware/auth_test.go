package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/CoreDX1/File-Explorer-2/internal/infra/security"
)

func newAuthTokens(t *testing.T) *security.TokenService {
	t.Helper()
	tokens, err := security.NewTokenService(
		"0123456789abcdef0123456789abcdef", "filex", "filex-clients", time.Hour,
	)
	if err != nil {
		t.Fatalf("failed to build token service: %v", err)
	}
	return tokens
}

func newProtectedRouter(tokens *security.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/me", RequireAuth(tokens), func(c *gin.Context) {
		id, ok := AuthenticatedUserID(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "email": c.GetString(UserEmailKey)})
	})
	return router
}

func TestRequireAuthMissingHeader(t *testing.T) {
	router := newProtectedRouter(newAuthTokens(t))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/me", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireAuthRejectsNonBearerScheme(t *testing.T) {
	router := newProtectedRouter(newAuthTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireAuthRejectsInvalidToken(t *testing.T) {
	router := newProtectedRouter(newAuthTokens(t))

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	tokens := newAuthTokens(t)
	router := newProtectedRouter(tokens)

	token, err := tokens.Generate(7, "alice@example.com", "user")
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"id":7`) || !strings.Contains(body, "alice@example.com") {
		t.Fatalf("unexpected body: %s", body)
	}
}
