package middleware

import (
	"net/http"
	"net/http/httptest"
	"questionnaire_backend/internal/model"
	"questionnaire_backend/internal/util"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const secret = "middleware-test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func token(t *testing.T, subject string, role model.Role) string {
	t.Helper()
	tok, err := util.GenerateJWT(subject, role, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}
	return tok
}

func newRouter() *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(secret))
	r.GET("/any", func(c *gin.Context) {
		c.String(http.StatusOK, util.GetUserFromContext(c).Subject)
	})
	r.GET("/authors", RoleMiddleware(model.RoleAuthor), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter()

	cases := []struct {
		name   string
		header string
		query  string
		want   int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"bad token", "Bearer nope", "", http.StatusUnauthorized},
		{"bearer header", "Bearer " + token(t, "ada", model.RoleRespondent), "", http.StatusOK},
		{"query token", "", token(t, "ada", model.RoleRespondent), http.StatusOK},
		{"unknown role", "Bearer " + token(t, "ada", "guest"), "", http.StatusUnauthorized},
	}
	for _, c := range cases {
		target := "/any"
		if c.query != "" {
			target += "?token=" + c.query
		}
		req := httptest.NewRequest(http.MethodGet, target, nil)
		if c.header != "" {
			req.Header.Set("Authorization", c.header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != c.want {
			t.Errorf("%s: status=%d, want %d", c.name, w.Code, c.want)
		}
	}
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter()

	cases := []struct {
		role model.Role
		want int
	}{
		{model.RoleRespondent, http.StatusForbidden},
		{model.RoleAuthor, http.StatusOK},
		{model.RoleAdmin, http.StatusOK},
	}
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/authors", nil)
		req.Header.Set("Authorization", "Bearer "+token(t, "u", c.role))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != c.want {
			t.Errorf("%s: status=%d, want %d", c.role, w.Code, c.want)
		}
	}
}
