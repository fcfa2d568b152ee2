package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"roofing_crm/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func validClaims(role entities.Role) Claims {
	return Claims{
		UserID: "u-1",
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(testSecret))
	r.GET("/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/v1/whoami", func(c *gin.Context) {
		a, ok := ActorFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": a.ID, "role": a.Role})
	})
	return r
}

type authCase struct {
	name   string
	header string
	path   string
	want   int
}

func TestAuth(t *testing.T) {
	cases := []authCase{
		{name: "public path", path: "/v1/ping", want: http.StatusOK},
		{name: "missing header", path: "/v1/whoami", want: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/v1/whoami", header: "Basic abc", want: http.StatusUnauthorized},
		{name: "garbage token", path: "/v1/whoami", header: "Bearer abc", want: http.StatusUnauthorized},
		{name: "valid admin", path: "/v1/whoami", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, validClaims(entities.RoleAdmin)), want: http.StatusOK},
		{name: "wrong secret", path: "/v1/whoami", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), validClaims(entities.RoleRep)), want: http.StatusUnauthorized},
		{name: "unknown role", path: "/v1/whoami", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, validClaims("owner")), want: http.StatusUnauthorized},
	}

	expired := validClaims(entities.RoleRep)
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
	cases = append(cases, authCase{name: "expired", path: "/v1/whoami", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, expired), want: http.StatusUnauthorized})

	noExp := validClaims(entities.RoleRep)
	noExp.ExpiresAt = nil
	cases = append(cases, authCase{name: "no expiry", path: "/v1/whoami", header: "Bearer " + signToken(t, jwt.SigningMethodHS256, testSecret, noExp), want: http.StatusUnauthorized})

	r := newAuthRouter()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d body=%s", tc.want, w.Code, w.Body.String())
			}
		})
	}
}
