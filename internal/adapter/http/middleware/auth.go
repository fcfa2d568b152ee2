package middleware

import (
	"net/http"
	"strings"
	"time"

	"roofing_crm/internal/domain/entities"
	"roofing_crm/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const actorKey = "actor"

// leeway tolerates clock drift between the token issuer and this service.
const leeway = 2 * time.Minute

// Claims is the access token payload. Tokens are issued by the identity
// service; this service only verifies them.
type Claims struct {
	UserID string        `json:"user_id"`
	Role   entities.Role `json:"role"`
	jwt.RegisteredClaims
}

var errUnauthorized = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing or invalid Authorization header", http.StatusUnauthorized)
var errInvalidToken = pkg.NewDomainErrorSimple("INVALID_TOKEN", "Invalid or expired token", http.StatusUnauthorized)

func isPublicPath(path string) bool {
	switch path {
	case "/v1/ping", "/metrics":
		return true
	}
	return strings.HasPrefix(path, "/swagger")
}

// Auth verifies the HS256 Bearer token and stores the caller as an
// entities.Actor on the context.
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions || isPublicPath(c.Request.URL.Path) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			c.AbortWithStatusJSON(errUnauthorized.HTTPStatus, errUnauthorized.ToHTTPError())
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(strings.TrimSpace(parts[1]), claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		}, jwt.WithLeeway(leeway), jwt.WithExpirationRequired())
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}

		actor := entities.Actor{ID: strings.TrimSpace(claims.UserID), Role: claims.Role}
		if actor.ID == "" || !actor.Role.Valid() {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// ActorFrom returns the caller stored by Auth.
func ActorFrom(c *gin.Context) (entities.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entities.Actor{}, false
	}
	a, ok := v.(entities.Actor)
	return a, ok
}

// SetActor stores a caller on the context. Used by tests and internal routes.
func SetActor(c *gin.Context, a entities.Actor) {
	c.Set(actorKey, a)
}
