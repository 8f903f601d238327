package http

import (
	"net/http"
	"strings"

	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/user"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const actorContextKey = "actor"

// Claims is the JWT payload issued by the identity provider. The service
// trusts the token signature; it does not look accounts up on every request.
type Claims struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// JWTAuth validates the Bearer token and stores the resulting Actor in the
// request context. Requests without a valid token are rejected with 401.
func JWTAuth(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, err := actorFromToken(c.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "invalid or missing token",
				})
			}

			c.Set(actorContextKey, actor)
			return next(c)
		}
	}
}

func actorFromToken(header string, secret []byte) (user.Actor, error) {
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return user.Actor{}, echo.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return user.Actor{}, echo.ErrUnauthorized
	}

	id, err := kernel.UUIDFromString(claims.UserID)
	if err != nil {
		return user.Actor{}, echo.ErrUnauthorized
	}
	role, err := user.RoleFromString(claims.Role)
	if err != nil {
		return user.Actor{}, echo.ErrUnauthorized
	}

	return user.NewActor(id, role, claims.Email)
}

// RequireRoles rejects requests whose actor does not hold one of the given
// roles. It must run after JWTAuth.
func RequireRoles(roles ...user.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := currentActor(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, errorResponse{
					Code:    http.StatusUnauthorized,
					Message: "authentication required",
				})
			}

			for _, role := range roles {
				if actor.Role() == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, errorResponse{
				Code:    http.StatusForbidden,
				Message: "insufficient role",
			})
		}
	}
}

func currentActor(c echo.Context) (user.Actor, bool) {
	actor, ok := c.Get(actorContextKey).(user.Actor)
	return actor, ok
}
