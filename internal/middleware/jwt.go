package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// OperatorRole is the role claim an operator token must carry.
const OperatorRole = "OPERATOR"

// OperatorAuth guards operator endpoints with an HS256 bearer token carrying
// role=OPERATOR.  An empty secret leaves the routes open, which is the
// default for single-machine deployments.
func OperatorAuth(secret string) echo.MiddlewareFunc {
	if secret == "" {
		return passThrough
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}
			if role, _ := claims["role"].(string); role != OperatorRole {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "operator role required"})
			}
			c.Set("operator", claims["sub"])
			return next(c)
		}
	}
}
