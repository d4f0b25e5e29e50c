package api

import (
	"strings"

	"github.com/labstack/echo/v4"

	"PortRisk/internal/service/auth"
	xhttp "PortRisk/pkg/http"
)

// TokenCookie is the session cookie set on signin.
const TokenCookie = "token"

const claimsKey = "authClaims"

// RequireAuth verifies the session token from the cookie or the
// Authorization header and stashes the claims on the request context.
func RequireAuth(tokens *auth.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := tokenFromRequest(c)
			if token == "" {
				return xhttp.UnauthorizedResponse(c, "missing token")
			}
			claims, err := tokens.Parse(token)
			if err != nil {
				return xhttp.UnauthorizedResponse(c, "invalid token")
			}
			c.Set(claimsKey, claims)
			return next(c)
		}
	}
}

func tokenFromRequest(c echo.Context) string {
	if cookie, err := c.Cookie(TokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return ""
}

// CurrentClaims returns the authenticated claims, or nil outside RequireAuth.
func CurrentClaims(c echo.Context) *auth.Claims {
	claims, _ := c.Get(claimsKey).(*auth.Claims)
	return claims
}
