package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"PortRisk/internal/domain/models"
	domrepo "PortRisk/internal/domain/repository"
	"PortRisk/internal/service/auth"
	"PortRisk/internal/service/ratelimit"
	xhttp "PortRisk/pkg/http"
	xlogger "PortRisk/pkg/logger"
)

// signin attempts allowed per username before throttling kicks in
const (
	signinBurst  = 5.0
	signinRefill = 1.0 / 60.0 // one attempt per minute
)

// AuthEchoHandler serves signup, signin, and signout.
type AuthEchoHandler struct {
	logger  *xlogger.Logger
	users   domrepo.UserStore
	tokens  *auth.Manager
	limiter *ratelimit.Limiter
}

func NewAuthEchoHandler(logger *xlogger.Logger, users domrepo.UserStore, tokens *auth.Manager, limiter *ratelimit.Limiter) *AuthEchoHandler {
	return &AuthEchoHandler{logger: logger, users: users, tokens: tokens, limiter: limiter}
}

func (h *AuthEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.Signin)
	g.POST("/signout", h.Signout)
}

func (h *AuthEchoHandler) Signup(c echo.Context) error {
	req := &models.SignupRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.logger.Error("hash password failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	id, err := h.users.Create(c.Request().Context(), req.Username, hash, req.Role)
	if errors.Is(err, domrepo.ErrUsernameTaken) {
		return xhttp.ConflictResponse(c, "username already taken")
	}
	if err != nil {
		h.logger.Error("create user failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	h.logger.Info("user registered",
		xlogger.Int64("user_id", id),
		xlogger.String("username", req.Username))
	return xhttp.CreatedResponse(c, echo.Map{"id": id, "username": req.Username})
}

func (h *AuthEchoHandler) Signin(c echo.Context) error {
	req := &models.SigninRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.limiter != nil && !h.limiter.Allow(req.Username, signinBurst, signinRefill) {
		return xhttp.TooManyRequestsResponse(c, "too many signin attempts")
	}

	user, err := h.users.ByUsername(c.Request().Context(), req.Username)
	if errors.Is(err, domrepo.ErrNotFound) {
		return xhttp.UnauthorizedResponse(c, "bad credentials")
	}
	if err != nil {
		h.logger.Error("load user failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return xhttp.UnauthorizedResponse(c, "bad credentials")
	}

	token, err := h.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		h.logger.Error("issue token failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL() / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return xhttp.SuccessResponse(c, models.AuthResponse{Token: token})
}

func (h *AuthEchoHandler) Signout(c echo.Context) error {
	c.SetCookie(&http.Cookie{
		Name:     TokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return xhttp.SuccessResponse(c, echo.Map{"signedOut": true})
}
