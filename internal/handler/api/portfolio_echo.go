package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"PortRisk/internal/domain/models"
	domrepo "PortRisk/internal/domain/repository"
	"PortRisk/internal/service/auth"
	"PortRisk/internal/usecase"
	"PortRisk/pkg/cache"
	xhttp "PortRisk/pkg/http"
	xlogger "PortRisk/pkg/logger"
)

const leaderboardCacheKey = "leaderboard"

func accountCacheKey(userID int64) string {
	return fmt.Sprintf("account:%d", userID)
}

// Pinger reports database liveness for the health endpoint.
type Pinger interface {
	Health(ctx context.Context) error
}

// PortfolioEchoHandler serves analysis and the browse views.
type PortfolioEchoHandler struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	analyses domrepo.AnalysisStore
	prices   domrepo.PriceStore
	tokens   *auth.Manager
	cache    cache.Service
	cacheTTL time.Duration
	pinger   Pinger
}

func NewPortfolioEchoHandler(
	logger *xlogger.Logger,
	analyzer *usecase.Analyzer,
	analyses domrepo.AnalysisStore,
	prices domrepo.PriceStore,
	tokens *auth.Manager,
	cacheSvc cache.Service,
	cacheTTL time.Duration,
	pinger Pinger,
) *PortfolioEchoHandler {
	if cacheTTL <= 0 {
		cacheTTL = time.Minute
	}
	return &PortfolioEchoHandler{
		logger:   logger,
		analyzer: analyzer,
		analyses: analyses,
		prices:   prices,
		tokens:   tokens,
		cache:    cacheSvc,
		cacheTTL: cacheTTL,
		pinger:   pinger,
	}
}

func (h *PortfolioEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", h.Health)
	e.GET("/tickers", h.Tickers)
	e.GET("/leaderboard", h.Leaderboard)

	authed := e.Group("", RequireAuth(h.tokens))
	authed.POST("/analyze", h.Analyze)
	authed.GET("/portfolios/:id", h.Portfolio)
	authed.GET("/userPortfolios", h.UserPortfolios)
	authed.GET("/accountData", h.AccountData)
}

func (h *PortfolioEchoHandler) Health(c echo.Context) error {
	if h.pinger != nil {
		if err := h.pinger.Health(c.Request().Context()); err != nil {
			h.logger.Error("health check failed", xlogger.Error(err))
			return xhttp.DataResponse(c, http.StatusServiceUnavailable, echo.Map{"status": "degraded"})
		}
	}
	return xhttp.SuccessResponse(c, echo.Map{"status": "ok"})
}

func (h *PortfolioEchoHandler) Analyze(c echo.Context) error {
	req := &models.Portfolio{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	claims := CurrentClaims(c)
	id, err := h.analyzer.Analyze(c.Request().Context(), claims.UserID, req)
	if errors.Is(err, usecase.ErrEmptyPortfolio) || errors.Is(err, usecase.ErrNoTradingDates) {
		return xhttp.BadRequestResponse(c, err.Error())
	}
	if err != nil {
		h.logger.Error("analyze failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	if h.cache != nil {
		_ = h.cache.Delete(c.Request().Context(),
			leaderboardCacheKey, accountCacheKey(claims.UserID))
	}
	// the stored record is fetched via GET /portfolios/:id
	return xhttp.CreatedResponse(c, id)
}

func (h *PortfolioEchoHandler) Portfolio(c echo.Context) error {
	var id int64
	if err := echo.PathParamsBinder(c).Int64("id", &id).BindError(); err != nil || id <= 0 {
		return xhttp.BadRequestResponse(c, "invalid id")
	}

	rec, err := h.analyses.Get(c.Request().Context(), id)
	if errors.Is(err, domrepo.ErrNotFound) {
		return xhttp.NotFoundResponse(c, "portfolio not found")
	}
	if err != nil {
		h.logger.Error("load portfolio failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *PortfolioEchoHandler) UserPortfolios(c echo.Context) error {
	claims := CurrentClaims(c)
	rows, err := h.analyses.ByUser(c.Request().Context(), claims.UserID)
	if err != nil {
		h.logger.Error("load user portfolios failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *PortfolioEchoHandler) AccountData(c echo.Context) error {
	ctx := c.Request().Context()
	claims := CurrentClaims(c)
	key := accountCacheKey(claims.UserID)

	if h.cache != nil {
		var cached models.AccountData
		if err := h.cache.Get(ctx, key, &cached); err == nil {
			return xhttp.SuccessResponse(c, &cached)
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("account cache read failed", xlogger.Error(err))
		}
	}

	data, err := h.analyses.AccountData(ctx, claims.UserID)
	if err != nil {
		h.logger.Error("load account data failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, key, data, h.cacheTTL); err != nil {
			h.logger.Warn("account cache write failed", xlogger.Error(err))
		}
	}
	return xhttp.SuccessResponse(c, data)
}

func (h *PortfolioEchoHandler) Leaderboard(c echo.Context) error {
	ctx := c.Request().Context()

	if h.cache != nil {
		var cached []models.LeaderboardEntry
		if err := h.cache.Get(ctx, leaderboardCacheKey, &cached); err == nil {
			return xhttp.ListResponse(c, cached, int64(len(cached)))
		} else if !errors.Is(err, cache.ErrCacheMiss) {
			h.logger.Warn("leaderboard cache read failed", xlogger.Error(err))
		}
	}

	rows, err := h.analyses.Leaderboard(ctx)
	if err != nil {
		h.logger.Error("load leaderboard failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}

	if h.cache != nil {
		if err := h.cache.Set(ctx, leaderboardCacheKey, rows, h.cacheTTL); err != nil {
			h.logger.Warn("leaderboard cache write failed", xlogger.Error(err))
		}
	}
	return xhttp.ListResponse(c, rows, int64(len(rows)))
}

func (h *PortfolioEchoHandler) Tickers(c echo.Context) error {
	tickers, err := h.prices.Tickers(c.Request().Context())
	if err != nil {
		h.logger.Error("load tickers failed", xlogger.Error(err))
		return xhttp.InternalServerErrorResponse(c)
	}
	return xhttp.ListResponse(c, tickers, int64(len(tickers)))
}
