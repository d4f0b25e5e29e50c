package api

import (
	"context"
	"crypto/subtle"
	"strings"

	"github.com/labstack/echo/v4"

	"PortRisk/internal/usecase"
	xhttp "PortRisk/pkg/http"
	xlogger "PortRisk/pkg/logger"
)

// MarketEchoHandler exposes the manual ingest trigger. The endpoint is
// guarded by the upstream API key rather than a user session.
type MarketEchoHandler struct {
	logger   *xlogger.Logger
	ingestor *usecase.Ingestor
	apiKey   string
}

func NewMarketEchoHandler(logger *xlogger.Logger, ingestor *usecase.Ingestor, apiKey string) *MarketEchoHandler {
	return &MarketEchoHandler{logger: logger, ingestor: ingestor, apiKey: apiKey}
}

func (h *MarketEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/market/update", h.Update)
}

// Update accepts the trigger and runs the ingest in the background. A run
// already in progress makes the trigger a no-op.
func (h *MarketEchoHandler) Update(c echo.Context) error {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	token := strings.TrimPrefix(header, "Bearer ")
	if h.apiKey == "" || subtle.ConstantTimeCompare([]byte(token), []byte(h.apiKey)) != 1 {
		return xhttp.UnauthorizedResponse(c, "bad trigger token")
	}

	go func() {
		if err := h.ingestor.Run(context.Background()); err != nil {
			h.logger.Error("triggered ingest failed", xlogger.Error(err))
		}
	}()

	return xhttp.SuccessResponse(c, echo.Map{"triggered": true})
}
