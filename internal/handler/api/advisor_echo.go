package api

import (
	"context"
	"errors"
	"net/http"

	"YieldAdvisor/internal/domain/models"
	domsvc "YieldAdvisor/internal/domain/service"
	xhttp "YieldAdvisor/pkg/http"
	"YieldAdvisor/pkg/http/middleware"
	xlogger "YieldAdvisor/pkg/logger"
	"YieldAdvisor/pkg/util"

	"github.com/labstack/echo/v4"
)

// Analyzer produces a recommendation for an analyze request.
type Analyzer interface {
	Analyze(ctx context.Context, req models.AnalyzeRequest, includeRanked bool) (models.AnalyzeResponse, error)
}

// AdvisorEchoHandler serves the advisor API.
type AdvisorEchoHandler struct {
	logger   *xlogger.Logger
	analyzer Analyzer
	limiter  middleware.Allower
}

// NewAdvisorEchoHandler builds the handler. limiter may be nil to disable rate limiting.
func NewAdvisorEchoHandler(logger *xlogger.Logger, analyzer Analyzer, limiter middleware.Allower) *AdvisorEchoHandler {
	return &AdvisorEchoHandler{logger: logger, analyzer: analyzer, limiter: limiter}
}

func (h *AdvisorEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)

	var mws []echo.MiddlewareFunc
	if h.limiter != nil {
		mws = append(mws, middleware.RateLimit(h.limiter, h.rateLimited))
	}
	g := e.Group("/api")
	g.POST("/analyze", h.Analyze, mws...)
}

func (h *AdvisorEchoHandler) Root(c echo.Context) error {
	return xhttp.JSONResponse(c, xhttp.StatusResponse{Message: "Yield Advisor API", Status: "ok"})
}

func (h *AdvisorEchoHandler) Health(c echo.Context) error {
	return xhttp.JSONResponse(c, xhttp.StatusResponse{Status: "healthy"})
}

// Analyze handles POST /api/analyze[?ranked=true].
func (h *AdvisorEchoHandler) Analyze(c echo.Context) error {
	req := &models.AnalyzeRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.ValidationErrorResponse(c, verr)
	}
	ranked := util.ParseBoolDefault(c.QueryParam("ranked"), false)

	res, err := h.analyzer.Analyze(c.Request().Context(), *req, ranked)
	if err != nil {
		if errors.Is(err, domsvc.ErrNoDataAvailable) {
			return xhttp.AppErrorResponse(c, xhttp.NewAppError("ERR_NO_DATA", "", "no yield data available", http.StatusInternalServerError).WithError(err))
		}
		h.logger.Error("analyze usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.JSONResponse(c, res)
}

func (h *AdvisorEchoHandler) rateLimited(c echo.Context) error {
	h.logger.Debug("analyze rate limited", xlogger.String("ip", c.RealIP()))
	return xhttp.AppErrorResponse(c, xhttp.TooManyRequestsError("rate limit exceeded, retry later"))
}
