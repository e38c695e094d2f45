package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"YieldAdvisor/internal/domain/models"
	domsvc "YieldAdvisor/internal/domain/service"
	xlogger "YieldAdvisor/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubAnalyzer struct {
	resp   models.AnalyzeResponse
	err    error
	req    models.AnalyzeRequest
	ranked bool
}

func (s *stubAnalyzer) Analyze(_ context.Context, req models.AnalyzeRequest, ranked bool) (models.AnalyzeResponse, error) {
	s.req, s.ranked = req, ranked
	return s.resp, s.err
}

type denyAfter struct{ n int }

func (d *denyAfter) Allow(string) bool {
	d.n--
	return d.n >= 0
}

func newEcho(a Analyzer, limiter *denyAfter) *echo.Echo {
	e := echo.New()
	var h *AdvisorEchoHandler
	if limiter != nil {
		h = NewAdvisorEchoHandler(xlogger.Nop(), a, limiter)
	} else {
		h = NewAdvisorEchoHandler(xlogger.Nop(), a, nil)
	}
	h.RegisterRoutes(e)
	return e
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestRootAndHealth(t *testing.T) {
	e := newEcho(&stubAnalyzer{}, nil)

	rec := do(e, http.MethodGet, "/", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"message":"Yield Advisor API","status":"ok"}` {
		t.Fatalf("root = %d %s", rec.Code, rec.Body)
	}
	rec = do(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != `{"status":"healthy"}` {
		t.Fatalf("health = %d %s", rec.Code, rec.Body)
	}
}

func TestAnalyzeOK(t *testing.T) {
	best := models.YieldRecord{Protocol: "Morpho", Chain: "base", APY: 7.5, TVL: 300000}
	a := &stubAnalyzer{resp: models.AnalyzeResponse{Success: true, BestOpportunity: best, Message: "hi"}}
	e := newEcho(a, nil)

	rec := do(e, http.MethodPost, "/api/analyze", `{"token":"USDC","amount":1000}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	var got map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got["success"] != true || got["message"] != "hi" {
		t.Fatalf("body = %v", got)
	}
	if _, ok := got["all_opportunities"]; ok {
		t.Fatalf("all_opportunities must be omitted: %v", got)
	}
	bo := got["best_opportunity"].(map[string]interface{})
	if bo["protocol"] != "Morpho" || bo["price_confidence"] != float64(0) {
		t.Fatalf("best_opportunity = %v", bo)
	}
	if a.req.MinAPYValue() != 5.0 || a.ranked {
		t.Fatalf("request = %+v ranked=%v", a.req, a.ranked)
	}
}

func TestAnalyzeRankedAndExplicitZero(t *testing.T) {
	a := &stubAnalyzer{resp: models.AnalyzeResponse{Success: true, AllOpportunities: []models.YieldRecord{{Protocol: "A"}}}}
	e := newEcho(a, nil)

	rec := do(e, http.MethodPost, "/api/analyze?ranked=true", `{"token":"ETH","amount":0,"min_apy":0}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
	}
	if !a.ranked || a.req.MinAPYValue() != 0 {
		t.Fatalf("ranked=%v min_apy=%v", a.ranked, a.req.MinAPYValue())
	}
	if !strings.Contains(rec.Body.String(), `"all_opportunities":[{"protocol":"A"`) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestAnalyzeValidation(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing token", body: `{"amount":10}`, field: "token"},
		{name: "missing amount", body: `{"token":"USDC"}`, field: "amount"},
		{name: "amount wrong type", body: `{"token":"USDC","amount":"ten"}`, field: "amount"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &stubAnalyzer{}
			rec := do(newEcho(a, nil), http.MethodPost, "/api/analyze", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d body=%s", rec.Code, rec.Body)
			}
			var env struct {
				Status int `json:"status"`
				Data   []struct {
					Field string `json:"field"`
				} `json:"data"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if env.Status != 422 || len(env.Data) == 0 || env.Data[0].Field != tt.field {
				t.Fatalf("envelope = %+v", env)
			}
		})
	}
}

func TestAnalyzeAcceptsAnyTokenAndAmount(t *testing.T) {
	for _, body := range []string{
		`{"token":"USDC","amount":-5}`,
		`{"token":"","amount":10}`,
	} {
		a := &stubAnalyzer{}
		rec := do(newEcho(a, nil), http.MethodPost, "/api/analyze", body)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d body=%s", body, rec.Code, rec.Body)
		}
	}
}

func TestAnalyzeNoData(t *testing.T) {
	rec := do(newEcho(&stubAnalyzer{err: domsvc.ErrNoDataAvailable}, nil), http.MethodPost, "/api/analyze", `{"token":"USDC","amount":1}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"code":"ERR_NO_DATA"`) {
		t.Fatalf("body = %s", rec.Body)
	}
}

func TestAnalyzeRateLimited(t *testing.T) {
	e := newEcho(&stubAnalyzer{resp: models.AnalyzeResponse{Success: true}}, &denyAfter{n: 1})

	if rec := do(e, http.MethodPost, "/api/analyze", `{"token":"USDC","amount":1}`); rec.Code != http.StatusOK {
		t.Fatalf("first status = %d", rec.Code)
	}
	rec := do(e, http.MethodPost, "/api/analyze", `{"token":"USDC","amount":1}`)
	if rec.Code != http.StatusTooManyRequests || !strings.Contains(rec.Body.String(), "ERR_RATE_LIMITED") {
		t.Fatalf("second = %d %s", rec.Code, rec.Body)
	}
	if rec := do(e, http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("health must not be rate limited: %d", rec.Code)
	}
}
