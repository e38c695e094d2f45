package models

import "time"

// DefaultMinAPY is applied when a request omits min_apy.
const DefaultMinAPY = 5.0

// AnalyzeRequest is the body of POST /api/analyze.
// Token and Amount must be present but any value is accepted; neither
// influences selection.
type AnalyzeRequest struct {
	Token  *string  `json:"token" validate:"required"`
	Amount *float64 `json:"amount" validate:"required"`
	MinAPY *float64 `json:"min_apy" default:"5.0"`
}

// MinAPYValue returns the requested threshold or DefaultMinAPY.
func (r AnalyzeRequest) MinAPYValue() float64 {
	if r.MinAPY == nil {
		return DefaultMinAPY
	}
	return *r.MinAPY
}

// TokenValue returns the requested token or "".
func (r AnalyzeRequest) TokenValue() string {
	if r.Token == nil {
		return ""
	}
	return *r.Token
}

// AmountValue returns the requested amount or zero.
func (r AnalyzeRequest) AmountValue() float64 {
	if r.Amount == nil {
		return 0
	}
	return *r.Amount
}

// AnalyzeResponse is the reply of POST /api/analyze.
type AnalyzeResponse struct {
	Success          bool          `json:"success"`
	BestOpportunity  YieldRecord   `json:"best_opportunity"`
	AllOpportunities []YieldRecord `json:"all_opportunities,omitempty"`
	Message          string        `json:"message"`
}

// NarrationSource tells whether the message came from the model or the fallback template.
type NarrationSource string

const (
	NarrationLLM      NarrationSource = "llm"
	NarrationFallback NarrationSource = "fallback"
)

// AnalysisEvent is published once per completed analysis.
type AnalysisEvent struct {
	ID              string          `json:"id"`
	Token           string          `json:"token"`
	Amount          float64         `json:"amount"`
	MinAPY          float64         `json:"min_apy"`
	BestOpportunity YieldRecord     `json:"best_opportunity"`
	RankedCount     int             `json:"ranked_count"`
	FilterFallback  bool            `json:"filter_fallback"`
	NarrationSource NarrationSource `json:"narration_source"`
	OracleOK        bool            `json:"oracle_ok"`
	CreatedAt       time.Time       `json:"created_at"`
}
