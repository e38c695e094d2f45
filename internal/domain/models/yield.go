package models

import "time"

// YieldRecord is a single protocol/chain yield quote.
type YieldRecord struct {
	Protocol        string  `json:"protocol"`
	Chain           string  `json:"chain"`
	APY             float64 `json:"apy"`              // percent
	TVL             float64 `json:"tvl"`              // currency units
	PriceConfidence float64 `json:"price_confidence"` // oracle confidence band, 0 when unknown
}

// WithConfidence returns a copy of r stamped with the oracle confidence.
func (r YieldRecord) WithConfidence(confidence float64) YieldRecord {
	r.PriceConfidence = confidence
	return r
}

// PriceQuote is a parsed price-oracle reply for a single feed.
type PriceQuote struct {
	FeedID      string    `json:"feed_id"`
	Price       float64   `json:"price"`
	Conf        float64   `json:"conf"`
	Expo        int       `json:"expo"`
	PublishTime time.Time `json:"publish_time"`
	Confidence  float64   `json:"confidence"` // conf scaled by 10^-|expo|
}

// YieldSnapshot is the yield table for one request together with the
// quote used to annotate it. Quote is nil when the oracle was unavailable.
type YieldSnapshot struct {
	Records []YieldRecord
	Quote   *PriceQuote
}
