package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"YieldAdvisor/internal/domain/models"
	"YieldAdvisor/internal/domain/service"
	xhttp "YieldAdvisor/pkg/http"
)

// PythClient reads latest price feeds from a Pyth Hermes endpoint.
type PythClient struct {
	baseURL string
	timeout time.Duration
	client  *xhttp.Client
}

// NewPythClient builds a Hermes client. Every lookup is bounded by timeout.
func NewPythClient(baseURL string, timeout time.Duration, opts ...xhttp.ClientOption) *PythClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(timeout)}, opts...)
	return &PythClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		client:  xhttp.NewClient(opts...),
	}
}

// Hermes encodes price and conf as decimal strings; older payloads use numbers.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return fmt.Errorf("empty number")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	*f = flexFloat(v)
	return nil
}

type pythPrice struct {
	Price       *flexFloat `json:"price"`
	Conf        *flexFloat `json:"conf"`
	Expo        *int       `json:"expo"`
	PublishTime int64      `json:"publish_time"`
}

type pythFeed struct {
	ID          string     `json:"id"`
	Price       *pythPrice `json:"price"`
	PublishTime int64      `json:"publish_time"`
}

// LatestQuote fetches feedID and scales its confidence by the feed exponent.
func (p *PythClient) LatestQuote(ctx context.Context, feedID string) (models.PriceQuote, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var body []byte
	err := p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         p.baseURL + "/api/latest_price_feeds",
		QueryParams: map[string][]string{"ids[]": {feedID}},
	}, &body)
	if err != nil {
		if service.IsTimeout(err) {
			return models.PriceQuote{}, fmt.Errorf("%w: %v", service.ErrOracleTimeout, err)
		}
		return models.PriceQuote{}, fmt.Errorf("%w: %v", service.ErrOracleUnavailable, err)
	}

	return parseQuote(feedID, body)
}

func parseQuote(feedID string, body []byte) (models.PriceQuote, error) {
	var feeds []pythFeed
	if err := json.Unmarshal(body, &feeds); err != nil {
		return models.PriceQuote{}, fmt.Errorf("%w: %v", service.ErrOracleMalformed, err)
	}
	if len(feeds) == 0 {
		return models.PriceQuote{}, fmt.Errorf("%w: no feeds in reply", service.ErrOracleMalformed)
	}

	f := feeds[0]
	if f.Price == nil || f.Price.Price == nil || f.Price.Conf == nil || f.Price.Expo == nil {
		return models.PriceQuote{}, fmt.Errorf("%w: missing price/conf/expo", service.ErrOracleMalformed)
	}

	conf := float64(*f.Price.Conf)
	expo := *f.Price.Expo
	if conf < 0 || math.IsNaN(conf) || math.IsInf(conf, 0) {
		return models.PriceQuote{}, fmt.Errorf("%w: invalid conf %v", service.ErrOracleMalformed, conf)
	}

	published := f.Price.PublishTime
	if published == 0 {
		published = f.PublishTime
	}

	q := models.PriceQuote{
		FeedID:     feedID,
		Price:      float64(*f.Price.Price),
		Conf:       conf,
		Expo:       expo,
		Confidence: conf * math.Pow10(-absInt(expo)),
	}
	if published > 0 {
		q.PublishTime = time.Unix(published, 0).UTC()
	}
	return q, nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
