package defillama

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"YieldAdvisor/internal/domain/models"
	xhttp "YieldAdvisor/pkg/http"
)

const DefaultURL = "https://yields.llama.fi/pools"

// MaxPools caps the catalog so the ranked response stays small.
const MaxPools = 12

type Config struct {
	URL     string
	MinTVL  float64
	Limit   int
	Symbols []string
	Timeout time.Duration
}

// Client turns the DefiLlama yields feed into a short yield table.
type Client struct {
	cfg     Config
	symbols map[string]struct{}
	client  *xhttp.Client
}

func NewClient(cfg Config, opts ...xhttp.ClientOption) *Client {
	if cfg.URL == "" {
		cfg.URL = DefaultURL
	}
	if cfg.Limit <= 0 || cfg.Limit > MaxPools {
		cfg.Limit = MaxPools
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 15 * time.Second
	}

	symbols := make(map[string]struct{}, len(cfg.Symbols))
	for _, s := range cfg.Symbols {
		symbols[strings.ToUpper(s)] = struct{}{}
	}

	opts = append([]xhttp.ClientOption{xhttp.WithTimeout(cfg.Timeout)}, opts...)
	return &Client{cfg: cfg, symbols: symbols, client: xhttp.NewClient(opts...)}
}

type poolsResponse struct {
	Status string `json:"status"`
	Data   []pool `json:"data"`
}

type pool struct {
	Pool    string  `json:"pool"`
	Chain   string  `json:"chain"`
	Project string  `json:"project"`
	Symbol  string  `json:"symbol"`
	TVLUsd  float64 `json:"tvlUsd"`
	APY     float64 `json:"apy"`
}

// Yields returns the top pools by APY that pass the TVL and symbol filters.
func (c *Client) Yields(ctx context.Context) ([]models.YieldRecord, error) {
	var resp poolsResponse
	if err := c.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.cfg.URL,
	}, &resp); err != nil {
		return nil, fmt.Errorf("fetch defillama pools: %w", err)
	}

	kept := make([]pool, 0, len(resp.Data))
	for _, p := range resp.Data {
		if p.APY <= 0 || p.TVLUsd < c.cfg.MinTVL {
			continue
		}
		if !c.symbolAllowed(p.Symbol) {
			continue
		}
		kept = append(kept, p)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].APY > kept[j].APY })
	if len(kept) > c.cfg.Limit {
		kept = kept[:c.cfg.Limit]
	}

	out := make([]models.YieldRecord, 0, len(kept))
	for _, p := range kept {
		out = append(out, models.YieldRecord{
			Protocol: p.Project,
			Chain:    strings.ToLower(p.Chain),
			APY:      p.APY,
			TVL:      p.TVLUsd,
		})
	}
	return out, nil
}

// symbolAllowed matches composite symbols such as "USDC-WETH" or "USDC.E"
// when any part is on the allow-list. An empty list allows everything.
func (c *Client) symbolAllowed(symbol string) bool {
	if len(c.symbols) == 0 {
		return true
	}
	for _, part := range strings.FieldsFunc(strings.ToUpper(symbol), func(r rune) bool {
		return r == '-' || r == '.' || r == '/' || r == '_'
	}) {
		if _, ok := c.symbols[part]; ok {
			return true
		}
	}
	return false
}
