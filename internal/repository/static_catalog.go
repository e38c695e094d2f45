package repository

import (
	"context"

	"YieldAdvisor/internal/domain/models"
)

// DefaultYieldTable is served when no table is configured. Duplicate
// protocol/chain pairs are intentional: they mirror distinct markets.
var DefaultYieldTable = []models.YieldRecord{
	{Protocol: "Aave V3", Chain: "ethereum", APY: 5.2, TVL: 1_000_000},
	{Protocol: "Compound V3", Chain: "arbitrum", APY: 6.8, TVL: 500_000},
	{Protocol: "Morpho", Chain: "base", APY: 7.5, TVL: 300_000},
	{Protocol: "Compound V3", Chain: "ethereum", APY: 3.2, TVL: 320_000_000},
	{Protocol: "Compound V3", Chain: "ethereum", APY: 2.1, TVL: 180_000_000},
	{Protocol: "Compound V3", Chain: "arbitrum", APY: 3.8, TVL: 95_000_000},
	{Protocol: "Compound V3", Chain: "base", APY: 4.1, TVL: 65_000_000},
}

// StaticCatalog serves a fixed yield table.
type StaticCatalog struct {
	records []models.YieldRecord
}

// NewStaticCatalog copies records; a nil or empty slice selects DefaultYieldTable.
func NewStaticCatalog(records []models.YieldRecord) *StaticCatalog {
	if len(records) == 0 {
		records = DefaultYieldTable
	}
	return &StaticCatalog{records: append([]models.YieldRecord(nil), records...)}
}

// Yields returns a fresh copy so callers may annotate it freely.
func (c *StaticCatalog) Yields(context.Context) ([]models.YieldRecord, error) {
	return append([]models.YieldRecord(nil), c.records...), nil
}
