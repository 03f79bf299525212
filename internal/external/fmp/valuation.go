package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/wonny/cyberdash/internal/contracts"
)

type ratiosTTMResponse struct {
	PE  float64 `json:"priceToEarningsRatioTTM"`
	PEG float64 `json:"priceToEarningsGrowthRatioTTM"`
	PS  float64 `json:"priceToSalesRatioTTM"`
	PB  float64 `json:"priceToBookRatioTTM"`
}

type keyMetricsTTMResponse struct {
	FCFYield float64 `json:"freeCashFlowYieldTTM"`
}

// FetchValuation retrieves trailing valuation ratios for a symbol. The
// provider reports 0 for ratios it cannot compute (negative earnings and
// the like), so zeros map to undefined.
func (c *Client) FetchValuation(ctx context.Context, symbol string) (contracts.ValuationSnapshot, error) {
	cacheKey := "valuation:" + symbol

	var cached contracts.ValuationSnapshot
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		c.logger.WithField("symbol", symbol).Debug("Valuation cache hit")
		return cached, nil
	}

	var ratios []ratiosTTMResponse
	if err := c.getJSON(ctx, "ratios-ttm", symbol, &ratios); err != nil {
		return contracts.ValuationSnapshot{}, fmt.Errorf("fetch ratios: %w", err)
	}
	var metrics []keyMetricsTTMResponse
	if err := c.getJSON(ctx, "key-metrics-ttm", symbol, &metrics); err != nil {
		return contracts.ValuationSnapshot{}, fmt.Errorf("fetch key metrics: %w", err)
	}

	var snap contracts.ValuationSnapshot
	if len(ratios) > 0 {
		snap.PE = nonZeroMetric(ratios[0].PE)
		snap.PEG = nonZeroMetric(ratios[0].PEG)
		snap.PS = nonZeroMetric(ratios[0].PS)
		snap.PB = nonZeroMetric(ratios[0].PB)
	}
	if len(metrics) > 0 {
		snap.FCFYield = nonZeroMetric(metrics[0].FCFYield)
	}

	if err := c.cache.Set(ctx, cacheKey, snap, c.cacheTTL); err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Valuation cache write failed")
	}

	return snap, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint, symbol string, dest interface{}) error {
	reqURL := fmt.Sprintf("%s/%s?symbol=%s&apikey=%s",
		c.baseURL, endpoint, url.QueryEscape(symbol), c.apiKey)

	body, err := c.http.GetBody(ctx, reqURL, nil)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dest)
}

func nonZeroMetric(v float64) contracts.Metric {
	if v == 0 {
		return contracts.Metric{}
	}
	return contracts.MetricOf(v)
}
