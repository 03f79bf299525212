package fmp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/wonny/cyberdash/internal/contracts"
)

// Fields in statement responses that are not financial line items.
var nonItemFields = map[string]struct{}{
	"date":             {},
	"symbol":           {},
	"cik":              {},
	"filingDate":       {},
	"acceptedDate":     {},
	"fiscalYear":       {},
	"period":           {},
	"reportedCurrency": {},
	"link":             {},
	"finalLink":        {},
}

// FetchStatements retrieves the annual income, balance and cash-flow
// statements for a symbol. Line items keep the provider's camelCase labels;
// concept resolution downstream handles the naming.
func (c *Client) FetchStatements(ctx context.Context, symbol string) (*contracts.StatementSnapshot, error) {
	cacheKey := "statements:" + symbol

	var cached contracts.StatementSnapshot
	if hit, err := c.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		c.logger.WithField("symbol", symbol).Debug("Statement cache hit")
		return &cached, nil
	}

	income, err := c.fetchStatement(ctx, "income-statement", symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch income statement: %w", err)
	}
	balance, err := c.fetchStatement(ctx, "balance-sheet-statement", symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch balance sheet: %w", err)
	}
	cashflow, err := c.fetchStatement(ctx, "cash-flow-statement", symbol)
	if err != nil {
		return nil, fmt.Errorf("fetch cash flow statement: %w", err)
	}

	snap := &contracts.StatementSnapshot{
		Symbol:   symbol,
		Income:   income,
		Balance:  balance,
		CashFlow: cashflow,
	}

	if err := c.cache.Set(ctx, cacheKey, snap, c.cacheTTL); err != nil {
		c.logger.WithError(err).WithField("symbol", symbol).Warn("Statement cache write failed")
	}

	return snap, nil
}

func (c *Client) fetchStatement(ctx context.Context, endpoint, symbol string) (contracts.Statement, error) {
	reqURL := fmt.Sprintf("%s/%s?symbol=%s&limit=%d&apikey=%s",
		c.baseURL, endpoint, url.QueryEscape(symbol), statementLimit, c.apiKey)

	body, err := c.http.GetBody(ctx, reqURL, nil)
	if err != nil {
		return contracts.Statement{}, err
	}

	periods, err := parsePeriods(body)
	if err != nil {
		return contracts.Statement{}, fmt.Errorf("parse %s: %w", endpoint, err)
	}
	return contracts.NewStatement(periods), nil
}

// parsePeriods converts an FMP statement response into generic periods.
// Every numeric field becomes a line item under its provider label;
// metadata fields and nulls are dropped.
func parsePeriods(body []byte) ([]contracts.Period, error) {
	var raw []map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}

	periods := make([]contracts.Period, 0, len(raw))
	for _, entry := range raw {
		dateStr, ok := entry["date"].(string)
		if !ok {
			continue
		}
		date, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		items := make(map[string]float64)
		for label, v := range entry {
			if _, skip := nonItemFields[label]; skip {
				continue
			}
			if f, ok := v.(float64); ok {
				items[label] = f
			}
		}
		periods = append(periods, contracts.Period{Date: date, Items: items})
	}
	return periods, nil
}
