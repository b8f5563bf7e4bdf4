package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// DateFormat is the wire format for plain dates (ISO-8601 date).
// Lexical order of dates in this format equals chronological order.
const DateFormat = "2006-01-02"

func init() {
	// Prices and values travel as JSON numbers, matching the documented
	// wire format.
	decimal.MarshalJSONWithoutQuotes = true
}

// Price represents one price row from the price feed: one row per
// (asset, date). The asset reference is by display name, not by id;
// internal series math resolves names through the registry.
type Price struct {
	ID    string          `json:"id"`
	Asset string          `json:"asset"`
	Price decimal.Decimal `json:"price"`
	AsOf  string          `json:"asOf"`
}

// Validate ensures the price row adheres to domain rules
func (p *Price) Validate() error {
	if p.Asset == "" {
		return errors.New("price asset name cannot be empty")
	}
	if p.AsOf == "" {
		return errors.New("price as-of date cannot be empty")
	}
	return nil
}
