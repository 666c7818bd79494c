// Package receipt turns the line dump of a supermarket order-confirmation
// PDF into structured header fields and item records.
//
// The pipeline is header extraction, item region isolation, item line
// segmentation and unit normalization. Every stage is a pure function of
// its input and a parse either succeeds completely or returns an error.
package receipt

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// CurrencySymbol marks the start of every price on the receipt.
	CurrencySymbol = "£"
	// WeightUnit is the suffix that turns an amount into a weight in kilograms.
	WeightUnit = "kg"
)

// Header holds the four fields every receipt must carry.
type Header struct {
	OrderID           string          `json:"order_id"`
	SlotTime          time.Time       `json:"slot_time"`
	TotalPrice        decimal.Decimal `json:"total_price"`
	PaymentCardSuffix int             `json:"payment_card"`
	// CardLayout is the name of the card layout that matched.
	CardLayout string `json:"-"`
}

// Item is one logical entry of the item region before unit projection.
// Exactly one of Quantity and Weight is set.
type Item struct {
	Name     string           `json:"name"`
	Quantity *int             `json:"quantity"`
	Weight   *decimal.Decimal `json:"weight"`
	Price    decimal.Decimal  `json:"price"`
}

// NormalizedItem is one physical unit after projection.
type NormalizedItem struct {
	OrderID   string           `json:"order_id"`
	Name      string           `json:"name"`
	Quantity  *int             `json:"quantity"`
	Weight    *decimal.Decimal `json:"weight"`
	UnitPrice decimal.Decimal  `json:"unit_price"`
}

// IsWeighed reports whether the entry was sold by weight.
func (i Item) IsWeighed() bool {
	return i.Weight != nil
}
