package receipt

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/BerylCAtieno/receipt-reader-api/internal/extractor"
)

// Result is the full outcome of one parse. It is never returned partially.
type Result struct {
	Header Header
	Items  []Item
	Units  []NormalizedItem
	Table  Table
}

// Document is the JSON view of a receipt.
type Document struct {
	ReceiptID   string          `json:"receipt_id"`
	SlotTime    time.Time       `json:"slot_time"`
	Items       []Item          `json:"items"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	PaymentCard int             `json:"payment_card"`
}

// Parser runs the pipeline against one Layout.
type Parser struct {
	layout Layout
}

// NewParser returns a Parser for layout.
func NewParser(layout Layout) *Parser {
	return &Parser{layout: layout}
}

// Parse runs the pipeline over the line dump of a receipt with the default
// layout.
func Parse(lines []string) (*Result, error) {
	return NewParser(DefaultLayout()).Parse(lines)
}

// ParseDocument extracts lines from a PDF or text dump and parses them.
func ParseDocument(data []byte, contentType string) (*Result, error) {
	lines, err := extractor.ExtractLines(data, contentType)
	if err != nil {
		return nil, err
	}
	return Parse(lines)
}

func (p *Parser) Parse(lines []string) (*Result, error) {
	header, err := p.layout.ExtractHeader(lines)
	if err != nil {
		return nil, err
	}

	region, err := p.layout.ItemRegion(lines)
	if err != nil {
		return nil, err
	}

	items, err := SegmentItems(region)
	if err != nil {
		return nil, err
	}

	units := Normalize(header.OrderID, items)

	return &Result{
		Header: header,
		Items:  items,
		Units:  units,
		Table:  NewTable(units),
	}, nil
}

// Document returns the JSON view of r. Items is never null.
func (r *Result) Document() Document {
	items := r.Items
	if items == nil {
		items = []Item{}
	}
	return Document{
		ReceiptID:   r.Header.OrderID,
		SlotTime:    r.Header.SlotTime,
		Items:       items,
		TotalPrice:  r.Header.TotalPrice,
		PaymentCard: r.Header.PaymentCardSuffix,
	}
}
