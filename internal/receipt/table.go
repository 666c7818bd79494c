package receipt

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// TableRow is one physical unit keyed by order id, ready for bulk insert.
type TableRow struct {
	OrderID  string           `json:"order_id"`
	Weight   *decimal.Decimal `json:"weight"`
	ItemName string           `json:"item_name"`
	Price    decimal.Decimal  `json:"price"`
}

// Table is the per-unit projection of a receipt, in receipt order.
type Table []TableRow

type tableCSVRow struct {
	OrderID  string `csv:"order_id"`
	Weight   string `csv:"weight"`
	ItemName string `csv:"item_name"`
	Price    string `csv:"price"`
}

// NewTable projects normalized units into table rows.
func NewTable(units []NormalizedItem) Table {
	t := make(Table, 0, len(units))
	for _, u := range units {
		t = append(t, TableRow{
			OrderID:  u.OrderID,
			Weight:   u.Weight,
			ItemName: u.Name,
			Price:    u.UnitPrice,
		})
	}
	return t
}

// Total sums the price column.
func (t Table) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, r := range t {
		sum = sum.Add(r.Price)
	}
	return sum
}

// WriteCSV writes the table with an order_id,weight,item_name,price header.
// Empty weights are written as empty cells.
func (t Table) WriteCSV(w io.Writer) error {
	rows := make([]*tableCSVRow, 0, len(t))
	for _, r := range t {
		row := &tableCSVRow{
			OrderID:  r.OrderID,
			ItemName: r.ItemName,
			Price:    r.Price.String(),
		}
		if r.Weight != nil {
			row.Weight = r.Weight.String()
		}
		rows = append(rows, row)
	}

	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to write item table: %w", err)
	}
	return nil
}
