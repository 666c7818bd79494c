package receipt

import "github.com/shopspring/decimal"

// UnitPricePlaces is the number of decimal places unit prices are rounded
// to, using banker's rounding (half to even).
const UnitPricePlaces = 4

// Normalize expands every entry with quantity n > 1 into n records priced
// at price/n. Weighed entries and single units pass through with their
// price unchanged. Weights are never divided.
func Normalize(orderID string, items []Item) []NormalizedItem {
	units := make([]NormalizedItem, 0, len(items))
	for _, item := range items {
		if item.Quantity == nil || *item.Quantity <= 1 {
			units = append(units, NormalizedItem{
				OrderID:   orderID,
				Name:      item.Name,
				Quantity:  item.Quantity,
				Weight:    item.Weight,
				UnitPrice: item.Price,
			})
			continue
		}

		n := *item.Quantity
		unitPrice := UnitPrice(item.Price, n)
		for i := 0; i < n; i++ {
			one := 1
			units = append(units, NormalizedItem{
				OrderID:   orderID,
				Name:      item.Name,
				Quantity:  &one,
				Weight:    item.Weight,
				UnitPrice: unitPrice,
			})
		}
	}
	return units
}

// UnitPrice divides price evenly across n units.
func UnitPrice(price decimal.Decimal, n int) decimal.Decimal {
	if n <= 1 {
		return price
	}
	return price.Div(decimal.NewFromInt(int64(n))).RoundBank(UnitPricePlaces)
}
