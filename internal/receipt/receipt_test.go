package receipt

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func legacyReceipt() []string {
	return []string{
		"Sainsbury's Online",
		"Your receipt for order: A123",
		"Slot time: Thursday 3rd August 2023, 9:00pm - 10:00pm",
		"Delivery summary",
		"Groceries",
		"3 Apples £3.00",
		"1.2kg Bananas £2.40",
		"Innocent smoothie",
		"with extra pulp £3.50",
		"2innocent Orange Juice 900ml £4.00",
		"Order summary",
		"Total paid £12.90",
		"We took payment on a card ending in",
		"1234 (Visa)",
		"Thank you for shopping with us",
	}
}

func currentReceipt() []string {
	return []string{
		"Your receipt for order: 7002345",
		"Slot time: Monday 1st January 2024, 10:00am - 11:00am",
		"Groceries",
		"1 Semi Skimmed Milk 2L £1.45",
		"Order summary",
		"Total paid £1.45",
		"Paid with Mastercard",
		"ending in 9876",
	}
}

func mustDecimal(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func intPtr(n int) *int { return &n }

func TestParse_Legacy(t *testing.T) {
	res, err := Parse(legacyReceipt())
	require.NoError(t, err)

	assert.Equal(t, "A123", res.Header.OrderID)
	assert.Equal(t, time.Date(2023, time.August, 3, 21, 0, 0, 0, time.UTC), res.Header.SlotTime)
	assert.True(t, mustDecimal("12.90").Equal(res.Header.TotalPrice))
	assert.Equal(t, 1234, res.Header.PaymentCardSuffix)
	assert.Equal(t, "legacy", res.Header.CardLayout)

	require.Len(t, res.Items, 4)

	assert.Equal(t, "Apples", res.Items[0].Name)
	assert.Equal(t, intPtr(3), res.Items[0].Quantity)
	assert.Nil(t, res.Items[0].Weight)

	assert.Equal(t, "Bananas", res.Items[1].Name)
	assert.Nil(t, res.Items[1].Quantity)
	require.NotNil(t, res.Items[1].Weight)
	assert.True(t, mustDecimal("1.2").Equal(*res.Items[1].Weight))

	assert.Equal(t, "Innocent smoothiewith extra pulp", res.Items[2].Name)
	assert.Equal(t, intPtr(1), res.Items[2].Quantity)
	assert.True(t, mustDecimal("3.50").Equal(res.Items[2].Price))

	assert.Equal(t, "innocent Orange Juice 900ml", res.Items[3].Name)
	assert.Equal(t, intPtr(2), res.Items[3].Quantity)

	// 3 apples + bananas + smoothie + 2 juices
	require.Len(t, res.Units, 7)
	require.Len(t, res.Table, 7)
	for _, row := range res.Table {
		assert.Equal(t, "A123", row.OrderID)
	}
	assert.True(t, mustDecimal("12.90").Equal(res.Table.Total()))
}

func TestParse_CurrentLayout(t *testing.T) {
	res, err := Parse(currentReceipt())
	require.NoError(t, err)

	assert.Equal(t, "7002345", res.Header.OrderID)
	assert.Equal(t, time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC), res.Header.SlotTime)
	assert.Equal(t, 9876, res.Header.PaymentCardSuffix)
	assert.Equal(t, "current", res.Header.CardLayout)

	require.Len(t, res.Items, 1)
	assert.Equal(t, "Semi Skimmed Milk 2L", res.Items[0].Name)
}

func TestParse_MissingEndMarkerIsFatal(t *testing.T) {
	var lines []string
	for _, l := range legacyReceipt() {
		if !strings.HasPrefix(l, "Order summary") {
			lines = append(lines, l)
		}
	}

	res, err := Parse(lines)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrMissingSectionMarker)

	var markerErr *MissingSectionMarkerError
	require.ErrorAs(t, err, &markerErr)
	assert.Equal(t, "Order summary", markerErr.Marker)
}

func TestParse_NoPartialResult(t *testing.T) {
	lines := legacyReceipt()
	lines[6] = "0 Bananas £2.40"

	res, err := Parse(lines)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse_MissingHeaderField(t *testing.T) {
	tests := []struct {
		name  string
		drop  string
		field string
	}{
		{name: "order id", drop: "Your receipt for order", field: FieldOrderID},
		{name: "slot time", drop: "Slot time", field: FieldSlotTime},
		{name: "total", drop: "Total paid", field: FieldTotalPrice},
		{name: "card", drop: "We took payment", field: FieldPaymentCard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var lines []string
			for _, l := range legacyReceipt() {
				if !strings.HasPrefix(l, tt.drop) {
					lines = append(lines, l)
				}
			}

			_, err := Parse(lines)
			require.ErrorIs(t, err, ErrMissingHeaderField)

			var fieldErr *MissingHeaderFieldError
			require.ErrorAs(t, err, &fieldErr)
			assert.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestParser_CustomLayout(t *testing.T) {
	layout := DefaultLayout()
	layout.ItemStartMarkers = []string{"Your items"}
	layout.ItemEndMarker = "Totals"

	lines := []string{
		"Your receipt for order: B9",
		"Slot time: Friday 4th August 2023, 8:00am - 9:00am",
		"Your items",
		"4 Eggs £2.00",
		"Totals",
		"Total paid £2.00",
		"ending in 4321",
	}

	res, err := NewParser(layout).Parse(lines)
	require.NoError(t, err)
	require.Len(t, res.Units, 4)
	assert.True(t, mustDecimal("0.5").Equal(res.Units[0].UnitPrice))
}

func TestResult_Document(t *testing.T) {
	res, err := Parse(currentReceipt())
	require.NoError(t, err)

	data, err := json.Marshal(res.Document())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "7002345", doc["receipt_id"])
	assert.Equal(t, "2024-01-01T10:00:00Z", doc["slot_time"])
	assert.Equal(t, float64(9876), doc["payment_card"])

	items, ok := doc["items"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]any)
	assert.Equal(t, "Semi Skimmed Milk 2L", item["name"])
	assert.Equal(t, float64(1), item["quantity"])
	assert.Nil(t, item["weight"])
}

func TestParseDocument_Text(t *testing.T) {
	data := []byte(strings.Join(currentReceipt(), "\n") + "\n")

	res, err := ParseDocument(data, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "7002345", res.Header.OrderID)
}

func TestTable_WriteCSV(t *testing.T) {
	res, err := Parse(legacyReceipt())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, res.Table.WriteCSV(&buf))

	rows := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, rows, 8)
	assert.Equal(t, "order_id,weight,item_name,price", rows[0])
	assert.Equal(t, "A123,,Apples,1", rows[1])
	assert.Equal(t, "A123,1.2,Bananas,2.4", rows[4])
}
