package receipt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractHeader(t *testing.T) {
	lines := []string{
		"Your receipt for order: A123",
		"Slot time: Thursday 3rd August 2023, 9:00pm - 10:00pm",
		"Total paid £45.67",
		"We took payment on a card ending in",
		"1234 5678",
	}

	h, err := DefaultLayout().ExtractHeader(lines)
	require.NoError(t, err)

	assert.Equal(t, "A123", h.OrderID)
	assert.Equal(t, time.Date(2023, time.August, 3, 21, 0, 0, 0, time.UTC), h.SlotTime)
	assert.Equal(t, "45.67", h.TotalPrice.StringFixed(2))
	assert.Equal(t, 1234, h.PaymentCardSuffix)
}

func TestExtractHeader_StopsAtCard(t *testing.T) {
	lines := []string{
		"Your receipt for order: A123",
		"Slot time: Thursday 3rd August 2023, 9:00pm - 10:00pm",
		"Total paid £45.67",
		"ending in 0042",
		"Your receipt for order: IGNORED",
	}

	h, err := DefaultLayout().ExtractHeader(lines)
	require.NoError(t, err)
	assert.Equal(t, "A123", h.OrderID)
	assert.Equal(t, 42, h.PaymentCardSuffix)
	assert.Equal(t, "current", h.CardLayout)
}

func TestExtractHeader_CardSuffixMustBeDigits(t *testing.T) {
	tests := []struct {
		name string
		card []string
	}{
		{name: "legacy letters", card: []string{"We took payment on a card ending in", "VISA 1234"}},
		{name: "legacy short line", card: []string{"We took payment on a card ending in", "12"}},
		{name: "legacy marker on last line", card: []string{"We took payment on a card ending in"}},
		{name: "current offset moved", card: []string{"ending in: 1234"}},
		{name: "current too short", card: []string{"ending in 12"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := append([]string{
				"Your receipt for order: A123",
				"Slot time: Thursday 3rd August 2023, 9:00pm - 10:00pm",
				"Total paid £45.67",
			}, tt.card...)

			_, err := DefaultLayout().ExtractHeader(lines)
			assert.ErrorIs(t, err, ErrMalformedCardSuffix)
		})
	}
}

func TestExtractHeader_BadTotal(t *testing.T) {
	lines := []string{
		"Your receipt for order: A123",
		"Slot time: Thursday 3rd August 2023, 9:00pm - 10:00pm",
		"Total paid 45.67",
		"ending in 1234",
	}

	_, err := DefaultLayout().ExtractHeader(lines)
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestParseSlotTime(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{
			in:   "Thursday 3rd August 2023, 9:00pm - 10:00pm",
			want: time.Date(2023, time.August, 3, 21, 0, 0, 0, time.UTC),
		},
		{
			in:   "Saturday 21st October 2023, 7:30am - 8:30am",
			want: time.Date(2023, time.October, 21, 7, 30, 0, 0, time.UTC),
		},
		{
			in:   "Tuesday 22nd August 2023,12:00PM - 1:00PM",
			want: time.Date(2023, time.August, 22, 12, 0, 0, 0, time.UTC),
		},
		{in: "Thursday 3rd August 2023 9:00pm - 10:00pm", wantErr: true},
		{in: "3rd August 2023, 9:00pm - 10:00pm", wantErr: true},
		{in: "Thursday 3 August 2023, 9:00pm - 10:00pm", wantErr: true},
		{in: "Thursday 3rd Augtober 2023, 9:00pm - 10:00pm", wantErr: true},
		{in: "Thursday 3rd August 2023, 21:00 - 22:00", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSlotTime(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrMalformedDateTime)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
