package receipt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemRegion(t *testing.T) {
	layout := DefaultLayout()

	t.Run("uses the last start marker", func(t *testing.T) {
		lines := []string{
			"Delivery summary (see below)",
			"Order summary on page 2",
			"Delivery summary",
			"1 Bread £1.10",
			"Order summary",
		}

		region, err := layout.ItemRegion(lines)
		require.NoError(t, err)
		assert.Equal(t, []string{"1 Bread £1.10"}, region)
	})

	t.Run("either start marker counts", func(t *testing.T) {
		lines := []string{"Delivery summary", "Groceries", "1 Bread £1.10", "Order summary"}

		region, err := layout.ItemRegion(lines)
		require.NoError(t, err)
		assert.Equal(t, []string{"1 Bread £1.10"}, region)
	})

	t.Run("empty region", func(t *testing.T) {
		region, err := layout.ItemRegion([]string{"Groceries", "Order summary"})
		require.NoError(t, err)
		assert.Empty(t, region)
	})

	t.Run("missing start", func(t *testing.T) {
		_, err := layout.ItemRegion([]string{"1 Bread £1.10", "Order summary"})
		assert.ErrorIs(t, err, ErrMissingSectionMarker)
	})

	t.Run("missing end", func(t *testing.T) {
		_, err := layout.ItemRegion([]string{"Groceries", "1 Bread £1.10"})
		assert.ErrorIs(t, err, ErrMissingSectionMarker)
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := layout.ItemRegion([]string{"Order summary", "Groceries", "1 Bread £1.10"})

		var markerErr *MissingSectionMarkerError
		require.ErrorAs(t, err, &markerErr)
		assert.Equal(t, "Order summary", markerErr.Marker)
	})
}
