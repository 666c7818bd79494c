package receipt

import "strings"

// CardLayout locates the four payment card digits for one generation of
// the receipt layout. The layout is selected by which marker matched.
type CardLayout struct {
	Name   string
	Marker string
	// Digits returns the text holding the card suffix for a marker match at
	// lines[i], or false when the layout cannot supply it.
	Digits func(lines []string, i int) (string, bool)
}

// LegacyCardLayout: the suffix is the first four characters of the line
// after the marker.
var LegacyCardLayout = CardLayout{
	Name:   "legacy",
	Marker: "We took payment on a card ending in",
	Digits: func(lines []string, i int) (string, bool) {
		if i+1 >= len(lines) {
			return "", false
		}
		return runeSlice(lines[i+1], 0, 4)
	},
}

// CurrentCardLayout: the suffix sits at characters 10-14 of the marker line.
var CurrentCardLayout = CardLayout{
	Name:   "current",
	Marker: "ending in",
	Digits: func(lines []string, i int) (string, bool) {
		return runeSlice(lines[i], 10, 14)
	},
}

// Layout is the set of marker strings for one retailer's receipt.
type Layout struct {
	OrderMarker      string
	SlotMarker       string
	TotalMarker      string
	CardLayouts      []CardLayout
	ItemStartMarkers []string
	ItemEndMarker    string
}

// DefaultLayout returns the markers of the Sainsbury's order confirmation.
func DefaultLayout() Layout {
	return Layout{
		OrderMarker:      "Your receipt for order: ",
		SlotMarker:       "Slot time:",
		TotalMarker:      "Total paid",
		CardLayouts:      []CardLayout{LegacyCardLayout, CurrentCardLayout},
		ItemStartMarkers: []string{"Delivery summary", "Groceries"},
		ItemEndMarker:    "Order summary",
	}
}

func (l Layout) matchCard(line string) (CardLayout, bool) {
	for _, c := range l.CardLayouts {
		if strings.HasPrefix(line, c.Marker) {
			return c, true
		}
	}
	return CardLayout{}, false
}

func runeSlice(s string, from, to int) (string, bool) {
	r := []rune(s)
	if len(r) < to {
		return "", false
	}
	return string(r[from:to]), true
}
