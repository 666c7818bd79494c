package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SlotTimeLayout is the slot grammar once the ordinal suffix is removed,
// e.g. "Thursday 3 August 2023 9:00pm".
const SlotTimeLayout = "Monday 2 January 2006 3:04pm"

const (
	FieldOrderID     = "order_id"
	FieldSlotTime    = "slot_time"
	FieldTotalPrice  = "total_price"
	FieldPaymentCard = "payment_card"
)

// ExtractHeader scans lines once for the order id, slot time, total paid
// and payment card suffix. The scan stops at the payment card marker.
func (l Layout) ExtractHeader(lines []string) (Header, error) {
	var (
		h                    Header
		orderID, slot, total string
		card                 string
		haveOrder, haveSlot  bool
		haveTotal, haveCard  bool
	)

	for i, line := range lines {
		if strings.HasPrefix(line, l.OrderMarker) {
			_, v, _ := strings.Cut(line, ":")
			orderID = strings.TrimSpace(v)
			haveOrder = true
		}

		if strings.HasPrefix(line, l.SlotMarker) {
			// The value holds colons of its own, only the first one separates it.
			slot = strings.TrimSpace(line[strings.Index(line, ":")+1:])
			haveSlot = true
		}

		if strings.HasPrefix(line, l.TotalMarker) {
			total = line
			haveTotal = true
		}

		if layout, ok := l.matchCard(line); ok {
			digits, ok := layout.Digits(lines, i)
			if !ok {
				return Header{}, fmt.Errorf("%w: %s layout has no digits after line %d", ErrMalformedCardSuffix, layout.Name, i)
			}
			card = digits
			h.CardLayout = layout.Name
			haveCard = true
			break
		}
	}

	switch {
	case !haveOrder:
		return Header{}, &MissingHeaderFieldError{Field: FieldOrderID}
	case !haveSlot:
		return Header{}, &MissingHeaderFieldError{Field: FieldSlotTime}
	case !haveTotal:
		return Header{}, &MissingHeaderFieldError{Field: FieldTotalPrice}
	case !haveCard:
		return Header{}, &MissingHeaderFieldError{Field: FieldPaymentCard}
	}

	slotTime, err := ParseSlotTime(slot)
	if err != nil {
		return Header{}, err
	}

	totalPrice, err := parseTotal(total)
	if err != nil {
		return Header{}, err
	}

	suffix, err := parseCardSuffix(card)
	if err != nil {
		return Header{}, err
	}

	h.OrderID = orderID
	h.SlotTime = slotTime
	h.TotalPrice = totalPrice
	h.PaymentCardSuffix = suffix
	return h, nil
}

// ParseSlotTime converts "Thursday 3rd August 2023, 9:00pm - 10:00pm" into
// the start of the delivery slot.
func ParseSlotTime(value string) (time.Time, error) {
	date, hours, ok := strings.Cut(value, ",")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: no date/time separator in %q", ErrMalformedDateTime, value)
	}

	parts := strings.Fields(date)
	if len(parts) != 4 {
		return time.Time{}, fmt.Errorf("%w: expected weekday, day, month and year in %q", ErrMalformedDateTime, date)
	}
	weekday, day, month, year := parts[0], parts[1], parts[2], parts[3]

	// st, nd, rd, th
	if len(day) < 3 {
		return time.Time{}, fmt.Errorf("%w: day %q has no ordinal suffix", ErrMalformedDateTime, day)
	}
	day = day[:len(day)-2]

	start, _, _ := strings.Cut(hours, " - ")
	start = strings.ToLower(strings.TrimSpace(start))

	joined := strings.Join([]string{weekday, day, month, year, start}, " ")
	t, err := time.Parse(SlotTimeLayout, joined)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", ErrMalformedDateTime, err)
	}
	return t, nil
}

func parseTotal(line string) (decimal.Decimal, error) {
	_, v, ok := strings.Cut(line, CurrencySymbol)
	if !ok {
		return decimal.Decimal{}, fmt.Errorf("%w: no %s in %q", ErrInvalidPrice, CurrencySymbol, line)
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: total %q: %v", ErrInvalidPrice, v, err)
	}
	return d, nil
}

func parseCardSuffix(digits string) (int, error) {
	if len(digits) != 4 {
		return 0, fmt.Errorf("%w: %q", ErrMalformedCardSuffix, digits)
	}
	for _, c := range digits {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrMalformedCardSuffix, digits)
		}
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformedCardSuffix, err)
	}
	return n, nil
}
