package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// MaxQuantity is the largest unit count a single entry may carry. Larger
// counts are rejected since every unit becomes its own record.
const MaxQuantity = 1000

// carry holds the text of wrapped lines that have not reached a price yet.
// length is the byte offset the price marker shifts by once the carried
// text is prefixed onto the line that holds it.
type carry struct {
	text   string
	length int
}

// SegmentItems splits the item region into one Item per logical entry.
// A line without a price continues on the next line.
func SegmentItems(lines []string) ([]Item, error) {
	var (
		c     carry
		items []Item
	)

	for _, line := range lines {
		next, item, err := step(c, line)
		if err != nil {
			return nil, err
		}
		c = next
		if item != nil {
			items = append(items, *item)
		}
	}

	if strings.TrimSpace(c.text) != "" {
		return nil, fmt.Errorf("%w: %q", ErrUnterminatedItemEntry, c.text)
	}
	return items, nil
}

func step(c carry, line string) (carry, *Item, error) {
	pound := strings.LastIndex(line, CurrencySymbol)
	if pound == -1 {
		return carry{text: c.text + line, length: c.length + len(line)}, nil, nil
	}

	entry := c.text + line
	pound += c.length

	item, err := splitEntry(entry, pound)
	if err != nil {
		return carry{}, nil, err
	}
	return carry{}, item, nil
}

// splitEntry cuts entry into amount, name and price. The name starts at the
// first upper-case character and ends one character before the currency
// symbol at index pound.
func splitEntry(entry string, pound int) (*Item, error) {
	nameStart := strings.IndexFunc(entry[:pound], unicode.IsUpper)
	if nameStart == -1 {
		return nil, fmt.Errorf("%w: %q", ErrMissingItemName, entry)
	}

	_, size := utf8.DecodeLastRuneInString(entry[nameStart:pound])
	nameEnd := pound - size

	amount := strings.TrimSpace(entry[:nameStart])
	name := entry[nameStart:nameEnd]
	priceText := strings.TrimSpace(entry[pound+len(CurrencySymbol):])

	price, err := decimal.NewFromString(priceText)
	if err != nil {
		return nil, fmt.Errorf("%w: %q in line %q", ErrInvalidPrice, priceText, entry)
	}

	item := &Item{Name: name, Price: price}
	if err := classifyAmount(item, amount, entry); err != nil {
		return nil, err
	}
	return item, nil
}

// classifyAmount sets either the weight or the quantity of item from the
// amount zone. Text after the leading digits is a lower-case brand name
// that slipped past the upper-case heuristic; it is moved back onto the name.
// An empty amount zone is a single unit.
func classifyAmount(item *Item, amount, entry string) error {
	if amount == "" {
		one := 1
		item.Quantity = &one
		return nil
	}

	if strings.HasSuffix(amount, WeightUnit) {
		w, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(amount, WeightUnit)))
		if err != nil || w.IsNegative() {
			return &InvalidAmountError{Text: amount, Line: entry}
		}
		item.Weight = &w
		return nil
	}

	digits, leftover := amount, ""
	for i, r := range amount {
		if r < '0' || r > '9' {
			digits, leftover = amount[:i], strings.TrimSpace(amount[i:])
			break
		}
	}

	if leftover != "" {
		item.Name = leftover + " " + item.Name
	}

	if digits == "" {
		// The brand took the whole amount zone; a single unit is implied.
		one := 1
		item.Quantity = &one
		return nil
	}

	q, err := strconv.Atoi(digits)
	if err != nil || q < 1 || q > MaxQuantity {
		return &InvalidAmountError{Text: amount, Line: entry}
	}
	item.Quantity = &q
	return nil
}
