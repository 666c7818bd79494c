// Command receipt-reader parses a single receipt PDF or text dump and prints
// the result without touching the database.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"

	"github.com/BerylCAtieno/receipt-reader-api/internal/receipt"
	"github.com/BerylCAtieno/receipt-reader-api/internal/utils"
)

const currency = money.GBP

func main() {
	file := flag.String("file", "", "path to a receipt PDF or text dump")
	format := flag.String("format", "text", "output format: text, json or csv")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger := utils.NewLoggerWithWriter(os.Stderr, *logLevel, "text")

	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		logger.Fatal("Failed to read receipt", "error", err, "file", *file)
	}

	result, err := receipt.ParseDocument(data, "")
	if err != nil {
		logger.Fatal("Failed to parse receipt", "error", err, "file", *file)
	}

	logger.Debug("Receipt parsed", "order_id", result.Header.OrderID, "layout", result.Header.CardLayout)

	switch *format {
	case "json":
		err = writeJSON(os.Stdout, result)
	case "csv":
		err = result.Table.WriteCSV(os.Stdout)
	case "text":
		err = writeText(os.Stdout, result)
	default:
		logger.Fatal("Unknown output format", "format", *format)
	}
	if err != nil {
		logger.Fatal("Failed to write output", "error", err)
	}
}

func writeJSON(w io.Writer, result *receipt.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(map[string]any{
		"receipt": result.Document(),
		"units":   result.Units,
	})
}

func writeText(w io.Writer, result *receipt.Result) error {
	h := result.Header
	fmt.Fprintf(w, "Order:     %s\n", h.OrderID)
	fmt.Fprintf(w, "Slot:      %s\n", h.SlotTime.Format("Mon 2 Jan 2006 15:04"))
	fmt.Fprintf(w, "Total:     %s\n", display(h.TotalPrice))
	fmt.Fprintf(w, "Card:      **** %04d\n\n", h.PaymentCardSuffix)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ITEM\tAMOUNT\tPRICE")
	for _, it := range result.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", it.Name, amount(it), display(it.Price))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fmt.Fprintf(w, "\n%d items, %d units, table total %s\n",
		len(result.Items), len(result.Units), display(result.Table.Total()))
	return nil
}

func amount(it receipt.Item) string {
	if it.IsWeighed() {
		return it.Weight.String() + receipt.WeightUnit
	}
	if it.Quantity != nil {
		return fmt.Sprintf("x%d", *it.Quantity)
	}
	return ""
}

// display formats d as pounds, rounded to the penny.
func display(d decimal.Decimal) string {
	pence := d.Shift(2).Round(0).IntPart()
	return money.New(pence, currency).Display()
}
