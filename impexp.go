package portfolio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/gocarina/gocsv"
)

// This file is the import boundary: it turns broker CSV exports into a
// normalized Ledger. Two formats are recognized, the Revolut trades export
// and the "Mi cartera" export. All schema quirks are resolved here, once,
// so the reconciliation core never sees a raw row.

// carteraRow matches the "Mi cartera" export schema.
type carteraRow struct {
	Symbol     string `csv:"Symbol"`
	Side       string `csv:"Side"`
	Qty        string `csv:"Qty"`
	FillPrice  string `csv:"Fill Price"`
	Commission string `csv:"Commission"`
	ClosingAt  string `csv:"Closing Time"`
}

// revolutRow matches the Revolut trades export schema.
type revolutRow struct {
	Date        string `csv:"Date"`
	Ticker      string `csv:"Ticker"`
	Type        string `csv:"Type"`
	Quantity    string `csv:"Quantity"`
	Price       string `csv:"Price per share"`
	TotalAmount string `csv:"Total Amount"`
	Currency    string `csv:"Currency"`
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05.000Z",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ImportCartera reads a "Mi cartera" export into a ledger. The export
// stores a dividend's cash amount in the Qty column; that quirk is mapped
// into Transaction.Amount here so it never masquerades as a share count
// downstream.
func ImportCartera(r io.Reader, defaultCurrency string) (*Ledger, error) {
	var rows []carteraRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("cannot read cartera export: %w", err)
	}

	txs := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		symbol, currency := ResolveSymbol(row.Symbol, defaultCurrency)
		tx := Transaction{
			Symbol:     symbol,
			Side:       ClassifySide(row.Side),
			Currency:   currency,
			Commission: ParseAmount(row.Commission).Or(0),
			Time:       parseTime(row.ClosingAt),
		}
		switch tx.Side {
		case Buy, Sell:
			tx.Quantity = ParseAmount(row.Qty).Or(0)
			tx.Price = ParseAmount(row.FillPrice)
		default:
			tx.Amount = ParseAmount(row.Qty)
		}
		txs = append(txs, tx)
	}
	return NewLedger(txs...), nil
}

// ImportRevolut reads a Revolut trades export into a ledger. Monetary
// totals arrive currency-qualified ("USD 159.00") and flow through
// ParseAmount unchanged.
func ImportRevolut(r io.Reader, defaultCurrency string) (*Ledger, error) {
	var rows []revolutRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("cannot read revolut export: %w", err)
	}

	txs := make([]Transaction, 0, len(rows))
	for _, row := range rows {
		symbol, currency := ResolveSymbol(row.Ticker, defaultCurrency)
		if row.Currency != "" {
			currency = row.Currency
		}
		tx := Transaction{
			Symbol:   symbol,
			Side:     ClassifySide(row.Type),
			Currency: currency,
			Time:     parseTime(row.Date),
		}
		switch tx.Side {
		case Buy, Sell:
			tx.Quantity = ParseAmount(row.Quantity).Or(0)
			tx.Price = ParseAmount(row.Price)
		default:
			tx.Amount = ParseAmount(row.TotalAmount)
		}
		txs = append(txs, tx)
	}
	return NewLedger(txs...), nil
}

// ImportDir loads every recognized broker export in a directory into one
// ledger: revolut*.csv files first, falling back to "Mi cartera_*.csv".
// File names are concatenated in lexical order so re-imports are
// deterministic.
func ImportDir(dir, defaultCurrency string) (*Ledger, error) {
	if files, _ := filepath.Glob(filepath.Join(dir, "revolut*.csv")); len(files) > 0 {
		return importFiles(files, func(f io.Reader) (*Ledger, error) {
			return ImportRevolut(f, defaultCurrency)
		})
	}
	if files, _ := filepath.Glob(filepath.Join(dir, "Mi cartera_*.csv")); len(files) > 0 {
		return importFiles(files, func(f io.Reader) (*Ledger, error) {
			return ImportCartera(f, defaultCurrency)
		})
	}
	return nil, fmt.Errorf("no broker CSV exports found in %q", dir)
}

func importFiles(files []string, importOne func(io.Reader) (*Ledger, error)) (*Ledger, error) {
	sort.Strings(files)
	var txs []Transaction
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return nil, fmt.Errorf("cannot open %q: %w", name, err)
		}
		part, err := importOne(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("cannot import %q: %w", name, err)
		}
		for tx := range part.Transactions() {
			txs = append(txs, tx)
		}
	}
	return NewLedger(txs...), nil
}
