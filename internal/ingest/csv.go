// Package ingest reads starting-balance snapshots out of spreadsheet
// exports. It owns only the boundary: a file goes in, a BalanceSnapshot
// comes out, and the projection engine never learns where it came from.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/cashplan/internal/domain"
	"github.com/shopspring/decimal"
)

// LoadSnapshotCSV reads an account-per-row balance export:
//
//	account,balance,pending,statement
//	checking,1043.22,,
//	card_a,512.80,120.00,480.00
//
// Pending and statement cells are ignored for the checking row; empty cells
// read as zero. Unknown account names are an error.
func LoadSnapshotCSV(filename string) (*domain.BalanceSnapshot, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot %s: %w", filename, err)
	}
	defer f.Close()

	snap, err := ReadSnapshot(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %s: %w", filename, err)
	}
	return snap, nil
}

// ReadSnapshot parses snapshot CSV from a reader.
func ReadSnapshot(r io.Reader) (*domain.BalanceSnapshot, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header row: %w", err)
	}
	if len(header) < 2 || !strings.EqualFold(strings.TrimSpace(header[0]), "account") {
		return nil, fmt.Errorf("unexpected header %q, want account,balance,pending,statement", strings.Join(header, ","))
	}

	snap := domain.NewBalanceSnapshot()
	sawChecking := false

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		account := strings.ToLower(strings.TrimSpace(record[0]))
		balance, err := parseCell(record, 1)
		if err != nil {
			return nil, fmt.Errorf("account %s: bad balance: %w", account, err)
		}

		if account == "checking" {
			snap.Checking = balance
			sawChecking = true
			continue
		}

		var card domain.Card
		if err := card.UnmarshalText([]byte(account)); err != nil {
			return nil, fmt.Errorf("unknown account %q", account)
		}

		pending, err := parseCell(record, 2)
		if err != nil {
			return nil, fmt.Errorf("account %s: bad pending: %w", account, err)
		}
		statement, err := parseCell(record, 3)
		if err != nil {
			return nil, fmt.Errorf("account %s: bad statement: %w", account, err)
		}

		snap.Balances[card] = balance
		snap.Pending[card] = pending
		snap.Statements[card] = statement
	}

	if !sawChecking {
		return nil, fmt.Errorf("snapshot has no checking row")
	}
	return snap, nil
}

func parseCell(record []string, idx int) (decimal.Decimal, error) {
	if idx >= len(record) {
		return decimal.Zero, nil
	}
	cell := strings.TrimSpace(record[idx])
	cell = strings.TrimPrefix(cell, "$")
	cell = strings.ReplaceAll(cell, ",", "")
	if cell == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(cell)
}
