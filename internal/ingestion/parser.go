// Package ingestion normalizes bulk refund input into the batch model.
// Tabular and structured inputs go through the same normalization: rows
// with a zero or negative amount are dropped before the batch ever reaches
// the validation phase.
package ingestion

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/go-petr/promo-ledger/internal/domain"
)

var (
	// ErrMissingKeyColumn indicates that no promoter id column was recognized.
	ErrMissingKeyColumn = errors.New("no promoter id column found, expected one of promoterid, userid, id")
	// ErrMissingAmountColumn indicates that no amount column was recognized.
	ErrMissingAmountColumn = errors.New("no amount column found")
)

// keyColumns are the recognized promoter id header names, after normalization.
var keyColumns = map[string]bool{
	"promoterid": true,
	"userid":     true,
	"id":         true,
}

// ParseCSV parses comma-delimited refund input with a header row.
//
// Recognized columns: promoterid|userid|id, amount, reason. Column names are
// matched case-insensitively with underscores and spaces ignored. Rows with
// a non-positive amount are dropped; malformed amounts fail the whole parse
// with the offending line number.
func ParseCSV(data []byte) (domain.Batch, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return domain.Batch{}, fmt.Errorf("read header: %w", err)
	}

	keyIdx, amountIdx, reasonIdx := -1, -1, -1

	for i, name := range header {
		switch normalized := normalizeColumn(name); {
		case keyColumns[normalized] && keyIdx == -1:
			keyIdx = i
		case normalized == "amount" && amountIdx == -1:
			amountIdx = i
		case normalized == "reason" && reasonIdx == -1:
			reasonIdx = i
		}
	}

	if keyIdx == -1 {
		return domain.Batch{}, ErrMissingKeyColumn
	}

	if amountIdx == -1 {
		return domain.Batch{}, ErrMissingAmountColumn
	}

	batch := domain.Batch{ID: uuid.NewString()}
	lineNum := 1

	for {
		lineNum++

		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return domain.Batch{}, fmt.Errorf("line %d: %w", lineNum, err)
		}

		if keyIdx >= len(row) || amountIdx >= len(row) {
			continue
		}

		key := strings.TrimSpace(row[keyIdx])
		if key == "" {
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row[amountIdx]))
		if err != nil {
			return domain.Batch{}, fmt.Errorf("line %d amount: %w", lineNum, err)
		}

		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		reason := ""
		if reasonIdx != -1 && reasonIdx < len(row) {
			reason = strings.TrimSpace(row[reasonIdx])
		}

		batch.Items = append(batch.Items, domain.BatchItem{
			Key:    key,
			Amount: amount,
			Reason: reason,
			Status: domain.StatusPending,
		})
	}

	return batch, nil
}

// FromRows normalizes structured list input into a batch, applying the same
// drop rule for non-positive amounts as the tabular parser.
func FromRows(rows []domain.RefundRow) (domain.Batch, error) {
	batch := domain.Batch{ID: uuid.NewString()}

	for i, row := range rows {
		key := strings.TrimSpace(row.PromoterUserID)
		if key == "" {
			continue
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(row.Amount))
		if err != nil {
			return domain.Batch{}, fmt.Errorf("row %d amount: %w", i+1, err)
		}

		if amount.LessThanOrEqual(decimal.Zero) {
			continue
		}

		batch.Items = append(batch.Items, domain.BatchItem{
			Key:    key,
			Amount: amount,
			Reason: strings.TrimSpace(row.Reason),
			Status: domain.StatusPending,
		})
	}

	return batch, nil
}

func normalizeColumn(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, "_", "")
	name = strings.ReplaceAll(name, " ", "")

	return name
}
