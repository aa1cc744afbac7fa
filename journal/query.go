package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const transactionColumns = `tx_id, time, location, commodity, action, quantity, unit_price, total`

// GetTransaction returns a single transaction by ID.
func (j *SQLite) GetTransaction(txID string) (TransactionRecord, error) {
	row := j.db.QueryRow(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE tx_id = ?`, txID)

	rec, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TransactionRecord{}, fmt.Errorf("transaction %q not found", txID)
		}
		return TransactionRecord{}, err
	}
	return rec, nil
}

// ListTransactionsBetween returns transactions whose time is within [start, end).
func (j *SQLite) ListTransactionsBetween(start, end time.Time) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, tx_id ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// ListTransactionsAt returns every transaction made at a location, oldest first.
func (j *SQLite) ListTransactionsAt(location string) ([]TransactionRecord, error) {
	rows, err := j.db.Query(`
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE location = ?
		ORDER BY time ASC, tx_id ASC`, location)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// ListTicksBetween returns tick summaries whose time is within [start, end).
func (j *SQLite) ListTicksBetween(start, end time.Time) ([]TickRecord, error) {
	rows, err := j.db.Query(`
		SELECT time, elapsed_seconds, records, shocks, replenished
		FROM ticks
		WHERE time >= ? AND time < ?
		ORDER BY time ASC`, start.UTC(), end.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TickRecord
	for rows.Next() {
		var (
			rec     TickRecord
			elapsed float64
		)
		if err := rows.Scan(&rec.Time, &elapsed, &rec.Records, &rec.Shocks, &rec.Replenished); err != nil {
			return nil, err
		}
		rec.Elapsed = time.Duration(elapsed * float64(time.Second))
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransaction(s scanner) (TransactionRecord, error) {
	var rec TransactionRecord
	err := s.Scan(
		&rec.ID,
		&rec.Time,
		&rec.Location,
		&rec.Commodity,
		&rec.Action,
		&rec.Quantity,
		&rec.UnitPrice,
		&rec.Total,
	)
	return rec, err
}

func collectTransactions(rows *sql.Rows) ([]TransactionRecord, error) {
	defer rows.Close()

	var out []TransactionRecord
	for rows.Next() {
		rec, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
