package journal

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &SQLite{db: db}, nil
}

// Times are stored in UTC so range queries compare like with like.
func (j *SQLite) RecordTransaction(t TransactionRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(tx_id, time, location, commodity, action, quantity, unit_price, total)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Time.UTC(), t.Location, t.Commodity, t.Action,
		t.Quantity, t.UnitPrice, t.Total,
	)
	return err
}

func (j *SQLite) RecordTick(r TickRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO ticks
		(time, elapsed_seconds, records, shocks, replenished)
		VALUES (?, ?, ?, ?, ?)`,
		r.Time.UTC(), r.Elapsed.Seconds(), r.Records, r.Shocks, r.Replenished,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
