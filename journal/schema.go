// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
	tx_id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	location TEXT NOT NULL,
	commodity TEXT NOT NULL,
	action TEXT NOT NULL,
	quantity INTEGER NOT NULL,
	unit_price INTEGER NOT NULL,
	total INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS ticks (
	time DATETIME NOT NULL,
	elapsed_seconds REAL NOT NULL,
	records INTEGER NOT NULL,
	shocks INTEGER NOT NULL,
	replenished INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_time ON transactions(time);
CREATE INDEX IF NOT EXISTS idx_transactions_location ON transactions(location);
CREATE INDEX IF NOT EXISTS idx_ticks_time ON ticks(time);
`
