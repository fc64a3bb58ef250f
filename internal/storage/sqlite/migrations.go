package sqlite

import "database/sql"

// schema contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
const schema = `
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    email TEXT NOT NULL UNIQUE,
    display_name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS finance_calculations (
    id TEXT PRIMARY KEY,
    listing_id TEXT,
    user_id TEXT NOT NULL,
    boat_price REAL NOT NULL,
    down_payment REAL NOT NULL,
    loan_amount REAL NOT NULL,
    interest_rate REAL NOT NULL,
    term_months INTEGER NOT NULL,
    monthly_payment REAL NOT NULL,
    total_interest REAL NOT NULL,
    total_cost REAL NOT NULL,
    saved INTEGER NOT NULL DEFAULT 0,
    shared INTEGER NOT NULL DEFAULT 0,
    share_token TEXT UNIQUE,
    calculation_notes TEXT,
    lender_name TEXT,
    lender_rate REAL,
    lender_terms TEXT,
    created_at INTEGER NOT NULL,
    updated_at INTEGER
);

CREATE TABLE IF NOT EXISTS payment_schedule (
    calculation_id TEXT NOT NULL,
    payment_number INTEGER NOT NULL,
    payment_date INTEGER NOT NULL,
    principal_amount REAL NOT NULL,
    interest_amount REAL NOT NULL,
    total_payment REAL NOT NULL,
    remaining_balance REAL NOT NULL,
    PRIMARY KEY (calculation_id, payment_number),
    FOREIGN KEY (calculation_id) REFERENCES finance_calculations(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_finance_calculations_user_created ON finance_calculations(user_id, created_at);
CREATE INDEX IF NOT EXISTS idx_payment_schedule_calculation_id ON payment_schedule(calculation_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
