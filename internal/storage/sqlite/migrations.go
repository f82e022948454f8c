package sqlite

import "database/sql"

// schema sets up the tables on startup.
// Numeric item columns are nullable: NULL means the value was never provided.
const schema = `
CREATE TABLE IF NOT EXISTS romaneios (
    id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL UNIQUE,
    number TEXT NOT NULL,
    title TEXT NOT NULL,
    type TEXT NOT NULL,
    status TEXT NOT NULL,
    created_by TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS items (
    id TEXT NOT NULL,
    romaneio_id TEXT NOT NULL,
    position INTEGER NOT NULL,
    kind TEXT NOT NULL,
    product_code TEXT NOT NULL DEFAULT '',
    product_name TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    notes TEXT NOT NULL DEFAULT '',
    location TEXT NOT NULL DEFAULT '',
    category TEXT NOT NULL DEFAULT '',
    source TEXT NOT NULL DEFAULT '',
    quantity INTEGER,
    unit TEXT NOT NULL DEFAULT '',
    weight REAL,
    estimated_weight REAL,
    volume REAL,
    confidence REAL,
    is_cleaned INTEGER NOT NULL DEFAULT 0,
    is_verified INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (romaneio_id, id),
    FOREIGN KEY (romaneio_id) REFERENCES romaneios(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_items_romaneio_position ON items(romaneio_id, position);
CREATE INDEX IF NOT EXISTS idx_romaneios_type ON romaneios(type);
CREATE INDEX IF NOT EXISTS idx_romaneios_status ON romaneios(status);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
