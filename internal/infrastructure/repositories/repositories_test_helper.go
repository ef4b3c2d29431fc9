package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createOwnershipTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE owned_nicknames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		wallet_address TEXT NOT NULL,
		nickname TEXT NOT NULL UNIQUE,
		created_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE active_nicknames (
		wallet_address TEXT PRIMARY KEY,
		nickname TEXT NOT NULL,
		updated_at DATETIME
	);`)
}

func createAssetTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE nickname_assets (
		id TEXT PRIMARY KEY,
		nickname TEXT NOT NULL UNIQUE,
		owner TEXT NOT NULL,
		for_sale BOOLEAN DEFAULT FALSE,
		price REAL,
		last_sale_price REAL,
		custody_id TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE sale_records (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		nickname TEXT NOT NULL,
		seller TEXT NOT NULL,
		buyer TEXT NOT NULL,
		price REAL NOT NULL,
		timestamp DATETIME NOT NULL
	);`)
}

func createListingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE listings (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		nickname TEXT NOT NULL,
		seller TEXT NOT NULL,
		price REAL NOT NULL,
		custody_id TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		closed_at DATETIME
	);`)
}

func createStakeTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE stakes (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL,
		principal REAL NOT NULL,
		start_time DATETIME NOT NULL,
		unlock_time DATETIME NOT NULL,
		is_active BOOLEAN DEFAULT TRUE,
		claimed_rewards REAL DEFAULT 0,
		closed_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPoolTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE liquidity_pools (
		id TEXT PRIMARY KEY,
		reserve_sui REAL NOT NULL,
		reserve_wal REAL NOT NULL,
		fee_rate REAL NOT NULL,
		version INTEGER NOT NULL DEFAULT 0,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE swap_records (
		id TEXT PRIMARY KEY,
		wallet_address TEXT NOT NULL,
		from_token TEXT NOT NULL,
		to_token TEXT NOT NULL,
		amount_in REAL NOT NULL,
		amount_out REAL NOT NULL,
		fee REAL NOT NULL,
		created_at DATETIME
	);`)
}
