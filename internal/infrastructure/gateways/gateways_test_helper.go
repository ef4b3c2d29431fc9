package gateways

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

func createBalanceTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE balances (
		wallet_address TEXT NOT NULL,
		token TEXT NOT NULL,
		amount REAL NOT NULL DEFAULT 0,
		updated_at DATETIME,
		PRIMARY KEY (wallet_address, token)
	);`)
}

func createCustodyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE custody_records (
		id TEXT PRIMARY KEY,
		asset_id TEXT NOT NULL,
		status TEXT NOT NULL,
		held_for TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		wallet_address TEXT PRIMARY KEY,
		display_nickname TEXT,
		updated_at DATETIME
	);`)
}
