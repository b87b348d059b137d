package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"go-gin-ticket-inventory/config"
	"go-gin-ticket-inventory/internal/database"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// SetupDB 每個測試一個獨立的 in-memory SQLite，結束時關閉
// 只開一條連線：交易內的查詢必須走 tx，否則會卡住
func SetupDB(t testing.TB) *bun.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqldb.SetMaxOpenConns(1)
	sqldb.SetMaxIdleConns(1)
	sqldb.SetConnMaxLifetime(0)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	if err := database.CreateSchema(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// SetupRedis 以 miniredis 取代真正的 Redis
func SetupRedis(t testing.TB) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("failed to connect to miniredis: %v", err)
	}

	t.Cleanup(func() {
		client.Close()
	})
	return client, mr
}

// LockConfig 測試用的場次鎖設定 (等待時間放寬，避免並發測試誤判)
func LockConfig() config.LockConfig {
	return config.LoadTestConfig().Lock
}
