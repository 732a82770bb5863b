package db

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type scratchRow struct {
	ID    int
	Label string
}

func openTestConn(t *testing.T) *Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&scratchRow{}); err != nil {
		t.Fatalf("failed to migrate sqlite: %v", err)
	}
	return &Client{conn: conn}
}

func TestExecAndRawRoundTrip(t *testing.T) {
	client := openTestConn(t)
	ctx := context.Background()

	if err := client.Exec(ctx, "INSERT INTO scratch_rows (label) VALUES (?)", "direct").Error; err != nil {
		t.Fatalf("Exec failed: %v", err)
	}

	var labels []string
	if err := client.Raw(ctx, "SELECT label FROM scratch_rows").Scan(&labels).Error; err != nil {
		t.Fatalf("Raw failed: %v", err)
	}
	if len(labels) != 1 || labels[0] != "direct" {
		t.Fatalf("unexpected rows: %v", labels)
	}
}

func TestPing(t *testing.T) {
	client := openTestConn(t)
	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("unexpected ping error: %v", err)
	}
}
