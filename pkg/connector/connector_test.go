package connector

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/config"
)

func TestSQLiteConnector(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "dq.db")

	conn, err := NewSQLiteConnector(ctx, path)
	if err != nil {
		t.Fatalf("NewSQLiteConnector: %v", err)
	}
	defer conn.Close()

	if err := conn.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if conn.DriverName() != "sqlite" {
		t.Fatalf("driver = %s", conn.DriverName())
	}

	for _, stmt := range []string{
		"CREATE TABLE people (id INTEGER, name TEXT)",
		"CREATE TABLE audit (id INTEGER)",
	} {
		if _, err := conn.ExecWithTimeout(ctx, stmt, time.Second); err != nil {
			t.Fatalf("exec %q: %v", stmt, err)
		}
	}

	tables, err := conn.ListTables(ctx)
	if err != nil {
		t.Fatalf("ListTables: %v", err)
	}
	if !reflect.DeepEqual(tables, []string{"audit", "people"}) {
		t.Fatalf("tables = %v", tables)
	}
}

func TestFactoryRejectsUnconfiguredSources(t *testing.T) {
	ctx := context.Background()
	factory := NewConnectorFactory(&config.Config{AuditDriver: "sqlite"}, zap.NewNop())

	if _, err := factory.CreateSourceConnector(ctx, "oracle", ""); err == nil {
		t.Fatal("expected an error for an unknown source")
	}
	if _, err := factory.CreateSourceConnector(ctx, SourceSQLite, ""); err == nil {
		t.Fatal("expected an error for sqlite without a path")
	}
	if _, err := factory.CreateSourceConnector(ctx, SourcePostgres, ""); err == nil {
		t.Fatal("expected an error for unconfigured postgres")
	}
	if _, err := factory.CreateSnowflakeConnector(ctx); err == nil {
		t.Fatal("expected an error for unconfigured snowflake")
	}
	if _, err := factory.CreateAuditConnector(ctx); err == nil {
		t.Fatal("expected an error without an audit DSN")
	}
}

func TestFactoryAuditSQLite(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		AuditDriver: "sqlite",
		AuditDSN:    filepath.Join(t.TempDir(), "audit.db"),
	}

	conn, err := NewConnectorFactory(cfg, zap.NewNop()).CreateAuditConnector(ctx)
	if err != nil {
		t.Fatalf("CreateAuditConnector: %v", err)
	}
	defer conn.Close()

	if conn.DriverName() != "sqlite" {
		t.Fatalf("driver = %s", conn.DriverName())
	}
}
