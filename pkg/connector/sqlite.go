// pkg/connector/sqlite.go
package connector

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteConnector implements the DatabaseConnector interface for a local SQLite file
type SQLiteConnector struct {
	db     *sql.DB
	logger *zap.Logger
	path   string
}

// NewSQLiteConnector opens (creating if needed) a SQLite database file
func NewSQLiteConnector(ctx context.Context, path string) (*SQLiteConnector, error) {
	logger := zap.L().Named("sqlite-connector")

	logger.Info("Opening SQLite database", zap.String("path", path))

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite connection: %w", err)
	}

	// SQLite serializes writers; one connection avoids SQLITE_BUSY
	ApplyConnectionSettings(db, 1, 1, 0, 0)

	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to open SQLite database %s: %w", path, err)
	}

	connector := &SQLiteConnector{
		db:     db,
		logger: logger,
		path:   path,
	}

	LogConnectionStats(logger, path, db)
	return connector, nil
}

// DB returns the underlying database connection
func (c *SQLiteConnector) DB() *sql.DB {
	return c.db
}

// DriverName returns the modernc driver name
func (c *SQLiteConnector) DriverName() string {
	return "sqlite"
}

// Validate verifies the SQLite connection
func (c *SQLiteConnector) Validate() error {
	var version string
	if err := c.db.QueryRow("SELECT sqlite_version()").Scan(&version); err != nil {
		return fmt.Errorf("failed to query SQLite version: %w", err)
	}
	c.logger.Info("SQLite connection validated",
		zap.String("version", version),
		zap.String("path", c.path))
	return nil
}

// ListTables returns the user tables of the database
func (c *SQLiteConnector) ListTables(ctx context.Context) ([]string, error) {
	tables, err := scanStrings(ctx, c.db,
		`SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list SQLite tables: %w", err)
	}
	return tables, nil
}

// Close closes the database connection
func (c *SQLiteConnector) Close() error {
	c.logger.Debug("Closing SQLite connection", zap.String("path", c.path))
	return c.db.Close()
}

// ExecWithTimeout executes a statement with a timeout
func (c *SQLiteConnector) ExecWithTimeout(
	ctx context.Context,
	query string,
	timeout time.Duration,
	args ...interface{},
) (sql.Result, error) {
	return execWithTimeout(ctx, c.db, query, timeout, args...)
}
