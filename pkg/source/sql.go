// pkg/source/sql.go
package source

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/connector"
	"github.com/David-Botos/data-quality/pkg/model"
)

// TableReader loads database tables as datasets
type TableReader struct {
	db      *sqlx.DB
	logger  *zap.Logger
	timeout time.Duration
}

// NewTableReader wraps a connector's pool for map-based row scanning
func NewTableReader(conn connector.DatabaseConnector, logger *zap.Logger) *TableReader {
	return &TableReader{
		db:      sqlx.NewDb(conn.DB(), conn.DriverName()),
		logger:  logger,
		timeout: 5 * time.Minute,
	}
}

// WithTimeout sets a custom timeout for table reads
func (r *TableReader) WithTimeout(timeout time.Duration) *TableReader {
	r.timeout = timeout
	return r
}

// QuoteTable quotes a table name, honoring a schema qualifier (schema.table)
func QuoteTable(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", errors.New("table name cannot be empty")
	}
	parts := strings.Split(name, ".")
	quoted := make([]string, len(parts))
	for i, part := range parts {
		if part == "" {
			return "", fmt.Errorf("invalid table name: %q", name)
		}
		quoted[i] = pq.QuoteIdentifier(part)
	}
	return strings.Join(quoted, "."), nil
}

// ReadTable reads up to limit rows of a table (0 means all rows).
// Column order follows the result set.
func (r *TableReader) ReadTable(ctx context.Context, table string, limit int) (model.Dataset, error) {
	quoted, err := QuoteTable(table)
	if err != nil {
		return model.Dataset{}, err
	}

	query := "SELECT * FROM " + quoted
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.logger.Info("Reading table",
		zap.String("table", table),
		zap.Int("limit", limit))

	rows, err := r.db.QueryxContext(ctx, query)
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to query table %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return model.Dataset{}, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}

	var data []model.Row
	for rows.Next() {
		raw := make(map[string]interface{}, len(columns))
		if err := rows.MapScan(raw); err != nil {
			return model.Dataset{}, fmt.Errorf("failed to scan row %d of %s: %w", len(data), table, err)
		}
		data = append(data, normalizeRow(raw))
	}
	if err := rows.Err(); err != nil {
		return model.Dataset{}, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}

	ds := model.NewDataset(columns, data)
	if !hasUsableRows(ds) {
		return model.Dataset{}, fmt.Errorf("table %s: %w", table, ErrNoUsableRows)
	}

	r.logger.Info("Table loaded",
		zap.String("table", table),
		zap.Int("rows", ds.Len()),
		zap.Int("columns", len(columns)))

	return ds, nil
}

// normalizeRow maps driver values onto dataset cells
func normalizeRow(raw map[string]interface{}) model.Row {
	row := make(model.Row, len(raw))
	for k, v := range raw {
		row[k] = normalizeCell(v)
	}
	return row
}
