// pkg/store/audit.go
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"fortio.org/safecast"
	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/connector"
	"github.com/David-Botos/data-quality/pkg/converter"
	"github.com/David-Botos/data-quality/pkg/model"
)

// AuditTable is the tracking table for cleaning operations
const AuditTable = "cleaning_audit"

// AuditSink records cleaning operations into a SQL tracking table
type AuditSink struct {
	db      *sql.DB
	driver  string
	logger  *zap.Logger
	timeout time.Duration
}

// NewAuditSink creates the sink and ensures the tracking table exists
func NewAuditSink(ctx context.Context, conn connector.DatabaseConnector, logger *zap.Logger) (*AuditSink, error) {
	if conn == nil {
		return nil, errors.New("audit connector cannot be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	sink := &AuditSink{
		db:      conn.DB(),
		driver:  conn.DriverName(),
		logger:  logger,
		timeout: 30 * time.Second,
	}

	if err := sink.setupAuditTable(ctx, conn); err != nil {
		return nil, err
	}
	return sink, nil
}

// setupAuditTable ensures the tracking table exists
func (s *AuditSink) setupAuditTable(ctx context.Context, conn connector.DatabaseConnector) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	cleanedAt := "TIMESTAMP"
	if s.driver == "pgx" {
		idColumn = "id SERIAL PRIMARY KEY"
		cleanedAt = "TIMESTAMP WITH TIME ZONE"
	}

	createTableSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			%s,
			dataset TEXT NOT NULL,
			column_name TEXT NOT NULL,
			row_index INTEGER NOT NULL,
			row_identifier TEXT,
			original_value TEXT,
			new_value TEXT NOT NULL,
			cleaning_operation TEXT NOT NULL,
			cleaning_reason TEXT NOT NULL,
			cleaned_at %s NOT NULL
		)
	`, AuditTable, idColumn, cleanedAt)

	if _, err := conn.ExecWithTimeout(ctx, createTableSQL, 10*time.Second); err != nil {
		return fmt.Errorf("failed to create audit table: %w", err)
	}

	s.logger.Info("Ensured audit table exists", zap.String("table", AuditTable))
	return nil
}

// placeholders returns n bind parameters in the driver's syntax
func (s *AuditSink) placeholders(n int) string {
	params := make([]string, n)
	for i := range params {
		if s.driver == "pgx" {
			params[i] = fmt.Sprintf("$%d", i+1)
		} else {
			params[i] = "?"
		}
	}
	return strings.Join(params, ", ")
}

// RecordCleaningOperations batch inserts cleaning operations into the tracking table
func (s *AuditSink) RecordCleaningOperations(ctx context.Context, operations []model.CleaningOperation) error {
	if len(operations) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// Begin transaction
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := s.insertOperations(ctx, tx, operations); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			s.logger.Error("Failed to rollback transaction",
				zap.Error(rbErr),
				zap.NamedError("cause", err))
		}
		return err
	}

	// Commit transaction
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Recorded cleaning operations", zap.Int("count", len(operations)))
	return nil
}

func (s *AuditSink) insertOperations(ctx context.Context, tx *sql.Tx, operations []model.CleaningOperation) error {
	// Prepare statement
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s
		(dataset, column_name, row_index, row_identifier, original_value, new_value,
		 cleaning_operation, cleaning_reason, cleaned_at)
		VALUES (%s)
	`, AuditTable, s.placeholders(9)))
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, op := range operations {
		rowIndex, err := safecast.Conv[int32](op.RowIndex)
		if err != nil {
			return fmt.Errorf("row index %d out of range: %w", op.RowIndex, err)
		}
		cleanedAt := op.CleanedAt
		if cleanedAt.IsZero() {
			cleanedAt = time.Now().UTC()
		}

		if _, err := stmt.ExecContext(ctx,
			op.Dataset,
			op.ColumnName,
			rowIndex,
			toNullableString(op.RowIdentifier),
			toNullableString(op.OriginalValue),
			converter.ToString(op.NewValue),
			op.CleaningOperation,
			op.CleaningReason,
			cleanedAt,
		); err != nil {
			return fmt.Errorf("failed to insert cleaning operation: %w", err)
		}
	}
	return nil
}

// CountOperations returns how many operations were recorded for a dataset
func (s *AuditSink) CountOperations(ctx context.Context, dataset string) (int, error) {
	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE dataset = %s", AuditTable, s.placeholders(1))

	var count int64
	if err := s.db.QueryRowContext(ctx, query, dataset).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cleaning operations: %w", err)
	}

	n, err := safecast.Conv[int](count)
	if err != nil {
		return 0, fmt.Errorf("operation count out of range: %w", err)
	}
	return n, nil
}

// toNullableString maps missing values to SQL NULL
func toNullableString(v interface{}) sql.NullString {
	if converter.IsMissing(v) {
		return sql.NullString{}
	}
	return sql.NullString{String: converter.ToString(v), Valid: true}
}
