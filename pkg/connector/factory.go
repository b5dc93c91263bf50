// pkg/connector/factory.go
package connector

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/David-Botos/data-quality/pkg/config"
)

// Source names accepted by CreateSourceConnector
const (
	SourcePostgres  = "postgres"
	SourceSnowflake = "snowflake"
	SourceSQLite    = "sqlite"
)

// ConnectorFactory creates database connectors
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSnowflakeConnector creates a new Snowflake connector
func (f *ConnectorFactory) CreateSnowflakeConnector(ctx context.Context) (*SnowflakeConnector, error) {
	if f.cfg.Snowflake == nil {
		return nil, errors.New("snowflake is not configured (set SNOWFLAKE_ACCOUNT)")
	}

	f.logger.Info("Creating Snowflake connector")

	connector, err := NewSnowflakeConnector(ctx, f.cfg.Snowflake)
	if err != nil {
		return nil, fmt.Errorf("failed to create Snowflake connector: %w", err)
	}

	return connector, nil
}

// CreatePostgresConnector creates a new PostgreSQL connector
func (f *ConnectorFactory) CreatePostgresConnector(ctx context.Context) (*PostgresConnector, error) {
	if f.cfg.Postgres == nil {
		return nil, errors.New("postgreSQL is not configured (set POSTGRES_DB)")
	}

	f.logger.Info("Creating PostgreSQL connector")

	connector, err := NewPostgresConnector(ctx, f.cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to create PostgreSQL connector: %w", err)
	}

	return connector, nil
}

// CreateSourceConnector creates the connector for a named source.
// For sqlite, location is the database file path.
func (f *ConnectorFactory) CreateSourceConnector(ctx context.Context, source, location string) (DatabaseConnector, error) {
	switch source {
	case SourcePostgres:
		return f.CreatePostgresConnector(ctx)
	case SourceSnowflake:
		return f.CreateSnowflakeConnector(ctx)
	case SourceSQLite:
		if location == "" {
			return nil, errors.New("sqlite source requires a database path")
		}
		return NewSQLiteConnector(ctx, location)
	default:
		return nil, fmt.Errorf("unknown source: %s", source)
	}
}

// CreateAuditConnector opens the database that receives cleaning audit records
func (f *ConnectorFactory) CreateAuditConnector(ctx context.Context) (DatabaseConnector, error) {
	if f.cfg.AuditDSN == "" {
		return nil, errors.New("audit sink is not configured (set DQ_AUDIT_DSN)")
	}

	f.logger.Info("Creating audit connector", zap.String("driver", f.cfg.AuditDriver))

	switch f.cfg.AuditDriver {
	case "sqlite":
		return NewSQLiteConnector(ctx, f.cfg.AuditDSN)
	case "pgx":
		pgCfg, err := config.ParsePostgresDSN(f.cfg.AuditDSN)
		if err != nil {
			return nil, err
		}
		return NewPostgresConnector(ctx, pgCfg)
	default:
		return nil, fmt.Errorf("unsupported audit driver: %s", f.cfg.AuditDriver)
	}
}
