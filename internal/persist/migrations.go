package persist

import (
	"context"
	"embed"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

// gooseLogger sends goose progress lines to zap.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.log.Infof(strings.TrimRight(format, "\n"), v...)
}

// Fatalf only logs. The goose commands used here report failures through
// their returned error.
func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.log.Errorf(strings.TrimRight(format, "\n"), v...)
}

// Migrate applies the embedded item template schema and returns the
// resulting schema version.
func (db *DB) Migrate(ctx context.Context) (int64, error) {
	goose.SetLogger(gooseLogger{log: db.log.Named("migrate").Sugar()})
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("set dialect: %w", err)
	}

	sqlDB := stdlib.OpenDBFromPool(db.Pool)
	defer sqlDB.Close()

	if err := goose.UpContext(ctx, sqlDB, "migrations"); err != nil {
		return 0, fmt.Errorf("run migrations: %w", err)
	}
	version, err := goose.GetDBVersionContext(ctx, sqlDB)
	if err != nil {
		return 0, fmt.Errorf("read schema version: %w", err)
	}
	db.log.Info("schema up to date", zap.Int64("version", version))
	return version, nil
}
