package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"notive/internal/app/server/config"
	"notive/internal/domain/entry"
	"notive/internal/infrastructure/storage/filestore"
	"notive/internal/infrastructure/storage/objectstore"
	"notive/internal/infrastructure/storage/postgres"
	"notive/internal/infrastructure/storage/sqlite"
)

// Backend - выбранное хранилище записей вместе с проверкой доступности
// и освобождением ресурсов.
type Backend struct {
	entry.Repository
	Driver string

	ping  func(ctx context.Context) error
	close func() error
}

func (b *Backend) Ping(ctx context.Context) error {
	return b.ping(ctx)
}

func (b *Backend) Close() error {
	if b.close == nil {
		return nil
	}
	return b.close()
}

// New выбирает реализацию хранилища записей по STORAGE_DRIVER.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Backend, error) {
	b := &Backend{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case config.DriverFS:
		s, err := filestore.New(cfg.Storage.EntriesDir, cfg.ScopeByOwner(), log)
		if err != nil {
			return nil, err
		}
		b.Repository, b.ping = s, s.Ping

	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		b.Repository, b.ping, b.close = postgres.NewEntryRepository(st.Pool(), log), st.Ping, st.Close

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		b.Repository, b.ping, b.close = s, s.Ping, s.Close

	case config.DriverS3:
		client, err := objectstore.NewClient(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		s := objectstore.New(client, cfg.S3.Bucket, log)
		b.Repository, b.ping = s, s.Ping

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
	}

	log.Info("entry storage ready", slog.String("driver", b.Driver))

	return b, nil
}
