package db

import (
	"context"
	"fmt"

	"lecturetrack/internal/config"
	"lecturetrack/internal/repository"
)

// Open connects to the store selected by cfg.StoreDriver, prepares its schema
// or indexes and returns the repositories with a close function.
func Open(ctx context.Context, cfg *config.Config) (*repository.Repositories, func(context.Context) error, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, database, err := NewMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.EnsureMongoIndexes(ctx, database); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return repository.NewMongoRepositories(database), client.Disconnect, nil

	case config.DriverMySQL, config.DriverPostgres:
		open := NewMySQL
		dsn := cfg.MySQLDSN
		if cfg.StoreDriver == config.DriverPostgres {
			open = NewPostgres
			dsn = cfg.PostgresDSN
		}
		gormDB, err := open(dsn)
		if err != nil {
			return nil, nil, err
		}
		if err := repository.AutoMigrate(gormDB); err != nil {
			return nil, nil, fmt.Errorf("auto-migrate: %w", err)
		}
		closeFn := func(context.Context) error {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}
		return repository.NewSQLRepositories(gormDB), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
