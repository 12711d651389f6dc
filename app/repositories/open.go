package repositories

import (
	"context"
	"fmt"

	"github.com/shashiranjanraj/pubqr/config"
	"github.com/shashiranjanraj/pubqr/pkg/database"
)

// Open builds the Store selected by STORE_DRIVER.
func Open(ctx context.Context) (*Store, error) {
	switch driver := config.StoreDriver(); driver {
	case "mongo":
		client, db, err := database.ConnectMongo(ctx, config.MongoURI(), config.MongoDatabase())
		if err != nil {
			return nil, err
		}
		s, err := NewMongoStore(ctx, client, db)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		s.MongoDB = db
		return s, nil
	case "sql":
		if err := database.Connect(); err != nil {
			return nil, err
		}
		return NewSQLStore(database.DB), nil
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("repositories: unsupported STORE_DRIVER %q", driver)
	}
}
