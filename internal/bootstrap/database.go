package bootstrap

import (
	"context"
	"log"

	"github.com/awais7012/lms-2/internal/config"
	"github.com/awais7012/lms-2/internal/store"
)

// initializeStore opens the configured credential store
func initializeStore(cfg *config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Printf("[Store] Using in-memory store (data is not persisted)")
		return store.NewMemoryStore(), nil
	default:
		ctx, cancel := context.WithTimeout(context.Background(), cfg.DBInitTimeout)
		defer cancel()

		s, err := store.NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		log.Printf("[Store] Connected to MongoDB database %q", cfg.MongoDatabase)
		return s, nil
	}
}
