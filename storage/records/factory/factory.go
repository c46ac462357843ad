package factory

import (
	"fmt"
	"sync"

	"github.com/GrantCuster/extra-grantcuster-com/config"
	"github.com/GrantCuster/extra-grantcuster-com/storage/records"
)

// Factory builds a record store for the provided records config.
type Factory func(*config.Records) (records.Store, error)

var (
	mu       sync.RWMutex
	registry = map[string]Factory{}
)

// Register adds or replaces a record store factory for the given strategy name.
func Register(strategy string, factory Factory) {
	mu.Lock()
	registry[strategy] = factory
	mu.Unlock()
}

// Get retrieves a factory for the given strategy.
func Get(strategy string) (Factory, bool) {
	mu.RLock()
	f, ok := registry[strategy]
	mu.RUnlock()
	return f, ok
}

// Create builds a record store using the registered factory for the configured strategy.
func Create(cfg *config.Records) (records.Store, error) {
	if f, ok := Get(cfg.Strategy); ok {
		return f(cfg)
	}

	return nil, fmt.Errorf("unknown records strategy %q", cfg.Strategy)
}

func init() {
	Register("memory", func(cfg *config.Records) (records.Store, error) {
		return records.NewMemoryRecordStore(), nil
	})
	Register("sql", func(cfg *config.Records) (records.Store, error) {
		return records.NewSQLRecordStore(cfg.Sql)
	})
}
