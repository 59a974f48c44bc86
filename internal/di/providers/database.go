package providers

import (
	"github.com/samber/do/v2"

	"github.com/forkfulapp/forkful-server/internal/config"
	"github.com/forkfulapp/forkful-server/internal/logger"
	"github.com/forkfulapp/forkful-server/internal/store"
)

// StoreHandle wraps the store with shutdown capability.
type StoreHandle struct {
	*store.Store
}

// Shutdown implements do.Shutdownable.
func (h *StoreHandle) Shutdown() error {
	return h.Close()
}

// ProvideStore provides the database store.
func ProvideStore(i do.Injector) (*StoreHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	dbFile := cfg.Database.DBFile()
	db, err := store.Open(dbFile, log.Logger)
	if err != nil {
		return nil, err
	}

	log.Info("Database initialized", "path", dbFile)

	return &StoreHandle{Store: db}, nil
}
