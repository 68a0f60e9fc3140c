// Command compass is the terminal client for the resource-matching service.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/custodia-labs/compass/internal/adapters/driven/backend/rest"
	"github.com/custodia-labs/compass/internal/adapters/driven/config/file"
	"github.com/custodia-labs/compass/internal/adapters/driven/sanitize"
	"github.com/custodia-labs/compass/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/compass/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/compass/internal/adapters/driving/cli"
	"github.com/custodia-labs/compass/internal/core/domain"
	"github.com/custodia-labs/compass/internal/core/ports/driven"
	"github.com/custodia-labs/compass/internal/core/services"
	"github.com/custodia-labs/compass/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	configDir := cli.ConfigDir(os.Args[1:])

	var configStore driven.ConfigStore
	fileStore, err := file.NewConfigStore(configDir)
	if err != nil {
		logger.Error("Failed to open config, using defaults: %v", err)
		configStore = memory.NewConfigStore()
	} else {
		configStore = fileStore
		cli.SetConfigWatcher(fileStore)
	}

	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		logger.Error("Failed to read settings, using defaults: %v", err)
		defaults := domain.DefaultAppSettings()
		settings = &defaults
	}

	client := rest.NewClient(rest.ConfigFromSettings(settings.Backend))

	var historyStore driven.HistoryStore
	dataDir := ""
	if configDir != "" {
		dataDir = filepath.Join(configDir, "data")
	}
	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		logger.Error("Failed to open history database, history is kept in memory: %v", err)
		historyStore = memory.NewHistoryStore()
	} else {
		defer store.Close()
		historyStore = store.HistoryStore()
	}

	askService := services.NewAskService(client, settingsService)
	askService.SetHistoryStore(historyStore)

	cli.SetVersion(version)
	cli.SetAskService(askService)
	cli.SetAdminService(services.NewAdminService(client, settingsService))
	cli.SetHistoryService(services.NewHistoryService(historyStore, settingsService))
	cli.SetSettingsService(settingsService)
	cli.SetSanitizer(sanitize.NewSanitizer())

	if err := cli.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
