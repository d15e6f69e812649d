package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/custodia-labs/rulebook/internal/adapters/driven/config/file"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/icons"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/pdf"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/vault"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/watcher"
	"github.com/custodia-labs/rulebook/internal/adapters/driven/yamlio"
	"github.com/custodia-labs/rulebook/internal/adapters/driving/cli"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/services"
	"github.com/custodia-labs/rulebook/internal/logger"
)

// build wires the adapters into the services for one command run.
//
// Without a vault root the document commands report that they are not
// configured; taxonomy and settings commands still work.
func build(_ context.Context, opts cli.Options) (*cli.Services, func() error, error) {
	logger.Section("Startup")

	var closers []func() error
	closeAll := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	configDir := opts.ConfigDir
	if configDir == "" && !opts.Ephemeral {
		dir, err := file.DefaultDir()
		if err != nil {
			return nil, nil, fmt.Errorf("config directory: %w", err)
		}
		configDir = dir
	}

	// Config and templates.
	var (
		configStore driven.ConfigStore
		templates   driven.TemplateStore
	)
	if opts.Ephemeral {
		configStore = memory.NewConfigStore()
	} else {
		cs, err := file.NewConfigStore(configDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening config: %w", err)
		}
		configStore = cs
		ts, err := file.NewTemplateStore(filepath.Join(configDir, "templates"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening templates: %w", err)
		}
		templates = ts
	}

	settings := services.NewSettingsService(configStore)
	taxonomy := services.NewTaxonomyService(configStore)
	inserter := services.NewInserterService(taxonomy, settings, icons.NewCatalog(), templates)

	s := &cli.Services{
		Taxonomy: taxonomy,
		Settings: settings,
		Inserter: inserter,
		Actions:  services.NewActionService(),
		Codec:    yamlio.NewCodec(),
	}

	// Link index and scheduler state.
	var (
		linkStore  driven.LinkIndex
		schedStore driven.SchedulerStore
	)
	if opts.Ephemeral {
		linkStore = memory.NewLinkIndex()
		schedStore = memory.NewSchedulerStore()
	} else {
		db, err := sqlite.NewStore(filepath.Join(configDir, "data"))
		if err != nil {
			return nil, nil, fmt.Errorf("opening database: %w", err)
		}
		closers = append(closers, db.Close)
		logger.Debug("database: %s", db.Path())
		linkStore = db.LinkIndex()
		schedStore = db.SchedulerStore()
	}

	vaultCfg := settings.GetVaultConfig()
	root := opts.VaultRoot
	if root == "" {
		root = vaultCfg.Root
	}

	var store driven.DocumentStore
	if root != "" {
		vs, err := vault.New(root, vaultCfg.Ignore)
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		logger.Debug("vault: %s", vs.Root())
		store = vs

		w := watcher.New(vs.Root(), watcher.WithFilter(vs.Matcher().Ignored))
		s.Documents = vs
		s.Versions = services.NewVersionService(vs, settings)
		s.LinkIndex = services.NewLinkIndexService(vs, linkStore, vault.NewExtractor(), w)
		s.Selection = func(p string) driven.SelectionProvider { return vault.NewSelection(vs, p) }
	}

	s.Export = services.NewExportService(taxonomy, store, pdf.NewWriter())
	s.Backlinks = services.NewBacklinkService(linkStore)

	sched := services.NewScheduler(settings.GetSchedulerConfig(), schedStore, s.Versions, s.LinkIndex)
	s.Scheduler = sched
	s.Plugin = services.NewPlugin(taxonomy, sched)

	return s, closeAll, nil
}
