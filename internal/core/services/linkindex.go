package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
	"github.com/custodia-labs/rulebook/internal/logger"
)

// Ensure LinkIndexService implements the interface.
var _ driving.LinkIndexService = (*LinkIndexService)(nil)

// LinkIndexService keeps the stored link graph in step with the vault.
type LinkIndexService struct {
	store     driven.DocumentStore
	index     driven.LinkIndex
	extractor driven.LinkExtractor
	watcher   driven.VaultWatcher
}

// NewLinkIndexService creates a link indexer. watcher may be nil when
// live updates are not needed.
func NewLinkIndexService(
	store driven.DocumentStore,
	index driven.LinkIndex,
	extractor driven.LinkExtractor,
	watcher driven.VaultWatcher,
) *LinkIndexService {
	return &LinkIndexService{
		store:     store,
		index:     index,
		extractor: extractor,
		watcher:   watcher,
	}
}

// Rebuild clears the index and rescans every document.
// Unreadable documents are counted as skipped.
func (s *LinkIndexService) Rebuild(ctx context.Context) (domain.IndexStats, error) {
	start := time.Now()
	var stats domain.IndexStats

	paths, err := s.store.ListDocuments(ctx)
	if err != nil {
		return stats, fmt.Errorf("list documents: %w", err)
	}
	if err := s.index.Clear(ctx); err != nil {
		return stats, fmt.Errorf("clear link index: %w", err)
	}

	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		n, err := s.indexDocument(ctx, p, paths)
		if err != nil {
			logger.Warn("skipping %s: %v", p, err)
			stats.Skipped++
			continue
		}
		stats.Documents++
		stats.Links += n
	}

	stats.Duration = time.Since(start)
	logger.Info("link index rebuilt: %d documents, %d links, %d skipped in %s",
		stats.Documents, stats.Links, stats.Skipped, stats.Duration)
	return stats, nil
}

// Apply updates the index for a single document change.
func (s *LinkIndexService) Apply(ctx context.Context, change domain.DocumentChange) error {
	logger.Debug("link index: %s %s", change.Type, change.Path)

	if change.Type == domain.ChangeDeleted {
		if err := s.index.DeleteDocument(ctx, change.Path); err != nil {
			return fmt.Errorf("delete %s from link index: %w", change.Path, err)
		}
		return nil
	}

	known, err := s.store.ListDocuments(ctx)
	if err != nil {
		return fmt.Errorf("list documents: %w", err)
	}
	if _, err := s.indexDocument(ctx, change.Path, known); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Removed again before we got to it.
			return s.index.DeleteDocument(ctx, change.Path)
		}
		return err
	}
	return nil
}

// Watch applies watcher changes until ctx is cancelled or the watcher stops.
// Errors on single documents are logged and do not stop the loop.
func (s *LinkIndexService) Watch(ctx context.Context) error {
	if s.watcher == nil {
		return errors.New("vault watcher not configured")
	}

	changes, err := s.watcher.Watch(ctx)
	if err != nil {
		return fmt.Errorf("start watcher: %w", err)
	}
	defer func() { _ = s.watcher.Stop() }()

	for {
		select {
		case <-ctx.Done():
			return nil
		case change, ok := <-changes:
			if !ok {
				return nil
			}
			if err := s.Apply(ctx, change); err != nil {
				logger.Warn("link index: %v", err)
			}
		}
	}
}

func (s *LinkIndexService) indexDocument(ctx context.Context, p string, known []string) (int, error) {
	doc, err := s.store.ReadDocument(ctx, p)
	if err != nil {
		return 0, fmt.Errorf("read %s: %w", p, err)
	}
	links := s.extractor.Extract(doc.Path, doc.Content, known)
	if err := s.index.ReplaceLinks(ctx, doc.Path, links); err != nil {
		return 0, fmt.Errorf("store links for %s: %w", p, err)
	}
	return len(links), nil
}
