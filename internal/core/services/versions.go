package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
	"github.com/custodia-labs/rulebook/internal/core/ports/driving"
	"github.com/custodia-labs/rulebook/internal/logger"
)

// Ensure VersionService implements the interface.
var _ driving.VersionService = (*VersionService)(nil)

// maxNameAttempts bounds the search for a free snapshot name when files
// from an earlier run already occupy the next timestamps.
const maxNameAttempts = 1000

// VersionService is the append-only snapshot archive.
//
// Writes for one document are serialised, and each document's timestamps
// are kept strictly increasing, so two snapshots never share a file name.
type VersionService struct {
	store    driven.DocumentStore
	settings driving.SettingsService

	mu    sync.Mutex
	locks map[string]*sync.Mutex
	last  map[string]int64
}

// NewVersionService creates a version archive over a document store.
func NewVersionService(store driven.DocumentStore, settings driving.SettingsService) *VersionService {
	return &VersionService{
		store:    store,
		settings: settings,
		locks:    make(map[string]*sync.Mutex),
		last:     make(map[string]int64),
	}
}

// SaveVersion writes a new snapshot of content into the version folder.
func (s *VersionService) SaveVersion(
	ctx context.Context,
	documentID, baseName, content string,
	now int64,
) (*domain.VersionSnapshot, error) {
	if strings.TrimSpace(documentID) == "" {
		return nil, domain.ErrNoActiveDocument
	}
	if baseName == "" {
		baseName = domain.DocumentTitle(documentID)
	}

	lock := s.lockFor(documentID)
	lock.Lock()
	defer lock.Unlock()

	folder := s.folder()
	if err := s.store.CreateFolder(ctx, folder); err != nil {
		return nil, fmt.Errorf("create version folder: %w: %w", domain.ErrPersistFailure, err)
	}

	ts := s.nextTimestamp(documentID, now)
	for attempt := 0; ; attempt++ {
		if attempt == maxNameAttempts {
			return nil, fmt.Errorf("save version %s: %w: no free snapshot name", baseName, domain.ErrPersistFailure)
		}
		p := path.Join(folder, domain.VersionFileName(baseName, ts))
		err := s.store.CreateDocument(ctx, p, []byte(content))
		if errors.Is(err, domain.ErrAlreadyExists) {
			ts++
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("save version %s: %w: %w", baseName, domain.ErrPersistFailure, err)
		}

		s.mu.Lock()
		s.last[documentID] = ts
		s.mu.Unlock()

		logger.Debug("version saved: %s", p)
		return &domain.VersionSnapshot{
			DocumentID:  documentID,
			BaseName:    baseName,
			CreatedAt:   ts,
			Content:     content,
			DerivedName: domain.VersionName(baseName, ts),
			Path:        p,
		}, nil
	}
}

// SaveDocument snapshots the current content of a vault document.
func (s *VersionService) SaveDocument(ctx context.Context, docPath string, now int64) (*domain.VersionSnapshot, error) {
	if strings.TrimSpace(docPath) == "" {
		return nil, domain.ErrNoActiveDocument
	}
	doc, err := s.store.ReadDocument(ctx, docPath)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoActiveDocument, docPath)
		}
		return nil, fmt.Errorf("read document %s: %w", docPath, err)
	}
	return s.SaveVersion(ctx, doc.Path, doc.BaseName(), doc.Content, now)
}

// ListVersions lists every snapshot in folder, oldest first.
// Files that are not snapshots are skipped.
func (s *VersionService) ListVersions(ctx context.Context, folder string) (domain.VersionListing, error) {
	if folder == "" {
		folder = s.folder()
	}
	listing := domain.VersionListing{Folder: folder}

	names, err := s.store.ListFolder(ctx, folder)
	if errors.Is(err, domain.ErrNotFound) {
		return listing, nil
	}
	if err != nil {
		return listing, fmt.Errorf("list versions: %w", err)
	}

	for _, name := range names {
		base, ts, ok := domain.ParseVersionFileName(name)
		if !ok {
			continue
		}
		listing.Versions = append(listing.Versions, domain.VersionSnapshot{
			BaseName:    base,
			CreatedAt:   ts,
			DerivedName: domain.VersionName(base, ts),
			Path:        path.Join(folder, name),
		})
	}

	sort.SliceStable(listing.Versions, func(i, j int) bool {
		a, b := listing.Versions[i], listing.Versions[j]
		if a.CreatedAt != b.CreatedAt {
			return a.CreatedAt < b.CreatedAt
		}
		return a.BaseName < b.BaseName
	})
	return listing, nil
}

// ListVersionsFor lists the snapshots of one document, oldest first.
func (s *VersionService) ListVersionsFor(ctx context.Context, folder, baseName string) (domain.VersionListing, error) {
	all, err := s.ListVersions(ctx, folder)
	if err != nil {
		return all, err
	}
	filtered := domain.VersionListing{Folder: all.Folder}
	for _, v := range all.Versions {
		if v.BaseName == baseName {
			filtered.Versions = append(filtered.Versions, v)
		}
	}
	return filtered, nil
}

// ReadVersion returns a stored snapshot with its content.
func (s *VersionService) ReadVersion(ctx context.Context, folder, fileName string) (*domain.VersionSnapshot, error) {
	if folder == "" {
		folder = s.folder()
	}
	base, ts, ok := domain.ParseVersionFileName(fileName)
	if !ok {
		return nil, fmt.Errorf("%w: not a snapshot name: %s", domain.ErrInvalidInput, fileName)
	}
	p := path.Join(folder, fileName)
	doc, err := s.store.ReadDocument(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("read version %s: %w", fileName, err)
	}
	return &domain.VersionSnapshot{
		BaseName:    base,
		CreatedAt:   ts,
		Content:     doc.Content,
		DerivedName: domain.VersionName(base, ts),
		Path:        p,
	}, nil
}

// SnapshotTracked snapshots every tracked document.
// Missing documents are logged and skipped; write failures stop the run.
func (s *VersionService) SnapshotTracked(ctx context.Context, now int64) (int, error) {
	if s.settings == nil {
		return 0, nil
	}
	count := 0
	for _, p := range s.settings.GetVaultConfig().Tracked {
		if err := ctx.Err(); err != nil {
			return count, err
		}
		if _, err := s.SaveDocument(ctx, p, now); err != nil {
			if errors.Is(err, domain.ErrNoActiveDocument) {
				logger.Warn("tracked document missing: %s", p)
				continue
			}
			return count, err
		}
		count++
	}
	return count, nil
}

func (s *VersionService) folder() string {
	if s.settings == nil {
		return domain.DefaultVersionFolder
	}
	settings, err := s.settings.Get()
	if err != nil || settings.VersionFolder == "" {
		return domain.DefaultVersionFolder
	}
	return settings.VersionFolder
}

func (s *VersionService) lockFor(documentID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[documentID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[documentID] = l
	}
	return l
}

// nextTimestamp returns now, or last+1 when now does not move forward.
func (s *VersionService) nextTimestamp(documentID string, now int64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.last[documentID]; ok && now <= last {
		return last + 1
	}
	return now
}
