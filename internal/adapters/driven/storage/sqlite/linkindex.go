package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/custodia-labs/rulebook/internal/core/domain"
	"github.com/custodia-labs/rulebook/internal/core/ports/driven"
)

// linkIndex implements driven.LinkIndex.
type linkIndex struct {
	store *Store
}

var _ driven.LinkIndex = (*linkIndex)(nil)

// ResolvedLinks maps each source to its distinct targets.
func (l *linkIndex) ResolvedLinks(ctx context.Context) (map[string][]string, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT DISTINCT source, target FROM links ORDER BY source, target
	`)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer rows.Close()

	out := make(map[string][]string)
	for rows.Next() {
		var source, target string
		if err := rows.Scan(&source, &target); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		out[source] = append(out[source], target)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating links: %w", err)
	}
	return out, nil
}

// ReplaceLinks replaces the outgoing links of source in one transaction.
func (l *linkIndex) ReplaceLinks(ctx context.Context, source string, links []domain.Link) error {
	return l.store.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, "DELETE FROM links WHERE source = ?", source); err != nil {
			return fmt.Errorf("deleting links of %s: %w", source, err)
		}

		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO links (source, target, kind) VALUES (?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("preparing insert: %w", err)
		}
		defer stmt.Close()

		for _, link := range links {
			if _, err := stmt.ExecContext(ctx, source, link.Target, string(link.Kind)); err != nil {
				return fmt.Errorf("inserting link %s -> %s: %w", source, link.Target, err)
			}
		}
		return nil
	})
}

// DeleteDocument removes a document's outgoing links.
func (l *linkIndex) DeleteDocument(ctx context.Context, source string) error {
	if _, err := l.store.db.ExecContext(ctx, "DELETE FROM links WHERE source = ?", source); err != nil {
		return fmt.Errorf("deleting links of %s: %w", source, err)
	}
	return nil
}

// Clear removes every link.
func (l *linkIndex) Clear(ctx context.Context) error {
	if _, err := l.store.db.ExecContext(ctx, "DELETE FROM links"); err != nil {
		return fmt.Errorf("clearing links: %w", err)
	}
	return nil
}

// LinksTo returns links whose target is path, ordered by source.
func (l *linkIndex) LinksTo(ctx context.Context, path string) ([]domain.Link, error) {
	rows, err := l.store.db.QueryContext(ctx, `
		SELECT source, target, kind FROM links WHERE target = ? ORDER BY source, kind
	`, path)
	if err != nil {
		return nil, fmt.Errorf("querying backlinks: %w", err)
	}
	defer rows.Close()

	var links []domain.Link //nolint:prealloc // size unknown from query
	for rows.Next() {
		var link domain.Link
		var kind string
		if err := rows.Scan(&link.Source, &link.Target, &kind); err != nil {
			return nil, fmt.Errorf("scanning link: %w", err)
		}
		link.Kind = domain.LinkKind(kind)
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating links: %w", err)
	}
	return links, nil
}

// CountLinks returns the number of stored links.
func (l *linkIndex) CountLinks(ctx context.Context) (int, error) {
	var n int
	if err := l.store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM links").Scan(&n); err != nil {
		return 0, fmt.Errorf("counting links: %w", err)
	}
	return n, nil
}
