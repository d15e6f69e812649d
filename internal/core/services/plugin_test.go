package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rulebook/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/rulebook/internal/core/domain"
)

func TestPlugin_LoadsTaxonomy(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("taxonomy.categories", []any{
		map[string]any{"name": "Magic", "subcategories": []any{"Spells"}},
	})
	taxonomy := NewTaxonomyService(store)
	plugin := NewPlugin(taxonomy, nil)

	require.NoError(t, plugin.OnLoad(context.Background()))
	assert.Equal(t, []string{"Magic"}, taxonomy.Snapshot().Names())
	require.NoError(t, plugin.OnUnload(context.Background()))
}

func TestPlugin_StartsAndStopsScheduler(t *testing.T) {
	taxonomy := NewTaxonomyService(memory.NewConfigStore())
	schedStore := memory.NewSchedulerStore()
	scheduler := NewScheduler(domain.DefaultSchedulerConfig(), schedStore, nil, &countingLinkIndex{})
	plugin := NewPlugin(taxonomy, scheduler)
	ctx := context.Background()

	require.NoError(t, plugin.OnLoad(ctx))
	require.NoError(t, plugin.OnLoad(ctx))

	require.Eventually(t, func() bool {
		task, _ := schedStore.GetTask(ctx, domain.TaskIDLinkIndex)
		return task != nil
	}, time.Second, 10*time.Millisecond)

	require.NoError(t, plugin.OnUnload(ctx))
	require.NoError(t, plugin.OnUnload(ctx))
}
