package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/internal/usecases"
)

func newSearchFixture(owned map[string][]string, active map[string]string) *usecases.SearchUsecase {
	repo := new(MockOwnershipRepository)
	repo.On("AllOwned", context.Background()).Return(owned, nil)
	repo.On("AllActive", context.Background()).Return(active, nil)
	return usecases.NewSearchUsecase(repo)
}

func TestSearchMatching(t *testing.T) {
	ctx := context.Background()
	uc := newSearchFixture(
		map[string][]string{
			"w1": {"walrus", "deep-walrus"},
			"w2": {"orca"},
		},
		map[string]string{"w1": "walrus", "w2": "orca"},
	)

	t.Run("substring match by default", func(t *testing.T) {
		results, err := uc.Search(ctx, &entities.SearchFilters{Query: "walrus", IncludeInactive: true})
		require.NoError(t, err)
		require.Len(t, results, 2)
	})

	t.Run("exact match", func(t *testing.T) {
		results, err := uc.Search(ctx, &entities.SearchFilters{Query: "walrus", ExactMatch: true, IncludeInactive: true})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "walrus", results[0].Nickname)
	})

	t.Run("case-insensitive with @ stripped", func(t *testing.T) {
		results, err := uc.Search(ctx, &entities.SearchFilters{Query: "@WALRUS", ExactMatch: true, IncludeInactive: true})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, "w1", results[0].WalletAddress)
	})

	t.Run("active only by default", func(t *testing.T) {
		results, err := uc.Search(ctx, &entities.SearchFilters{Query: "walrus"})
		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.True(t, results[0].IsActive)
		assert.Equal(t, "walrus", results[0].Nickname)
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		results, err := uc.Search(ctx, &entities.SearchFilters{Query: "  @ "})
		require.NoError(t, err)
		assert.Empty(t, results)
	})
}

func TestSearchOrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	uc := newSearchFixture(
		map[string][]string{
			"w1": {"pod-z", "pod-a"},
			"w2": {"pod-m"},
		},
		map[string]string{"w1": "pod-z", "w2": "pod-m"},
	)

	results, err := uc.Search(ctx, &entities.SearchFilters{Query: "pod", IncludeInactive: true})
	require.NoError(t, err)
	require.Len(t, results, 3)
	// Active hits first, each group alphabetical.
	assert.True(t, results[0].IsActive)
	assert.True(t, results[1].IsActive)
	assert.Equal(t, "pod-m", results[0].Nickname)
	assert.Equal(t, "pod-z", results[1].Nickname)
	assert.Equal(t, "pod-a", results[2].Nickname)

	limited, err := uc.Search(ctx, &entities.SearchFilters{Query: "pod", IncludeInactive: true, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
