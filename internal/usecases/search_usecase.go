package usecases

import (
	"context"
	"sort"
	"strings"

	"nick-exchange.backend/internal/domain/entities"
	"nick-exchange.backend/internal/domain/repositories"
)

// SearchUsecase is a read-only projection over the ownership registry for
// nickname lookup. It never mutates state.
type SearchUsecase struct {
	ownershipRepo repositories.OwnershipRepository
}

// NewSearchUsecase creates a new search usecase
func NewSearchUsecase(ownershipRepo repositories.OwnershipRepository) *SearchUsecase {
	return &SearchUsecase{ownershipRepo: ownershipRepo}
}

// Search matches owned nicknames against the query. A leading "@" is
// stripped and matching is case-insensitive. Results are ordered active
// nicknames first, then alphabetically.
func (u *SearchUsecase) Search(ctx context.Context, filters *entities.SearchFilters) ([]*entities.NicknameSearchResult, error) {
	query := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(filters.Query), "@"))
	if query == "" {
		return []*entities.NicknameSearchResult{}, nil
	}

	allOwned, err := u.ownershipRepo.AllOwned(ctx)
	if err != nil {
		return nil, err
	}
	allActive, err := u.ownershipRepo.AllActive(ctx)
	if err != nil {
		return nil, err
	}

	var results []*entities.NicknameSearchResult
	for wallet, owned := range allOwned {
		active := allActive[wallet]
		for _, nickname := range owned {
			lower := strings.ToLower(nickname)
			matched := lower == query
			if !filters.ExactMatch {
				matched = strings.Contains(lower, query)
			}
			if !matched {
				continue
			}
			isActive := nickname == active
			if !filters.IncludeInactive && !isActive {
				continue
			}
			results = append(results, &entities.NicknameSearchResult{
				WalletAddress: wallet,
				Nickname:      nickname,
				IsActive:      isActive,
				AllNicknames:  owned,
			})
		}
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].IsActive != results[j].IsActive {
			return results[i].IsActive
		}
		return results[i].Nickname < results[j].Nickname
	})

	limit := filters.Limit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if len(results) > limit {
		results = results[:limit]
	}
	if results == nil {
		results = []*entities.NicknameSearchResult{}
	}
	return results, nil
}
