package memory

import (
	"context"

	"github.com/riskibarqy/matchdata-sync/internal/domain/blocklist"
)

type BlocklistRepository struct {
	list blocklist.List
}

var _ blocklist.Repository = (*BlocklistRepository)(nil)

func NewBlocklistRepository(list blocklist.List) *BlocklistRepository {
	return &BlocklistRepository{list: list}
}

func (r *BlocklistRepository) Load(_ context.Context) (blocklist.List, error) {
	return blocklist.List{
		Matches: append([]string{}, r.list.Matches...),
		Events:  append([]string{}, r.list.Events...),
	}, nil
}
