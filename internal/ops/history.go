package ops

import (
	"context"

	"github.com/altinukshini/dnafinder/internal/api"
	"github.com/altinukshini/dnafinder/internal/model"
)

// RecentHistory fetches the newest limit searches, in backend order.
func RecentHistory(ctx context.Context, env Env, limit int) ([]model.HistoryEntry, error) {
	return env.Client.History(ctx, api.HistoryFilter{Limit: limit, Offset: 0})
}
