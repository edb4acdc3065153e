package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/altinukshini/dnafinder/internal/model"
)

type HistoryFilter struct {
	Limit  int
	Offset int
}

func (f HistoryFilter) QueryString() string {
	v := url.Values{}
	if f.Limit > 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	} else {
		v.Set("limit", "10")
	}
	if f.Offset > 0 {
		v.Set("offset", strconv.Itoa(f.Offset))
	} else {
		v.Set("offset", "0")
	}
	return "?" + v.Encode()
}

func (c *Client) History(ctx context.Context, filter HistoryFilter) ([]model.HistoryEntry, error) {
	var page model.HistoryPage
	if err := c.Get(ctx, "history"+filter.QueryString(), &page); err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return page.Searches, nil
}
