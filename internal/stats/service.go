package stats

import (
	"context"
	"log/slog"

	"github.com/avitodash/statsproxy/internal/avito"
	"github.com/avitodash/statsproxy/internal/models"
)

// Service sequences a stats request: token, item stats (required), call
// stats (best effort), then merge and aggregate.
type Service struct {
	tokens *avito.TokenCache
	api    *avito.API
	log    *slog.Logger
}

func NewService(tokens *avito.TokenCache, api *avito.API, log *slog.Logger) *Service {
	return &Service{tokens: tokens, api: api, log: log}
}

func (s *Service) ItemSeries(ctx context.Context, itemID, dateFrom, dateTo, grouping string) (models.StatsResponse, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return models.StatsResponse{}, err
	}

	itemBody, err := s.api.ItemStats(ctx, token, itemID, dateFrom, dateTo)
	if err != nil {
		return models.StatsResponse{}, err
	}
	rows := AdaptItemStats(itemBody)

	// Call stats are secondary: any failure here degrades to an item-only
	// series instead of failing the request.
	var calls []models.CallCount
	if callBody, err := s.api.CallStats(ctx, token, dateFrom, dateTo); err != nil {
		s.log.Warn("call stats unavailable, continuing without",
			slog.String("item_id", itemID), slog.String("err", err.Error()))
	} else {
		calls = AdaptCallStats(callBody)
	}

	merged := Merge(rows, calls)
	series := Aggregate(merged, grouping)

	s.log.Debug("series built",
		slog.String("item_id", itemID),
		slog.Int("rows", len(merged)),
		slog.Int("buckets", len(series)),
		slog.String("grouping", grouping))

	return models.StatsResponse{ItemID: itemID, Series: series}, nil
}

// RawItemStats returns the upstream item-stats body unmodified, for the
// debug passthrough.
func (s *Service) RawItemStats(ctx context.Context, itemID, dateFrom, dateTo string) ([]byte, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.ItemStats(ctx, token, itemID, dateFrom, dateTo)
}

// RawCallStats returns the upstream call-stats body unmodified, for the
// debug passthrough.
func (s *Service) RawCallStats(ctx context.Context, dateFrom, dateTo string) ([]byte, error) {
	token, err := s.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	return s.api.CallStats(ctx, token, dateFrom, dateTo)
}
