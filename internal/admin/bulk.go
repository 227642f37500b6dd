package admin

import (
	"context"
	"fmt"

	"maison-storefront/internal/notice"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultBulkConcurrency = 5

type ItemResult struct {
	ID    string `json:"id"`
	Row   Row    `json:"row,omitempty"`
	Error string `json:"error,omitempty"`
}

type BulkResult struct {
	Status    string         `json:"status"`
	Results   []ItemResult   `json:"results"`
	Succeeded int            `json:"succeeded"`
	Failed    int            `json:"failed"`
	Notice    *notice.Notice `json:"notice"`
	Page      *Page          `json:"page,omitempty"`
}

// BulkUpdateStatus patches every selected row concurrently, waits for all of
// them and then refreshes the table. A failing row does not stop the others.
func (s *Service) BulkUpdateStatus(ctx context.Context, r Resource, ids []string, status string, q ListQuery) (*BulkResult, error) {
	if !r.Bulk {
		return nil, ErrBulkNotSupported
	}
	if err := checkStatus(r, status); err != nil {
		return nil, err
	}
	ids = uniqueIDs(ids)
	if len(ids) == 0 {
		return nil, ErrNoSelection
	}

	results := make([]ItemResult, len(ids))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.bulkSize)
	for i, id := range ids {
		g.Go(func() error {
			results[i].ID = id
			row, err := s.UpdateStatus(gctx, r, id, status)
			if err != nil {
				results[i].Error = err.Error()
				return nil
			}
			results[i].Row = row
			return nil
		})
	}
	_ = g.Wait()

	res := &BulkResult{Status: status, Results: results}
	for _, item := range results {
		if item.Error != "" {
			res.Failed++
		} else {
			res.Succeeded++
		}
	}
	res.Notice = bulkNotice(r, status, res.Succeeded, res.Failed)

	log := s.log(ctx, "BulkUpdateStatus", r)
	log.Info("bulk status update finished",
		zap.String("status", status),
		zap.Int("succeeded", res.Succeeded),
		zap.Int("failed", res.Failed),
	)

	page, err := s.List(ctx, r, q)
	if err != nil {
		log.Warn("failed to refresh after bulk update", zap.Error(err))
	}
	res.Page = page

	return res, nil
}

func bulkNotice(r Resource, status string, succeeded, failed int) *notice.Notice {
	switch {
	case failed == 0:
		return notice.Success(
			"Status updated",
			fmt.Sprintf("%s marked %s.", countOf(succeeded, r.Label), status),
		)
	case succeeded == 0:
		return notice.Error(
			"Update failed",
			fmt.Sprintf("%s could not be updated.", countOf(failed, r.Label)),
		)
	}
	return notice.Warning(
		"Partially updated",
		fmt.Sprintf("%s marked %s, %d failed.", countOf(succeeded, r.Label), status, failed),
	)
}

func countOf(n int, label string) string {
	if n == 1 {
		return "1 " + label
	}
	return fmt.Sprintf("%d %ss", n, label)
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
