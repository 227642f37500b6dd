package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"maison-storefront/internal/apiclient"
	"maison-storefront/internal/logger"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type API interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

// Row is one table entry as the backend returned it.
type Row map[string]any

func (r Row) ID() string {
	for _, key := range []string{"id", "_id"} {
		if id, ok := r[key].(string); ok && id != "" {
			return id
		}
	}
	return ""
}

func (r Row) Status() string {
	s, _ := r["status"].(string)
	return s
}

type Page struct {
	Resource   string               `json:"resource"`
	Rows       []Row                `json:"rows"`
	Pagination apiclient.Pagination `json:"pagination"`
	Query      ListQuery            `json:"query"`
}

type Service struct {
	api      API
	validate *validator.Validate
	bulkSize int
}

func NewService(api API) *Service {
	return &Service{
		api:      api,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		bulkSize: defaultBulkConcurrency,
	}
}

func (s *Service) log(ctx context.Context, method string, r Resource) *zap.Logger {
	return logger.FromCtx(ctx).With(
		zap.String("layer", "service"),
		zap.String("service", "admin"),
		zap.String("method", method),
		zap.String("resource", r.Name),
	)
}

// List fetches one page of the resource and decodes
// `{data: {<itemKey>: [...], pagination: {...}}}`.
func (s *Service) List(ctx context.Context, r Resource, q ListQuery) (*Page, error) {
	var resp apiclient.Envelope[map[string]json.RawMessage]
	if err := s.api.Get(ctx, r.Path, q.Values(), &resp); err != nil {
		s.log(ctx, "List", r).Error("failed to list", zap.Error(err))
		return nil, err
	}

	rawItems, ok := resp.Data[r.ItemKey]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrMissingItems, r.ItemKey)
	}

	page := &Page{Resource: r.Name, Query: q}
	if err := json.Unmarshal(rawItems, &page.Rows); err != nil {
		return nil, fmt.Errorf("%w: %v", apiclient.ErrInvalidResponse, err)
	}
	if page.Rows == nil {
		page.Rows = []Row{}
	}

	rawPagination, ok := resp.Data["pagination"]
	if !ok {
		return nil, fmt.Errorf("%w: missing pagination", apiclient.ErrInvalidResponse)
	}
	if err := json.Unmarshal(rawPagination, &page.Pagination); err != nil {
		return nil, fmt.Errorf("%w: %v", apiclient.ErrInvalidResponse, err)
	}
	if err := s.validate.Struct(page.Pagination); err != nil {
		return nil, fmt.Errorf("%w: %v", apiclient.ErrInvalidResponse, err)
	}

	return page, nil
}

// Delete removes one row and refetches the table with the same query.
func (s *Service) Delete(ctx context.Context, r Resource, id string, q ListQuery) (*Page, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	if err := s.api.Delete(ctx, r.ItemPath(id), nil); err != nil {
		s.log(ctx, "Delete", r).Error("failed to delete", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return s.List(ctx, r, q)
}

// UpdateStatus patches one row's status and returns the row as the backend
// stored it, so callers always reconcile from the server.
func (s *Service) UpdateStatus(ctx context.Context, r Resource, id, status string) (Row, error) {
	if err := checkStatus(r, status); err != nil {
		return nil, err
	}
	if strings.TrimSpace(id) == "" {
		return nil, ErrMissingID
	}

	var resp apiclient.Envelope[Row]
	if err := s.api.Patch(ctx, r.ItemPath(id), map[string]string{"status": status}, &resp); err != nil {
		s.log(ctx, "UpdateStatus", r).Error("failed to update status",
			zap.String("id", id), zap.String("status", status), zap.Error(err))
		return nil, err
	}
	if resp.Data == nil {
		return nil, fmt.Errorf("%w: empty row", apiclient.ErrInvalidResponse)
	}
	return resp.Data, nil
}

func checkStatus(r Resource, status string) error {
	if !r.HasStatus() {
		return ErrStatusNotSupported
	}
	if !r.AllowsStatus(status) {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}
	return nil
}
