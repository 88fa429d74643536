package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/sync/singleflight"

	"github.com/mmynk/settleup/internal/cache"
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/events"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

// loadTimeout bounds a shared GetSplit store read.
const loadTimeout = 5 * time.Second

// SettlementService implements the Connect SettlementService.
type SettlementService struct {
	apiconnect.UnimplementedSettlementServiceHandler
	store        storage.Store
	cache        cache.Cache
	cacheTTL     time.Duration
	publisher    events.Publisher
	metrics      *metrics.Metrics
	historyLimit int

	// loads collapses concurrent cache misses for one split into a single store read.
	loads singleflight.Group
}

// Option configures a SettlementService.
type Option func(*SettlementService)

// WithCache enables read-through caching of GetSplit responses.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *SettlementService) {
		if c != nil {
			s.cache = c
			s.cacheTTL = ttl
		}
	}
}

// WithPublisher sends a SplitCreated event for every stored split.
func WithPublisher(p events.Publisher) Option {
	return func(s *SettlementService) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithMetrics records settlement metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *SettlementService) { s.metrics = m }
}

// WithHistoryLimit sets how many splits ListSplitHistory returns by default.
func WithHistoryLimit(n int) Option {
	return func(s *SettlementService) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// NewSettlementService creates a new SettlementService with the given storage backend.
func NewSettlementService(store storage.Store, opts ...Option) *SettlementService {
	s := &SettlementService{
		store:        store,
		cache:        cache.Nop{},
		publisher:    events.Nop{},
		historyLimit: storage.DefaultHistoryLimit,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// compute runs the engine and records the outcome.
func (s *SettlementService) compute(groupName string, expenses []*api.Expense) (*calculator.Result, []calculator.ExpenseEntry, error) {
	entries, err := toEntries(expenses)
	if err != nil {
		s.metrics.ObserveFailure(errorKind(err))
		return nil, nil, engineError(err)
	}

	result, err := calculator.ComputeSettlement(groupName, entries)
	if err != nil {
		s.metrics.ObserveFailure(errorKind(err))
		return nil, nil, engineError(err)
	}

	s.metrics.ObserveSettlement(len(result.Transfers))
	return result, entries, nil
}

// CalculateSettlement computes a settlement without storing it.
func (s *SettlementService) CalculateSettlement(ctx context.Context, req *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error) {
	slog.Info("CalculateSettlement request received",
		"group_name", req.Msg.GroupName,
		"expenses", len(req.Msg.Expenses),
	)

	result, _, err := s.compute(req.Msg.GroupName, req.Msg.Expenses)
	if err != nil {
		slog.Error("CalculateSettlement failed", "error", err)
		return nil, err
	}

	for _, t := range result.Transfers {
		slog.Debug("Transfer", "from", t.From, "to", t.To, "amount", t.Amount.String())
	}

	return connect.NewResponse(&api.CalculateSettlementResponse{
		Settlement: toSettlement(result),
	}), nil
}

// CreateSplit computes a settlement and stores it in the group's history.
func (s *SettlementService) CreateSplit(ctx context.Context, req *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	slog.Info("CreateSplit request received",
		"group_name", req.Msg.GroupName,
		"expenses", len(req.Msg.Expenses),
	)

	result, entries, err := s.compute(req.Msg.GroupName, req.Msg.Expenses)
	if err != nil {
		slog.Error("CreateSplit failed", "error", err)
		return nil, err
	}

	// Save to storage (generates ID and CreatedAt)
	split := newSplit(result, entries)
	if err := s.store.CreateSplit(ctx, split); err != nil {
		slog.Error("CreateSplit failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Split created",
		"split_id", split.ID,
		"group_name", split.GroupName,
		"total", split.TotalAmount.String(),
		"transfers", len(split.Transfers),
	)

	if rendered, err := toAPISplit(split); err == nil {
		s.cachePut(ctx, rendered)
	}

	if err := s.publisher.PublishSplitCreated(ctx, events.NewSplitCreated(split)); err != nil {
		s.metrics.ObservePublishFailure()
		slog.Warn("Failed to publish split created event", "split_id", split.ID, "error", err)
	}

	return connect.NewResponse(&api.CreateSplitResponse{
		SplitID:    split.ID,
		CreatedAt:  split.CreatedAt,
		Settlement: toSettlement(result),
	}), nil
}

// GetSplit returns a stored split, from the cache when possible.
func (s *SettlementService) GetSplit(ctx context.Context, req *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	slog.Info("GetSplit request received", "split_id", req.Msg.SplitID)

	splitID := strings.TrimSpace(req.Msg.SplitID)
	if splitID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errSplitIDRequired)
	}

	if cached, ok := s.cacheGet(ctx, splitID); ok {
		return connect.NewResponse(&api.GetSplitResponse{Split: cached}), nil
	}

	// The read is shared by every caller waiting on this split, so it must
	// not die with the first caller's context. Each caller still gives up on
	// its own context.
	loads := s.loads.DoChan(splitID, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()

		split, err := s.store.GetSplit(loadCtx, splitID)
		if err != nil {
			return nil, storageError(err)
		}
		rendered, err := toAPISplit(split)
		if err != nil {
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		s.cachePut(loadCtx, rendered)
		return rendered, nil
	})

	var res singleflight.Result
	select {
	case res = <-loads:
	case <-ctx.Done():
		slog.Warn("GetSplit abandoned", "split_id", splitID, "error", ctx.Err())
		return nil, contextError(ctx.Err())
	}
	if res.Err != nil {
		slog.Error("GetSplit failed", "split_id", splitID, "error", res.Err)
		return nil, res.Err
	}

	return connect.NewResponse(&api.GetSplitResponse{Split: res.Val.(*api.Split)}), nil
}

// ListSplitHistory returns the most recent splits across all groups.
func (s *SettlementService) ListSplitHistory(ctx context.Context, req *connect.Request[api.ListSplitHistoryRequest]) (*connect.Response[api.ListSplitHistoryResponse], error) {
	slog.Info("ListSplitHistory request received", "limit", req.Msg.Limit)

	limit := int(req.Msg.Limit)
	if limit <= 0 {
		limit = s.historyLimit
	}

	splits, err := s.store.ListSplits(ctx, limit)
	if err != nil {
		slog.Error("ListSplitHistory failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	rendered, err := toAPISplits(splits)
	if err != nil {
		slog.Error("ListSplitHistory failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("ListSplitHistory successful", "count", len(rendered))

	return connect.NewResponse(&api.ListSplitHistoryResponse{Splits: rendered}), nil
}

// ListSplitsByGroup returns every split recorded for a group, newest first.
func (s *SettlementService) ListSplitsByGroup(ctx context.Context, req *connect.Request[api.ListSplitsByGroupRequest]) (*connect.Response[api.ListSplitsByGroupResponse], error) {
	slog.Info("ListSplitsByGroup request received", "group_name", req.Msg.GroupName)

	groupName := strings.TrimSpace(req.Msg.GroupName)
	if groupName == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, calculator.ErrInvalidGroupName)
	}

	splits, err := s.store.ListSplitsByGroup(ctx, groupName)
	if err != nil {
		slog.Error("ListSplitsByGroup failed", "group_name", groupName, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	rendered, err := toAPISplits(splits)
	if err != nil {
		slog.Error("ListSplitsByGroup failed", "group_name", groupName, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListSplitsByGroupResponse{Splits: rendered}), nil
}

// ListGroups retrieves a summary of every group with recorded splits.
func (s *SettlementService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	slog.Info("ListGroups request received")

	groups, err := s.store.ListGroups(ctx)
	if err != nil {
		slog.Error("ListGroups failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]*api.GroupSummary, len(groups))
	for i, g := range groups {
		out[i] = &api.GroupSummary{
			Name:        g.Name,
			SplitCount:  int32(g.SplitCount),
			LastSplitAt: g.LastSplitAt,
		}
	}

	slog.Info("ListGroups successful", "count", len(out))

	return connect.NewResponse(&api.ListGroupsResponse{Groups: out}), nil
}

// cacheGet returns a cached split. Cache failures count as misses.
func (s *SettlementService) cacheGet(ctx context.Context, splitID string) (*api.Split, bool) {
	data, ok, err := s.cache.Get(ctx, splitID)
	if err != nil {
		s.metrics.ObserveCache("error")
		slog.Warn("Split cache read failed", "split_id", splitID, "error", err)
		return nil, false
	}
	if !ok {
		s.metrics.ObserveCache("miss")
		return nil, false
	}

	var split api.Split
	if err := json.Unmarshal(data, &split); err != nil {
		s.metrics.ObserveCache("error")
		slog.Warn("Discarding unreadable cache entry", "split_id", splitID, "error", err)
		return nil, false
	}
	s.metrics.ObserveCache("hit")
	return &split, true
}

func (s *SettlementService) cachePut(ctx context.Context, split *api.Split) {
	data, err := json.Marshal(split)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, split.SplitID, data, s.cacheTTL); err != nil {
		slog.Warn("Split cache write failed", "split_id", split.SplitID, "error", err)
	}
}
