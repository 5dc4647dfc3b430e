package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/ArdhikaRizki/debTBE/internal/activity"
	"github.com/ArdhikaRizki/debTBE/internal/auth"
	"github.com/ArdhikaRizki/debTBE/internal/cache"
	"github.com/ArdhikaRizki/debTBE/internal/calculator"
	"github.com/ArdhikaRizki/debTBE/internal/middleware"
	"github.com/ArdhikaRizki/debTBE/internal/models"
	"github.com/ArdhikaRizki/debTBE/internal/observability"
	"github.com/ArdhikaRizki/debTBE/internal/storage"
	"github.com/ArdhikaRizki/debTBE/pkg/api"
	"github.com/ArdhikaRizki/debTBE/pkg/api/apiconnect"
)

const summaryNamespace = "summary"

// LedgerService implements the Connect LedgerService over the caller's
// persisted debts.
type LedgerService struct {
	store      storage.Store
	cache      cache.Cache
	activities *activity.Log
	metrics    *observability.Metrics
	summaryTTL time.Duration
}

var _ apiconnect.LedgerServiceHandler = (*LedgerService)(nil)

// NewLedgerService creates a LedgerService. Summaries are cached for
// summaryTTL; metrics may be nil.
func NewLedgerService(store storage.Store, c cache.Cache, activities *activity.Log, metrics *observability.Metrics, summaryTTL time.Duration) *LedgerService {
	return &LedgerService{
		store:      store,
		cache:      c,
		activities: activities,
		metrics:    metrics,
		summaryTTL: summaryTTL,
	}
}

// CreateDebt records a new hutang or piutang for the caller.
func (s *LedgerService) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.DebtResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("CreateDebt request received",
		"user_id", userID,
		"type", req.Msg.Type,
		"other_user_id", req.Msg.OtherUserID,
		"amount", req.Msg.Amount.String(),
	)

	debt := &models.Debt{
		UserID:      userID,
		Type:        calculator.DebtType(req.Msg.Type),
		Name:        req.Msg.Name,
		OtherUserID: req.Msg.OtherUserID,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
		Date:        req.Msg.Date,
		GroupID:     req.Msg.GroupID,
		Status:      models.DebtStatus(req.Msg.Status),
		InitiatedBy: userID,
	}
	if debt.Status == "" {
		debt.Status = models.StatusConfirmed
	}

	parties, err := s.parties(ctx, debt)
	if err != nil {
		return nil, err
	}
	if debt.Name == "" && debt.OtherUserID != "" {
		debt.Name = parties[debt.OtherUserID].Name
	}
	if err := validateDebt(debt); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateDebt(ctx, debt); err != nil {
		slog.Error("CreateDebt failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	s.invalidateSummary(ctx, userID)

	if debt.OtherUserID != "" {
		s.recordDebtActivity(activity.TypeNewDebt, debt, parties)
	}

	slog.Info("Debt created", "debt_id", debt.ID, "user_id", userID)
	return connect.NewResponse(&api.DebtResponse{Debt: debtToAPI(debt)}), nil
}

// GetDebt returns one of the caller's debts.
func (s *LedgerService) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.DebtResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	debt, err := s.store.GetDebt(ctx, req.Msg.ID, userID)
	if err != nil {
		slog.Error("GetDebt failed", "debt_id", req.Msg.ID, "user_id", userID, "error", err)
		return nil, storageError(err)
	}

	return connect.NewResponse(&api.DebtResponse{Debt: debtToAPI(debt)}), nil
}

// ListDebts returns the caller's debts matching the filters, newest first.
func (s *LedgerService) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	var filter models.DebtFilter
	if req.Msg.Type != nil {
		t := calculator.DebtType(*req.Msg.Type)
		if !t.Valid() {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown debt type %q", *req.Msg.Type))
		}
		filter.Type = &t
	}
	if req.Msg.Status != nil {
		st := models.DebtStatus(*req.Msg.Status)
		if !st.Valid() {
			return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown status %q", *req.Msg.Status))
		}
		filter.Status = &st
	}
	filter.IsPaid = req.Msg.IsPaid

	debts, err := s.store.ListDebts(ctx, userID, filter)
	if err != nil {
		slog.Error("ListDebts failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	out := make([]api.Debt, len(debts))
	for i, d := range debts {
		out[i] = debtToAPI(d)
	}

	slog.Info("ListDebts successful", "user_id", userID, "count", len(out))
	return connect.NewResponse(&api.ListDebtsResponse{Debts: out}), nil
}

// UpdateDebt changes the set fields of one of the caller's debts.
func (s *LedgerService) UpdateDebt(ctx context.Context, req *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.DebtResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	slog.Info("UpdateDebt request received", "debt_id", req.Msg.ID, "user_id", userID)

	debt, err := s.store.GetDebt(ctx, req.Msg.ID, userID)
	if err != nil {
		return nil, storageError(err)
	}

	wasPaid := debt.IsPaid
	m := req.Msg
	if m.Type != nil {
		debt.Type = calculator.DebtType(*m.Type)
	}
	if m.Name != nil {
		debt.Name = *m.Name
	}
	if m.OtherUserID != nil {
		debt.OtherUserID = *m.OtherUserID
	}
	if m.Amount != nil {
		debt.Amount = *m.Amount
	}
	if m.Description != nil {
		debt.Description = *m.Description
	}
	if m.Date != nil {
		debt.Date = *m.Date
	}
	if m.IsPaid != nil {
		debt.IsPaid = *m.IsPaid
	}
	if m.Status != nil {
		debt.Status = models.DebtStatus(*m.Status)
	}
	if m.RejectionReason != nil {
		debt.RejectionReason = *m.RejectionReason
	}

	if err := validateDebt(debt); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	var parties map[string]*models.User
	if m.OtherUserID != nil {
		if parties, err = s.parties(ctx, debt); err != nil {
			return nil, err
		}
	}

	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		slog.Error("UpdateDebt failed", "debt_id", debt.ID, "error", err)
		return nil, storageError(err)
	}
	s.invalidateSummary(ctx, userID)

	if !wasPaid && debt.IsPaid {
		s.recordSettled(ctx, debt, parties)
	}

	slog.Info("Debt updated", "debt_id", debt.ID)
	return connect.NewResponse(&api.DebtResponse{Debt: debtToAPI(debt)}), nil
}

// DeleteDebt removes one of the caller's debts.
func (s *LedgerService) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.store.DeleteDebt(ctx, req.Msg.ID, userID); err != nil {
		slog.Error("DeleteDebt failed", "debt_id", req.Msg.ID, "user_id", userID, "error", err)
		return nil, storageError(err)
	}
	s.invalidateSummary(ctx, userID)

	slog.Info("Debt deleted", "debt_id", req.Msg.ID)
	return connect.NewResponse(&api.DeleteDebtResponse{}), nil
}

// MarkPaid settles one of the caller's debts.
func (s *LedgerService) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.DebtResponse], error) {
	return s.setPaid(ctx, req.Msg.ID, true)
}

// MarkUnpaid reopens one of the caller's debts.
func (s *LedgerService) MarkUnpaid(ctx context.Context, req *connect.Request[api.MarkUnpaidRequest]) (*connect.Response[api.DebtResponse], error) {
	return s.setPaid(ctx, req.Msg.ID, false)
}

func (s *LedgerService) setPaid(ctx context.Context, id string, paid bool) (*connect.Response[api.DebtResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	debt, err := s.store.GetDebt(ctx, id, userID)
	if err != nil {
		return nil, storageError(err)
	}
	if debt.IsPaid == paid {
		return connect.NewResponse(&api.DebtResponse{Debt: debtToAPI(debt)}), nil
	}

	debt.IsPaid = paid
	if err := s.store.UpdateDebt(ctx, debt); err != nil {
		slog.Error("setPaid failed", "debt_id", id, "paid", paid, "error", err)
		return nil, storageError(err)
	}
	s.invalidateSummary(ctx, userID)

	if paid {
		s.recordSettled(ctx, debt, nil)
	}

	slog.Info("Debt paid status changed", "debt_id", id, "is_paid", paid)
	return connect.NewResponse(&api.DebtResponse{Debt: debtToAPI(debt)}), nil
}

// GetSummary totals the caller's debts. Results are cached until the next
// write or summaryTTL, whichever comes first.
func (s *LedgerService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	if cached, ok := s.cachedSummary(ctx, userID); ok {
		return connect.NewResponse(cached), nil
	}

	debts, err := s.store.ListDebts(ctx, userID, models.DebtFilter{})
	if err != nil {
		slog.Error("GetSummary failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	records := make([]calculator.DebtRecord, len(debts))
	for i, d := range debts {
		records[i] = d.Record()
	}
	sum := calculator.Summarize(records)

	resp := &api.SummaryResponse{
		TotalHutang:      sum.TotalHutang,
		TotalPiutang:     sum.TotalPiutang,
		TotalPaidHutang:  sum.TotalPaidHutang,
		TotalPaidPiutang: sum.TotalPaidPiutang,
		NetBalance:       sum.NetBalance,
		TotalDebts:       sum.TotalDebts,
		UnpaidDebts:      sum.UnpaidDebts,
		PaidDebts:        sum.PaidDebts,
	}
	s.storeSummary(ctx, userID, resp)

	slog.Info("GetSummary successful", "user_id", userID, "total_debts", sum.TotalDebts)
	return connect.NewResponse(resp), nil
}

// GetLedgerGraph runs the optimizer over every stored debt between the
// caller and registered counterparties. Each debt contributes the owner's
// record and its mirror on the counterparty; debts without a registered
// counterparty are left out since they cannot be settled between users.
func (s *LedgerService) GetLedgerGraph(ctx context.Context, req *connect.Request[api.GetLedgerGraphRequest]) (*connect.Response[api.OptimizeResponse], error) {
	userID, err := requireUser(ctx)
	if err != nil {
		return nil, err
	}

	debts, err := s.store.ListDebtsInvolving(ctx, userID)
	if err != nil {
		slog.Error("GetLedgerGraph failed", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	var records []calculator.DebtRecord
	ids := []string{userID}
	seen := map[string]bool{userID: true}
	for _, d := range debts {
		mirror, ok := d.MirrorRecord()
		if !ok {
			continue
		}
		records = append(records, d.Record(), mirror)
		for _, id := range []string{d.UserID, d.OtherUserID} {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
	}

	found, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Error("GetLedgerGraph failed to load users", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	users := make([]calculator.UserRecord, 0, len(ids))
	for _, id := range ids {
		if u, ok := found[id]; ok {
			users = append(users, calculator.UserRecord{ID: u.ID, Name: u.Name})
		}
	}

	if err := calculator.CheckBalances(calculator.CalculateUserBalances(records, users)); err != nil {
		slog.Warn("GetLedgerGraph out of range", "user_id", userID, "error", err)
		return nil, connect.NewError(connect.CodeFailedPrecondition, err)
	}

	graph := calculator.OptimizedDebtGraph(records, users)
	observePlan(s.metrics, "ledger", graph.TotalTransactions)

	slog.Info("GetLedgerGraph successful",
		"user_id", userID,
		"users", len(users),
		"transactions", graph.TotalTransactions,
	)
	return connect.NewResponse(graphToAPI(graph)), nil
}

// parties loads the owner and the counterparty of debt, keyed by ID.
// A named counterparty must be a registered user other than the owner.
func (s *LedgerService) parties(ctx context.Context, debt *models.Debt) (map[string]*models.User, error) {
	ids := []string{debt.UserID}
	if debt.OtherUserID != "" {
		if debt.OtherUserID == debt.UserID {
			return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("cannot record a debt with yourself"))
		}
		ids = append(ids, debt.OtherUserID)
	}

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if debt.OtherUserID != "" && users[debt.OtherUserID] == nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("counterparty %s not found", debt.OtherUserID))
	}
	return users, nil
}

// recordSettled records a settled activity for a debt that just became paid.
// Debts without a counterparty are not shared and record nothing. parties is
// loaded from the store when nil.
func (s *LedgerService) recordSettled(ctx context.Context, debt *models.Debt, parties map[string]*models.User) {
	if debt.OtherUserID == "" {
		return
	}
	if parties == nil {
		var err error
		parties, err = s.store.GetUsersByIDs(ctx, []string{debt.UserID, debt.OtherUserID})
		if err != nil {
			slog.Warn("failed to load debt parties", "debt_id", debt.ID, "error", err)
		}
	}
	s.recordDebtActivity(activity.TypeSettled, debt, parties)
}

// recordDebtActivity appends an activity describing debt from the payer's
// side: hutang means the owner pays, piutang means the counterparty pays.
func (s *LedgerService) recordDebtActivity(t activity.Type, debt *models.Debt, parties map[string]*models.User) {
	from, to := debt.UserID, debt.OtherUserID
	if debt.Type == calculator.Piutang {
		from, to = to, from
	}

	name := func(id string) string {
		if u := parties[id]; u != nil {
			return u.Name
		}
		if id == debt.OtherUserID {
			return debt.Name
		}
		return ""
	}

	recordActivity(s.activities, s.metrics, activity.Entry{
		Type:        t,
		From:        from,
		FromName:    name(from),
		To:          to,
		ToName:      name(to),
		Amount:      debt.Amount,
		Description: debt.Description,
	})
}

func (s *LedgerService) cachedSummary(ctx context.Context, userID string) (*api.SummaryResponse, bool) {
	raw, err := s.cache.Get(ctx, summaryNamespace, userID)
	switch {
	case errors.Is(err, cache.ErrMiss):
		s.observeCache("miss")
		return nil, false
	case err != nil:
		slog.Warn("summary cache lookup failed", "user_id", userID, "error", err)
		s.observeCache("error")
		return nil, false
	}

	var resp api.SummaryResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		slog.Warn("summary cache entry unreadable", "user_id", userID, "error", err)
		s.observeCache("error")
		return nil, false
	}
	s.observeCache("hit")
	return &resp, true
}

func (s *LedgerService) storeSummary(ctx context.Context, userID string, resp *api.SummaryResponse) {
	raw, err := json.Marshal(resp)
	if err != nil {
		slog.Warn("summary encode failed", "user_id", userID, "error", err)
		return
	}
	if err := s.cache.Set(ctx, summaryNamespace, userID, string(raw), s.summaryTTL); err != nil {
		slog.Warn("summary cache store failed", "user_id", userID, "error", err)
	}
}

func (s *LedgerService) invalidateSummary(ctx context.Context, userID string) {
	if err := s.cache.Delete(ctx, summaryNamespace, userID); err != nil {
		slog.Warn("summary cache invalidation failed", "user_id", userID, "error", err)
	}
}

func (s *LedgerService) observeCache(result string) {
	if s.metrics != nil {
		s.metrics.CacheLookups.WithLabelValues(result).Inc()
	}
}

func validateDebt(d *models.Debt) error {
	if !d.Type.Valid() {
		return fmt.Errorf("unknown debt type %q", d.Type)
	}
	if d.Name == "" {
		return errors.New("name required")
	}
	if !d.Amount.GreaterThan(decimal.Zero) {
		return errors.New("amount must be positive")
	}
	if d.Amount.GreaterThan(calculator.MaxSettlement) {
		return fmt.Errorf("%w: amount %s", calculator.ErrAmountOutOfRange, d.Amount)
	}
	if !d.Status.Valid() {
		return fmt.Errorf("unknown status %q", d.Status)
	}
	return nil
}

// requireUser returns the authenticated caller's ID.
func requireUser(ctx context.Context) (string, error) {
	userID := middleware.GetUserID(ctx)
	if userID == "" {
		return "", connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
	}
	return userID, nil
}

func userIDOrAnonymous(ctx context.Context) string {
	if id := middleware.GetUserID(ctx); id != "" {
		return id
	}
	return "anonymous"
}

// storageError maps storage sentinels to Connect codes.
func storageError(err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return connect.NewError(connect.CodeNotFound, err)
	}
	return connect.NewError(connect.CodeInternal, err)
}
