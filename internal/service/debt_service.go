package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/internal/activity"
	"github.com/ArdhikaRizki/debTBE/internal/calculator"
	"github.com/ArdhikaRizki/debTBE/internal/observability"
	"github.com/ArdhikaRizki/debTBE/pkg/api"
	"github.com/ArdhikaRizki/debTBE/pkg/api/apiconnect"
)

// errMissingPlanInput is returned when a query carries neither a plan nor a
// snapshot to compute one from.
var errMissingPlanInput = errors.New("provide optimized_debts or debts/users")

// DebtService implements the Connect DebtService: settlement plans over
// caller-supplied snapshots and the shared activity feed.
type DebtService struct {
	activities *activity.Log
	metrics    *observability.Metrics
}

var _ apiconnect.DebtServiceHandler = (*DebtService)(nil)

// NewDebtService creates a DebtService appending to the given log.
// metrics may be nil.
func NewDebtService(activities *activity.Log, metrics *observability.Metrics) *DebtService {
	return &DebtService{activities: activities, metrics: metrics}
}

// Optimize computes balances and the settlement plan for a snapshot.
func (s *DebtService) Optimize(ctx context.Context, req *connect.Request[api.OptimizeRequest]) (*connect.Response[api.OptimizeResponse], error) {
	slog.Info("Optimize request received",
		"debts_count", len(req.Msg.Debts),
		"users_count", len(req.Msg.Users),
	)

	debts, users := debtRecordsFromAPI(req.Msg.Debts), usersFromAPI(req.Msg.Users)
	if err := calculator.CheckBalances(calculator.CalculateUserBalances(debts, users)); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	graph := calculator.OptimizedDebtGraph(debts, users)
	s.observePlan("snapshot", graph.TotalTransactions)

	slog.Info("Optimize successful",
		"transactions", graph.TotalTransactions,
		"total_amount", graph.TotalAmount,
	)

	return connect.NewResponse(graphToAPI(graph)), nil
}

// Simulate reports how recording a payment would change the plan.
func (s *DebtService) Simulate(ctx context.Context, req *connect.Request[api.SimulateRequest]) (*connect.Response[api.SimulateResponse], error) {
	slog.Info("Simulate request received",
		"from_user_id", req.Msg.FromUserID,
		"to_user_id", req.Msg.ToUserID,
		"amount", req.Msg.Amount.String(),
	)

	in := calculator.SimulationInput{
		Debts:      debtRecordsFromAPI(req.Msg.Debts),
		Users:      usersFromAPI(req.Msg.Users),
		FromUserID: req.Msg.FromUserID,
		ToUserID:   req.Msg.ToUserID,
		Amount:     req.Msg.Amount,
	}
	if err := in.Check(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	result := calculator.SimulatePayment(in)

	if s.metrics != nil {
		s.metrics.SimulationsByImpact.WithLabelValues(string(result.Impact)).Inc()
	}

	slog.Info("Simulate successful",
		"before", len(result.Before),
		"after", len(result.After),
		"impact", result.Impact,
	)

	return connect.NewResponse(&api.SimulateResponse{
		Before:  optimizedToAPI(result.Before),
		After:   optimizedToAPI(result.After),
		Impact:  string(result.Impact),
		Delta:   result.Delta,
		Summary: result.Summary,
	}), nil
}

// FindPath looks up the direct transaction from one user to another.
func (s *DebtService) FindPath(ctx context.Context, req *connect.Request[api.FindPathRequest]) (*connect.Response[api.FindPathResponse], error) {
	slog.Info("FindPath request received",
		"from_user_id", req.Msg.FromUserID,
		"to_user_id", req.Msg.ToUserID,
	)

	plan, err := s.resolvePlan(req.Msg.OptimizedDebts, req.Msg.Debts, req.Msg.Users)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	resp := &api.FindPathResponse{}
	if d, ok := calculator.FindDirectPath(req.Msg.FromUserID, req.Msg.ToUserID, plan); ok {
		path := api.OptimizedDebt(d)
		resp.Path = &path
		resp.Found = true
	}

	slog.Info("FindPath successful", "found", resp.Found)
	return connect.NewResponse(resp), nil
}

// Suggestions lists what a user should pay and will receive.
func (s *DebtService) Suggestions(ctx context.Context, req *connect.Request[api.SuggestionsRequest]) (*connect.Response[api.SuggestionsResponse], error) {
	slog.Info("Suggestions request received", "user_id", req.Msg.UserID)

	plan, err := s.resolvePlan(req.Msg.OptimizedDebts, req.Msg.Debts, req.Msg.Users)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	suggestions := calculator.UserSuggestions(req.Msg.UserID, plan)

	slog.Info("Suggestions successful",
		"user_id", req.Msg.UserID,
		"should_pay", len(suggestions.ShouldPay),
		"will_receive", len(suggestions.WillReceive),
	)

	return connect.NewResponse(&api.SuggestionsResponse{
		ShouldPay:   optimizedToAPI(suggestions.ShouldPay),
		WillReceive: optimizedToAPI(suggestions.WillReceive),
	}), nil
}

// resolvePlan prefers a precomputed plan and falls back to optimizing the snapshot.
func (s *DebtService) resolvePlan(plan []api.OptimizedDebt, debts []api.DebtRecord, users []api.UserRef) ([]calculator.OptimizedDebt, error) {
	if plan != nil {
		return optimizedFromAPI(plan), nil
	}
	if debts == nil || users == nil {
		return nil, errMissingPlanInput
	}

	balances := calculator.CalculateUserBalances(debtRecordsFromAPI(debts), usersFromAPI(users))
	if err := calculator.CheckBalances(balances); err != nil {
		return nil, err
	}
	optimized := calculator.OptimizeDebts(balances)
	s.observePlan("snapshot", len(optimized))
	return optimized, nil
}

// AddActivity appends an entry to the feed.
func (s *DebtService) AddActivity(ctx context.Context, req *connect.Request[api.AddActivityRequest]) (*connect.Response[api.AddActivityResponse], error) {
	slog.Info("AddActivity request received",
		"type", req.Msg.Type,
		"from", req.Msg.From,
		"to", req.Msg.To,
	)

	entryType := activity.Type(req.Msg.Type)
	if !entryType.Valid() {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown activity type %q", req.Msg.Type))
	}

	act := s.record(activity.Entry{
		Type:        entryType,
		From:        req.Msg.From,
		FromName:    req.Msg.FromName,
		To:          req.Msg.To,
		ToName:      req.Msg.ToName,
		Amount:      req.Msg.Amount,
		Description: req.Msg.Description,
	})

	slog.Info("Activity added", "activity_id", act.ID)
	return connect.NewResponse(&api.AddActivityResponse{Activity: activityToAPI(act)}), nil
}

// ListActivities returns the newest activities.
func (s *DebtService) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	limit := pageLimit(req.Msg.Limit)
	acts := s.activities.Recent(limit)

	slog.Info("ListActivities successful", "limit", limit, "count", len(acts))
	return connect.NewResponse(&api.ListActivitiesResponse{Activities: activitiesToAPI(acts)}), nil
}

// ListUserActivities returns the newest activities naming the user as payer or payee.
func (s *DebtService) ListUserActivities(ctx context.Context, req *connect.Request[api.ListUserActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	if req.Msg.UserID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("user_id required"))
	}

	limit := pageLimit(req.Msg.Limit)
	acts := s.activities.ForUser(req.Msg.UserID, limit)

	slog.Info("ListUserActivities successful", "user_id", req.Msg.UserID, "limit", limit, "count", len(acts))
	return connect.NewResponse(&api.ListActivitiesResponse{Activities: activitiesToAPI(acts)}), nil
}

// ClearActivities empties the feed.
func (s *DebtService) ClearActivities(ctx context.Context, req *connect.Request[api.ClearActivitiesRequest]) (*connect.Response[api.ClearActivitiesResponse], error) {
	s.activities.Clear()
	if s.metrics != nil {
		s.metrics.ActivityEntries.Set(0)
	}

	slog.Info("Activities cleared", "user_id", userIDOrAnonymous(ctx))
	return connect.NewResponse(&api.ClearActivitiesResponse{OK: true}), nil
}

func (s *DebtService) record(e activity.Entry) activity.DebtActivity {
	return recordActivity(s.activities, s.metrics, e)
}

func (s *DebtService) observePlan(source string, transactions int) {
	observePlan(s.metrics, source, transactions)
}

func recordActivity(log *activity.Log, metrics *observability.Metrics, e activity.Entry) activity.DebtActivity {
	act := log.Add(e)
	if metrics != nil {
		metrics.ActivitiesAdded.WithLabelValues(string(e.Type)).Inc()
		metrics.ActivityEntries.Set(float64(log.Len()))
	}
	return act
}

func observePlan(metrics *observability.Metrics, source string, transactions int) {
	if metrics == nil {
		return
	}
	metrics.PlansComputed.WithLabelValues(source).Inc()
	metrics.PlanTransactions.Observe(float64(transactions))
}

// pageLimit maps an absent limit to the default page size.
func pageLimit(limit int) int {
	if limit == 0 {
		return activity.DefaultLimit
	}
	return limit
}
