package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/ArdhikaRizki/debTBE/internal/activity"
	"github.com/ArdhikaRizki/debTBE/internal/auth"
	"github.com/ArdhikaRizki/debTBE/internal/cache"
	"github.com/ArdhikaRizki/debTBE/internal/middleware"
	"github.com/ArdhikaRizki/debTBE/internal/models"
	"github.com/ArdhikaRizki/debTBE/internal/observability"
	"github.com/ArdhikaRizki/debTBE/internal/storage/sqlite"
	"github.com/ArdhikaRizki/debTBE/pkg/api"
	"github.com/ArdhikaRizki/debTBE/pkg/api/apiconnect"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that puts the user named
// by the X-Test-User header into the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if id := req.Header().Get(testUserHeader); id != "" {
				ctx = middleware.WithUser(ctx, id, "")
			}
			return next(ctx, req)
		}
	}
}

type testServer struct {
	debt       *apiconnect.DebtServiceClient
	ledger     *apiconnect.LedgerServiceClient
	auth       *apiconnect.AuthServiceClient
	store      *sqlite.SQLiteStore
	cache      *cache.MemoryCache
	activities *activity.Log
}

// setupTestServer creates a test server with a temp SQLite database and all services mounted.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "debt-service-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	activities := activity.NewLog(activity.DefaultCapacity)
	summaries := cache.NewMemoryCache()

	interceptors := connect.WithInterceptors(testAuthInterceptor(), middleware.LoggingInterceptor(metrics))

	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewDebtServiceHandler(NewDebtService(activities, metrics), interceptors))
	mux.Handle(apiconnect.NewLedgerServiceHandler(NewLedgerService(store, summaries, activities, metrics, time.Minute), interceptors))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, slog.Default()), interceptors))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testServer{
		debt:       apiconnect.NewDebtServiceClient(http.DefaultClient, server.URL),
		ledger:     apiconnect.NewLedgerServiceClient(http.DefaultClient, server.URL),
		auth:       apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		store:      store,
		cache:      summaries,
		activities: activities,
	}
}

// createTestUser inserts a user directly into the store.
func (ts *testServer) createTestUser(t *testing.T, username, name string) *models.User {
	t.Helper()
	user := models.NewUser(username, name, username+"@example.com", "hash")
	if err := ts.store.CreateUser(context.Background(), user); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", username, err)
	}
	return user
}

// as builds a request sent on behalf of userID.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHeader, userID)
	return req
}

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

var threeUsers = []api.UserRef{{ID: "A", Name: "Andi"}, {ID: "B", Name: "Budi"}, {ID: "C", Name: "Citra"}}

func TestOptimize(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.debt.Optimize(context.Background(), connect.NewRequest(&api.OptimizeRequest{
		Debts: []api.DebtRecord{
			{UserID: "A", Type: "hutang", Amount: d(100)},
			{UserID: "B", Type: "piutang", Amount: d(100)},
			{UserID: "C", Type: "hutang", Amount: d(40), IsPaid: true},
		},
		Users: threeUsers,
	}))
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}

	if len(resp.Msg.Balances) != 3 {
		t.Fatalf("expected 3 balances, got %d", len(resp.Msg.Balances))
	}
	if !resp.Msg.Balances[2].Balance.IsZero() {
		t.Errorf("paid debt should not count, C balance = %s", resp.Msg.Balances[2].Balance)
	}

	want := api.OptimizedDebt{From: "A", FromName: "Andi", To: "B", ToName: "Budi", Amount: 100}
	if len(resp.Msg.OptimizedDebts) != 1 || resp.Msg.OptimizedDebts[0] != want {
		t.Errorf("OptimizedDebts = %+v, want [%+v]", resp.Msg.OptimizedDebts, want)
	}
	if resp.Msg.TotalTransactions != 1 || resp.Msg.TotalAmount != 100 {
		t.Errorf("totals = (%d, %d), want (1, 100)", resp.Msg.TotalTransactions, resp.Msg.TotalAmount)
	}
}

func TestOptimize_Empty(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.debt.Optimize(context.Background(), connect.NewRequest(&api.OptimizeRequest{}))
	if err != nil {
		t.Fatalf("Optimize failed: %v", err)
	}
	if len(resp.Msg.Balances) != 0 || len(resp.Msg.OptimizedDebts) != 0 {
		t.Errorf("expected empty plan, got %+v", resp.Msg)
	}
	if resp.Msg.TotalTransactions != 0 || resp.Msg.TotalAmount != 0 {
		t.Errorf("expected zero totals, got %+v", resp.Msg)
	}
}

func TestPlanAmountOutOfRange(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	huge := []api.DebtRecord{
		{UserID: "C", Type: "piutang", Amount: decimal.New(1, 30)},
		{UserID: "A", Type: "hutang", Amount: decimal.New(1, 30)},
	}

	tests := []struct {
		name string
		call func() error
	}{
		{"optimize", func() error {
			_, err := ts.debt.Optimize(ctx, connect.NewRequest(&api.OptimizeRequest{Debts: huge, Users: threeUsers}))
			return err
		}},
		{"simulate snapshot", func() error {
			_, err := ts.debt.Simulate(ctx, connect.NewRequest(&api.SimulateRequest{
				Debts: huge, Users: threeUsers, FromUserID: "A", ToUserID: "C", Amount: d(1),
			}))
			return err
		}},
		{"simulate payment", func() error {
			_, err := ts.debt.Simulate(ctx, connect.NewRequest(&api.SimulateRequest{
				Users: threeUsers, FromUserID: "A", ToUserID: "C", Amount: decimal.New(1, 30),
			}))
			return err
		}},
		{"find path", func() error {
			_, err := ts.debt.FindPath(ctx, connect.NewRequest(&api.FindPathRequest{
				Debts: huge, Users: threeUsers, FromUserID: "A", ToUserID: "C",
			}))
			return err
		}},
		{"suggestions", func() error {
			_, err := ts.debt.Suggestions(ctx, connect.NewRequest(&api.SuggestionsRequest{
				Debts: huge, Users: threeUsers, UserID: "A",
			}))
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); connect.CodeOf(err) != connect.CodeInvalidArgument {
				t.Errorf("expected InvalidArgument, got %v", err)
			}
		})
	}
}

func TestSimulate(t *testing.T) {
	ts := setupTestServer(t)

	resp, err := ts.debt.Simulate(context.Background(), connect.NewRequest(&api.SimulateRequest{
		Debts: []api.DebtRecord{
			{UserID: "A", Type: "hutang", Amount: d(100)},
			{UserID: "B", Type: "piutang", Amount: d(100)},
		},
		Users:      threeUsers,
		FromUserID: "A",
		ToUserID:   "B",
		Amount:     d(100),
	}))
	if err != nil {
		t.Fatalf("Simulate failed: %v", err)
	}

	if len(resp.Msg.Before) != 1 || len(resp.Msg.After) != 0 {
		t.Errorf("before/after = %d/%d, want 1/0", len(resp.Msg.Before), len(resp.Msg.After))
	}
	if resp.Msg.Impact != "reduces" || resp.Msg.Delta != 1 {
		t.Errorf("impact = %s (%d), want reduces (1)", resp.Msg.Impact, resp.Msg.Delta)
	}
	if resp.Msg.Summary != "reduces 1 transactions" {
		t.Errorf("summary = %q", resp.Msg.Summary)
	}
}

func TestFindPath(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	snapshot := []api.DebtRecord{
		{UserID: "A", Type: "hutang", Amount: d(50)},
		{UserID: "C", Type: "hutang", Amount: d(100)},
		{UserID: "B", Type: "piutang", Amount: d(150)},
	}

	t.Run("computed from snapshot", func(t *testing.T) {
		resp, err := ts.debt.FindPath(ctx, connect.NewRequest(&api.FindPathRequest{
			FromUserID: "C",
			ToUserID:   "B",
			Debts:      snapshot,
			Users:      threeUsers,
		}))
		if err != nil {
			t.Fatalf("FindPath failed: %v", err)
		}
		if !resp.Msg.Found || resp.Msg.Path == nil || resp.Msg.Path.Amount != 100 {
			t.Errorf("expected C->B 100, got %+v", resp.Msg)
		}
	})

	t.Run("precomputed plan without a direct edge", func(t *testing.T) {
		resp, err := ts.debt.FindPath(ctx, connect.NewRequest(&api.FindPathRequest{
			FromUserID:     "B",
			ToUserID:       "A",
			OptimizedDebts: []api.OptimizedDebt{{From: "A", To: "B", Amount: 10}},
		}))
		if err != nil {
			t.Fatalf("FindPath failed: %v", err)
		}
		if resp.Msg.Found || resp.Msg.Path != nil {
			t.Errorf("expected no path, got %+v", resp.Msg)
		}
	})

	t.Run("empty plan is valid input", func(t *testing.T) {
		resp, err := ts.debt.FindPath(ctx, connect.NewRequest(&api.FindPathRequest{
			FromUserID:     "A",
			ToUserID:       "B",
			OptimizedDebts: []api.OptimizedDebt{},
		}))
		if err != nil {
			t.Fatalf("FindPath failed: %v", err)
		}
		if resp.Msg.Found {
			t.Errorf("expected no path, got %+v", resp.Msg)
		}
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := ts.debt.FindPath(ctx, connect.NewRequest(&api.FindPathRequest{
			FromUserID: "A",
			ToUserID:   "B",
			Debts:      snapshot,
		}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})
}

func TestSuggestions(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	resp, err := ts.debt.Suggestions(ctx, connect.NewRequest(&api.SuggestionsRequest{
		UserID: "B",
		Debts: []api.DebtRecord{
			{UserID: "A", Type: "hutang", Amount: d(50)},
			{UserID: "C", Type: "hutang", Amount: d(100)},
			{UserID: "B", Type: "piutang", Amount: d(150)},
		},
		Users: threeUsers,
	}))
	if err != nil {
		t.Fatalf("Suggestions failed: %v", err)
	}
	if len(resp.Msg.ShouldPay) != 0 {
		t.Errorf("B should pay nothing, got %+v", resp.Msg.ShouldPay)
	}
	if len(resp.Msg.WillReceive) != 2 {
		t.Fatalf("B should receive 2 payments, got %+v", resp.Msg.WillReceive)
	}
	if resp.Msg.WillReceive[0].From != "C" || resp.Msg.WillReceive[1].From != "A" {
		t.Errorf("unexpected order: %+v", resp.Msg.WillReceive)
	}

	_, err = ts.debt.Suggestions(ctx, connect.NewRequest(&api.SuggestionsRequest{UserID: "B"}))
	if connect.CodeOf(err) != connect.CodeInvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}
}

func TestActivities(t *testing.T) {
	ts := setupTestServer(t)
	ctx := context.Background()

	for i := 0; i < 12; i++ {
		from, to := "A", "B"
		if i%3 == 0 {
			from, to = "C", "A"
		}
		resp, err := ts.debt.AddActivity(ctx, connect.NewRequest(&api.AddActivityRequest{
			Type:   "payment",
			From:   from,
			To:     to,
			Amount: d(int64(i + 1)),
		}))
		if err != nil {
			t.Fatalf("AddActivity failed: %v", err)
		}
		if resp.Msg.Activity.ID == "" || resp.Msg.Activity.Timestamp == "" {
			t.Fatalf("activity not stamped: %+v", resp.Msg.Activity)
		}
	}

	t.Run("default limit", func(t *testing.T) {
		resp, err := ts.debt.ListActivities(ctx, connect.NewRequest(&api.ListActivitiesRequest{}))
		if err != nil {
			t.Fatalf("ListActivities failed: %v", err)
		}
		if len(resp.Msg.Activities) != activity.DefaultLimit {
			t.Fatalf("expected %d activities, got %d", activity.DefaultLimit, len(resp.Msg.Activities))
		}
		if !resp.Msg.Activities[0].Amount.Equal(d(12)) {
			t.Errorf("newest first: got amount %s", resp.Msg.Activities[0].Amount)
		}
	})

	t.Run("user filter", func(t *testing.T) {
		resp, err := ts.debt.ListUserActivities(ctx, connect.NewRequest(&api.ListUserActivitiesRequest{UserID: "C", Limit: 3}))
		if err != nil {
			t.Fatalf("ListUserActivities failed: %v", err)
		}
		if len(resp.Msg.Activities) != 3 {
			t.Fatalf("expected 3 activities, got %d", len(resp.Msg.Activities))
		}
		for _, a := range resp.Msg.Activities {
			if a.From != "C" && a.To != "C" {
				t.Errorf("activity %s does not involve C", a.ID)
			}
		}
		if !resp.Msg.Activities[0].Amount.Equal(d(10)) {
			t.Errorf("expected newest C activity (10), got %s", resp.Msg.Activities[0].Amount)
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		_, err := ts.debt.AddActivity(ctx, connect.NewRequest(&api.AddActivityRequest{Type: "refund"}))
		if connect.CodeOf(err) != connect.CodeInvalidArgument {
			t.Errorf("expected InvalidArgument, got %v", err)
		}
	})

	t.Run("clear", func(t *testing.T) {
		resp, err := ts.debt.ClearActivities(ctx, connect.NewRequest(&api.ClearActivitiesRequest{}))
		if err != nil {
			t.Fatalf("ClearActivities failed: %v", err)
		}
		if !resp.Msg.OK {
			t.Error("expected ok")
		}
		if ts.activities.Len() != 0 {
			t.Errorf("expected empty log, got %d", ts.activities.Len())
		}
	})
}
