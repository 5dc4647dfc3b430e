package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/pkg/api"
)

// DebtServiceName is the fully-qualified name of the DebtService service.
const DebtServiceName = "debt.v1.DebtService"

// Procedure paths of DebtService.
const (
	DebtServiceOptimizeProcedure           = "/debt.v1.DebtService/Optimize"
	DebtServiceSimulateProcedure           = "/debt.v1.DebtService/Simulate"
	DebtServiceFindPathProcedure           = "/debt.v1.DebtService/FindPath"
	DebtServiceSuggestionsProcedure        = "/debt.v1.DebtService/Suggestions"
	DebtServiceAddActivityProcedure        = "/debt.v1.DebtService/AddActivity"
	DebtServiceListActivitiesProcedure     = "/debt.v1.DebtService/ListActivities"
	DebtServiceListUserActivitiesProcedure = "/debt.v1.DebtService/ListUserActivities"
	DebtServiceClearActivitiesProcedure    = "/debt.v1.DebtService/ClearActivities"
)

// DebtServiceHandler computes settlement plans over caller-supplied
// snapshots and serves the activity feed.
type DebtServiceHandler interface {
	Optimize(context.Context, *connect.Request[api.OptimizeRequest]) (*connect.Response[api.OptimizeResponse], error)
	Simulate(context.Context, *connect.Request[api.SimulateRequest]) (*connect.Response[api.SimulateResponse], error)
	FindPath(context.Context, *connect.Request[api.FindPathRequest]) (*connect.Response[api.FindPathResponse], error)
	Suggestions(context.Context, *connect.Request[api.SuggestionsRequest]) (*connect.Response[api.SuggestionsResponse], error)
	AddActivity(context.Context, *connect.Request[api.AddActivityRequest]) (*connect.Response[api.AddActivityResponse], error)
	ListActivities(context.Context, *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error)
	ListUserActivities(context.Context, *connect.Request[api.ListUserActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error)
	ClearActivities(context.Context, *connect.Request[api.ClearActivitiesRequest]) (*connect.Response[api.ClearActivitiesResponse], error)
}

// NewDebtServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewDebtServiceHandler(svc DebtServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		DebtServiceOptimizeProcedure:           connect.NewUnaryHandler(DebtServiceOptimizeProcedure, svc.Optimize, opts...),
		DebtServiceSimulateProcedure:           connect.NewUnaryHandler(DebtServiceSimulateProcedure, svc.Simulate, opts...),
		DebtServiceFindPathProcedure:           connect.NewUnaryHandler(DebtServiceFindPathProcedure, svc.FindPath, opts...),
		DebtServiceSuggestionsProcedure:        connect.NewUnaryHandler(DebtServiceSuggestionsProcedure, svc.Suggestions, opts...),
		DebtServiceAddActivityProcedure:        connect.NewUnaryHandler(DebtServiceAddActivityProcedure, svc.AddActivity, opts...),
		DebtServiceListActivitiesProcedure:     connect.NewUnaryHandler(DebtServiceListActivitiesProcedure, svc.ListActivities, opts...),
		DebtServiceListUserActivitiesProcedure: connect.NewUnaryHandler(DebtServiceListUserActivitiesProcedure, svc.ListUserActivities, opts...),
		DebtServiceClearActivitiesProcedure:    connect.NewUnaryHandler(DebtServiceClearActivitiesProcedure, svc.ClearActivities, opts...),
	}
	return "/" + DebtServiceName + "/", router(routes)
}

// DebtServiceClient is a client for the DebtService service.
type DebtServiceClient struct {
	optimize           *connect.Client[api.OptimizeRequest, api.OptimizeResponse]
	simulate           *connect.Client[api.SimulateRequest, api.SimulateResponse]
	findPath           *connect.Client[api.FindPathRequest, api.FindPathResponse]
	suggestions        *connect.Client[api.SuggestionsRequest, api.SuggestionsResponse]
	addActivity        *connect.Client[api.AddActivityRequest, api.AddActivityResponse]
	listActivities     *connect.Client[api.ListActivitiesRequest, api.ListActivitiesResponse]
	listUserActivities *connect.Client[api.ListUserActivitiesRequest, api.ListActivitiesResponse]
	clearActivities    *connect.Client[api.ClearActivitiesRequest, api.ClearActivitiesResponse]
}

// NewDebtServiceClient constructs a client for the DebtService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewDebtServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *DebtServiceClient {
	opts = withClientCodec(opts)
	return &DebtServiceClient{
		optimize:           connect.NewClient[api.OptimizeRequest, api.OptimizeResponse](httpClient, baseURL+DebtServiceOptimizeProcedure, opts...),
		simulate:           connect.NewClient[api.SimulateRequest, api.SimulateResponse](httpClient, baseURL+DebtServiceSimulateProcedure, opts...),
		findPath:           connect.NewClient[api.FindPathRequest, api.FindPathResponse](httpClient, baseURL+DebtServiceFindPathProcedure, opts...),
		suggestions:        connect.NewClient[api.SuggestionsRequest, api.SuggestionsResponse](httpClient, baseURL+DebtServiceSuggestionsProcedure, opts...),
		addActivity:        connect.NewClient[api.AddActivityRequest, api.AddActivityResponse](httpClient, baseURL+DebtServiceAddActivityProcedure, opts...),
		listActivities:     connect.NewClient[api.ListActivitiesRequest, api.ListActivitiesResponse](httpClient, baseURL+DebtServiceListActivitiesProcedure, opts...),
		listUserActivities: connect.NewClient[api.ListUserActivitiesRequest, api.ListActivitiesResponse](httpClient, baseURL+DebtServiceListUserActivitiesProcedure, opts...),
		clearActivities:    connect.NewClient[api.ClearActivitiesRequest, api.ClearActivitiesResponse](httpClient, baseURL+DebtServiceClearActivitiesProcedure, opts...),
	}
}

func (c *DebtServiceClient) Optimize(ctx context.Context, req *connect.Request[api.OptimizeRequest]) (*connect.Response[api.OptimizeResponse], error) {
	return c.optimize.CallUnary(ctx, req)
}

func (c *DebtServiceClient) Simulate(ctx context.Context, req *connect.Request[api.SimulateRequest]) (*connect.Response[api.SimulateResponse], error) {
	return c.simulate.CallUnary(ctx, req)
}

func (c *DebtServiceClient) FindPath(ctx context.Context, req *connect.Request[api.FindPathRequest]) (*connect.Response[api.FindPathResponse], error) {
	return c.findPath.CallUnary(ctx, req)
}

func (c *DebtServiceClient) Suggestions(ctx context.Context, req *connect.Request[api.SuggestionsRequest]) (*connect.Response[api.SuggestionsResponse], error) {
	return c.suggestions.CallUnary(ctx, req)
}

func (c *DebtServiceClient) AddActivity(ctx context.Context, req *connect.Request[api.AddActivityRequest]) (*connect.Response[api.AddActivityResponse], error) {
	return c.addActivity.CallUnary(ctx, req)
}

func (c *DebtServiceClient) ListActivities(ctx context.Context, req *connect.Request[api.ListActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	return c.listActivities.CallUnary(ctx, req)
}

func (c *DebtServiceClient) ListUserActivities(ctx context.Context, req *connect.Request[api.ListUserActivitiesRequest]) (*connect.Response[api.ListActivitiesResponse], error) {
	return c.listUserActivities.CallUnary(ctx, req)
}

func (c *DebtServiceClient) ClearActivities(ctx context.Context, req *connect.Request[api.ClearActivitiesRequest]) (*connect.Response[api.ClearActivitiesResponse], error) {
	return c.clearActivities.CallUnary(ctx, req)
}

// router dispatches on the exact procedure path.
func router(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}
