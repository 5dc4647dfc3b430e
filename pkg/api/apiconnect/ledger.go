package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/ArdhikaRizki/debTBE/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "debt.v1.LedgerService"

// Procedure paths of LedgerService.
const (
	LedgerServiceCreateDebtProcedure     = "/debt.v1.LedgerService/CreateDebt"
	LedgerServiceGetDebtProcedure        = "/debt.v1.LedgerService/GetDebt"
	LedgerServiceListDebtsProcedure      = "/debt.v1.LedgerService/ListDebts"
	LedgerServiceUpdateDebtProcedure     = "/debt.v1.LedgerService/UpdateDebt"
	LedgerServiceDeleteDebtProcedure     = "/debt.v1.LedgerService/DeleteDebt"
	LedgerServiceMarkPaidProcedure       = "/debt.v1.LedgerService/MarkPaid"
	LedgerServiceMarkUnpaidProcedure     = "/debt.v1.LedgerService/MarkUnpaid"
	LedgerServiceGetSummaryProcedure     = "/debt.v1.LedgerService/GetSummary"
	LedgerServiceGetLedgerGraphProcedure = "/debt.v1.LedgerService/GetLedgerGraph"
)

// LedgerServiceHandler manages the authenticated user's stored debts.
type LedgerServiceHandler interface {
	CreateDebt(context.Context, *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.DebtResponse], error)
	GetDebt(context.Context, *connect.Request[api.GetDebtRequest]) (*connect.Response[api.DebtResponse], error)
	ListDebts(context.Context, *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error)
	UpdateDebt(context.Context, *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.DebtResponse], error)
	DeleteDebt(context.Context, *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error)
	MarkPaid(context.Context, *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.DebtResponse], error)
	MarkUnpaid(context.Context, *connect.Request[api.MarkUnpaidRequest]) (*connect.Response[api.DebtResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error)
	GetLedgerGraph(context.Context, *connect.Request[api.GetLedgerGraphRequest]) (*connect.Response[api.OptimizeResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = withCodec(opts)
	routes := map[string]http.Handler{
		LedgerServiceCreateDebtProcedure:     connect.NewUnaryHandler(LedgerServiceCreateDebtProcedure, svc.CreateDebt, opts...),
		LedgerServiceGetDebtProcedure:        connect.NewUnaryHandler(LedgerServiceGetDebtProcedure, svc.GetDebt, opts...),
		LedgerServiceListDebtsProcedure:      connect.NewUnaryHandler(LedgerServiceListDebtsProcedure, svc.ListDebts, opts...),
		LedgerServiceUpdateDebtProcedure:     connect.NewUnaryHandler(LedgerServiceUpdateDebtProcedure, svc.UpdateDebt, opts...),
		LedgerServiceDeleteDebtProcedure:     connect.NewUnaryHandler(LedgerServiceDeleteDebtProcedure, svc.DeleteDebt, opts...),
		LedgerServiceMarkPaidProcedure:       connect.NewUnaryHandler(LedgerServiceMarkPaidProcedure, svc.MarkPaid, opts...),
		LedgerServiceMarkUnpaidProcedure:     connect.NewUnaryHandler(LedgerServiceMarkUnpaidProcedure, svc.MarkUnpaid, opts...),
		LedgerServiceGetSummaryProcedure:     connect.NewUnaryHandler(LedgerServiceGetSummaryProcedure, svc.GetSummary, opts...),
		LedgerServiceGetLedgerGraphProcedure: connect.NewUnaryHandler(LedgerServiceGetLedgerGraphProcedure, svc.GetLedgerGraph, opts...),
	}
	return "/" + LedgerServiceName + "/", router(routes)
}

// LedgerServiceClient is a client for the LedgerService service.
type LedgerServiceClient struct {
	createDebt     *connect.Client[api.CreateDebtRequest, api.DebtResponse]
	getDebt        *connect.Client[api.GetDebtRequest, api.DebtResponse]
	listDebts      *connect.Client[api.ListDebtsRequest, api.ListDebtsResponse]
	updateDebt     *connect.Client[api.UpdateDebtRequest, api.DebtResponse]
	deleteDebt     *connect.Client[api.DeleteDebtRequest, api.DeleteDebtResponse]
	markPaid       *connect.Client[api.MarkPaidRequest, api.DebtResponse]
	markUnpaid     *connect.Client[api.MarkUnpaidRequest, api.DebtResponse]
	getSummary     *connect.Client[api.GetSummaryRequest, api.SummaryResponse]
	getLedgerGraph *connect.Client[api.GetLedgerGraphRequest, api.OptimizeResponse]
}

// NewLedgerServiceClient constructs a client for the LedgerService service.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *LedgerServiceClient {
	opts = withClientCodec(opts)
	return &LedgerServiceClient{
		createDebt:     connect.NewClient[api.CreateDebtRequest, api.DebtResponse](httpClient, baseURL+LedgerServiceCreateDebtProcedure, opts...),
		getDebt:        connect.NewClient[api.GetDebtRequest, api.DebtResponse](httpClient, baseURL+LedgerServiceGetDebtProcedure, opts...),
		listDebts:      connect.NewClient[api.ListDebtsRequest, api.ListDebtsResponse](httpClient, baseURL+LedgerServiceListDebtsProcedure, opts...),
		updateDebt:     connect.NewClient[api.UpdateDebtRequest, api.DebtResponse](httpClient, baseURL+LedgerServiceUpdateDebtProcedure, opts...),
		deleteDebt:     connect.NewClient[api.DeleteDebtRequest, api.DeleteDebtResponse](httpClient, baseURL+LedgerServiceDeleteDebtProcedure, opts...),
		markPaid:       connect.NewClient[api.MarkPaidRequest, api.DebtResponse](httpClient, baseURL+LedgerServiceMarkPaidProcedure, opts...),
		markUnpaid:     connect.NewClient[api.MarkUnpaidRequest, api.DebtResponse](httpClient, baseURL+LedgerServiceMarkUnpaidProcedure, opts...),
		getSummary:     connect.NewClient[api.GetSummaryRequest, api.SummaryResponse](httpClient, baseURL+LedgerServiceGetSummaryProcedure, opts...),
		getLedgerGraph: connect.NewClient[api.GetLedgerGraphRequest, api.OptimizeResponse](httpClient, baseURL+LedgerServiceGetLedgerGraphProcedure, opts...),
	}
}

func (c *LedgerServiceClient) CreateDebt(ctx context.Context, req *connect.Request[api.CreateDebtRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.createDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetDebt(ctx context.Context, req *connect.Request[api.GetDebtRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.getDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) ListDebts(ctx context.Context, req *connect.Request[api.ListDebtsRequest]) (*connect.Response[api.ListDebtsResponse], error) {
	return c.listDebts.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) UpdateDebt(ctx context.Context, req *connect.Request[api.UpdateDebtRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.updateDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) DeleteDebt(ctx context.Context, req *connect.Request[api.DeleteDebtRequest]) (*connect.Response[api.DeleteDebtResponse], error) {
	return c.deleteDebt.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) MarkPaid(ctx context.Context, req *connect.Request[api.MarkPaidRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.markPaid.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) MarkUnpaid(ctx context.Context, req *connect.Request[api.MarkUnpaidRequest]) (*connect.Response[api.DebtResponse], error) {
	return c.markUnpaid.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.SummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}

func (c *LedgerServiceClient) GetLedgerGraph(ctx context.Context, req *connect.Request[api.GetLedgerGraphRequest]) (*connect.Response[api.OptimizeResponse], error) {
	return c.getLedgerGraph.CallUnary(ctx, req)
}
