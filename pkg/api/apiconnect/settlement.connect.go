// Package apiconnect wires the settleup.v1.SettlementService messages to
// connect-go handlers and clients.
package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// SettlementServiceName is the fully-qualified name of the SettlementService service.
const SettlementServiceName = "settleup.v1.SettlementService"

// These constants are the fully-qualified names of the RPCs defined in this
// package. They're exposed at runtime as Spec.Procedure and as the final two
// segments of the HTTP route.
const (
	SettlementServiceCalculateSettlementProcedure = "/settleup.v1.SettlementService/CalculateSettlement"
	SettlementServiceCreateSplitProcedure         = "/settleup.v1.SettlementService/CreateSplit"
	SettlementServiceGetSplitProcedure            = "/settleup.v1.SettlementService/GetSplit"
	SettlementServiceListSplitHistoryProcedure    = "/settleup.v1.SettlementService/ListSplitHistory"
	SettlementServiceListSplitsByGroupProcedure   = "/settleup.v1.SettlementService/ListSplitsByGroup"
	SettlementServiceListGroupsProcedure          = "/settleup.v1.SettlementService/ListGroups"
)

// SettlementServiceClient is a client for the settleup.v1.SettlementService service.
type SettlementServiceClient interface {
	CalculateSettlement(context.Context, *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error)
	CreateSplit(context.Context, *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error)
	GetSplit(context.Context, *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error)
	ListSplitHistory(context.Context, *connect.Request[api.ListSplitHistoryRequest]) (*connect.Response[api.ListSplitHistoryResponse], error)
	ListSplitsByGroup(context.Context, *connect.Request[api.ListSplitsByGroupRequest]) (*connect.Response[api.ListSplitsByGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
}

// NewSettlementServiceClient constructs a client for the settleup.v1.SettlementService
// service. Requests use the Connect protocol with JSON bodies by default.
//
// The URL supplied here should be the base URL for the server (for example,
// http://api.acme.com or https://acme.com/grpc).
func NewSettlementServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SettlementServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	return &settlementServiceClient{
		calculateSettlement: connect.NewClient[api.CalculateSettlementRequest, api.CalculateSettlementResponse](
			httpClient, baseURL+SettlementServiceCalculateSettlementProcedure, opts...,
		),
		createSplit: connect.NewClient[api.CreateSplitRequest, api.CreateSplitResponse](
			httpClient, baseURL+SettlementServiceCreateSplitProcedure, opts...,
		),
		getSplit: connect.NewClient[api.GetSplitRequest, api.GetSplitResponse](
			httpClient, baseURL+SettlementServiceGetSplitProcedure, opts...,
		),
		listSplitHistory: connect.NewClient[api.ListSplitHistoryRequest, api.ListSplitHistoryResponse](
			httpClient, baseURL+SettlementServiceListSplitHistoryProcedure, opts...,
		),
		listSplitsByGroup: connect.NewClient[api.ListSplitsByGroupRequest, api.ListSplitsByGroupResponse](
			httpClient, baseURL+SettlementServiceListSplitsByGroupProcedure, opts...,
		),
		listGroups: connect.NewClient[api.ListGroupsRequest, api.ListGroupsResponse](
			httpClient, baseURL+SettlementServiceListGroupsProcedure, opts...,
		),
	}
}

type settlementServiceClient struct {
	calculateSettlement *connect.Client[api.CalculateSettlementRequest, api.CalculateSettlementResponse]
	createSplit         *connect.Client[api.CreateSplitRequest, api.CreateSplitResponse]
	getSplit            *connect.Client[api.GetSplitRequest, api.GetSplitResponse]
	listSplitHistory    *connect.Client[api.ListSplitHistoryRequest, api.ListSplitHistoryResponse]
	listSplitsByGroup   *connect.Client[api.ListSplitsByGroupRequest, api.ListSplitsByGroupResponse]
	listGroups          *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
}

func (c *settlementServiceClient) CalculateSettlement(ctx context.Context, req *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error) {
	return c.calculateSettlement.CallUnary(ctx, req)
}

func (c *settlementServiceClient) CreateSplit(ctx context.Context, req *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	return c.createSplit.CallUnary(ctx, req)
}

func (c *settlementServiceClient) GetSplit(ctx context.Context, req *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	return c.getSplit.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSplitHistory(ctx context.Context, req *connect.Request[api.ListSplitHistoryRequest]) (*connect.Response[api.ListSplitHistoryResponse], error) {
	return c.listSplitHistory.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListSplitsByGroup(ctx context.Context, req *connect.Request[api.ListSplitsByGroupRequest]) (*connect.Response[api.ListSplitsByGroupResponse], error) {
	return c.listSplitsByGroup.CallUnary(ctx, req)
}

func (c *settlementServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

// SettlementServiceHandler is an implementation of the settleup.v1.SettlementService service.
type SettlementServiceHandler interface {
	CalculateSettlement(context.Context, *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error)
	CreateSplit(context.Context, *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error)
	GetSplit(context.Context, *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error)
	ListSplitHistory(context.Context, *connect.Request[api.ListSplitHistoryRequest]) (*connect.Response[api.ListSplitHistoryResponse], error)
	ListSplitsByGroup(context.Context, *connect.Request[api.ListSplitsByGroupRequest]) (*connect.Response[api.ListSplitsByGroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
}

// NewSettlementServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewSettlementServiceHandler(svc SettlementServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(api.JSONCodec{})}, opts...)
	calculateSettlementHandler := connect.NewUnaryHandler(SettlementServiceCalculateSettlementProcedure, svc.CalculateSettlement, opts...)
	createSplitHandler := connect.NewUnaryHandler(SettlementServiceCreateSplitProcedure, svc.CreateSplit, opts...)
	getSplitHandler := connect.NewUnaryHandler(SettlementServiceGetSplitProcedure, svc.GetSplit, opts...)
	listSplitHistoryHandler := connect.NewUnaryHandler(SettlementServiceListSplitHistoryProcedure, svc.ListSplitHistory, opts...)
	listSplitsByGroupHandler := connect.NewUnaryHandler(SettlementServiceListSplitsByGroupProcedure, svc.ListSplitsByGroup, opts...)
	listGroupsHandler := connect.NewUnaryHandler(SettlementServiceListGroupsProcedure, svc.ListGroups, opts...)
	return "/settleup.v1.SettlementService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case SettlementServiceCalculateSettlementProcedure:
			calculateSettlementHandler.ServeHTTP(w, r)
		case SettlementServiceCreateSplitProcedure:
			createSplitHandler.ServeHTTP(w, r)
		case SettlementServiceGetSplitProcedure:
			getSplitHandler.ServeHTTP(w, r)
		case SettlementServiceListSplitHistoryProcedure:
			listSplitHistoryHandler.ServeHTTP(w, r)
		case SettlementServiceListSplitsByGroupProcedure:
			listSplitsByGroupHandler.ServeHTTP(w, r)
		case SettlementServiceListGroupsProcedure:
			listGroupsHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// UnimplementedSettlementServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedSettlementServiceHandler struct{}

func (UnimplementedSettlementServiceHandler) CalculateSettlement(context.Context, *connect.Request[api.CalculateSettlementRequest]) (*connect.Response[api.CalculateSettlementResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SettlementService.CalculateSettlement is not implemented"))
}

func (UnimplementedSettlementServiceHandler) CreateSplit(context.Context, *connect.Request[api.CreateSplitRequest]) (*connect.Response[api.CreateSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SettlementService.CreateSplit is not implemented"))
}

func (UnimplementedSettlementServiceHandler) GetSplit(context.Context, *connect.Request[api.GetSplitRequest]) (*connect.Response[api.GetSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SettlementService.GetSplit is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListSplitHistory(context.Context, *connect.Request[api.ListSplitHistoryRequest]) (*connect.Response[api.ListSplitHistoryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SettlementService.ListSplitHistory is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListSplitsByGroup(context.Context, *connect.Request[api.ListSplitsByGroupRequest]) (*connect.Response[api.ListSplitsByGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SettlementService.ListSplitsByGroup is not implemented"))
}

func (UnimplementedSettlementServiceHandler) ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("settleup.v1.SettlementService.ListGroups is not implemented"))
}
