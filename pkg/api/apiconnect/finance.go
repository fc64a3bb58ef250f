package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/boatfinance/pkg/api"
)

// FinanceServiceName is the fully-qualified name of the FinanceService service.
const FinanceServiceName = "boatfinance.v1.FinanceService"

// Procedure paths of FinanceService.
const (
	FinanceServiceCalculateProcedure            = "/boatfinance.v1.FinanceService/Calculate"
	FinanceServiceCalculateScenariosProcedure   = "/boatfinance.v1.FinanceService/CalculateScenarios"
	FinanceServiceSaveCalculationProcedure      = "/boatfinance.v1.FinanceService/SaveCalculation"
	FinanceServiceListUserCalculationsProcedure = "/boatfinance.v1.FinanceService/ListUserCalculations"
	FinanceServiceShareCalculationProcedure     = "/boatfinance.v1.FinanceService/ShareCalculation"
	FinanceServiceGetSharedCalculationProcedure = "/boatfinance.v1.FinanceService/GetSharedCalculation"
	FinanceServiceDeleteCalculationProcedure    = "/boatfinance.v1.FinanceService/DeleteCalculation"
	FinanceServiceSuggestedRatesProcedure       = "/boatfinance.v1.FinanceService/SuggestedRates"
)

// FinanceServiceClient is a client for the boatfinance.v1.FinanceService service.
type FinanceServiceClient interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	CalculateScenarios(context.Context, *connect.Request[api.CalculateScenariosRequest]) (*connect.Response[api.CalculateScenariosResponse], error)
	SaveCalculation(context.Context, *connect.Request[api.SaveCalculationRequest]) (*connect.Response[api.SaveCalculationResponse], error)
	ListUserCalculations(context.Context, *connect.Request[api.ListUserCalculationsRequest]) (*connect.Response[api.ListUserCalculationsResponse], error)
	ShareCalculation(context.Context, *connect.Request[api.ShareCalculationRequest]) (*connect.Response[api.ShareCalculationResponse], error)
	GetSharedCalculation(context.Context, *connect.Request[api.GetSharedCalculationRequest]) (*connect.Response[api.GetSharedCalculationResponse], error)
	DeleteCalculation(context.Context, *connect.Request[api.DeleteCalculationRequest]) (*connect.Response[api.DeleteCalculationResponse], error)
	SuggestedRates(context.Context, *connect.Request[api.SuggestedRatesRequest]) (*connect.Response[api.SuggestedRatesResponse], error)
}

// NewFinanceServiceClient constructs a client for the FinanceService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewFinanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) FinanceServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &financeServiceClient{
		calculate:            connect.NewClient[api.CalculateRequest, api.CalculateResponse](httpClient, baseURL+FinanceServiceCalculateProcedure, opts...),
		calculateScenarios:   connect.NewClient[api.CalculateScenariosRequest, api.CalculateScenariosResponse](httpClient, baseURL+FinanceServiceCalculateScenariosProcedure, opts...),
		saveCalculation:      connect.NewClient[api.SaveCalculationRequest, api.SaveCalculationResponse](httpClient, baseURL+FinanceServiceSaveCalculationProcedure, opts...),
		listUserCalculations: connect.NewClient[api.ListUserCalculationsRequest, api.ListUserCalculationsResponse](httpClient, baseURL+FinanceServiceListUserCalculationsProcedure, opts...),
		shareCalculation:     connect.NewClient[api.ShareCalculationRequest, api.ShareCalculationResponse](httpClient, baseURL+FinanceServiceShareCalculationProcedure, opts...),
		getSharedCalculation: connect.NewClient[api.GetSharedCalculationRequest, api.GetSharedCalculationResponse](httpClient, baseURL+FinanceServiceGetSharedCalculationProcedure, opts...),
		deleteCalculation:    connect.NewClient[api.DeleteCalculationRequest, api.DeleteCalculationResponse](httpClient, baseURL+FinanceServiceDeleteCalculationProcedure, opts...),
		suggestedRates:       connect.NewClient[api.SuggestedRatesRequest, api.SuggestedRatesResponse](httpClient, baseURL+FinanceServiceSuggestedRatesProcedure, opts...),
	}
}

type financeServiceClient struct {
	calculate            *connect.Client[api.CalculateRequest, api.CalculateResponse]
	calculateScenarios   *connect.Client[api.CalculateScenariosRequest, api.CalculateScenariosResponse]
	saveCalculation      *connect.Client[api.SaveCalculationRequest, api.SaveCalculationResponse]
	listUserCalculations *connect.Client[api.ListUserCalculationsRequest, api.ListUserCalculationsResponse]
	shareCalculation     *connect.Client[api.ShareCalculationRequest, api.ShareCalculationResponse]
	getSharedCalculation *connect.Client[api.GetSharedCalculationRequest, api.GetSharedCalculationResponse]
	deleteCalculation    *connect.Client[api.DeleteCalculationRequest, api.DeleteCalculationResponse]
	suggestedRates       *connect.Client[api.SuggestedRatesRequest, api.SuggestedRatesResponse]
}

func (c *financeServiceClient) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return c.calculate.CallUnary(ctx, req)
}

func (c *financeServiceClient) CalculateScenarios(ctx context.Context, req *connect.Request[api.CalculateScenariosRequest]) (*connect.Response[api.CalculateScenariosResponse], error) {
	return c.calculateScenarios.CallUnary(ctx, req)
}

func (c *financeServiceClient) SaveCalculation(ctx context.Context, req *connect.Request[api.SaveCalculationRequest]) (*connect.Response[api.SaveCalculationResponse], error) {
	return c.saveCalculation.CallUnary(ctx, req)
}

func (c *financeServiceClient) ListUserCalculations(ctx context.Context, req *connect.Request[api.ListUserCalculationsRequest]) (*connect.Response[api.ListUserCalculationsResponse], error) {
	return c.listUserCalculations.CallUnary(ctx, req)
}

func (c *financeServiceClient) ShareCalculation(ctx context.Context, req *connect.Request[api.ShareCalculationRequest]) (*connect.Response[api.ShareCalculationResponse], error) {
	return c.shareCalculation.CallUnary(ctx, req)
}

func (c *financeServiceClient) GetSharedCalculation(ctx context.Context, req *connect.Request[api.GetSharedCalculationRequest]) (*connect.Response[api.GetSharedCalculationResponse], error) {
	return c.getSharedCalculation.CallUnary(ctx, req)
}

func (c *financeServiceClient) DeleteCalculation(ctx context.Context, req *connect.Request[api.DeleteCalculationRequest]) (*connect.Response[api.DeleteCalculationResponse], error) {
	return c.deleteCalculation.CallUnary(ctx, req)
}

func (c *financeServiceClient) SuggestedRates(ctx context.Context, req *connect.Request[api.SuggestedRatesRequest]) (*connect.Response[api.SuggestedRatesResponse], error) {
	return c.suggestedRates.CallUnary(ctx, req)
}

// FinanceServiceHandler is implemented by the FinanceService server.
type FinanceServiceHandler interface {
	Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error)
	CalculateScenarios(context.Context, *connect.Request[api.CalculateScenariosRequest]) (*connect.Response[api.CalculateScenariosResponse], error)
	SaveCalculation(context.Context, *connect.Request[api.SaveCalculationRequest]) (*connect.Response[api.SaveCalculationResponse], error)
	ListUserCalculations(context.Context, *connect.Request[api.ListUserCalculationsRequest]) (*connect.Response[api.ListUserCalculationsResponse], error)
	ShareCalculation(context.Context, *connect.Request[api.ShareCalculationRequest]) (*connect.Response[api.ShareCalculationResponse], error)
	GetSharedCalculation(context.Context, *connect.Request[api.GetSharedCalculationRequest]) (*connect.Response[api.GetSharedCalculationResponse], error)
	DeleteCalculation(context.Context, *connect.Request[api.DeleteCalculationRequest]) (*connect.Response[api.DeleteCalculationResponse], error)
	SuggestedRates(context.Context, *connect.Request[api.SuggestedRatesRequest]) (*connect.Response[api.SuggestedRatesResponse], error)
}

// NewFinanceServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewFinanceServiceHandler(svc FinanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		FinanceServiceCalculateProcedure:            connect.NewUnaryHandler(FinanceServiceCalculateProcedure, svc.Calculate, opts...),
		FinanceServiceCalculateScenariosProcedure:   connect.NewUnaryHandler(FinanceServiceCalculateScenariosProcedure, svc.CalculateScenarios, opts...),
		FinanceServiceSaveCalculationProcedure:      connect.NewUnaryHandler(FinanceServiceSaveCalculationProcedure, svc.SaveCalculation, opts...),
		FinanceServiceListUserCalculationsProcedure: connect.NewUnaryHandler(FinanceServiceListUserCalculationsProcedure, svc.ListUserCalculations, opts...),
		FinanceServiceShareCalculationProcedure:     connect.NewUnaryHandler(FinanceServiceShareCalculationProcedure, svc.ShareCalculation, opts...),
		FinanceServiceGetSharedCalculationProcedure: connect.NewUnaryHandler(FinanceServiceGetSharedCalculationProcedure, svc.GetSharedCalculation, opts...),
		FinanceServiceDeleteCalculationProcedure:    connect.NewUnaryHandler(FinanceServiceDeleteCalculationProcedure, svc.DeleteCalculation, opts...),
		FinanceServiceSuggestedRatesProcedure:       connect.NewUnaryHandler(FinanceServiceSuggestedRatesProcedure, svc.SuggestedRates, opts...),
	}
	return "/" + FinanceServiceName + "/", routeProcedures(handlers)
}

// UnimplementedFinanceServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedFinanceServiceHandler struct{}

func (UnimplementedFinanceServiceHandler) Calculate(context.Context, *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	return nil, unimplemented(FinanceServiceCalculateProcedure)
}

func (UnimplementedFinanceServiceHandler) CalculateScenarios(context.Context, *connect.Request[api.CalculateScenariosRequest]) (*connect.Response[api.CalculateScenariosResponse], error) {
	return nil, unimplemented(FinanceServiceCalculateScenariosProcedure)
}

func (UnimplementedFinanceServiceHandler) SaveCalculation(context.Context, *connect.Request[api.SaveCalculationRequest]) (*connect.Response[api.SaveCalculationResponse], error) {
	return nil, unimplemented(FinanceServiceSaveCalculationProcedure)
}

func (UnimplementedFinanceServiceHandler) ListUserCalculations(context.Context, *connect.Request[api.ListUserCalculationsRequest]) (*connect.Response[api.ListUserCalculationsResponse], error) {
	return nil, unimplemented(FinanceServiceListUserCalculationsProcedure)
}

func (UnimplementedFinanceServiceHandler) ShareCalculation(context.Context, *connect.Request[api.ShareCalculationRequest]) (*connect.Response[api.ShareCalculationResponse], error) {
	return nil, unimplemented(FinanceServiceShareCalculationProcedure)
}

func (UnimplementedFinanceServiceHandler) GetSharedCalculation(context.Context, *connect.Request[api.GetSharedCalculationRequest]) (*connect.Response[api.GetSharedCalculationResponse], error) {
	return nil, unimplemented(FinanceServiceGetSharedCalculationProcedure)
}

func (UnimplementedFinanceServiceHandler) DeleteCalculation(context.Context, *connect.Request[api.DeleteCalculationRequest]) (*connect.Response[api.DeleteCalculationResponse], error) {
	return nil, unimplemented(FinanceServiceDeleteCalculationProcedure)
}

func (UnimplementedFinanceServiceHandler) SuggestedRates(context.Context, *connect.Request[api.SuggestedRatesRequest]) (*connect.Response[api.SuggestedRatesResponse], error) {
	return nil, unimplemented(FinanceServiceSuggestedRatesProcedure)
}
