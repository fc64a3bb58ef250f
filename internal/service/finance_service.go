package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"
	"github.com/google/uuid"

	"github.com/mmynk/boatfinance/internal/finance"
	"github.com/mmynk/boatfinance/internal/middleware"
	"github.com/mmynk/boatfinance/pkg/api"
	"github.com/mmynk/boatfinance/pkg/api/apiconnect"
)

// FinanceService implements the Connect FinanceService on top of a
// finance.Manager. The caller identity comes from the auth interceptor.
type FinanceService struct {
	manager *finance.Manager
}

var _ apiconnect.FinanceServiceHandler = (*FinanceService)(nil)

// NewFinanceService creates a FinanceService backed by manager.
func NewFinanceService(manager *finance.Manager) *FinanceService {
	return &FinanceService{manager: manager}
}

// Calculate computes a loan without storing it.
func (s *FinanceService) Calculate(ctx context.Context, req *connect.Request[api.CalculateRequest]) (*connect.Response[api.CalculateResponse], error) {
	calc, err := s.manager.Calculate(ctx, finance.CalculateRequest{
		Parameters: toParameters(req.Msg.CalculationParameters),
		ListingID:  req.Msg.ListingID,
	})
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.CalculateResponse{Calculation: toAPICalculation(calc)}), nil
}

// CalculateScenarios compares variations of a base calculation.
func (s *FinanceService) CalculateScenarios(ctx context.Context, req *connect.Request[api.CalculateScenariosRequest]) (*connect.Response[api.CalculateScenariosResponse], error) {
	results, err := s.manager.CalculateScenarios(ctx, toParameters(req.Msg.Base), toOverrides(req.Msg.Scenarios))
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.CalculateScenariosResponse{Scenarios: toAPIScenarios(results)}), nil
}

// SaveCalculation computes and stores a calculation owned by the caller.
func (s *FinanceService) SaveCalculation(ctx context.Context, req *connect.Request[api.SaveCalculationRequest]) (*connect.Response[api.SaveCalculationResponse], error) {
	calc, err := s.manager.Save(ctx, middleware.GetUserID(ctx), finance.SaveRequest{
		Parameters: toParameters(req.Msg.CalculationParameters),
		ListingID:  req.Msg.ListingID,
		Notes:      req.Msg.CalculationNotes,
		LenderInfo: toLenderInfo(req.Msg.LenderInfo),
	})
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.SaveCalculationResponse{Calculation: toAPICalculation(calc)}), nil
}

// ListUserCalculations lists the caller's saved calculations, newest first.
func (s *FinanceService) ListUserCalculations(ctx context.Context, req *connect.Request[api.ListUserCalculationsRequest]) (*connect.Response[api.ListUserCalculationsResponse], error) {
	calcs, err := s.manager.ListByOwner(ctx, middleware.GetUserID(ctx), req.Msg.UserID, req.Msg.Limit)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}

	resp := &api.ListUserCalculationsResponse{Calculations: make([]*api.Calculation, 0, len(calcs))}
	for _, c := range calcs {
		resp.Calculations = append(resp.Calculations, toAPICalculation(c))
	}
	return connect.NewResponse(resp), nil
}

// ShareCalculation returns the public share link of a calculation.
func (s *FinanceService) ShareCalculation(ctx context.Context, req *connect.Request[api.ShareCalculationRequest]) (*connect.Response[api.ShareCalculationResponse], error) {
	res, err := s.manager.Share(ctx, middleware.GetUserID(ctx), req.Msg.CalculationID)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.ShareCalculationResponse{ShareToken: res.Token, ShareURL: res.URL}), nil
}

// GetSharedCalculation returns a shared calculation without owner details.
// No authentication is required.
func (s *FinanceService) GetSharedCalculation(ctx context.Context, req *connect.Request[api.GetSharedCalculationRequest]) (*connect.Response[api.GetSharedCalculationResponse], error) {
	calc, err := s.manager.GetShared(ctx, req.Msg.ShareToken)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.GetSharedCalculationResponse{Calculation: toAPICalculation(calc)}), nil
}

// DeleteCalculation removes one of the caller's calculations.
func (s *FinanceService) DeleteCalculation(ctx context.Context, req *connect.Request[api.DeleteCalculationRequest]) (*connect.Response[api.DeleteCalculationResponse], error) {
	if err := s.manager.Delete(ctx, middleware.GetUserID(ctx), req.Msg.CalculationID); err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.DeleteCalculationResponse{}), nil
}

// SuggestedRates returns advisory interest rates for a loan.
func (s *FinanceService) SuggestedRates(ctx context.Context, req *connect.Request[api.SuggestedRatesRequest]) (*connect.Response[api.SuggestedRatesResponse], error) {
	rates, err := s.manager.SuggestedRates(ctx, req.Msg.LoanAmount, req.Msg.TermMonths)
	if err != nil {
		return nil, toConnectError(ctx, err)
	}
	return connect.NewResponse(&api.SuggestedRatesResponse{Rates: rates}), nil
}

// toConnectError maps a manager error to a Connect error carrying only the
// caller-facing message, the error code and the request ID.
func toConnectError(ctx context.Context, err error) error {
	var ferr *finance.Error
	if !errors.As(err, &ferr) {
		ferr = &finance.Error{Code: finance.CodeCalculation, Message: "Unable to process finance calculation", Err: err}
	}

	connectErr := connect.NewError(connectCode(ferr.Code), errors.New(ferr.Message))
	connectErr.Meta().Set(api.ErrorCodeKey, string(ferr.Code))

	requestID := middleware.GetRequestID(ctx)
	if requestID == "" {
		requestID = uuid.New().String()
	}
	connectErr.Meta().Set(api.RequestIDKey, requestID)
	return connectErr
}

func connectCode(code finance.Code) connect.Code {
	switch code {
	case finance.CodeValidation:
		return connect.CodeInvalidArgument
	case finance.CodeNotFound:
		return connect.CodeNotFound
	case finance.CodeUnauthorized:
		return connect.CodeUnauthenticated
	case finance.CodeForbidden:
		return connect.CodePermissionDenied
	case finance.CodeMethodNotAllowed:
		return connect.CodeUnimplemented
	default:
		return connect.CodeInternal
	}
}
