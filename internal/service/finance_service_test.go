package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/boatfinance/internal/finance"
	"github.com/mmynk/boatfinance/internal/middleware"
	"github.com/mmynk/boatfinance/internal/storage/sqlite"
	"github.com/mmynk/boatfinance/pkg/api"
	"github.com/mmynk/boatfinance/pkg/api/apiconnect"
)

// testUserHeader names the user a test request acts as.
const testUserHeader = "X-Test-User"

// testAuthInterceptor returns a Connect interceptor that sets the user ID
// from the X-Test-User header. Requests without it are anonymous.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if user := req.Header().Get(testUserHeader); user != "" {
				ctx = middleware.WithUser(ctx, user, strings.ToLower(user)+"@example.com")
			}
			return next(ctx, req)
		}
	}
}

// setupTestServer creates a test server backed by a temporary SQLite database
func setupTestServer(t *testing.T) apiconnect.FinanceServiceClient {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "create store")

	manager := finance.NewManager(store, "https://boats.example.com")
	interceptors := connect.WithInterceptors(
		middleware.RequestIDInterceptor(),
		testAuthInterceptor(),
		middleware.LoggingInterceptor(),
	)
	path, handler := apiconnect.NewFinanceServiceHandler(NewFinanceService(manager), interceptors)

	mux := http.NewServeMux()
	mux.Handle(path, handler)
	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return apiconnect.NewFinanceServiceClient(http.DefaultClient, server.URL)
}

func newRequest[T any](msg *T, user string) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if user != "" {
		req.Header().Set(testUserHeader, user)
	}
	return req
}

func standardParams() api.CalculationParameters {
	return api.CalculationParameters{
		BoatPrice:    100000,
		DownPayment:  20000,
		InterestRate: 6.5,
		TermMonths:   240,
	}
}

// expectError checks the Connect code and the Error-Code metadata of err
// and returns the Connect error.
func expectError(t *testing.T, err error, code connect.Code, errorCode string) *connect.Error {
	t.Helper()

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr, "expected %s error", errorCode)
	assert.Equal(t, code, connectErr.Code(), connectErr.Message())
	assert.Equal(t, errorCode, connectErr.Meta().Get(api.ErrorCodeKey))
	assert.NotEmpty(t, connectErr.Meta().Get(api.RequestIDKey), "request ID missing from error metadata")
	return connectErr
}

func saveCalculation(t *testing.T, client apiconnect.FinanceServiceClient, user string) *api.Calculation {
	t.Helper()

	resp, err := client.SaveCalculation(context.Background(), newRequest(&api.SaveCalculationRequest{
		CalculationParameters: standardParams(),
		ListingID:             "listing-42",
		CalculationNotes:      "negotiate price",
		LenderInfo:            &api.LenderInfo{Name: "Harbor Credit Union", Rate: 6.25, Terms: "no prepayment penalty"},
	}, user))
	require.NoError(t, err)
	return resp.Msg.Calculation
}

func TestCalculate_StandardLoan(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.Calculate(context.Background(), newRequest(&api.CalculateRequest{
		CalculationParameters: standardParams(),
		ListingID:             "listing-1",
	}, ""))
	require.NoError(t, err)

	calc := resp.Msg.Calculation
	assert.NotEmpty(t, calc.CalculationID)
	assert.Equal(t, 80000.0, calc.LoanAmount)
	assert.Equal(t, 596.46, calc.MonthlyPayment)
	assert.Equal(t, 63150.04, calc.TotalInterest)
	assert.Equal(t, 163150.04, calc.TotalCost)
	assert.False(t, calc.Saved, "ephemeral calculation marked saved")
	assert.False(t, calc.Shared, "ephemeral calculation marked shared")
	assert.Empty(t, calc.PaymentSchedule)
	assert.Equal(t, "listing-1", calc.ListingID)
}

func TestCalculate_WithSchedule(t *testing.T) {
	client := setupTestServer(t)

	params := standardParams()
	params.IncludeSchedule = true
	resp, err := client.Calculate(context.Background(), newRequest(&api.CalculateRequest{CalculationParameters: params}, ""))
	require.NoError(t, err)

	schedule := resp.Msg.Calculation.PaymentSchedule
	require.Len(t, schedule, 240)

	first := schedule[0]
	assert.Equal(t, 433.33, first.InterestAmount)
	assert.Equal(t, 163.13, first.PrincipalAmount)
	assert.Equal(t, 79836.87, first.RemainingBalance)
	for i := 1; i < len(schedule); i++ {
		require.LessOrEqual(t, schedule[i].RemainingBalance, schedule[i-1].RemainingBalance,
			"balance increased at payment %d", schedule[i].PaymentNumber)
	}
}

func TestCalculate_ValidationError(t *testing.T) {
	client := setupTestServer(t)

	params := standardParams()
	params.InterestRate = 35
	_, err := client.Calculate(context.Background(), newRequest(&api.CalculateRequest{CalculationParameters: params}, ""))

	connectErr := expectError(t, err, connect.CodeInvalidArgument, "VALIDATION_ERROR")
	assert.Equal(t, "Interest rate must be between 0% and 30%", connectErr.Message())
}

func TestCalculate_RequestIDEchoed(t *testing.T) {
	client := setupTestServer(t)

	req := newRequest(&api.CalculateRequest{CalculationParameters: standardParams()}, "")
	req.Header().Set(api.RequestIDKey, "req-abc-123")
	resp, err := client.Calculate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "req-abc-123", resp.Header().Get(api.RequestIDKey))

	params := standardParams()
	params.TermMonths = 6
	req = newRequest(&api.CalculateRequest{CalculationParameters: params}, "")
	req.Header().Set(api.RequestIDKey, "req-def-456")
	_, err = client.Calculate(context.Background(), req)

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, "req-def-456", connectErr.Meta().Get(api.RequestIDKey))
}

func TestCalculateScenarios(t *testing.T) {
	client := setupTestServer(t)

	rate := 4.5
	term := 120
	zeroTerm := 0
	resp, err := client.CalculateScenarios(context.Background(), newRequest(&api.CalculateScenariosRequest{
		Base: standardParams(),
		Scenarios: []api.ScenarioOverride{
			{InterestRate: &rate},
			{TermMonths: &term},
			{TermMonths: &zeroTerm},
		},
	}, ""))
	require.NoError(t, err)

	scenarios := resp.Msg.Scenarios
	require.Len(t, scenarios, 3)
	for i, s := range scenarios {
		assert.NotEmpty(t, s.ScenarioID, "scenario %d has no ID", i)
	}
	assert.Equal(t, "Scenario 1", scenarios[0].Label)
	assert.Equal(t, "Scenario 3", scenarios[2].Label)
	assert.Equal(t, 4.5, scenarios[0].Parameters.InterestRate)
	assert.Equal(t, 240, scenarios[0].Parameters.TermMonths)
	assert.Greater(t, scenarios[1].MonthlyPayment, scenarios[0].MonthlyPayment, "shorter term should cost more per month")
	assert.NotEmpty(t, scenarios[2].Error, "zero-term scenario")
	assert.Empty(t, scenarios[0].Error)
	assert.Empty(t, scenarios[1].Error)
}

func TestCalculateScenarios_OverflowKeepsSiblings(t *testing.T) {
	client := setupTestServer(t)

	sane := 4.5
	huge := 1e6
	hugeTerm := 1 << 30
	include := true
	resp, err := client.CalculateScenarios(context.Background(), newRequest(&api.CalculateScenariosRequest{
		Base: standardParams(),
		Scenarios: []api.ScenarioOverride{
			{InterestRate: &sane},
			{InterestRate: &huge},
			{TermMonths: &hugeTerm, IncludeSchedule: &include},
		},
	}, ""))
	require.NoError(t, err)

	scenarios := resp.Msg.Scenarios
	require.Len(t, scenarios, 3)
	assert.Empty(t, scenarios[0].Error)
	assert.Greater(t, scenarios[0].MonthlyPayment, 0.0)
	for i, s := range scenarios[1:] {
		assert.NotEmpty(t, s.Error, "scenario %d", i+2)
		assert.Zero(t, s.MonthlyPayment, "scenario %d", i+2)
		assert.Empty(t, s.PaymentSchedule, "scenario %d", i+2)
	}
}

func TestCalculateScenarios_Limits(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.CalculateScenarios(context.Background(), newRequest(&api.CalculateScenariosRequest{
		Base: standardParams(),
	}, ""))
	expectError(t, err, connect.CodeInvalidArgument, "VALIDATION_ERROR")

	tooMany := make([]api.ScenarioOverride, 11)
	_, err = client.CalculateScenarios(context.Background(), newRequest(&api.CalculateScenariosRequest{
		Base:      standardParams(),
		Scenarios: tooMany,
	}, ""))
	connectErr := expectError(t, err, connect.CodeInvalidArgument, "VALIDATION_ERROR")
	assert.Equal(t, "Maximum of 10 scenarios allowed", connectErr.Message())
}

func TestSaveCalculation(t *testing.T) {
	client := setupTestServer(t)

	calc := saveCalculation(t, client, "Alice")
	assert.True(t, calc.Saved)
	assert.False(t, calc.Shared)
	assert.Equal(t, "Alice", calc.UserID)
	assert.Len(t, calc.PaymentSchedule, 240, "saved calculations always include the schedule")
	require.NotNil(t, calc.LenderInfo)
	assert.Equal(t, "Harbor Credit Union", calc.LenderInfo.Name)
}

func TestSaveCalculation_Anonymous(t *testing.T) {
	client := setupTestServer(t)

	_, err := client.SaveCalculation(context.Background(), newRequest(&api.SaveCalculationRequest{
		CalculationParameters: standardParams(),
	}, ""))
	expectError(t, err, connect.CodeUnauthenticated, "UNAUTHORIZED")
}

func TestListUserCalculations(t *testing.T) {
	client := setupTestServer(t)

	first := saveCalculation(t, client, "Alice")
	second := saveCalculation(t, client, "Alice")
	saveCalculation(t, client, "Bob")

	resp, err := client.ListUserCalculations(context.Background(), newRequest(&api.ListUserCalculationsRequest{}, "Alice"))
	require.NoError(t, err)

	calcs := resp.Msg.Calculations
	require.Len(t, calcs, 2)
	assert.Equal(t, second.CalculationID, calcs[0].CalculationID, "newest first")
	assert.Equal(t, first.CalculationID, calcs[1].CalculationID)

	resp, err = client.ListUserCalculations(context.Background(), newRequest(&api.ListUserCalculationsRequest{Limit: 1}, "Alice"))
	require.NoError(t, err)
	assert.Len(t, resp.Msg.Calculations, 1)
}

func TestListUserCalculations_OtherUser(t *testing.T) {
	client := setupTestServer(t)
	saveCalculation(t, client, "Bob")

	_, err := client.ListUserCalculations(context.Background(), newRequest(&api.ListUserCalculationsRequest{UserID: "Bob"}, "Alice"))
	expectError(t, err, connect.CodePermissionDenied, "FORBIDDEN")

	_, err = client.ListUserCalculations(context.Background(), newRequest(&api.ListUserCalculationsRequest{UserID: "Bob"}, ""))
	expectError(t, err, connect.CodeUnauthenticated, "UNAUTHORIZED")
}

func TestShareAndGetShared(t *testing.T) {
	client := setupTestServer(t)
	calc := saveCalculation(t, client, "Alice")

	shareResp, err := client.ShareCalculation(context.Background(), newRequest(&api.ShareCalculationRequest{
		CalculationID: calc.CalculationID,
	}, "Alice"))
	require.NoError(t, err)

	token := shareResp.Msg.ShareToken
	require.NotEmpty(t, token)
	assert.Equal(t, "https://boats.example.com/finance/shared/"+token, shareResp.Msg.ShareURL)

	again, err := client.ShareCalculation(context.Background(), newRequest(&api.ShareCalculationRequest{
		CalculationID: calc.CalculationID,
	}, "Alice"))
	require.NoError(t, err)
	assert.Equal(t, token, again.Msg.ShareToken, "sharing twice must return the same token")

	// Anyone can read a shared calculation.
	getResp, err := client.GetSharedCalculation(context.Background(), newRequest(&api.GetSharedCalculationRequest{
		ShareToken: token,
	}, ""))
	require.NoError(t, err)

	shared := getResp.Msg.Calculation
	assert.Equal(t, calc.CalculationID, shared.CalculationID)
	assert.Empty(t, shared.UserID, "owner exposed")
	assert.Empty(t, shared.CalculationNotes, "notes exposed")
	assert.True(t, shared.Shared)
	assert.Equal(t, token, shared.ShareToken)
	assert.Equal(t, calc.MonthlyPayment, shared.MonthlyPayment)
}

func TestShareCalculation_NotOwner(t *testing.T) {
	client := setupTestServer(t)
	calc := saveCalculation(t, client, "Alice")

	_, err := client.ShareCalculation(context.Background(), newRequest(&api.ShareCalculationRequest{
		CalculationID: calc.CalculationID,
	}, "Bob"))
	expectError(t, err, connect.CodePermissionDenied, "FORBIDDEN")

	_, err = client.ShareCalculation(context.Background(), newRequest(&api.ShareCalculationRequest{
		CalculationID: "missing",
	}, "Alice"))
	expectError(t, err, connect.CodeNotFound, "NOT_FOUND")
}

func TestGetSharedCalculation_Unknown(t *testing.T) {
	client := setupTestServer(t)
	calc := saveCalculation(t, client, "Alice")

	_, err := client.GetSharedCalculation(context.Background(), newRequest(&api.GetSharedCalculationRequest{
		ShareToken: "nonexistent",
	}, ""))
	expectError(t, err, connect.CodeNotFound, "NOT_FOUND")

	// A saved but unshared calculation is not reachable by its ID.
	_, err = client.GetSharedCalculation(context.Background(), newRequest(&api.GetSharedCalculationRequest{
		ShareToken: calc.CalculationID,
	}, ""))
	expectError(t, err, connect.CodeNotFound, "NOT_FOUND")
}

func TestDeleteCalculation(t *testing.T) {
	client := setupTestServer(t)
	calc := saveCalculation(t, client, "Alice")

	_, err := client.DeleteCalculation(context.Background(), newRequest(&api.DeleteCalculationRequest{
		CalculationID: calc.CalculationID,
	}, "Bob"))
	expectError(t, err, connect.CodePermissionDenied, "FORBIDDEN")

	_, err = client.DeleteCalculation(context.Background(), newRequest(&api.DeleteCalculationRequest{
		CalculationID: calc.CalculationID,
	}, "Alice"))
	require.NoError(t, err)

	resp, err := client.ListUserCalculations(context.Background(), newRequest(&api.ListUserCalculationsRequest{}, "Alice"))
	require.NoError(t, err)
	assert.Empty(t, resp.Msg.Calculations)

	_, err = client.DeleteCalculation(context.Background(), newRequest(&api.DeleteCalculationRequest{
		CalculationID: calc.CalculationID,
	}, "Alice"))
	expectError(t, err, connect.CodeNotFound, "NOT_FOUND")
}

func TestSuggestedRates(t *testing.T) {
	client := setupTestServer(t)

	resp, err := client.SuggestedRates(context.Background(), newRequest(&api.SuggestedRatesRequest{
		LoanAmount: 80000,
		TermMonths: 240,
	}, ""))
	require.NoError(t, err)
	assert.Equal(t, []float64{5.5, 6.5, 7.5, 8.5}, resp.Msg.Rates)

	_, err = client.SuggestedRates(context.Background(), newRequest(&api.SuggestedRatesRequest{
		LoanAmount: 500,
		TermMonths: 240,
	}, ""))
	expectError(t, err, connect.CodeInvalidArgument, "VALIDATION_ERROR")
}

func TestToConnectError_HidesInternalCause(t *testing.T) {
	err := toConnectError(context.Background(), assert.AnError)

	var connectErr *connect.Error
	require.ErrorAs(t, err, &connectErr)
	assert.Equal(t, connect.CodeInternal, connectErr.Code())
	assert.NotContains(t, connectErr.Message(), assert.AnError.Error(), "internal cause leaked")
	assert.Equal(t, "CALCULATION_ERROR", connectErr.Meta().Get(api.ErrorCodeKey))
}
