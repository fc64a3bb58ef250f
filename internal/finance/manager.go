// Package finance manages boat loan calculations on behalf of callers:
// ephemeral quotes, owned records, and public share links.
package finance

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/mmynk/boatfinance/internal/calculator"
	"github.com/mmynk/boatfinance/internal/metrics"
	"github.com/mmynk/boatfinance/internal/models"
	"github.com/mmynk/boatfinance/internal/storage"
	"github.com/mmynk/boatfinance/internal/tracing"
)

// SharePath is the path under the share base URL that serves shared calculations.
const SharePath = "/finance/shared/"

// Default list limits, overridable with WithListLimits.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Manager runs validation and computation and keeps saved calculations in a
// store. Ownership is an exact match between the caller ID and the record's
// UserID.
type Manager struct {
	store        storage.CalculationStore
	shareBaseURL string
	defaultLimit int
	maxLimit     int
	now          func() time.Time
	newToken     func() string
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithListLimits sets the default and maximum number of records listed.
func WithListLimits(defaultLimit, maxLimit int) Option {
	return func(m *Manager) {
		m.defaultLimit = defaultLimit
		m.maxLimit = maxLimit
	}
}

// WithTokenGenerator overrides share token generation.
func WithTokenGenerator(gen func() string) Option {
	return func(m *Manager) { m.newToken = gen }
}

// NewManager creates a Manager backed by store. Share URLs are built as
// shareBaseURL + SharePath + token.
func NewManager(store storage.CalculationStore, shareBaseURL string, opts ...Option) *Manager {
	m := &Manager{
		store:        store,
		shareBaseURL: strings.TrimRight(shareBaseURL, "/"),
		defaultLimit: DefaultListLimit,
		maxLimit:     MaxListLimit,
		now:          time.Now,
		newToken:     newShareToken,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CalculateRequest is the input of Calculate.
type CalculateRequest struct {
	Parameters calculator.Parameters
	ListingID  string
}

// SaveRequest is the input of Save.
type SaveRequest struct {
	Parameters calculator.Parameters
	ListingID  string
	Notes      string
	LenderInfo *models.LenderInfo
}

// ShareResult is returned by Share.
type ShareResult struct {
	Token string
	URL   string
}

// Calculate validates and computes a calculation without storing it.
func (m *Manager) Calculate(ctx context.Context, req CalculateRequest) (calc *models.FinanceCalculation, err error) {
	_, span := tracing.Tracer.Start(ctx, "finance.Calculate")
	defer func() { finish(span, "calculate", err) }()

	if verr := calculator.Validate(req.Parameters); verr != nil {
		return nil, validationError(verr)
	}

	createdAt := m.now().UTC()
	result := calculator.Calculate(req.Parameters, createdAt)
	metrics.Calculations.WithLabelValues("ephemeral").Inc()

	calc = newCalculation(req.Parameters, result, createdAt)
	calc.ListingID = req.ListingID
	return calc, nil
}

// CalculateScenarios computes one result per override merged onto base.
func (m *Manager) CalculateScenarios(ctx context.Context, base calculator.Parameters, overrides []calculator.Override) (results []calculator.ScenarioResult, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "finance.CalculateScenarios",
		trace.WithAttributes(attribute.Int("scenarios", len(overrides))))
	defer func() { finish(span, "calculate_scenarios", err) }()

	results, err = calculator.CompareScenarios(ctx, base, overrides, m.now().UTC())
	if err != nil {
		var verr *calculator.ValidationError
		if errors.As(err, &verr) {
			return nil, validationError(err)
		}
		return nil, &Error{Code: CodeCalculation, Message: "Unable to compare scenarios", Err: err}
	}

	metrics.Calculations.WithLabelValues("scenario").Add(float64(len(results)))
	return results, nil
}

// Save computes a calculation with its full schedule and stores it as owned
// by callerID.
func (m *Manager) Save(ctx context.Context, callerID string, req SaveRequest) (calc *models.FinanceCalculation, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "finance.Save")
	defer func() { finish(span, "save", err) }()

	if callerID == "" {
		return nil, errUnauthorized
	}
	if verr := calculator.Validate(req.Parameters); verr != nil {
		return nil, validationError(verr)
	}

	params := req.Parameters
	params.IncludeSchedule = true
	createdAt := m.now().UTC()
	result := calculator.Calculate(params, createdAt)

	calc = newCalculation(params, result, createdAt)
	calc.UserID = callerID
	calc.ListingID = req.ListingID
	calc.CalculationNotes = req.Notes
	calc.LenderInfo = req.LenderInfo
	calc.Saved = true

	if serr := m.store.CreateCalculation(ctx, calc); serr != nil {
		slog.Error("Save: failed to store calculation", "user_id", callerID, "error", serr)
		return nil, storageError(serr)
	}

	metrics.Calculations.WithLabelValues("saved").Inc()
	slog.Info("Calculation saved", "calculation_id", calc.ID, "user_id", callerID)
	return calc, nil
}

// ListByOwner returns the newest calculations owned by ownerID. Only the
// owner may list them. An empty ownerID lists the caller's own records.
// limit <= 0 selects the default; larger values are capped.
func (m *Manager) ListByOwner(ctx context.Context, callerID, ownerID string, limit int) (calcs []*models.FinanceCalculation, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "finance.ListByOwner")
	defer func() { finish(span, "list", err) }()

	if callerID == "" {
		return nil, errUnauthorized
	}
	if ownerID == "" {
		ownerID = callerID
	}
	if ownerID != callerID {
		return nil, forbidden("You can only view your own calculations")
	}

	calcs, serr := m.store.ListCalculationsByUser(ctx, ownerID, m.clampLimit(limit))
	if serr != nil {
		slog.Error("ListByOwner: failed to list calculations", "user_id", ownerID, "error", serr)
		return nil, storageError(serr)
	}
	return calcs, nil
}

// Share makes a calculation publicly readable by token. Sharing an already
// shared calculation returns its existing token.
func (m *Manager) Share(ctx context.Context, callerID, calculationID string) (res *ShareResult, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "finance.Share",
		trace.WithAttributes(attribute.String("calculation_id", calculationID)))
	defer func() { finish(span, "share", err) }()

	calc, err := m.ownedCalculation(ctx, callerID, calculationID, "You can only share your own calculations")
	if err != nil {
		return nil, err
	}

	token := calc.ShareToken
	if token == "" {
		minted := m.newToken()
		token, err = m.store.ShareCalculation(ctx, calc.ID, minted, m.now().UTC())
		if err != nil {
			slog.Error("Share: failed to store share token", "calculation_id", calc.ID, "error", err)
			return nil, storageError(err)
		}
		if token == minted {
			metrics.SharesIssued.Inc()
			slog.Info("Calculation shared", "calculation_id", calc.ID, "user_id", callerID)
		}
	}

	return &ShareResult{Token: token, URL: m.ShareURL(token)}, nil
}

// GetShared returns the shared calculation for token with the owner's
// identity and private notes removed.
func (m *Manager) GetShared(ctx context.Context, token string) (calc *models.FinanceCalculation, err error) {
	ctx, span := tracing.Tracer.Start(ctx, "finance.GetShared")
	defer func() { finish(span, "get_shared", err) }()

	if token == "" {
		return nil, errNotFound
	}

	calc, serr := m.store.GetCalculationByShareToken(ctx, token)
	if serr != nil {
		if !errors.Is(serr, storage.ErrNotFound) {
			slog.Error("GetShared: failed to load calculation", "error", serr)
		}
		return nil, storageError(serr)
	}
	if !calc.Shared {
		return nil, errNotFound
	}
	return calc.Redacted(), nil
}

// Delete permanently removes a calculation owned by callerID.
func (m *Manager) Delete(ctx context.Context, callerID, calculationID string) (err error) {
	ctx, span := tracing.Tracer.Start(ctx, "finance.Delete",
		trace.WithAttributes(attribute.String("calculation_id", calculationID)))
	defer func() { finish(span, "delete", err) }()

	calc, err := m.ownedCalculation(ctx, callerID, calculationID, "You can only delete your own calculations")
	if err != nil {
		return err
	}

	if serr := m.store.DeleteCalculation(ctx, calc.ID); serr != nil {
		slog.Error("Delete: failed to delete calculation", "calculation_id", calc.ID, "error", serr)
		return storageError(serr)
	}

	metrics.RecordsDeleted.Inc()
	slog.Info("Calculation deleted", "calculation_id", calc.ID, "user_id", callerID)
	return nil
}

// SuggestedRates returns advisory rates for a loan. The inputs must describe
// a loan the validator would accept: at least $1,000 over at least 12 months.
func (m *Manager) SuggestedRates(ctx context.Context, loanAmount float64, termMonths int) (rates []float64, err error) {
	_, span := tracing.Tracer.Start(ctx, "finance.SuggestedRates")
	defer func() { finish(span, "suggested_rates", err) }()

	if !calculator.IsFinite(loanAmount) || loanAmount < calculator.MinLoanAmount {
		return nil, &Error{Code: CodeValidation, Message: "Loan amount must be at least $1,000"}
	}
	if termMonths < calculator.MinTermMonths {
		return nil, &Error{Code: CodeValidation, Message: "Loan term must be at least 12 months"}
	}
	return calculator.SuggestedRates(loanAmount, termMonths), nil
}

// ShareURL builds the public link for token.
func (m *Manager) ShareURL(token string) string {
	return m.shareBaseURL + SharePath + token
}

// ownedCalculation loads a calculation and checks that callerID owns it.
func (m *Manager) ownedCalculation(ctx context.Context, callerID, calculationID, forbiddenMsg string) (*models.FinanceCalculation, error) {
	if callerID == "" {
		return nil, errUnauthorized
	}
	if calculationID == "" {
		return nil, &Error{Code: CodeValidation, Message: "Calculation ID is required"}
	}

	calc, err := m.store.GetCalculation(ctx, calculationID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("failed to load calculation", "calculation_id", calculationID, "error", err)
		}
		return nil, storageError(err)
	}
	if calc.UserID != callerID {
		return nil, forbidden(forbiddenMsg)
	}
	return calc, nil
}

func (m *Manager) clampLimit(limit int) int {
	if limit <= 0 {
		return m.defaultLimit
	}
	if limit > m.maxLimit {
		return m.maxLimit
	}
	return limit
}

// newCalculation assembles an unsaved record from computed results.
func newCalculation(p calculator.Parameters, r calculator.Result, createdAt time.Time) *models.FinanceCalculation {
	calc := &models.FinanceCalculation{
		ID:             uuid.New().String(),
		BoatPrice:      p.BoatPrice,
		DownPayment:    p.DownPayment,
		LoanAmount:     r.LoanAmount,
		InterestRate:   p.InterestRate,
		TermMonths:     p.TermMonths,
		MonthlyPayment: r.MonthlyPayment,
		TotalInterest:  r.TotalInterest,
		TotalCost:      r.TotalCost,
		CreatedAt:      createdAt,
	}
	if r.Schedule != nil {
		calc.PaymentSchedule = make([]models.PaymentScheduleItem, len(r.Schedule))
		for i, e := range r.Schedule {
			calc.PaymentSchedule[i] = models.PaymentScheduleItem{
				PaymentNumber:    e.PaymentNumber,
				PaymentDate:      e.PaymentDate,
				PrincipalAmount:  e.PrincipalAmount,
				InterestAmount:   e.InterestAmount,
				TotalPayment:     e.TotalPayment,
				RemainingBalance: e.RemainingBalance,
			}
		}
	}
	return calc
}

// newShareToken returns 32 hex characters from a random UUID.
func newShareToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

// finish records the outcome of an operation on its span and in metrics.
func finish(span trace.Span, operation string, err error) {
	if err != nil {
		code := CodeOf(err)
		metrics.CalculationErrors.WithLabelValues(operation, string(code)).Inc()
		span.SetAttributes(attribute.String("error.code", string(code)))
		span.RecordError(err)
		span.SetStatus(codes.Error, string(code))
	}
	span.End()
}
