// Package api defines the request and response messages of the
// boatfinance.v1 services. Messages travel as JSON with camelCase field names.
package api

import "time"

// ErrorCodeKey is the error metadata key carrying the stable error code
// (VALIDATION_ERROR, NOT_FOUND, ...).
const ErrorCodeKey = "Error-Code"

// RequestIDKey is the header and error metadata key carrying the request ID.
const RequestIDKey = "Request-Id"

// CalculationParameters are the inputs of a loan calculation.
type CalculationParameters struct {
	BoatPrice       float64 `json:"boatPrice"`
	DownPayment     float64 `json:"downPayment"`
	InterestRate    float64 `json:"interestRate"`
	TermMonths      int     `json:"termMonths"`
	IncludeSchedule bool    `json:"includeSchedule,omitempty"`
}

// Calculation is a computed loan as returned to callers.
type Calculation struct {
	CalculationID    string                `json:"calculationId"`
	ListingID        string                `json:"listingId,omitempty"`
	UserID           string                `json:"userId,omitempty"`
	BoatPrice        float64               `json:"boatPrice"`
	DownPayment      float64               `json:"downPayment"`
	LoanAmount       float64               `json:"loanAmount"`
	InterestRate     float64               `json:"interestRate"`
	TermMonths       int                   `json:"termMonths"`
	MonthlyPayment   float64               `json:"monthlyPayment"`
	TotalInterest    float64               `json:"totalInterest"`
	TotalCost        float64               `json:"totalCost"`
	PaymentSchedule  []PaymentScheduleItem `json:"paymentSchedule,omitempty"`
	Saved            bool                  `json:"saved"`
	Shared           bool                  `json:"shared"`
	ShareToken       string                `json:"shareToken,omitempty"`
	CalculationNotes string                `json:"calculationNotes,omitempty"`
	LenderInfo       *LenderInfo           `json:"lenderInfo,omitempty"`
	CreatedAt        time.Time             `json:"createdAt"`
	UpdatedAt        time.Time             `json:"updatedAt,omitzero"`
}

// PaymentScheduleItem is one row of an amortization schedule.
type PaymentScheduleItem struct {
	PaymentNumber    int       `json:"paymentNumber"`
	PaymentDate      time.Time `json:"paymentDate"`
	PrincipalAmount  float64   `json:"principalAmount"`
	InterestAmount   float64   `json:"interestAmount"`
	TotalPayment     float64   `json:"totalPayment"`
	RemainingBalance float64   `json:"remainingBalance"`
}

// LenderInfo describes the lender a borrower is considering.
type LenderInfo struct {
	Name  string  `json:"name"`
	Rate  float64 `json:"rate"`
	Terms string  `json:"terms,omitempty"`
}

type CalculateRequest struct {
	CalculationParameters
	ListingID string `json:"listingId,omitempty"`
}

type CalculateResponse struct {
	Calculation *Calculation `json:"calculation"`
}

// ScenarioOverride replaces the base parameters it sets.
type ScenarioOverride struct {
	BoatPrice       *float64 `json:"boatPrice,omitempty"`
	DownPayment     *float64 `json:"downPayment,omitempty"`
	InterestRate    *float64 `json:"interestRate,omitempty"`
	TermMonths      *int     `json:"termMonths,omitempty"`
	IncludeSchedule *bool    `json:"includeSchedule,omitempty"`
}

type CalculateScenariosRequest struct {
	Base      CalculationParameters `json:"base"`
	Scenarios []ScenarioOverride    `json:"scenarios"`
}

// ScenarioResult is one computed scenario. Error is set instead of the
// amounts when the merged parameters could not be computed.
type ScenarioResult struct {
	ScenarioID      string                `json:"scenarioId"`
	Label           string                `json:"label"`
	Parameters      CalculationParameters `json:"parameters"`
	LoanAmount      float64               `json:"loanAmount"`
	MonthlyPayment  float64               `json:"monthlyPayment"`
	TotalInterest   float64               `json:"totalInterest"`
	TotalCost       float64               `json:"totalCost"`
	PaymentSchedule []PaymentScheduleItem `json:"paymentSchedule,omitempty"`
	Error           string                `json:"error,omitempty"`
}

type CalculateScenariosResponse struct {
	Scenarios []ScenarioResult `json:"scenarios"`
}

type SaveCalculationRequest struct {
	CalculationParameters
	ListingID        string      `json:"listingId,omitempty"`
	CalculationNotes string      `json:"calculationNotes,omitempty"`
	LenderInfo       *LenderInfo `json:"lenderInfo,omitempty"`
}

type SaveCalculationResponse struct {
	Calculation *Calculation `json:"calculation"`
}

// ListUserCalculationsRequest lists the caller's calculations. UserID
// defaults to the caller; Limit <= 0 selects the server default.
type ListUserCalculationsRequest struct {
	UserID string `json:"userId,omitempty"`
	Limit  int    `json:"limit,omitempty"`
}

type ListUserCalculationsResponse struct {
	Calculations []*Calculation `json:"calculations"`
}

type ShareCalculationRequest struct {
	CalculationID string `json:"calculationId"`
}

type ShareCalculationResponse struct {
	ShareToken string `json:"shareToken"`
	ShareURL   string `json:"shareUrl"`
}

type GetSharedCalculationRequest struct {
	ShareToken string `json:"shareToken"`
}

type GetSharedCalculationResponse struct {
	Calculation *Calculation `json:"calculation"`
}

type DeleteCalculationRequest struct {
	CalculationID string `json:"calculationId"`
}

type DeleteCalculationResponse struct{}

type SuggestedRatesRequest struct {
	LoanAmount float64 `json:"loanAmount"`
	TermMonths int     `json:"termMonths"`
}

type SuggestedRatesResponse struct {
	Rates []float64 `json:"rates"`
}
