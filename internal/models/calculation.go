package models

import "time"

// FinanceCalculation is a computed boat loan, either returned once to an
// anonymous caller or saved on behalf of its owner.
type FinanceCalculation struct {
	// ID is the unique identifier for the calculation (UUID format).
	ID string `json:"calculationId"`

	// ListingID optionally links the calculation to a marketplace listing.
	// It is opaque here and never validated.
	ListingID string `json:"listingId,omitempty"`

	// UserID is the owner. Empty means an anonymous, unsaved calculation.
	UserID string `json:"userId,omitempty"`

	BoatPrice    float64 `json:"boatPrice"`
	DownPayment  float64 `json:"downPayment"`
	LoanAmount   float64 `json:"loanAmount"`
	InterestRate float64 `json:"interestRate"`
	TermMonths   int     `json:"termMonths"`

	// MonthlyPayment, TotalInterest and TotalCost are rounded to cents.
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	TotalCost      float64 `json:"totalCost"`

	// PaymentSchedule has TermMonths rows when present.
	PaymentSchedule []PaymentScheduleItem `json:"paymentSchedule,omitempty"`

	Saved  bool `json:"saved"`
	Shared bool `json:"shared"`

	// ShareToken is set if and only if Shared is true.
	ShareToken string `json:"shareToken,omitempty"`

	// CalculationNotes are private to the owner.
	CalculationNotes string `json:"calculationNotes,omitempty"`

	LenderInfo *LenderInfo `json:"lenderInfo,omitempty"`

	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is zero until the record is first modified.
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// PaymentScheduleItem is one monthly payment of an amortization schedule.
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

// Redacted returns a copy safe for public display: owner identity and
// private notes are removed.
func (c *FinanceCalculation) Redacted() *FinanceCalculation {
	out := *c
	out.UserID = ""
	out.CalculationNotes = ""
	if c.LenderInfo != nil {
		li := *c.LenderInfo
		out.LenderInfo = &li
	}
	out.PaymentSchedule = append([]PaymentScheduleItem(nil), c.PaymentSchedule...)
	return &out
}
