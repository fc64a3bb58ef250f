package calculator

import "fmt"

// Business-rule bounds for a calculation request.
const (
	MinBoatPrice       = 1_000.0
	MaxBoatPrice       = 10_000_000.0
	MaxDownPaymentRate = 0.90
	MinInterestRate    = 0.0
	MaxInterestRate    = 30.0
	MinTermMonths      = 12
	MaxTermMonths      = 360
	MinLoanAmount      = 1_000.0
)

// ValidationError describes the first business rule a request violates.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks p against the business rules in a fixed order and returns
// a *ValidationError for the first rule that fails, or nil.
func Validate(p Parameters) error {
	if !inRange(p.BoatPrice, MinBoatPrice, MaxBoatPrice) {
		return &ValidationError{
			Field:   "boatPrice",
			Message: "Boat price must be between $1,000 and $10,000,000",
		}
	}

	if !inRange(p.DownPayment, 0, p.BoatPrice*MaxDownPaymentRate) {
		return &ValidationError{
			Field:   "downPayment",
			Message: "Down payment must be between $0 and 90% of the boat price",
		}
	}

	if !inRange(p.InterestRate, MinInterestRate, MaxInterestRate) {
		return &ValidationError{
			Field:   "interestRate",
			Message: fmt.Sprintf("Interest rate must be between %.0f%% and %.0f%%", MinInterestRate, MaxInterestRate),
		}
	}

	if p.TermMonths < MinTermMonths || p.TermMonths > MaxTermMonths {
		return &ValidationError{
			Field:   "termMonths",
			Message: fmt.Sprintf("Loan term must be between %d and %d months", MinTermMonths, MaxTermMonths),
		}
	}

	if p.LoanAmount() < MinLoanAmount {
		return &ValidationError{
			Field:   "loanAmount",
			Message: "Loan amount must be at least $1,000",
		}
	}

	return nil
}

// inRange is false for NaN and infinities.
func inRange(value, minInclusive, maxInclusive float64) bool {
	return IsFinite(value) && value >= minInclusive && value <= maxInclusive
}
