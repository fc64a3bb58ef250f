// Package calculator implements the loan mathematics behind boat financing:
// parameter validation, amortization, scenario comparison and rate suggestions.
//
// Every function in this package is pure. Nothing here touches storage or
// keeps state between calls.
package calculator

import "time"

// Parameters is the input of a single loan calculation.
type Parameters struct {
	// BoatPrice is the purchase price in major currency units.
	BoatPrice float64

	// DownPayment is paid up front and reduces the financed amount.
	DownPayment float64

	// InterestRate is the annual rate in percent (6.5 means 6.5%).
	InterestRate float64

	// TermMonths is the number of monthly payments.
	TermMonths int

	// IncludeSchedule requests a full payment schedule in the result.
	IncludeSchedule bool
}

// LoanAmount is the financed amount.
func (p Parameters) LoanAmount() float64 {
	return p.BoatPrice - p.DownPayment
}

// Result holds the output of Calculate.
type Result struct {
	LoanAmount     float64
	MonthlyPayment float64
	TotalInterest  float64
	TotalCost      float64

	// Schedule is nil unless Parameters.IncludeSchedule was set.
	Schedule []ScheduleEntry
}

// ScheduleEntry is one row of a payment schedule.
type ScheduleEntry struct {
	PaymentNumber    int
	PaymentDate      time.Time
	PrincipalAmount  float64
	InterestAmount   float64
	TotalPayment     float64
	RemainingBalance float64
}

func (r Result) finite() bool {
	if !IsFinite(r.LoanAmount) || !IsFinite(r.MonthlyPayment) ||
		!IsFinite(r.TotalInterest) || !IsFinite(r.TotalCost) {
		return false
	}
	for _, row := range r.Schedule {
		if !IsFinite(row.PrincipalAmount) || !IsFinite(row.InterestAmount) ||
			!IsFinite(row.TotalPayment) || !IsFinite(row.RemainingBalance) {
			return false
		}
	}
	return true
}
