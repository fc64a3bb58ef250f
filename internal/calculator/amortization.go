package calculator

import (
	"math"
	"time"
)

// Calculate computes the monthly payment, total interest and total cost of
// the loan described by p. When p.IncludeSchedule is set it also builds the
// payment schedule, dating payment N as start plus N months.
//
// Calculate never fails; callers are expected to Validate first.
func Calculate(p Parameters, start time.Time) Result {
	loanAmount := p.LoanAmount()
	monthlyRate := p.InterestRate / 100 / 12
	n := float64(p.TermMonths)

	var monthlyPayment float64
	if monthlyRate == 0 {
		monthlyPayment = loanAmount / n
	} else {
		factor := math.Pow(1+monthlyRate, n)
		monthlyPayment = loanAmount * monthlyRate * factor / (factor - 1)
	}

	totalInterest := monthlyPayment*n - loanAmount

	result := Result{
		LoanAmount:     Round2(loanAmount),
		MonthlyPayment: Round2(monthlyPayment),
		TotalInterest:  Round2(totalInterest),
		TotalCost:      Round2(p.BoatPrice + totalInterest),
	}

	if p.IncludeSchedule {
		result.Schedule = Schedule(loanAmount, monthlyRate, result.MonthlyPayment, p.TermMonths, start)
	}

	return result
}

// Schedule builds a greedy amortization schedule: each row pays the interest
// accrued on the running balance and applies the rest of payment to principal.
// Interest, principal and balance are rounded to cents at every step. The
// balance is clamped at zero but the last row is not adjusted, so rounding
// drift can leave a small residual.
func Schedule(loanAmount, monthlyRate, payment float64, termMonths int, start time.Time) []ScheduleEntry {
	if termMonths <= 0 {
		return nil
	}

	schedule := make([]ScheduleEntry, 0, termMonths)
	remaining := loanAmount

	for month := 1; month <= termMonths; month++ {
		interest := Round2(remaining * monthlyRate)
		principal := Round2(payment - interest)
		remaining = Round2(math.Max(0, remaining-principal))

		schedule = append(schedule, ScheduleEntry{
			PaymentNumber:    month,
			PaymentDate:      start.AddDate(0, month, 0),
			PrincipalAmount:  principal,
			InterestAmount:   interest,
			TotalPayment:     payment,
			RemainingBalance: remaining,
		})
	}

	return schedule
}
