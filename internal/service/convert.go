package service

import (
	"github.com/mmynk/boatfinance/internal/calculator"
	"github.com/mmynk/boatfinance/internal/models"
	"github.com/mmynk/boatfinance/pkg/api"
)

func toParameters(p api.CalculationParameters) calculator.Parameters {
	return calculator.Parameters{
		BoatPrice:       p.BoatPrice,
		DownPayment:     p.DownPayment,
		InterestRate:    p.InterestRate,
		TermMonths:      p.TermMonths,
		IncludeSchedule: p.IncludeSchedule,
	}
}

func toAPIParameters(p calculator.Parameters) api.CalculationParameters {
	return api.CalculationParameters{
		BoatPrice:       p.BoatPrice,
		DownPayment:     p.DownPayment,
		InterestRate:    p.InterestRate,
		TermMonths:      p.TermMonths,
		IncludeSchedule: p.IncludeSchedule,
	}
}

func toOverrides(in []api.ScenarioOverride) []calculator.Override {
	out := make([]calculator.Override, len(in))
	for i, o := range in {
		out[i] = calculator.Override{
			BoatPrice:       o.BoatPrice,
			DownPayment:     o.DownPayment,
			InterestRate:    o.InterestRate,
			TermMonths:      o.TermMonths,
			IncludeSchedule: o.IncludeSchedule,
		}
	}
	return out
}

func toAPIScenarios(results []calculator.ScenarioResult) []api.ScenarioResult {
	out := make([]api.ScenarioResult, len(results))
	for i, r := range results {
		out[i] = api.ScenarioResult{
			ScenarioID:     r.ScenarioID,
			Label:          r.Label,
			Parameters:     toAPIParameters(r.Parameters),
			LoanAmount:     r.Result.LoanAmount,
			MonthlyPayment: r.Result.MonthlyPayment,
			TotalInterest:  r.Result.TotalInterest,
			TotalCost:      r.Result.TotalCost,
			Error:          r.Error,
		}
		for _, e := range r.Result.Schedule {
			out[i].PaymentSchedule = append(out[i].PaymentSchedule, api.PaymentScheduleItem{
				PaymentNumber:    e.PaymentNumber,
				PaymentDate:      e.PaymentDate,
				PrincipalAmount:  e.PrincipalAmount,
				InterestAmount:   e.InterestAmount,
				TotalPayment:     e.TotalPayment,
				RemainingBalance: e.RemainingBalance,
			})
		}
	}
	return out
}

func toAPICalculation(c *models.FinanceCalculation) *api.Calculation {
	if c == nil {
		return nil
	}
	out := &api.Calculation{
		CalculationID:    c.ID,
		ListingID:        c.ListingID,
		UserID:           c.UserID,
		BoatPrice:        c.BoatPrice,
		DownPayment:      c.DownPayment,
		LoanAmount:       c.LoanAmount,
		InterestRate:     c.InterestRate,
		TermMonths:       c.TermMonths,
		MonthlyPayment:   c.MonthlyPayment,
		TotalInterest:    c.TotalInterest,
		TotalCost:        c.TotalCost,
		Saved:            c.Saved,
		Shared:           c.Shared,
		ShareToken:       c.ShareToken,
		CalculationNotes: c.CalculationNotes,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
	if c.LenderInfo != nil {
		out.LenderInfo = &api.LenderInfo{
			Name:  c.LenderInfo.Name,
			Rate:  c.LenderInfo.Rate,
			Terms: c.LenderInfo.Terms,
		}
	}
	if c.PaymentSchedule != nil {
		out.PaymentSchedule = make([]api.PaymentScheduleItem, len(c.PaymentSchedule))
		for i, item := range c.PaymentSchedule {
			out.PaymentSchedule[i] = api.PaymentScheduleItem(item)
		}
	}
	return out
}

func toLenderInfo(l *api.LenderInfo) *models.LenderInfo {
	if l == nil {
		return nil
	}
	return &models.LenderInfo{Name: l.Name, Rate: l.Rate, Terms: l.Terms}
}

func toAPIUser(u *models.User) *api.User {
	if u == nil {
		return nil
	}
	out := &api.User{ID: u.ID, Email: u.Email, DisplayName: u.DisplayName}
	if u.CreatedAt > 0 {
		out.CreatedAt = unixTime(u.CreatedAt)
	}
	return out
}
