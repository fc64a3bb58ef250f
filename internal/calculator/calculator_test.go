package calculator

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2025, time.January, 15, 0, 0, 0, 0, time.UTC)

func baseParams() Parameters {
	return Parameters{
		BoatPrice:    100000,
		DownPayment:  20000,
		InterestRate: 6.5,
		TermMonths:   240,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(p *Parameters)
		wantField string
	}{
		{name: "valid", mutate: func(p *Parameters) {}},
		{name: "boat price too low", mutate: func(p *Parameters) { p.BoatPrice = 500; p.DownPayment = 0 }, wantField: "boatPrice"},
		{name: "boat price too high", mutate: func(p *Parameters) { p.BoatPrice = 10_000_001 }, wantField: "boatPrice"},
		{name: "boat price NaN", mutate: func(p *Parameters) { p.BoatPrice = math.NaN() }, wantField: "boatPrice"},
		{name: "down payment over 90 percent", mutate: func(p *Parameters) { p.DownPayment = 95000 }, wantField: "downPayment"},
		{name: "negative down payment", mutate: func(p *Parameters) { p.DownPayment = -1 }, wantField: "downPayment"},
		{name: "down payment exactly 90 percent", mutate: func(p *Parameters) { p.DownPayment = 90000 }},
		{name: "interest rate too high", mutate: func(p *Parameters) { p.InterestRate = 35 }, wantField: "interestRate"},
		{name: "interest rate negative", mutate: func(p *Parameters) { p.InterestRate = -0.5 }, wantField: "interestRate"},
		{name: "interest rate infinite", mutate: func(p *Parameters) { p.InterestRate = math.Inf(1) }, wantField: "interestRate"},
		{name: "zero interest rate", mutate: func(p *Parameters) { p.InterestRate = 0 }},
		{name: "maximum interest rate", mutate: func(p *Parameters) { p.InterestRate = 30 }},
		{name: "term too short", mutate: func(p *Parameters) { p.TermMonths = 6 }, wantField: "termMonths"},
		{name: "term too long", mutate: func(p *Parameters) { p.TermMonths = 361 }, wantField: "termMonths"},
		{name: "term bounds inclusive", mutate: func(p *Parameters) { p.TermMonths = 12 }},
		{
			name:      "loan amount below minimum",
			mutate:    func(p *Parameters) { p.BoatPrice = 1500; p.DownPayment = 1000 },
			wantField: "loanAmount",
		},
		{
			name:      "first failing rule wins",
			mutate:    func(p *Parameters) { p.BoatPrice = 500; p.InterestRate = 35; p.TermMonths = 6 },
			wantField: "boatPrice",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)

			err := Validate(p)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "expected *ValidationError, got %v", err)
			assert.Equal(t, tt.wantField, verr.Field)
			assert.NotEmpty(t, verr.Message)
		})
	}
}

func TestValidate_BoatPriceMessageNamesRange(t *testing.T) {
	p := baseParams()
	p.BoatPrice = 500
	p.DownPayment = 0

	err := Validate(p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "$1,000")
	assert.Contains(t, err.Error(), "$10,000,000")
}

func TestCalculate(t *testing.T) {
	t.Run("standard amortization", func(t *testing.T) {
		got := Calculate(baseParams(), testStart)

		assert.Equal(t, 80000.0, got.LoanAmount)
		assert.InDelta(t, 596.46, got.MonthlyPayment, 1e-9)
		assert.InDelta(t, 63150.04, got.TotalInterest, 1e-9)
		assert.InDelta(t, 163150.04, got.TotalCost, 1e-9)
		assert.Nil(t, got.Schedule)
	})

	t.Run("zero rate divides evenly", func(t *testing.T) {
		p := baseParams()
		p.InterestRate = 0

		got := Calculate(p, testStart)

		assert.InDelta(t, 333.33, got.MonthlyPayment, 1e-9)
		assert.Equal(t, 0.0, got.TotalInterest)
		assert.Equal(t, p.BoatPrice, got.TotalCost)
	})

	t.Run("single payment term", func(t *testing.T) {
		p := Parameters{BoatPrice: 6000, DownPayment: 1000, InterestRate: 5, TermMonths: 1, IncludeSchedule: true}

		got := Calculate(p, testStart)

		require.Len(t, got.Schedule, 1)
		assert.InDelta(t, 5020.83, got.MonthlyPayment, 1e-9)
		assert.Equal(t, 1, got.Schedule[0].PaymentNumber)
		assert.Equal(t, 0.0, got.Schedule[0].RemainingBalance)
	})
}

func TestCalculate_ScheduleInvariants(t *testing.T) {
	cases := []Parameters{
		baseParams(),
		{BoatPrice: 100000, DownPayment: 20000, InterestRate: 0, TermMonths: 240},
		{BoatPrice: 12000, DownPayment: 2000, InterestRate: 30, TermMonths: 360},
		{BoatPrice: 2000, DownPayment: 1000, InterestRate: 0.01, TermMonths: 12},
		{BoatPrice: 10_000_000, DownPayment: 1_000_000, InterestRate: 30, TermMonths: 360},
	}

	for _, p := range cases {
		p.IncludeSchedule = true
		got := Calculate(p, testStart)

		require.Len(t, got.Schedule, p.TermMonths)
		assert.Equal(t, 1, got.Schedule[0].PaymentNumber)

		prev := p.LoanAmount()
		for i, row := range got.Schedule {
			assert.Equal(t, i+1, row.PaymentNumber)
			assert.Equal(t, testStart.AddDate(0, i+1, 0), row.PaymentDate)
			assert.Equal(t, got.MonthlyPayment, row.TotalPayment)
			assert.GreaterOrEqual(t, row.RemainingBalance, 0.0)
			assert.LessOrEqual(t, row.RemainingBalance, prev, "balance increased at payment %d", row.PaymentNumber)
			prev = row.RemainingBalance
		}
	}
}

// The schedule is not corrected on its final row. With a rounded payment of
// 333.33 on 80,000 over 240 months, 0.80 stays outstanding after the last
// payment. This is kept deliberately so stored schedules stay reproducible.
func TestSchedule_FinalRowKeepsRoundingResidual(t *testing.T) {
	p := baseParams()
	p.InterestRate = 0
	p.IncludeSchedule = true

	got := Calculate(p, testStart)

	last := got.Schedule[len(got.Schedule)-1]
	assert.InDelta(t, 0.80, last.RemainingBalance, 1e-9)
}

func TestSchedule_StandardLoanPaysOff(t *testing.T) {
	p := baseParams()
	p.IncludeSchedule = true

	got := Calculate(p, testStart)

	first := got.Schedule[0]
	assert.InDelta(t, 433.33, first.InterestAmount, 1e-9)
	assert.InDelta(t, 163.13, first.PrincipalAmount, 1e-9)
	assert.InDelta(t, 79836.87, first.RemainingBalance, 1e-9)
	assert.Equal(t, 0.0, got.Schedule[len(got.Schedule)-1].RemainingBalance)
}

func TestSchedule_NonPositiveTerm(t *testing.T) {
	assert.Nil(t, Schedule(1000, 0.01, 100, 0, testStart))
	assert.Nil(t, Schedule(1000, 0.01, 100, -5, testStart))
}

func TestCompareScenarios(t *testing.T) {
	ctx := context.Background()
	f := func(v float64) *float64 { return &v }
	n := func(v int) *int { return &v }

	t.Run("each scenario reflects only its override", func(t *testing.T) {
		overrides := []Override{
			{InterestRate: f(5.0)},
			{TermMonths: n(120)},
			{DownPayment: f(40000)},
			{BoatPrice: f(150000)},
		}

		results, err := CompareScenarios(ctx, baseParams(), overrides, testStart)
		require.NoError(t, err)
		require.Len(t, results, 4)

		for i, r := range results {
			want := Calculate(overrides[i].Apply(baseParams()), testStart)
			assert.Equal(t, want, r.Result)
			assert.Empty(t, r.Error)
			assert.NotEmpty(t, r.ScenarioID)
		}

		assert.Equal(t, "Scenario 1", results[0].Label)
		assert.Equal(t, "Scenario 4", results[3].Label)
		assert.Equal(t, 5.0, results[0].Parameters.InterestRate)
		assert.Equal(t, 240, results[0].Parameters.TermMonths)
		assert.Equal(t, 120, results[1].Parameters.TermMonths)
		assert.Equal(t, 6.5, results[1].Parameters.InterestRate)
		assert.Equal(t, 60000.0, results[2].Result.LoanAmount)
		assert.Equal(t, 130000.0, results[3].Result.LoanAmount)
		assert.NotEqual(t, results[0].ScenarioID, results[1].ScenarioID)
	})

	t.Run("more than ten scenarios rejected", func(t *testing.T) {
		overrides := make([]Override, 11)
		_, err := CompareScenarios(ctx, baseParams(), overrides, testStart)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "Maximum of 10 scenarios allowed", verr.Message)
	})

	t.Run("empty list rejected", func(t *testing.T) {
		_, err := CompareScenarios(ctx, baseParams(), nil, testStart)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
	})

	t.Run("invalid base rejected before scenarios run", func(t *testing.T) {
		base := baseParams()
		base.TermMonths = 6

		_, err := CompareScenarios(ctx, base, []Override{{InterestRate: f(4)}}, testStart)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "termMonths", verr.Field)
	})

	t.Run("merged scenarios are not revalidated", func(t *testing.T) {
		results, err := CompareScenarios(ctx, baseParams(), []Override{{InterestRate: f(35)}}, testStart)
		require.NoError(t, err)

		assert.Empty(t, results[0].Error)
		assert.Greater(t, results[0].Result.MonthlyPayment, 0.0)
	})

	t.Run("degenerate scenario does not abort siblings", func(t *testing.T) {
		results, err := CompareScenarios(ctx, baseParams(), []Override{{TermMonths: n(0)}, {InterestRate: f(7)}}, testStart)
		require.NoError(t, err)

		assert.NotEmpty(t, results[0].Error)
		assert.Empty(t, results[1].Error)
		assert.Greater(t, results[1].Result.MonthlyPayment, 0.0)
	})

	t.Run("term above maximum is a scenario error", func(t *testing.T) {
		overrides := []Override{
			{TermMonths: n(1 << 30), IncludeSchedule: boolPtr(true)},
			{TermMonths: n(MaxTermMonths + 1)},
			{TermMonths: n(MaxTermMonths), IncludeSchedule: boolPtr(true)},
		}

		results, err := CompareScenarios(ctx, baseParams(), overrides, testStart)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Contains(t, results[0].Error, "between 1 and 360 months")
		assert.Equal(t, Result{}, results[0].Result)
		assert.NotEmpty(t, results[1].Error)
		assert.Empty(t, results[2].Error)
		assert.Len(t, results[2].Result.Schedule, MaxTermMonths)
	})

	t.Run("overflowing amounts are a scenario error", func(t *testing.T) {
		overrides := []Override{
			{InterestRate: f(4.5)},
			{InterestRate: f(1e6), IncludeSchedule: boolPtr(true)},
			{BoatPrice: f(math.MaxFloat64), DownPayment: f(-math.MaxFloat64)},
		}

		results, err := CompareScenarios(ctx, baseParams(), overrides, testStart)
		require.NoError(t, err)
		require.Len(t, results, 3)

		assert.Empty(t, results[0].Error)
		assert.Greater(t, results[0].Result.MonthlyPayment, 0.0)
		for _, r := range results[1:] {
			assert.Equal(t, "Scenario parameters produce amounts that cannot be represented", r.Error)
			assert.Equal(t, Result{}, r.Result)
		}
	})
}

func boolPtr(v bool) *bool { return &v }

func TestSuggestedRates(t *testing.T) {
	tests := []struct {
		name       string
		loanAmount float64
		termMonths int
		want       []float64
	}{
		{"mid-size loan", 80000, 240, []float64{5.5, 6.5, 7.5, 8.5}},
		{"jumbo long term", 600000, 300, []float64{5, 6, 7, 8}},
		{"large short term", 150000, 36, []float64{4.75, 5.75, 6.75, 7.75}},
		{"small loan", 20000, 120, []float64{7, 8, 9, 10}},
		{"small loan long term", 20000, 360, []float64{7.5, 8.5, 9.5, 10.5}},
		{"threshold is inclusive", 100000, 60, []float64{5, 6, 7, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SuggestedRates(tt.loanAmount, tt.termMonths)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSuggestedRates_Ascending(t *testing.T) {
	got := SuggestedRates(80000, 240)

	require.Len(t, got, 4)
	for i, r := range got {
		assert.Greater(t, r, 0.0)
		if i > 0 {
			assert.Greater(t, r, got[i-1])
		}
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input float64
		want  float64
	}{
		{123.456789, 123.46},
		{123.45, 123.45},
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{123, 123},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.input), "Round2(%v)", tt.input)
	}

	assert.True(t, math.IsNaN(Round2(math.NaN())))
}
