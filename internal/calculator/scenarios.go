package calculator

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// MaxScenarios caps the number of overrides in one comparison.
const MaxScenarios = 10

// Override holds the fields a scenario changes on top of the base parameters.
// Nil fields keep the base value.
type Override struct {
	BoatPrice       *float64
	DownPayment     *float64
	InterestRate    *float64
	TermMonths      *int
	IncludeSchedule *bool
}

// Apply returns base with the non-nil fields of o replaced.
func (o Override) Apply(base Parameters) Parameters {
	merged := base
	if o.BoatPrice != nil {
		merged.BoatPrice = *o.BoatPrice
	}
	if o.DownPayment != nil {
		merged.DownPayment = *o.DownPayment
	}
	if o.InterestRate != nil {
		merged.InterestRate = *o.InterestRate
	}
	if o.TermMonths != nil {
		merged.TermMonths = *o.TermMonths
	}
	if o.IncludeSchedule != nil {
		merged.IncludeSchedule = *o.IncludeSchedule
	}
	return merged
}

// ScenarioResult is the outcome of one scenario in a comparison.
type ScenarioResult struct {
	ScenarioID string
	Label      string
	Parameters Parameters
	Result     Result

	// Error is set when the merged parameters cannot be amortized: the term
	// is outside 1..MaxTermMonths or the amounts overflow. Result is zero in
	// that case.
	Error string
}

// CompareScenarios validates base, then merges each override onto it and
// computes every scenario independently. Merged scenarios are not validated
// again. Results keep the order of overrides.
func CompareScenarios(ctx context.Context, base Parameters, overrides []Override, start time.Time) ([]ScenarioResult, error) {
	if err := Validate(base); err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return nil, &ValidationError{Field: "scenarios", Message: "At least one scenario is required"}
	}
	if len(overrides) > MaxScenarios {
		return nil, &ValidationError{
			Field:   "scenarios",
			Message: fmt.Sprintf("Maximum of %d scenarios allowed", MaxScenarios),
		}
	}

	results := make([]ScenarioResult, len(overrides))
	g, gctx := errgroup.WithContext(ctx)
	for i, o := range overrides {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = runScenario(i, o.Apply(base), start)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func runScenario(index int, p Parameters, start time.Time) ScenarioResult {
	sr := ScenarioResult{
		ScenarioID: uuid.NewString(),
		Label:      fmt.Sprintf("Scenario %d", index+1),
		Parameters: p,
	}
	if p.TermMonths <= 0 || p.TermMonths > MaxTermMonths {
		sr.Error = fmt.Sprintf("Loan term must be between 1 and %d months, got %d", MaxTermMonths, p.TermMonths)
		return sr
	}

	// Overrides skip Validate, so amounts can overflow to NaN or Inf.
	result := Calculate(p, start)
	if !result.finite() {
		sr.Error = "Scenario parameters produce amounts that cannot be represented"
		return sr
	}
	sr.Result = result
	return sr
}
