package calculator

// Rate advisor table. Rates are annual percentages.
const (
	defaultBaseRate = 6.5
	jumboBaseRate   = 5.5
	largeBaseRate   = 6.0
	smallBaseRate   = 8.0

	jumboLoanAmount = 500_000.0
	largeLoanAmount = 100_000.0
	smallLoanAmount = 25_000.0

	longTermMonths   = 240
	shortTermMonths  = 60
	longTermPremium  = 0.5
	shortTermRebate  = 0.25
	rateSuggestStep  = 1.0
	rateSuggestCount = 4
)

// SuggestedRates returns four ascending annual rates that are typical for a
// loan of the given size and term. The suggestions are advisory and are never
// used to reject a rate the borrower picked.
func SuggestedRates(loanAmount float64, termMonths int) []float64 {
	base := defaultBaseRate
	switch {
	case loanAmount >= jumboLoanAmount:
		base = jumboBaseRate
	case loanAmount >= largeLoanAmount:
		base = largeBaseRate
	case loanAmount < smallLoanAmount:
		base = smallBaseRate
	}

	if termMonths > longTermMonths {
		base += longTermPremium
	} else if termMonths < shortTermMonths {
		base -= shortTermRebate
	}

	rates := make([]float64, 0, rateSuggestCount)
	for i := 0; i < rateSuggestCount; i++ {
		rates = append(rates, Round2(base+float64(i-1)*rateSuggestStep))
	}
	return rates
}
