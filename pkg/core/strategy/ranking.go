package strategy

import (
	"sort"

	"investment_analytics/pkg/core/metrics"
)

// Derivation assumptions for running every strategy against one base
// property listed at market value. These mirror how an investor would frame
// each model before digging into real numbers.
const (
	brrrrAcquisitionRatio = 0.75 // BRRRR buys at 75% of market
	flipAcquisitionRatio  = 0.70 // Flip buys at 70% of market
	wholesaleContractRatio = 0.60
	rehabRatio            = 0.10 // rehab budget as share of market value
	repairEstimateRatio   = 0.06
	hackDownPaymentPct    = 5.0  // FHA-style owner-occupied financing
	hackOccupancyPct      = 75.0
	strOccupancyPct       = 65.0
	strNightlyRentDivisor = 10.0 // nightly rate ≈ monthly rent / 10
)

// MultiStrategyResult is the ranked verdict across all six strategies.
type MultiStrategyResult struct {
	Analyses     []Analysis `json:"analyses"` // sorted: viable first, then score desc
	BestStrategy Strategy   `json:"best_strategy"`
	BestScore    float64    `json:"best_score"`
}

// DeriveShortTermRentalInputs frames the base property as a nightly rental.
func DeriveShortTermRentalInputs(base metrics.AnalyticsInputs) ShortTermRentalInputs {
	return ShortTermRentalInputs{
		Base:             base,
		NightlyRate:      base.MonthlyRent / strNightlyRentDivisor,
		OccupancyPercent: strOccupancyPct,
		AvgStayNights:    3,
		CleaningFee:      100,
		CleaningCost:     80,
		MonthlyUtilities: 250,
		PlatformFeeRate:  3,
	}
}

// DeriveBRRRRInputs assumes acquisition at 75% of market value with a rehab
// budget of 10% of market, refinanced at 75% LTV against a full-market ARV.
func DeriveBRRRRInputs(base metrics.AnalyticsInputs) BRRRRInputs {
	market := base.PurchasePrice
	acquired := base
	acquired.PurchasePrice = market * brrrrAcquisitionRatio

	return BRRRRInputs{
		Base:               acquired,
		RehabBudget:        market * rehabRatio,
		ARV:                market,
		HoldingMonths:      6,
		MonthlyHoldingCost: base.AnnualPropertyTax/12 + base.AnnualInsurance/12 + 500,
		RefinanceLTV:       75,
		RefinanceRate:      base.InterestRate,
		RefinanceTermYears: 30,
	}
}

// DeriveFixAndFlipInputs assumes acquisition at 70% of market with a 10%
// rehab and a full-market resale.
func DeriveFixAndFlipInputs(base metrics.AnalyticsInputs) FixAndFlipInputs {
	market := base.PurchasePrice
	acquired := base
	acquired.PurchasePrice = market * flipAcquisitionRatio

	return FixAndFlipInputs{
		Base:               acquired,
		RehabBudget:        market * rehabRatio,
		ARV:                market,
		HoldingMonths:      6,
		MonthlyHoldingCost: base.AnnualPropertyTax/12 + base.AnnualInsurance/12 + 500,
		FinancingCost:      acquired.PurchasePrice * 0.03,
		SellingCostPercent: 8,
	}
}

// DeriveHouseHackInputs assumes a duplex at an FHA-style 5% down payment,
// 75% occupancy on the rented side, and a current housing payment equal to
// market rent for a comparable home.
func DeriveHouseHackInputs(base metrics.AnalyticsInputs) HouseHackInputs {
	hacked := base
	hacked.DownPaymentPercent = hackDownPaymentPct

	return HouseHackInputs{
		Base:                  hacked,
		Units:                 2,
		OwnerUnits:            1,
		RentalOccupancyPct:    hackOccupancyPct,
		CurrentHousingPayment: base.MonthlyRent,
	}
}

// DeriveWholesaleInputs assumes a contract at 60% of market assigned for a
// flat fee against an as-is repair estimate.
func DeriveWholesaleInputs(base metrics.AnalyticsInputs) WholesaleInputs {
	market := base.PurchasePrice
	return WholesaleInputs{
		ContractPrice:    market * wholesaleContractRatio,
		AssignmentFee:    10000,
		ARV:              market,
		EstimatedRepairs: market * repairEstimateRatio,
		MarketingCost:    2000,
		EarnestDeposit:   2000,
	}
}

// AnalyzeAll runs every strategy over the derived inputs and ranks the
// results: viable strategies sort before non-viable ones, descending score
// within each group, canonical strategy order on exact ties. Ranks are
// 1-based and assigned after sorting; rank 1 is the best fit.
//
// Deterministic by construction: identical inputs always yield the same
// order and ranks.
func AnalyzeAll(base metrics.AnalyticsInputs) MultiStrategyResult {
	order := make(map[Strategy]int, len(All()))
	for i, s := range All() {
		order[s] = i
	}

	analyses := []Analysis{
		AnalyzeLongTermRental(base),
		AnalyzeShortTermRental(DeriveShortTermRentalInputs(base)),
		AnalyzeBRRRR(DeriveBRRRRInputs(base)),
		AnalyzeFixAndFlip(DeriveFixAndFlipInputs(base)),
		AnalyzeHouseHack(DeriveHouseHackInputs(base)),
		AnalyzeWholesale(DeriveWholesaleInputs(base)),
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].IsViable != analyses[j].IsViable {
			return analyses[i].IsViable
		}
		if analyses[i].Score != analyses[j].Score {
			return analyses[i].Score > analyses[j].Score
		}
		return order[analyses[i].Strategy] < order[analyses[j].Strategy]
	})

	for i := range analyses {
		analyses[i].Rank = i + 1
	}

	return MultiStrategyResult{
		Analyses:     analyses,
		BestStrategy: analyses[0].Strategy,
		BestScore:    analyses[0].Score,
	}
}
