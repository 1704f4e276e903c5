// Package strategy evaluates one property under six distinct investment
// strategies and ranks them. Each strategy is an independent pure pipeline:
// metrics, insights, weighted score, viability. The variant set is closed so
// dispatch is an exhaustive switch, not string-keyed lookup.
package strategy

// Strategy identifies one of the six investment models.
type Strategy string

const (
	LongTermRental  Strategy = "long_term_rental"
	ShortTermRental Strategy = "short_term_rental"
	BRRRR           Strategy = "brrrr"
	FixAndFlip      Strategy = "fix_and_flip"
	HouseHack       Strategy = "house_hack"
	Wholesale       Strategy = "wholesale"
)

// All lists every strategy in canonical order. Ranking ties break on this
// order so identical inputs always produce identical ranks.
func All() []Strategy {
	return []Strategy{
		LongTermRental,
		ShortTermRental,
		BRRRR,
		FixAndFlip,
		HouseHack,
		Wholesale,
	}
}

// DisplayName returns the human label for a strategy.
func (s Strategy) DisplayName() string {
	switch s {
	case LongTermRental:
		return "Long-Term Rental"
	case ShortTermRental:
		return "Short-Term Rental"
	case BRRRR:
		return "BRRRR"
	case FixAndFlip:
		return "Fix & Flip"
	case HouseHack:
		return "House Hack"
	case Wholesale:
		return "Wholesale"
	}
	return string(s)
}

// =============================================================================
// INSIGHTS
// =============================================================================

// InsightType classifies an insight line.
type InsightType string

const (
	InsightStrength InsightType = "strength"
	InsightConcern  InsightType = "concern"
	InsightTip      InsightType = "tip"
)

// Insight is one textual observation about a strategy's numbers.
type Insight struct {
	Type InsightType `json:"type"`
	Text string      `json:"text"`
}

// maxInsights caps the insight list per strategy.
const maxInsights = 4

func capInsights(insights []Insight) []Insight {
	if len(insights) > maxInsights {
		return insights[:maxInsights]
	}
	return insights
}

// =============================================================================
// ANALYSIS ENVELOPE
// =============================================================================

// Analysis is the shared envelope every analyzer returns. Metrics holds the
// strategy-specific metric struct (one concrete shape per strategy).
type Analysis struct {
	Strategy Strategy    `json:"strategy"`
	Name     string      `json:"name"`
	Score    float64     `json:"score"` // 0-100
	Grade    string      `json:"grade"`
	Color    string      `json:"color"`
	Metrics  interface{} `json:"metrics"`
	Insights []Insight   `json:"insights"`
	IsViable bool        `json:"is_viable"`
	Rank     int         `json:"rank,omitempty"` // 1-based, assigned by RankAll
}

// scoreToGrade maps a 0-100 score onto a letter grade and color tag.
func scoreToGrade(score float64) (grade, color string) {
	switch {
	case score >= 90:
		return "A+", "green"
	case score >= 80:
		return "A", "green"
	case score >= 70:
		return "B", "lightgreen"
	case score >= 55:
		return "C", "yellow"
	case score >= 40:
		return "D", "orange"
	default:
		return "F", "red"
	}
}

// clampScore bounds a rubric total to [0, 100].
func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// ratioScore maps value/target linearly onto [0, max]. A value at or above
// the target earns the full weight.
func ratioScore(value, target, max float64) float64 {
	if target == 0 {
		return 0
	}
	s := value / target * max
	if s < 0 {
		return 0
	}
	if s > max {
		return max
	}
	return s
}
