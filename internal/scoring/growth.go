package scoring

import "github.com/nonprofitedge/assessments/internal/instrument"

// GrowthPlanResult is the staged action template for the single weakest
// dimension.
type GrowthPlanResult struct {
	DimensionID string `json:"dimensionId"`
	Label       string `json:"label"`
	Near        string `json:"near"` // 30-day horizon
	Mid         string `json:"mid"`  // 60-day horizon
	Far         string `json:"far"`  // 90-day horizon
}

// SelectGrowthPlan resolves the plan keyed by the weakest dimension. Returns
// nil when the instrument carries no plans. Resolution cannot fail for a
// validated instrument: every dimension has an entry, enforced at load time.
func SelectGrowthPlan(inst *instrument.Instrument, scores []DimensionScore) *GrowthPlanResult {
	if inst.GrowthPlans == nil || len(scores) == 0 {
		return nil
	}

	weakest := RankAscending(scores)[0]
	plan := inst.GrowthPlans[weakest.DimensionID]

	return &GrowthPlanResult{
		DimensionID: weakest.DimensionID,
		Label:       weakest.Label,
		Near:        plan.Near,
		Mid:         plan.Mid,
		Far:         plan.Far,
	}
}
