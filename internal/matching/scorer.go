package matching

import "math"

// Sub-score normalization caps. Detours beyond 300 km and idle time beyond 24 h
// contribute nothing to the blended score.
const (
	maxDetourScoreKm  = 300.0
	maxIdleHours      = 24.0
	failedRulePenalty = 0.25
)

// Blend weights. Capacity fit dominates; detour, idle time, and compliance share the rest.
const (
	capacityWeight   = 0.4
	detourWeight     = 0.2
	idleWeight       = 0.2
	complianceWeight = 0.2
)

// FeasibilityParams are the normalized inputs to the feasibility blend.
type FeasibilityParams struct {
	CapacityMatch float64 // fraction of truck capacity consumed, capped at 1
	DetourKm      float64
	IdleHours     float64
	FailedRules   int
}

// ComputeFeasibility blends capacity fit, detour cost, idle time, and compliance status
// into a single score in [0,1]. Out-of-range inputs are clamped, not rejected.
func ComputeFeasibility(p FeasibilityParams) float64 {
	capacityScore := p.CapacityMatch
	detourScore := 1 - math.Min(p.DetourKm, maxDetourScoreKm)/maxDetourScoreKm
	idleScore := 1 - math.Min(p.IdleHours, maxIdleHours)/maxIdleHours

	complianceScore := 1.0
	if p.FailedRules > 0 {
		complianceScore = math.Max(0, 1-float64(p.FailedRules)*failedRulePenalty)
	}

	raw := capacityWeight*capacityScore +
		detourWeight*detourScore +
		idleWeight*idleScore +
		complianceWeight*complianceScore

	return math.Max(0, math.Min(1, raw))
}
