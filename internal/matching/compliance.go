package matching

import (
	"strings"

	"freight-exchange/freight-exchange-backend/internal/fleet"
	"freight-exchange/freight-exchange-backend/internal/loads"
)

// ComplianceChecker counts the compliance rules a load/truck pairing violates.
type ComplianceChecker interface {
	FailedRules(load *loads.Load, truck *fleet.Truck) int
}

// RuleChecker applies the built-in rule set: hazardous cargo needs a permit, and a truck
// must be able to carry the full load weight.
type RuleChecker struct{}

func NewRuleChecker() *RuleChecker {
	return &RuleChecker{}
}

func (c *RuleChecker) FailedRules(load *loads.Load, truck *fleet.Truck) int {
	failed := 0
	if strings.Contains(load.LoadType, "Hazardous") {
		failed++
	}
	if truck.CapacityKg < load.WeightKg {
		failed++
	}
	return failed
}
