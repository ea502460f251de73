package utils

import "reelstudio-backend/internal/domain"

// JobCosting is the profitability breakdown of a single project.
// MarginPercent is nil when the project value is zero or negative; a
// margin over nothing is undefined, not 0 and not NaN.
type JobCosting struct {
	ProjectValueCents   int64    `json:"project_value_cents"`
	TeamCostsCents      int64    `json:"team_costs_cents"`
	ManualExpensesCents int64    `json:"manual_expenses_cents"`
	TotalCostsCents     int64    `json:"total_costs_cents"`
	ProfitCents         int64    `json:"profit_cents"`
	MarginPercent       *float64 `json:"margin_percent,omitempty"`
	ValueSource         string   `json:"value_source"`
}

// Ordered fallback sources for a project's value. The first present
// source wins; absence of earlier sources is normal, not an error.
const (
	ValueSourceTotalRevenue  = "total_revenue"
	ValueSourceApprovedValue = "approved_value"
	ValueSourceBudget        = "budget"
	ValueSourceNone          = "none"
)

// ResolveProjectValue walks the fallback chain
// total_revenue -> approved_value -> budget -> 0 and reports which
// source supplied the value.
func ResolveProjectValue(summary *domain.FinancialSummary, project *domain.Project) (int64, string) {
	if summary != nil {
		if summary.TotalRevenueCents != nil {
			return *summary.TotalRevenueCents, ValueSourceTotalRevenue
		}
		if summary.ApprovedValueCents != nil {
			return *summary.ApprovedValueCents, ValueSourceApprovedValue
		}
	}
	if project != nil && project.BudgetCents != nil {
		return *project.BudgetCents, ValueSourceBudget
	}
	return 0, ValueSourceNone
}

// ComputeJobCosting aggregates a project's revenue against its cost
// drivers. Member fees count whenever an agreed fee is set, regardless
// of the member's confirmation status.
func ComputeJobCosting(project *domain.Project, summary *domain.FinancialSummary, members []domain.ProjectMember, expenses []domain.ProjectExpense) JobCosting {
	var teamCosts int64
	for _, m := range members {
		if m.AgreedFeeCents != nil {
			teamCosts += *m.AgreedFeeCents
		}
	}

	var manual int64
	for _, e := range expenses {
		manual += e.EffectiveCostCents()
	}

	value, source := ResolveProjectValue(summary, project)
	profit := value - teamCosts - manual

	jc := JobCosting{
		ProjectValueCents:   value,
		TeamCostsCents:      teamCosts,
		ManualExpensesCents: manual,
		TotalCostsCents:     teamCosts + manual,
		ProfitCents:         profit,
		ValueSource:         source,
	}
	if value > 0 {
		margin := float64(profit) / float64(value) * 100
		jc.MarginPercent = &margin
	}
	return jc
}
