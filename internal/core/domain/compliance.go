package domain

// ComplianceStatus is the outcome class of an AML/compliance evaluation.
type ComplianceStatus string

const (
	ComplianceStatusPending  ComplianceStatus = "pending"
	ComplianceStatusApproved ComplianceStatus = "approved"
	ComplianceStatusRejected ComplianceStatus = "rejected"
	ComplianceStatusFlagged  ComplianceStatus = "flagged"
)

// SanctionsStatus is the result of sanctions/blocklist screening.
type SanctionsStatus string

const (
	SanctionsClear   SanctionsStatus = "clear"
	SanctionsBlocked SanctionsStatus = "blocked"
)

// TravelRuleStatus is the result of travel-rule evaluation.
type TravelRuleStatus string

const (
	TravelRuleNotRequired TravelRuleStatus = "not_required"
	TravelRuleSubmitted   TravelRuleStatus = "submitted"
	TravelRuleUnderReview TravelRuleStatus = "under_review"
	TravelRuleRejected    TravelRuleStatus = "rejected"
)

// ComplianceResult holds the latest evaluation for a payment. The engine is
// pure, so re-running it overwrites these fields rather than appending.
type ComplianceResult struct {
	Status     ComplianceStatus `json:"status"`
	AMLScore   int              `json:"aml_score"` // 0-100
	Sanctions  SanctionsStatus  `json:"sanctions,omitempty"`
	TravelRule TravelRuleStatus `json:"travel_rule,omitempty"`
	Flags      []string         `json:"flags,omitempty"`
}

// PartyIdentity carries the originator/beneficiary identity data required
// for travel-rule submission above the fiat threshold.
type PartyIdentity struct {
	Name      string `json:"name"`
	AccountID string `json:"account_id"`
}

// Complete reports whether enough identity data is present for a
// travel-rule submission.
func (p PartyIdentity) Complete() bool {
	return p.Name != "" && p.AccountID != ""
}
