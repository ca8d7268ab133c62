package service

import (
	"strings"

	"freight-settlement/internal/core/domain"
	"freight-settlement/internal/core/ports"
)

// Risk score components. The score is additive and capped at 100; the cap
// applies to the number only, sanctions-blocked forces rejection regardless.
const (
	scoreBase               = 20
	scoreAmountTier1        = 10 // >= 1,000 fiat units
	scoreAmountTier2        = 25 // >= 10,000
	scoreAmountTier3        = 50 // >= 100,000
	scoreHighRiskAsset      = 10
	scoreTravelRuleRejected = 30
	scoreSanctionsBlocked   = 100
	scoreTravelRuleReview   = 20
	scoreHighRiskRegion     = 35

	flagThreshold = 70
	scoreCap      = 100
)

// ComplianceConfig holds the tunable inputs of the engine. Zero values fall
// back to the defaults in DefaultComplianceConfig.
type ComplianceConfig struct {
	// TravelRuleThreshold is the fiat amount (major units) above which
	// originator/beneficiary identity data must be exchanged.
	TravelRuleThreshold int64
	// SanctionedAddresses is the blocklist, matched case-insensitively.
	SanctionedAddresses []string
	// HighRiskAssets are asset symbols that add risk weight.
	HighRiskAssets []string
	// HighRiskJurisdictions are ISO country codes that add risk weight and
	// route travel-rule submissions to manual review.
	HighRiskJurisdictions []string
}

// DefaultComplianceConfig returns the engine defaults.
func DefaultComplianceConfig() ComplianceConfig {
	return ComplianceConfig{
		TravelRuleThreshold:   1000,
		HighRiskAssets:        []string{"XMR", "ZEC", "DASH"},
		HighRiskJurisdictions: []string{"IR", "KP", "SY", "CU", "MM"},
	}
}

// ComplianceEngineImpl implements ports.ComplianceEngine. Evaluate is a pure
// function of its input: no I/O, no stored state, safe to re-invoke.
type ComplianceEngineImpl struct {
	cfg         ComplianceConfig
	blocklist   map[string]struct{}
	riskAssets  map[string]struct{}
	riskRegions map[string]struct{}
}

// NewComplianceEngine creates a compliance engine with the given config.
func NewComplianceEngine(cfg ComplianceConfig) *ComplianceEngineImpl {
	defaults := DefaultComplianceConfig()
	if cfg.TravelRuleThreshold <= 0 {
		cfg.TravelRuleThreshold = defaults.TravelRuleThreshold
	}
	if cfg.HighRiskAssets == nil {
		cfg.HighRiskAssets = defaults.HighRiskAssets
	}
	if cfg.HighRiskJurisdictions == nil {
		cfg.HighRiskJurisdictions = defaults.HighRiskJurisdictions
	}

	e := &ComplianceEngineImpl{
		cfg:         cfg,
		blocklist:   make(map[string]struct{}, len(cfg.SanctionedAddresses)),
		riskAssets:  make(map[string]struct{}, len(cfg.HighRiskAssets)),
		riskRegions: make(map[string]struct{}, len(cfg.HighRiskJurisdictions)),
	}
	for _, addr := range cfg.SanctionedAddresses {
		e.blocklist[strings.ToLower(addr)] = struct{}{}
	}
	for _, asset := range cfg.HighRiskAssets {
		e.riskAssets[strings.ToUpper(asset)] = struct{}{}
	}
	for _, region := range cfg.HighRiskJurisdictions {
		e.riskRegions[strings.ToUpper(region)] = struct{}{}
	}
	return e
}

// Evaluate screens sanctions, evaluates the travel rule, computes the AML
// score and decides the outcome.
func (e *ComplianceEngineImpl) Evaluate(input ports.ComplianceInput) domain.ComplianceResult {
	var flags []string

	sanctions := e.screenSanctions(input.Address)
	if sanctions == domain.SanctionsBlocked {
		flags = append(flags, "sanctions_blocked")
	}

	travelRule := e.evaluateTravelRule(input)
	switch travelRule {
	case domain.TravelRuleRejected:
		flags = append(flags, "travel_rule_rejected")
	case domain.TravelRuleUnderReview:
		flags = append(flags, "travel_rule_under_review")
	}

	highRiskRegion := false
	if _, ok := e.riskRegions[strings.ToUpper(input.Jurisdiction)]; ok {
		highRiskRegion = true
		flags = append(flags, "high_risk_jurisdiction")
	}

	score := scoreBase
	switch {
	case input.FiatAmount >= 100_000:
		score += scoreAmountTier3
	case input.FiatAmount >= 10_000:
		score += scoreAmountTier2
	case input.FiatAmount >= 1_000:
		score += scoreAmountTier1
	}
	if _, ok := e.riskAssets[strings.ToUpper(input.Asset)]; ok {
		score += scoreHighRiskAsset
		flags = append(flags, "high_risk_asset")
	}
	if travelRule == domain.TravelRuleRejected {
		score += scoreTravelRuleRejected
	}
	if travelRule == domain.TravelRuleUnderReview {
		score += scoreTravelRuleReview
	}
	if sanctions == domain.SanctionsBlocked {
		score += scoreSanctionsBlocked
	}
	if highRiskRegion {
		score += scoreHighRiskRegion
	}
	if score > scoreCap {
		score = scoreCap
	}

	status := domain.ComplianceStatusApproved
	switch {
	case sanctions == domain.SanctionsBlocked || travelRule == domain.TravelRuleRejected:
		status = domain.ComplianceStatusRejected
	case score >= flagThreshold:
		status = domain.ComplianceStatusFlagged
	}

	return domain.ComplianceResult{
		Status:     status,
		AMLScore:   score,
		Sanctions:  sanctions,
		TravelRule: travelRule,
		Flags:      flags,
	}
}

// evaluateTravelRule applies the identity-exchange requirement. Submissions
// involving a high-risk jurisdiction land in manual review instead of
// straight-through submission.
func (e *ComplianceEngineImpl) evaluateTravelRule(input ports.ComplianceInput) domain.TravelRuleStatus {
	if input.FiatAmount < e.cfg.TravelRuleThreshold {
		return domain.TravelRuleNotRequired
	}
	if !input.Originator.Complete() || !input.Beneficiary.Complete() {
		return domain.TravelRuleRejected
	}
	if _, ok := e.riskRegions[strings.ToUpper(input.Jurisdiction)]; ok {
		return domain.TravelRuleUnderReview
	}
	return domain.TravelRuleSubmitted
}

// screenSanctions performs the case-insensitive exact-match blocklist test.
func (e *ComplianceEngineImpl) screenSanctions(address string) domain.SanctionsStatus {
	if address == "" {
		return domain.SanctionsClear
	}
	if _, ok := e.blocklist[strings.ToLower(address)]; ok {
		return domain.SanctionsBlocked
	}
	return domain.SanctionsClear
}
