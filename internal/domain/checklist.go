package domain

import "strings"

// VerdictOutcome classifies the raw verdict text returned per document. The
// model is prompted to answer "CORRETO" or "INCORRETO <reason>"; anything
// else (e.g. an extraction prompt's free-form value) is classified as info
// and treated as a pendency during reconciliation.
type VerdictOutcome string

const (
	VerdictOutcomePass VerdictOutcome = "pass"
	VerdictOutcomeFail VerdictOutcome = "fail"
	VerdictOutcomeInfo VerdictOutcome = "info"
)

const (
	verdictPassPrefix = "CORRETO"
	verdictFailPrefix = "INCORRETO"
)

// ParseVerdict classifies a verdict string once, at the boundary where the
// raw model text enters the domain. Callers must not re-test prefixes.
func ParseVerdict(result string) VerdictOutcome {
	trimmed := strings.TrimSpace(result)
	switch {
	case strings.HasPrefix(trimmed, verdictPassPrefix):
		return VerdictOutcomePass
	case strings.HasPrefix(trimmed, verdictFailPrefix):
		return VerdictOutcomeFail
	default:
		return VerdictOutcomeInfo
	}
}

// ComputeOverallStatus derives the analysis status from its checklist.
// Deterministic and order-independent:
//   - any item still pending, uploaded or analyzing -> pending_docs
//   - otherwise, any error item or any success item whose verdict is not a
//     pass -> completed_pending
//   - otherwise -> completed_success
func ComputeOverallStatus(checklist []ChecklistItem) OverallStatus {
	for _, item := range checklist {
		switch item.Status {
		case ChecklistStatusPending, ChecklistStatusUploaded, ChecklistStatusAnalyzing:
			return OverallStatusPendingDocs
		}
	}

	for _, item := range checklist {
		if item.Status == ChecklistStatusError {
			return OverallStatusCompletedPending
		}
		if item.Status == ChecklistStatusSuccess {
			if item.Result == nil || ParseVerdict(*item.Result) != VerdictOutcomePass {
				return OverallStatusCompletedPending
			}
		}
	}

	return OverallStatusCompletedSuccess
}
