package issues

import (
	"github.com/kasuboski/arrqueue/pkg/diagnostics"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

// IssueType names a problem detected on a queue record
type IssueType string

const (
	FailedImport  IssueType = "failed_import"
	Stalled       IssueType = "stalled"
	DownloadError IssueType = "download_error"
	Timeout       IssueType = "timeout"
	ImportError   IssueType = "import_error"
	MissingFiles  IssueType = "missing_files"
)

// Action is the follow up recommended for a problematic record
type Action string

const (
	ActionRetry        Action = "retry"
	ActionManualImport Action = "manual_import"
	ActionBlocklist    Action = "blocklist"
)

// Analysis is the structured problem report for one record
type Analysis struct {
	IsProblematic     bool             `json:"isProblematic"`
	IssueTypes        []IssueType      `json:"issueTypes"`
	Severity          diagnostics.Tone `json:"severity"`
	CanRetry          bool             `json:"canRetry"`
	CanManualImport   bool             `json:"canManualImport"`
	RecommendedAction *Action          `json:"recommendedAction"`
}

// Has reports whether the analysis found issue t
func (a Analysis) Has(t IssueType) bool {
	for _, it := range a.IssueTypes {
		if it == t {
			return true
		}
	}
	return false
}

func (a *Analysis) add(t IssueType) {
	if !a.Has(t) {
		a.IssueTypes = append(a.IssueTypes, t)
	}
}

func (a *Analysis) raise(t diagnostics.Tone) {
	a.Severity = diagnostics.Escalate(a.Severity, t)
}

// Classify evaluates every rule against the record and its collected status lines.
// It holds no state, so the same record always yields the same analysis.
func Classify(r queue.Record) Analysis {
	in := newInput(r)
	a := Analysis{
		IssueTypes: []IssueType{},
		Severity:   diagnostics.ToneInfo,
	}

	for _, rule := range rules {
		if rule.match(in) {
			rule.apply(&a)
		}
	}

	if in.hasErrorMessage {
		a.raise(diagnostics.ToneError)
	}

	a.IsProblematic = len(a.IssueTypes) > 0
	a.RecommendedAction = recommend(a)
	return a
}

func recommend(a Analysis) *Action {
	if !a.IsProblematic {
		return nil
	}

	var action Action
	switch {
	case a.CanManualImport:
		action = ActionManualImport
	case a.Has(Stalled) || a.Has(Timeout):
		action = ActionRetry
	case a.Severity == diagnostics.ToneError && a.Has(MissingFiles):
		action = ActionBlocklist
	default:
		return nil
	}

	return &action
}

// IsProblematic reports whether any rule flags the record
func IsProblematic(r queue.Record) bool {
	return Classify(r).IsProblematic
}

// MatchedRules names the rules that fired for r, in evaluation order
func MatchedRules(r queue.Record) []string {
	in := newInput(r)
	names := []string{}
	for _, rule := range rules {
		if rule.match(in) {
			names = append(names, rule.name)
		}
	}
	return names
}
