package issues

import (
	"strings"

	"github.com/kasuboski/arrqueue/pkg/diagnostics"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

// Keyword lists are matched case insensitively against every collected line.
var (
	manualImportKeywords = []string{"manual import", "cannot be imported automatically", "manual interaction required"}
	stalledKeywords      = []string{"stalled"}
	timeoutKeywords      = []string{"timeout", "timed out"}
	importFailedKeywords = []string{"import failed", "failed to import", "unable to import", "importing failed"}
	noFilesKeywords      = []string{"no files found", "no files were found", "no video files", "no eligible files"}
)

type input struct {
	record          queue.Record
	lines           []string
	hasErrorMessage bool
}

func newInput(r queue.Record) input {
	collected := diagnostics.Collect(r)
	lines := make([]string, len(collected))
	for i, l := range collected {
		lines[i] = l.Text
	}

	return input{
		record:          r,
		lines:           lines,
		hasErrorMessage: strings.TrimSpace(r.ErrorMessage) != "",
	}
}

func (in input) anyLine(keywords []string) bool {
	for _, l := range in.lines {
		if diagnostics.ContainsAny(l, keywords...) {
			return true
		}
	}
	return false
}

// rule pairs a predicate with its effect on the analysis
type rule struct {
	name  string
	match func(input) bool
	apply func(*Analysis)
}

func manualImport(a *Analysis) {
	a.add(FailedImport)
	a.CanManualImport = true
}

// rules run in this exact order
var rules = []rule{
	{
		name: "import pending",
		match: func(in input) bool {
			return strings.EqualFold(in.record.TrackedDownloadState, "importPending") && in.record.DownloadID != ""
		},
		apply: manualImport,
	},
	{
		name:  "manual import message",
		match: func(in input) bool { return in.anyLine(manualImportKeywords) },
		apply: manualImport,
	},
	{
		name: "stalled",
		match: func(in input) bool {
			return strings.EqualFold(strings.TrimSpace(in.record.Status), "stalled") || in.anyLine(stalledKeywords)
		},
		apply: func(a *Analysis) {
			a.add(Stalled)
			a.CanRetry = true
			a.raise(diagnostics.ToneWarning)
		},
	},
	{
		name: "download error",
		match: func(in input) bool {
			return strings.EqualFold(in.record.TrackedDownloadStatus, "error") || strings.EqualFold(in.record.Status, "failed")
		},
		apply: func(a *Analysis) {
			a.add(DownloadError)
			a.raise(diagnostics.ToneError)
		},
	},
	{
		name:  "timeout",
		match: func(in input) bool { return in.anyLine(timeoutKeywords) },
		apply: func(a *Analysis) {
			a.add(Timeout)
			a.CanRetry = true
			a.raise(diagnostics.ToneWarning)
		},
	},
	{
		name:  "import failed",
		match: func(in input) bool { return in.anyLine(importFailedKeywords) },
		apply: func(a *Analysis) {
			a.add(ImportError)
			a.raise(diagnostics.ToneError)
		},
	},
	{
		name:  "missing files",
		match: func(in input) bool { return in.anyLine(noFilesKeywords) },
		apply: func(a *Analysis) {
			a.add(MissingFiles)
			a.raise(diagnostics.ToneWarning)
		},
	},
}
