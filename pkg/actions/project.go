package actions

import "github.com/kasuboski/arrqueue/pkg/queue"

const (
	StatusRetryRequested        = "Retry requested"
	StatusManualImportRequested = "Manual import requested"
)

// Project computes the view as it should look once the action lands.
// Deleted records disappear, others get a provisional status. Records without
// an id never match. The input view is left untouched.
func Project(view queue.View, kind Kind, records []queue.Record) queue.View {
	targets := make(map[string]struct{}, len(records))
	for _, r := range records {
		if key, ok := r.Key(); ok {
			targets[key] = struct{}{}
		}
	}

	out := view.Clone()
	if len(targets) == 0 {
		return out
	}

	matches := func(r queue.Record) bool {
		key, ok := r.Key()
		if !ok {
			return false
		}
		_, hit := targets[key]
		return hit
	}

	if kind == KindDelete {
		for i := range out.Instances {
			kept, removed := without(out.Instances[i].Records, matches)
			out.Instances[i].Records = kept
			out.Instances[i].TotalCount = max(0, out.Instances[i].TotalCount-removed)
		}
		kept, removed := without(out.Aggregated, matches)
		out.Aggregated = kept
		out.TotalCount = max(0, out.TotalCount-removed)
		return out
	}

	status := StatusRetryRequested
	if kind == KindManualImport {
		status = StatusManualImportRequested
	}
	for i := range out.Instances {
		relabel(out.Instances[i].Records, matches, status)
	}
	relabel(out.Aggregated, matches, status)
	return out
}

func without(records []queue.Record, matches func(queue.Record) bool) ([]queue.Record, int) {
	if records == nil {
		return nil, 0
	}
	kept := make([]queue.Record, 0, len(records))
	for _, r := range records {
		if !matches(r) {
			kept = append(kept, r)
		}
	}
	return kept, len(records) - len(kept)
}

func relabel(records []queue.Record, matches func(queue.Record) bool, status string) {
	for i := range records {
		if matches(records[i]) {
			records[i].Status = status
		}
	}
}
