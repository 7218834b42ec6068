package actions

import "github.com/kasuboski/arrqueue/pkg/queue"

// FilterCapable keeps the records the backend permits the action on.
// Retry is assumed possible unless the backend says otherwise, manual import
// needs an explicit confirmation, and everything else passes through.
func FilterCapable(kind Kind, records []queue.Record) []queue.Record {
	var keep func(queue.Record) bool
	switch kind {
	case KindRetry:
		keep = func(r queue.Record) bool {
			return r.Actions == nil || r.Actions.CanRetry
		}
	case KindManualImport:
		keep = func(r queue.Record) bool {
			return r.Actions != nil && r.Actions.CanManualImport
		}
	default:
		return records
	}

	out := make([]queue.Record, 0, len(records))
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}
