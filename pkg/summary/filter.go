package summary

import (
	"github.com/kasuboski/arrqueue/pkg/issues"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

// Filter narrows records before they are grouped, so a group that loses
// members to the filter degrades to item rows instead of a group of one.
type Filter struct {
	Problematic bool
	Service     queue.Service
	InstanceID  string
}

func (f Filter) Apply(records []queue.Record) []queue.Record {
	out := make([]queue.Record, 0, len(records))
	for _, r := range records {
		if f.Service != "" && r.Service != f.Service {
			continue
		}
		if f.InstanceID != "" && r.InstanceID != f.InstanceID {
			continue
		}
		if f.Problematic && !issues.IsProblematic(r) {
			continue
		}
		out = append(out, r)
	}
	return out
}
