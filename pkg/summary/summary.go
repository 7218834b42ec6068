package summary

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/kasuboski/arrqueue/pkg/diagnostics"
	"github.com/kasuboski/arrqueue/pkg/issues"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

type RowType string

const (
	RowGroup RowType = "group"
	RowItem  RowType = "item"
)

const (
	untitled      = "Untitled download"
	unknownStatus = "Unknown"
	unknownField  = "unknown"
)

// Row is one displayable unit: a single record, or two or more records folded by group key
type Row struct {
	Type     RowType        `json:"type"`
	Key      string         `json:"key"`
	GroupKey string         `json:"groupKey,omitempty"`
	Items    []queue.Record `json:"items"`

	GroupCount   int           `json:"groupCount"`
	Title        string        `json:"title"`
	Service      queue.Service `json:"service"`
	InstanceID   string        `json:"instanceId"`
	InstanceName string        `json:"instanceName"`
	StatusLabel  string        `json:"statusLabel"`

	Progress      *int    `json:"progress"`
	Size          float64 `json:"size"`
	SizeLeft      float64 `json:"sizeLeft"`
	SizeLabel     string  `json:"sizeLabel"`
	SizeLeftLabel string  `json:"sizeLeftLabel"`

	ProblematicCount int              `json:"problematicCount"`
	Severity         diagnostics.Tone `json:"severity"`
}

// Keys returns the record keys of every member that has one
func (r Row) Keys() []string {
	keys := make([]string, 0, len(r.Items))
	for _, item := range r.Items {
		if k, ok := item.Key(); ok {
			keys = append(keys, k)
		}
	}
	return keys
}

// Select adds every member of the row to the selection
func (r Row) Select(s *queue.Selection) {
	s.Add(r.Keys()...)
}

// GroupKey derives the key that folds related records. A shared download id is
// the strongest signal, then a series reference on the episodic backend.
// Records without either always stand alone.
func GroupKey(r queue.Record) (string, bool) {
	if r.DownloadID != "" {
		return fmt.Sprintf("%s:%s:download:%s", r.Service, r.InstanceID, r.DownloadID), true
	}

	if !r.Service.Episodic() {
		return "", false
	}

	seriesID, ok := queue.Optional(r.SeriesID)
	if !ok && r.Series != nil && r.Series.ID > 0 {
		seriesID, ok = r.Series.ID, true
	}
	if !ok {
		return "", false
	}

	return fmt.Sprintf("%s:%s:series:%d:%s:%s", r.Service, r.InstanceID, seriesID, orUnknown(r.Protocol), orUnknown(r.DownloadClient)), true
}

// Build folds records into rows in a single pass over the input, so rows keep
// the order in which each group or record first appears. Groups with fewer than
// two members are emitted as item rows.
func Build(records []queue.Record) []Row {
	members := make(map[string][]queue.Record)
	for _, r := range records {
		if key, ok := GroupKey(r); ok {
			members[key] = append(members[key], r)
		}
	}

	rows := make([]Row, 0, len(records))
	emitted := make(map[string]bool)
	for i, r := range records {
		key, ok := GroupKey(r)
		if ok && len(members[key]) >= 2 {
			if emitted[key] {
				continue
			}
			emitted[key] = true
			rows = append(rows, newRow(RowGroup, key, members[key]))
			continue
		}

		rows = append(rows, newRow(RowItem, itemKey(r, i), []queue.Record{r}))
	}

	return rows
}

// itemKey is the record key, or for records without an id their identity
// suffixed with the input position so sibling rows never collide
func itemKey(r queue.Record, position int) string {
	if key, ok := r.Key(); ok {
		return key
	}
	return fmt.Sprintf("%s:%d", r.Identity(), position)
}

func newRow(t RowType, key string, items []queue.Record) Row {
	first := items[0]
	row := Row{
		Type:         t,
		Key:          key,
		Items:        items,
		GroupCount:   len(items),
		Title:        title(first),
		Service:      first.Service,
		InstanceID:   first.InstanceID,
		InstanceName: first.InstanceName,
		StatusLabel:  statusLabel(items),
		Severity:     diagnostics.ToneInfo,
	}

	if t == RowGroup {
		row.GroupKey = key
	}

	if pct, ok := queue.Progress(items...); ok {
		row.Progress = &pct
	}

	for _, item := range items {
		row.Size += nonNegative(item.Size)
		row.SizeLeft += nonNegative(item.Sizeleft)

		analysis := issues.Classify(item)
		if analysis.IsProblematic {
			row.ProblematicCount++
		}
		row.Severity = diagnostics.Escalate(row.Severity, analysis.Severity)
	}

	row.SizeLabel = humanize.Bytes(uint64(row.Size))
	row.SizeLeftLabel = humanize.Bytes(uint64(row.SizeLeft))
	return row
}

func title(r queue.Record) string {
	if t := r.MediaTitle(); t != "" {
		return t
	}
	if t := strings.TrimSpace(r.InstanceName); t != "" {
		return t
	}
	return untitled
}

func statusLabel(items []queue.Record) string {
	seen := make(map[string]struct{})
	var order []string
	for _, item := range items {
		s := strings.TrimSpace(item.Status)
		if s == "" {
			s = unknownStatus
		}
		if _, ok := seen[s]; !ok {
			seen[s] = struct{}{}
			order = append(order, s)
		}
	}

	if len(order) == 1 {
		return order[0]
	}
	return fmt.Sprintf("%d statuses", len(order))
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return unknownField
	}
	return s
}

func nonNegative(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}
