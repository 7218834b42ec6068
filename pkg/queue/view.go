package queue

// InstanceQueue is the queue fetched from one backend instance
type InstanceQueue struct {
	InstanceID   string   `json:"instanceId"`
	InstanceName string   `json:"instanceName"`
	Service      Service  `json:"service"`
	Records      []Record `json:"records"`
	TotalCount   int      `json:"totalCount"`
	Error        string   `json:"error,omitempty"`
}

// View is the aggregated queue across every instance
type View struct {
	Instances  []InstanceQueue `json:"instances"`
	Aggregated []Record        `json:"aggregated"`
	TotalCount int             `json:"totalCount"`
}

// NewView aggregates instance queues in the given order
func NewView(instances ...InstanceQueue) View {
	v := View{
		Instances:  make([]InstanceQueue, 0, len(instances)),
		Aggregated: []Record{},
	}

	for _, iq := range instances {
		iq.Records = cloneRecords(iq.Records)
		v.Instances = append(v.Instances, iq)
		v.Aggregated = append(v.Aggregated, iq.Records...)
		v.TotalCount += iq.TotalCount
	}

	return v
}

// Clone copies the view so later edits to either side are not shared
func (v View) Clone() View {
	out := View{
		Instances:  make([]InstanceQueue, len(v.Instances)),
		Aggregated: cloneRecords(v.Aggregated),
		TotalCount: v.TotalCount,
	}

	for i, iq := range v.Instances {
		iq.Records = cloneRecords(iq.Records)
		out.Instances[i] = iq
	}

	return out
}

// Find returns the aggregated record with the given key
func (v View) Find(key string) (Record, error) {
	for _, r := range v.Aggregated {
		if k, ok := r.Key(); ok && k == key {
			return r, nil
		}
	}
	return Record{}, ErrRecordNotFound
}

func cloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	copy(out, records)
	return out
}
