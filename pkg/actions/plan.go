package actions

import (
	"errors"

	"github.com/kasuboski/arrqueue/pkg/queue"
)

var (
	ErrNoDownloadID  = errors.New("manual import needs items with a download id, none of the selected items have one")
	ErrUnknownAction = errors.New("unknown action")
)

// Call is one remote request planned for an action
type Call struct {
	InstanceID string         `json:"instanceId"`
	Service    queue.Service  `json:"service"`
	IDs        []int64        `json:"ids"`
	DownloadID string         `json:"downloadId,omitempty"`
	Search     *SearchPayload `json:"search,omitempty"`
	Bulk       bool           `json:"bulk"`
}

type instanceKey struct {
	instanceID string
	service    queue.Service
}

type downloadKey struct {
	instanceKey
	downloadID string
}

// Plan partitions capable records into the fewest remote calls for the action.
// Manual import issues one call per download, delete with search one call per
// record, and everything else one call per instance, bulk when it carries more
// than one id. Records without an id cannot be targeted by id based calls and
// are left out.
func Plan(kind Kind, records []queue.Record, opts Options) ([]Call, error) {
	switch {
	case kind == KindManualImport:
		return planDownloads(records)
	case kind == KindDelete && opts.Search:
		return planEach(records), nil
	case kind.Valid():
		return planInstances(records), nil
	}
	return nil, ErrUnknownAction
}

func planDownloads(records []queue.Record) ([]Call, error) {
	var calls []Call
	index := make(map[downloadKey]int)
	missing := 0

	for _, r := range records {
		if r.DownloadID == "" {
			missing++
			continue
		}

		key := downloadKey{instanceKey{r.InstanceID, r.Service}, r.DownloadID}
		i, ok := index[key]
		if !ok {
			i = len(calls)
			index[key] = i
			calls = append(calls, Call{InstanceID: r.InstanceID, Service: r.Service, IDs: []int64{}, DownloadID: r.DownloadID})
		}
		if id, ok := r.ItemID(); ok {
			calls[i].IDs = append(calls[i].IDs, id)
		}
	}

	if len(records) > 0 && missing == len(records) {
		return nil, ErrNoDownloadID
	}
	return calls, nil
}

func planEach(records []queue.Record) []Call {
	calls := make([]Call, 0, len(records))
	for _, r := range records {
		id, ok := r.ItemID()
		if !ok {
			continue
		}
		calls = append(calls, Call{
			InstanceID: r.InstanceID,
			Service:    r.Service,
			IDs:        []int64{id},
			Search:     searchFor(r),
		})
	}
	return calls
}

func planInstances(records []queue.Record) []Call {
	var calls []Call
	index := make(map[instanceKey]int)

	for _, r := range records {
		id, ok := r.ItemID()
		if !ok {
			continue
		}

		key := instanceKey{r.InstanceID, r.Service}
		i, ok := index[key]
		if !ok {
			i = len(calls)
			index[key] = i
			calls = append(calls, Call{InstanceID: r.InstanceID, Service: r.Service})
		}
		calls[i].IDs = append(calls[i].IDs, id)
	}

	for i := range calls {
		calls[i].Bulk = len(calls[i].IDs) > 1
	}
	return calls
}

// searchFor returns nil when the record does not reference anything searchable
func searchFor(r queue.Record) *SearchPayload {
	switch r.Service {
	case queue.ServiceSonarr:
		seriesID, ok := queue.Optional(r.SeriesID)
		if !ok && r.Series != nil && r.Series.ID > 0 {
			seriesID, ok = r.Series.ID, true
		}
		if !ok {
			return nil
		}
		p := &SearchPayload{SeriesID: seriesID}
		if episodeID, ok := queue.Optional(r.EpisodeID); ok {
			p.EpisodeIDs = []int64{episodeID}
		}
		return p
	case queue.ServiceRadarr:
		movieID, ok := queue.Optional(r.MovieID)
		if !ok && r.Movie != nil && r.Movie.ID > 0 {
			movieID, ok = r.Movie.ID, true
		}
		if !ok {
			return nil
		}
		return &SearchPayload{MovieID: movieID}
	}
	return nil
}
