package actions

import (
	"context"

	"github.com/kasuboski/arrqueue/pkg/queue"
)

// Kind is a user triggered action against queue records
type Kind string

const (
	KindRetry        Kind = "retry"
	KindDelete       Kind = "delete"
	KindManualImport Kind = "manualImport"
)

// Valid reports whether k is a supported action
func (k Kind) Valid() bool {
	switch k {
	case KindRetry, KindDelete, KindManualImport:
		return true
	}
	return false
}

// Options tune how the backend carries out an action. Only delete reads them.
type Options struct {
	RemoveFromClient bool `json:"removeFromClient"`
	Blocklist        bool `json:"blocklist"`
	ChangeCategory   bool `json:"changeCategory"`
	Search           bool `json:"search"`
}

// DefaultOptions is used when the caller supplies none
func DefaultOptions() Options {
	return Options{RemoveFromClient: true}
}

// SearchPayload targets a new search after a record is removed.
// Sonarr uses SeriesID and EpisodeIDs, Radarr uses MovieID.
type SearchPayload struct {
	SeriesID   int64   `json:"seriesId,omitempty"`
	EpisodeIDs []int64 `json:"episodeIds,omitempty"`
	MovieID    int64   `json:"movieId,omitempty"`
}

type SingleRequest struct {
	InstanceID string
	Service    queue.Service
	ItemID     int64
	Action     Kind
	Options    Options
	// DownloadID is set for manual import, which operates on a whole download
	DownloadID string
	Search     *SearchPayload
}

type BulkRequest struct {
	InstanceID string
	Service    queue.Service
	IDs        []int64
	Action     Kind
	Options    Options
}

// Remote performs mutations against the owning backend instance
type Remote interface {
	Single(ctx context.Context, req SingleRequest) error
	Bulk(ctx context.Context, req BulkRequest) error
}

// ViewCache holds the aggregated queue view that actions project onto
type ViewCache interface {
	Snapshot() queue.View
	Replace(view queue.View)
	// Invalidate refetches the authoritative view
	Invalidate(ctx context.Context) error
}
