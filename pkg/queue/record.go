package queue

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/oapi-codegen/nullable"
)

var (
	ErrRecordNotFound = errors.New("queue record not found")
	ErrInvalidKey     = errors.New("invalid record key")
)

// Service names a supported automation backend
type Service string

const (
	ServiceSonarr Service = "sonarr"
	ServiceRadarr Service = "radarr"
)

// Valid reports whether s is a backend this module can talk to
func (s Service) Valid() bool {
	switch s {
	case ServiceSonarr, ServiceRadarr:
		return true
	}
	return false
}

// Episodic reports whether the backend manages series rather than films
func (s Service) Episodic() bool {
	return s == ServiceSonarr
}

// Capabilities are hints from the backend about which actions a record allows.
// A record without them is assumed retryable but not manually importable.
type Capabilities struct {
	CanRetry        bool `json:"canRetry"`
	CanManualImport bool `json:"canManualImport"`
}

type StatusMessage struct {
	Title    string   `json:"title"`
	Messages []string `json:"messages"`
}

// Media is the series or movie a record downloads for
type Media struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Record is one entry of an instance download queue
type Record struct {
	Service      Service `json:"service"`
	InstanceID   string  `json:"instanceId"`
	InstanceName string  `json:"instanceName"`

	ID         nullable.Nullable[int64] `json:"id,omitempty"`
	DownloadID string                   `json:"downloadId,omitempty"`
	SeriesID   nullable.Nullable[int64] `json:"seriesId,omitempty"`
	EpisodeID  nullable.Nullable[int64] `json:"episodeId,omitempty"`
	MovieID    nullable.Nullable[int64] `json:"movieId,omitempty"`

	Title          string `json:"title,omitempty"`
	Series         *Media `json:"series,omitempty"`
	Movie          *Media `json:"movie,omitempty"`
	Protocol       string `json:"protocol,omitempty"`
	DownloadClient string `json:"downloadClient,omitempty"`

	Status                string          `json:"status,omitempty"`
	TrackedDownloadStatus string          `json:"trackedDownloadStatus,omitempty"`
	TrackedDownloadState  string          `json:"trackedDownloadState,omitempty"`
	ErrorMessage          string          `json:"errorMessage,omitempty"`
	StatusMessages        []StatusMessage `json:"statusMessages,omitempty"`

	Size     float64 `json:"size"`
	Sizeleft float64 `json:"sizeleft"`

	Actions *Capabilities `json:"actions,omitempty"`
}

// Optional unwraps a nullable id, false when it is absent or null
func Optional(n nullable.Nullable[int64]) (int64, bool) {
	v, err := n.Get()
	if err != nil {
		return 0, false
	}
	return v, true
}

// ItemID returns the backend local id required by mutating actions
func (r Record) ItemID() (int64, bool) {
	return Optional(r.ID)
}

// Key identifies a record across instances as service:instanceId:id.
// Records without an id have no key and can never be matched.
func (r Record) Key() (string, bool) {
	id, ok := r.ItemID()
	if !ok {
		return "", false
	}
	return FormatKey(r.Service, r.InstanceID, id), true
}

// Identity is a best effort label for a record, used for display keys only
func (r Record) Identity() string {
	if key, ok := r.Key(); ok {
		return key
	}
	if r.DownloadID != "" {
		return fmt.Sprintf("%s:%s:download:%s", r.Service, r.InstanceID, r.DownloadID)
	}
	return fmt.Sprintf("%s:%s:unknown", r.Service, r.InstanceID)
}

// MediaTitle returns the series or movie title, falling back to the release title
func (r Record) MediaTitle() string {
	if r.Series != nil && strings.TrimSpace(r.Series.Title) != "" {
		return r.Series.Title
	}
	if r.Movie != nil && strings.TrimSpace(r.Movie.Title) != "" {
		return r.Movie.Title
	}
	return strings.TrimSpace(r.Title)
}

func FormatKey(service Service, instanceID string, id int64) string {
	return fmt.Sprintf("%s:%s:%d", service, instanceID, id)
}

// ParseKey splits a record key into its parts. Instance ids may contain colons.
func ParseKey(key string) (Service, string, int64, error) {
	first := strings.Index(key, ":")
	last := strings.LastIndex(key, ":")
	if first <= 0 || last <= first+1 || last == len(key)-1 {
		return "", "", 0, fmt.Errorf("%w %q: want service:instance:id", ErrInvalidKey, key)
	}

	service := Service(key[:first])
	if !service.Valid() {
		return "", "", 0, fmt.Errorf("%w %q: unknown service %q", ErrInvalidKey, key, service)
	}

	id, err := strconv.ParseInt(key[last+1:], 10, 64)
	if err != nil {
		return "", "", 0, fmt.Errorf("%w %q: %w", ErrInvalidKey, key, err)
	}

	return service, key[first+1 : last], id, nil
}
