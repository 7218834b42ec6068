package arr

import (
	"encoding/json"

	"github.com/kasuboski/arrqueue/pkg/queue"
)

type QueueResponse struct {
	Page         int            `json:"page"`
	PageSize     int            `json:"pageSize"`
	TotalRecords int            `json:"totalRecords"`
	Records      []queue.Record `json:"records"`
}

type bulkRequest struct {
	IDs []int64 `json:"ids"`
}

// Command is the body of POST /api/v3/command
type Command struct {
	Name       string       `json:"name"`
	SeriesID   int64        `json:"seriesId,omitempty"`
	EpisodeIDs []int64      `json:"episodeIds,omitempty"`
	MovieIDs   []int64      `json:"movieIds,omitempty"`
	Files      []ImportFile `json:"files,omitempty"`
	ImportMode string       `json:"importMode,omitempty"`
}

type Rejection struct {
	Reason string `json:"reason"`
	Type   string `json:"type"`
}

type Episode struct {
	ID int64 `json:"id"`
}

// ManualImportItem is one file the backend found for a download
type ManualImportItem struct {
	ID           int64           `json:"id"`
	Path         string          `json:"path"`
	Name         string          `json:"name"`
	Series       *queue.Media    `json:"series,omitempty"`
	Episodes     []Episode       `json:"episodes,omitempty"`
	Movie        *queue.Media    `json:"movie,omitempty"`
	Quality      json.RawMessage `json:"quality,omitempty"`
	Languages    json.RawMessage `json:"languages,omitempty"`
	ReleaseGroup string          `json:"releaseGroup,omitempty"`
	DownloadID   string          `json:"downloadId,omitempty"`
	Rejections   []Rejection     `json:"rejections,omitempty"`
}

// ImportFile is a confirmed file to media mapping sent with the ManualImport command
type ImportFile struct {
	Path         string          `json:"path"`
	SeriesID     int64           `json:"seriesId,omitempty"`
	EpisodeIDs   []int64         `json:"episodeIds,omitempty"`
	MovieID      int64           `json:"movieId,omitempty"`
	Quality      json.RawMessage `json:"quality,omitempty"`
	Languages    json.RawMessage `json:"languages,omitempty"`
	ReleaseGroup string          `json:"releaseGroup,omitempty"`
	DownloadID   string          `json:"downloadId,omitempty"`
}

// errorResponse covers both the single message and validation failure shapes
type errorResponse struct {
	Message      string `json:"message"`
	ErrorMessage string `json:"errorMessage"`
}
