package arr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"

	"github.com/kasuboski/arrqueue/config"
	"github.com/kasuboski/arrqueue/pkg/actions"
	mhttp "github.com/kasuboski/arrqueue/pkg/http"
	"github.com/kasuboski/arrqueue/pkg/logger"
	"github.com/kasuboski/arrqueue/pkg/queue"
)

const (
	DefaultPageSize = 100
	apiPrefix       = "api/v3"
)

var (
	ErrUnknownService  = errors.New("unknown service")
	ErrNothingToImport = errors.New("no importable files found for download")
)

// ResponseError is returned when the backend answers with a non 2xx status
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Client talks to a single Sonarr or Radarr instance
type Client interface {
	Instance() config.Instance
	Service() queue.Service
	FetchQueue(ctx context.Context, pageSize int) (queue.InstanceQueue, error)
	Retry(ctx context.Context, ids ...int64) error
	Delete(ctx context.Context, opts actions.Options, ids ...int64) error
	Search(ctx context.Context, payload actions.SearchPayload) error
	ManualImport(ctx context.Context, downloadID string) error
}

// flavor holds what differs between the series and film backends
type flavor struct {
	include      []string
	searchParams func(actions.SearchPayload) (Command, bool)
	importable   func(ManualImportItem) (ImportFile, bool)
}

var flavors = map[queue.Service]flavor{
	queue.ServiceSonarr: {
		include: []string{"includeSeries", "includeEpisode", "includeUnknownSeriesItems"},
		searchParams: func(p actions.SearchPayload) (Command, bool) {
			if len(p.EpisodeIDs) > 0 {
				return Command{Name: "EpisodeSearch", EpisodeIDs: p.EpisodeIDs}, true
			}
			if p.SeriesID > 0 {
				return Command{Name: "SeriesSearch", SeriesID: p.SeriesID}, true
			}
			return Command{}, false
		},
		importable: func(item ManualImportItem) (ImportFile, bool) {
			if item.Series == nil || len(item.Episodes) == 0 {
				return ImportFile{}, false
			}
			f := importFile(item)
			f.SeriesID = item.Series.ID
			for _, e := range item.Episodes {
				f.EpisodeIDs = append(f.EpisodeIDs, e.ID)
			}
			return f, true
		},
	},
	queue.ServiceRadarr: {
		include: []string{"includeMovie", "includeUnknownMovieItems"},
		searchParams: func(p actions.SearchPayload) (Command, bool) {
			if p.MovieID > 0 {
				return Command{Name: "MoviesSearch", MovieIDs: []int64{p.MovieID}}, true
			}
			return Command{}, false
		},
		importable: func(item ManualImportItem) (ImportFile, bool) {
			if item.Movie == nil {
				return ImportFile{}, false
			}
			f := importFile(item)
			f.MovieID = item.Movie.ID
			return f, true
		},
	},
}

func importFile(item ManualImportItem) ImportFile {
	return ImportFile{
		Path:         item.Path,
		Quality:      item.Quality,
		Languages:    item.Languages,
		ReleaseGroup: item.ReleaseGroup,
		DownloadID:   item.DownloadID,
	}
}

type ArrClient struct {
	http     mhttp.HTTPClient
	instance config.Instance
	service  queue.Service
	flavor   flavor
	base     url.URL
}

// New returns a client for the configured instance
func New(http mhttp.HTTPClient, instance config.Instance) (Client, error) {
	service := queue.Service(instance.Service)
	f, ok := flavors[service]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownService, instance.Service)
	}

	return &ArrClient{
		http:     http,
		instance: instance,
		service:  service,
		flavor:   f,
		base:     instance.URL(),
	}, nil
}

func (c *ArrClient) Instance() config.Instance {
	return c.instance
}

func (c *ArrClient) Service() queue.Service {
	return c.service
}

// FetchQueue pages through the whole queue. Records are stamped with the
// instance they came from along with capability hints.
func (c *ArrClient) FetchQueue(ctx context.Context, pageSize int) (queue.InstanceQueue, error) {
	iq := queue.InstanceQueue{
		InstanceID:   c.instance.ID,
		InstanceName: c.instance.DisplayName(),
		Service:      c.service,
		Records:      []queue.Record{},
	}

	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	for page := 1; ; page++ {
		q := url.Values{}
		q.Set("page", strconv.Itoa(page))
		q.Set("pageSize", strconv.Itoa(pageSize))
		for _, inc := range c.flavor.include {
			q.Set(inc, "true")
		}

		var resp QueueResponse
		err := c.do(ctx, http.MethodGet, "queue", q, nil, &resp)
		if err != nil {
			return iq, err
		}

		for _, r := range resp.Records {
			iq.Records = append(iq.Records, c.stamp(r))
		}
		iq.TotalCount = resp.TotalRecords

		if len(resp.Records) == 0 || len(iq.Records) >= resp.TotalRecords {
			break
		}
	}

	return iq, nil
}

func (c *ArrClient) stamp(r queue.Record) queue.Record {
	r.Service = c.service
	r.InstanceID = c.instance.ID
	r.InstanceName = c.instance.DisplayName()
	if r.Actions == nil {
		r.Actions = capabilities(r)
	}
	return r
}

// capabilities derives hints the backend does not send. Manual import only
// makes sense once the download finished and the backend could not import it.
func capabilities(r queue.Record) *queue.Capabilities {
	state := strings.ToLower(r.TrackedDownloadState)
	return &queue.Capabilities{
		CanRetry:        true,
		CanManualImport: r.DownloadID != "" && (state == "importpending" || state == "importblocked" || state == "importfailed"),
	}
}

// Retry asks the backend to grab the releases again
func (c *ArrClient) Retry(ctx context.Context, ids ...int64) error {
	switch len(ids) {
	case 0:
		return nil
	case 1:
		return c.do(ctx, http.MethodPost, "queue/grab/"+strconv.FormatInt(ids[0], 10), nil, nil, nil)
	}
	return c.do(ctx, http.MethodPost, "queue/grab/bulk", nil, bulkRequest{IDs: ids}, nil)
}

// Delete removes records from the queue
func (c *ArrClient) Delete(ctx context.Context, opts actions.Options, ids ...int64) error {
	q := url.Values{}
	q.Set("removeFromClient", strconv.FormatBool(opts.RemoveFromClient))
	q.Set("blocklist", strconv.FormatBool(opts.Blocklist))
	q.Set("changeCategory", strconv.FormatBool(opts.ChangeCategory))

	switch len(ids) {
	case 0:
		return nil
	case 1:
		return c.do(ctx, http.MethodDelete, "queue/"+strconv.FormatInt(ids[0], 10), q, nil, nil)
	}
	return c.do(ctx, http.MethodDelete, "queue/bulk", q, bulkRequest{IDs: ids}, nil)
}

// Search triggers a new search for the payload's media
func (c *ArrClient) Search(ctx context.Context, payload actions.SearchPayload) error {
	cmd, ok := c.flavor.searchParams(payload)
	if !ok {
		logger.FromCtx(ctx).Debugw("nothing to search for", "payload", payload)
		return nil
	}
	return c.do(ctx, http.MethodPost, "command", nil, cmd, nil)
}

// ManualImport imports every file of the download the backend could map to media
func (c *ArrClient) ManualImport(ctx context.Context, downloadID string) error {
	q := url.Values{}
	q.Set("downloadId", downloadID)
	q.Set("filterExistingFiles", "true")

	var items []ManualImportItem
	err := c.do(ctx, http.MethodGet, "manualimport", q, nil, &items)
	if err != nil {
		return err
	}

	files := make([]ImportFile, 0, len(items))
	for _, item := range items {
		if len(item.Rejections) > 0 {
			continue
		}
		f, ok := c.flavor.importable(item)
		if !ok {
			continue
		}
		if f.DownloadID == "" {
			f.DownloadID = downloadID
		}
		files = append(files, f)
	}

	if len(files) == 0 {
		return fmt.Errorf("%w %s, review it in the backend", ErrNothingToImport, downloadID)
	}

	return c.do(ctx, http.MethodPost, "command", nil, Command{
		Name:       "ManualImport",
		Files:      files,
		ImportMode: "auto",
	}, nil)
}

func (c *ArrClient) do(ctx context.Context, method, endpoint string, query url.Values, body, out any) error {
	log := logger.FromCtx(ctx)
	if c.http == nil {
		return errors.New("http client is nil")
	}

	u := c.base
	u.Path = path.Join(u.Path, apiPrefix, endpoint)
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}

	log.Debugw("arr do", "method", method, "url", u.String())
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return err
	}
	req.Header.Set("X-Api-Key", c.instance.APIKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// a client that gave up retrying still hands back its last response
		if resp != nil {
			resp.Body.Close()
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		return &ResponseError{StatusCode: resp.StatusCode, Message: errorMessage(b, resp.Status)}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func errorMessage(body []byte, fallback string) string {
	var single errorResponse
	if err := json.Unmarshal(body, &single); err == nil && single.Message != "" {
		return single.Message
	}

	var many []errorResponse
	if err := json.Unmarshal(body, &many); err == nil {
		msgs := make([]string, 0, len(many))
		for _, m := range many {
			if m.ErrorMessage != "" {
				msgs = append(msgs, m.ErrorMessage)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}

	if text := strings.TrimSpace(string(body)); text != "" {
		return text
	}
	return fallback
}
