package summary

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/kasuboski/arrqueue/pkg/diagnostics"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(service queue.Service, instance string, id int64) queue.Record {
	return queue.Record{
		Service:      service,
		InstanceID:   instance,
		InstanceName: "Instance " + instance,
		ID:           nullable.NewNullableWithValue(id),
	}
}

func withDownload(r queue.Record, downloadID string) queue.Record {
	r.DownloadID = downloadID
	return r
}

func withSeries(r queue.Record, seriesID int64, title string) queue.Record {
	r.SeriesID = nullable.NewNullableWithValue(seriesID)
	r.Series = &queue.Media{ID: seriesID, Title: title}
	return r
}

func TestGroupKey(t *testing.T) {
	t.Run("download id", func(t *testing.T) {
		key, ok := GroupKey(withDownload(rec(queue.ServiceRadarr, "main", 1), "dl-9"))
		assert.True(t, ok)
		assert.Equal(t, "radarr:main:download:dl-9", key)
	})

	t.Run("download id wins over series", func(t *testing.T) {
		r := withDownload(withSeries(rec(queue.ServiceSonarr, "main", 1), 5, "Show"), "dl-1")
		key, _ := GroupKey(r)
		assert.Equal(t, "sonarr:main:download:dl-1", key)
	})

	t.Run("series on episodic backend", func(t *testing.T) {
		r := withSeries(rec(queue.ServiceSonarr, "main", 1), 5, "Show")
		r.Protocol = "torrent"
		key, ok := GroupKey(r)
		assert.True(t, ok)
		assert.Equal(t, "sonarr:main:series:5:torrent:unknown", key)
	})

	t.Run("series object without series id", func(t *testing.T) {
		r := rec(queue.ServiceSonarr, "main", 1)
		r.Series = &queue.Media{ID: 8, Title: "Show"}
		key, ok := GroupKey(r)
		assert.True(t, ok)
		assert.Equal(t, "sonarr:main:series:8:unknown:unknown", key)
	})

	t.Run("series reference ignored on film backend", func(t *testing.T) {
		_, ok := GroupKey(withSeries(rec(queue.ServiceRadarr, "main", 1), 5, "Show"))
		assert.False(t, ok)
	})

	t.Run("standalone", func(t *testing.T) {
		_, ok := GroupKey(rec(queue.ServiceSonarr, "main", 1))
		assert.False(t, ok)
	})
}

func TestBuild(t *testing.T) {
	t.Run("shared download id folds into one group", func(t *testing.T) {
		records := []queue.Record{
			withDownload(rec(queue.ServiceSonarr, "main", 1), "dl-9"),
			withDownload(rec(queue.ServiceSonarr, "main", 2), "dl-9"),
			withDownload(rec(queue.ServiceSonarr, "main", 3), "dl-9"),
		}

		rows := Build(records)
		require.Len(t, rows, 1)
		assert.Equal(t, RowGroup, rows[0].Type)
		assert.Equal(t, 3, rows[0].GroupCount)
		assert.Equal(t, "sonarr:main:download:dl-9", rows[0].GroupKey)
		assert.Equal(t, []string{"sonarr:main:1", "sonarr:main:2", "sonarr:main:3"}, rows[0].Keys())

		sel := queue.NewSelection()
		rows[0].Select(sel)
		assert.Equal(t, 3, sel.Len())
		assert.Equal(t, records, sel.Resolve(records))
	})

	t.Run("keeps first encounter order", func(t *testing.T) {
		records := []queue.Record{
			rec(queue.ServiceRadarr, "main", 10),
			withDownload(rec(queue.ServiceSonarr, "main", 1), "a"),
			rec(queue.ServiceRadarr, "main", 11),
			withDownload(rec(queue.ServiceSonarr, "main", 2), "a"),
			withDownload(rec(queue.ServiceSonarr, "main", 3), "b"),
		}

		rows := Build(records)
		require.Len(t, rows, 4)
		assert.Equal(t, RowItem, rows[0].Type)
		assert.Equal(t, "radarr:main:10", rows[0].Key)
		assert.Equal(t, RowGroup, rows[1].Type)
		assert.Equal(t, 2, rows[1].GroupCount)
		assert.Equal(t, "radarr:main:11", rows[2].Key)
		assert.Equal(t, RowItem, rows[3].Type, "group of one degrades to an item")
		assert.Equal(t, "sonarr:main:3", rows[3].Key)
	})

	t.Run("records without ids get distinct keys", func(t *testing.T) {
		first := queue.Record{Service: queue.ServiceRadarr, InstanceID: "f", Title: "one"}
		second := queue.Record{Service: queue.ServiceRadarr, InstanceID: "f", Title: "two"}

		rows := Build([]queue.Record{rec(queue.ServiceRadarr, "f", 1), first, second})
		require.Len(t, rows, 3)
		assert.Equal(t, "radarr:f:1", rows[0].Key)
		assert.Equal(t, "radarr:f:unknown:1", rows[1].Key)
		assert.Equal(t, "radarr:f:unknown:2", rows[2].Key)
		assert.Empty(t, rows[1].GroupKey)
	})

	t.Run("same download id on different instances does not fold", func(t *testing.T) {
		rows := Build([]queue.Record{
			withDownload(rec(queue.ServiceSonarr, "a", 1), "x"),
			withDownload(rec(queue.ServiceSonarr, "b", 1), "x"),
		})
		require.Len(t, rows, 2)
		assert.Equal(t, RowItem, rows[0].Type)
		assert.Equal(t, RowItem, rows[1].Type)
	})

	t.Run("aggregates", func(t *testing.T) {
		first := withSeries(rec(queue.ServiceSonarr, "main", 1), 4, "The Show")
		first.Status = "downloading"
		first.Size, first.Sizeleft = 1000, 500
		second := withSeries(rec(queue.ServiceSonarr, "main", 2), 4, "Ignored")
		second.Status = "stalled"
		second.Size, second.Sizeleft = 1000, 0
		third := withSeries(rec(queue.ServiceSonarr, "main", 3), 4, "Ignored")
		third.Status = "downloading"

		rows := Build([]queue.Record{first, second, third})
		require.Len(t, rows, 1)
		row := rows[0]
		assert.Equal(t, "The Show", row.Title)
		assert.Equal(t, "2 statuses", row.StatusLabel)
		require.NotNil(t, row.Progress)
		assert.Equal(t, 75, *row.Progress)
		assert.Equal(t, float64(2000), row.Size)
		assert.Equal(t, "2.0 kB", row.SizeLabel)
		assert.Equal(t, "500 B", row.SizeLeftLabel)
		assert.Equal(t, 1, row.ProblematicCount)
		assert.Equal(t, diagnostics.ToneWarning, row.Severity)
		assert.Equal(t, "Instance main", row.InstanceName)
	})

	t.Run("shared status label", func(t *testing.T) {
		a := withDownload(rec(queue.ServiceRadarr, "main", 1), "d")
		a.Status = "queued"
		b := withDownload(rec(queue.ServiceRadarr, "main", 2), "d")
		b.Status = "queued"

		rows := Build([]queue.Record{a, b})
		require.Len(t, rows, 1)
		assert.Equal(t, "queued", rows[0].StatusLabel)
		assert.Nil(t, rows[0].Progress, "no size means unknown progress")
	})

	t.Run("title fallbacks", func(t *testing.T) {
		withTitle := rec(queue.ServiceRadarr, "main", 1)
		withTitle.Title = "Film.2020.1080p"
		noTitle := rec(queue.ServiceRadarr, "main", 2)
		bare := queue.Record{Service: queue.ServiceRadarr}

		rows := Build([]queue.Record{withTitle, noTitle, bare})
		require.Len(t, rows, 3)
		assert.Equal(t, "Film.2020.1080p", rows[0].Title)
		assert.Equal(t, "Instance main", rows[1].Title)
		assert.Equal(t, "Untitled download", rows[2].Title)
		assert.Equal(t, "Unknown", rows[2].StatusLabel)
	})

	t.Run("empty input", func(t *testing.T) {
		rows := Build(nil)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}

func TestBuild_NoGroupOfOne(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	services := []queue.Service{queue.ServiceSonarr, queue.ServiceRadarr}

	for run := 0; run < 200; run++ {
		n := rng.Intn(12)
		records := make([]queue.Record, 0, n)
		for i := 0; i < n; i++ {
			r := rec(services[rng.Intn(2)], fmt.Sprintf("i%d", rng.Intn(2)), int64(i))
			switch rng.Intn(3) {
			case 0:
				r.DownloadID = fmt.Sprintf("dl-%d", rng.Intn(3))
			case 1:
				r.SeriesID = nullable.NewNullableWithValue(int64(rng.Intn(3)))
			}
			if rng.Intn(2) == 0 {
				r.Status = "stalled"
			}
			records = append(records, r)
		}

		for _, set := range [][]queue.Record{records, Filter{Problematic: true}.Apply(records)} {
			rows := Build(set)
			total := 0
			for _, row := range rows {
				if row.Type == RowGroup {
					assert.GreaterOrEqual(t, len(row.Items), 2)
				} else {
					assert.Len(t, row.Items, 1)
				}
				total += len(row.Items)
			}
			assert.Equal(t, len(set), total, "every record lands in exactly one row")
		}
	}
}

func TestFilter_Apply(t *testing.T) {
	stalled := withDownload(rec(queue.ServiceSonarr, "main", 1), "d")
	stalled.Status = "stalled"
	healthy := withDownload(rec(queue.ServiceSonarr, "main", 2), "d")
	film := rec(queue.ServiceRadarr, "4k", 3)

	records := []queue.Record{stalled, healthy, film}

	assert.Len(t, Filter{}.Apply(records), 3)
	assert.Len(t, Filter{Service: queue.ServiceRadarr}.Apply(records), 1)
	assert.Len(t, Filter{InstanceID: "main"}.Apply(records), 2)

	problematic := Filter{Problematic: true}.Apply(records)
	require.Len(t, problematic, 1)

	rows := Build(problematic)
	require.Len(t, rows, 1)
	assert.Equal(t, RowItem, rows[0].Type, "group shrunk by the filter degrades")
}

func TestBuild_Snapshot(t *testing.T) {
	a := withSeries(rec(queue.ServiceSonarr, "main", 1), 4, "The Show")
	a.Status = "downloading"
	b := withSeries(rec(queue.ServiceSonarr, "main", 2), 4, "The Show")
	b.Status = "downloading"
	c := withDownload(rec(queue.ServiceRadarr, "films", 9), "nzo_1")
	c.Movie = &queue.Media{ID: 3, Title: "A Film"}
	c.Status = "failed"

	for _, row := range Build([]queue.Record{a, c, b}) {
		snaps.MatchSnapshot(t, strings.Join([]string{string(row.Type), row.Key, row.Title, row.StatusLabel, string(row.Severity), fmt.Sprint(row.GroupCount)}, " | "))
	}
}
