package queue

import (
	"encoding/json"
	"testing"

	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(service Service, instance string, id int64) Record {
	return Record{
		Service:    service,
		InstanceID: instance,
		ID:         nullable.NewNullableWithValue(id),
	}
}

func TestRecord_Key(t *testing.T) {
	t.Run("with id", func(t *testing.T) {
		key, ok := record(ServiceSonarr, "main", 42).Key()
		assert.True(t, ok)
		assert.Equal(t, "sonarr:main:42", key)
	})

	t.Run("without id", func(t *testing.T) {
		_, ok := Record{Service: ServiceRadarr, InstanceID: "main"}.Key()
		assert.False(t, ok)
	})

	t.Run("null id", func(t *testing.T) {
		r := Record{Service: ServiceRadarr, InstanceID: "main", ID: nullable.NewNullNullable[int64]()}
		_, ok := r.Key()
		assert.False(t, ok)
	})
}

func TestRecord_Identity(t *testing.T) {
	assert.Equal(t, "sonarr:main:1", record(ServiceSonarr, "main", 1).Identity())
	assert.Equal(t, "radarr:4k:download:abc", Record{Service: ServiceRadarr, InstanceID: "4k", DownloadID: "abc"}.Identity())
	assert.Equal(t, "radarr:4k:unknown", Record{Service: ServiceRadarr, InstanceID: "4k"}.Identity())
}

func TestRecord_MediaTitle(t *testing.T) {
	assert.Equal(t, "Show", Record{Series: &Media{Title: "Show"}, Title: "Show.S01E01"}.MediaTitle())
	assert.Equal(t, "Film", Record{Movie: &Media{Title: "Film"}, Title: "Film.2020"}.MediaTitle())
	assert.Equal(t, "Film.2020", Record{Series: &Media{Title: " "}, Title: " Film.2020 "}.MediaTitle())
	assert.Equal(t, "", Record{}.MediaTitle())
}

func TestParseKey(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		service, instance, id, err := ParseKey("radarr:main:7")
		require.NoError(t, err)
		assert.Equal(t, ServiceRadarr, service)
		assert.Equal(t, "main", instance)
		assert.Equal(t, int64(7), id)
	})

	t.Run("instance with colon", func(t *testing.T) {
		_, instance, id, err := ParseKey("sonarr:host:8989:12")
		require.NoError(t, err)
		assert.Equal(t, "host:8989", instance)
		assert.Equal(t, int64(12), id)
	})

	for _, key := range []string{"", "sonarr", "sonarr:main", "sonarr::1", "sonarr:main:", "lidarr:main:1", "sonarr:main:abc"} {
		t.Run("invalid "+key, func(t *testing.T) {
			_, _, _, err := ParseKey(key)
			assert.ErrorIs(t, err, ErrInvalidKey)
		})
	}

	t.Run("round trip", func(t *testing.T) {
		service, instance, id, err := ParseKey(FormatKey(ServiceSonarr, "anime", 99))
		require.NoError(t, err)
		assert.Equal(t, ServiceSonarr, service)
		assert.Equal(t, "anime", instance)
		assert.Equal(t, int64(99), id)
	})
}

func TestRecord_UnmarshalArrPayload(t *testing.T) {
	payload := `{
		"id": 1201,
		"seriesId": 12,
		"episodeId": 3301,
		"series": {"id": 12, "title": "The Show"},
		"title": "The.Show.S01E01.1080p.WEB-DL-GRP",
		"status": "downloading",
		"trackedDownloadStatus": "warning",
		"trackedDownloadState": "importPending",
		"statusMessages": [{"title": "One or more episodes expected", "messages": ["Episode missing"]}],
		"downloadId": "SABnzbd_nzo_1",
		"protocol": "usenet",
		"downloadClient": "SABnzbd",
		"size": 2048,
		"sizeleft": 512
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(payload), &r))

	id, ok := r.ItemID()
	assert.True(t, ok)
	assert.Equal(t, int64(1201), id)

	seriesID, ok := Optional(r.SeriesID)
	assert.True(t, ok)
	assert.Equal(t, int64(12), seriesID)

	_, ok = Optional(r.MovieID)
	assert.False(t, ok)

	assert.Equal(t, "The Show", r.MediaTitle())
	assert.Equal(t, "SABnzbd_nzo_1", r.DownloadID)
	assert.Len(t, r.StatusMessages, 1)
	assert.Nil(t, r.Actions)
}

func TestService(t *testing.T) {
	assert.True(t, ServiceSonarr.Valid())
	assert.True(t, ServiceRadarr.Valid())
	assert.False(t, Service("lidarr").Valid())
	assert.True(t, ServiceSonarr.Episodic())
	assert.False(t, ServiceRadarr.Episodic())
}
