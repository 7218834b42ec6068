package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/kasuboski/arrqueue/config"
	"github.com/kasuboski/arrqueue/pkg/arr"
	"github.com/kasuboski/arrqueue/pkg/arr/mocks"
	"github.com/kasuboski/arrqueue/pkg/manager"
	"github.com/kasuboski/arrqueue/pkg/queue"
	"github.com/oapi-codegen/nullable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestServer_Healthz(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := Server{baseLogger: zap.NewNop().Sugar()}

		req, err := http.NewRequest("GET", "/healthz", nil)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()

		handler := s.Healthz()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, "application/json", rr.Header().Get("content-type"))

		var response GenericResponse
		err = json.Unmarshal(rr.Body.Bytes(), &response)

		assert.NoError(t, err)
		assert.Equal(t, "ok", response.Response)
	})
}

func rec(id int64, status, downloadID string) queue.Record {
	return queue.Record{
		Service:      queue.ServiceSonarr,
		InstanceID:   "tv",
		InstanceName: "TV",
		ID:           nullable.NewNullableWithValue(id),
		Status:       status,
		DownloadID:   downloadID,
	}
}

func testServer(t *testing.T, records ...queue.Record) (http.Handler, *mocks.MockClient) {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mocks.NewMockClient(ctrl)
	client.EXPECT().Instance().Return(config.Instance{ID: "tv", Name: "TV", Service: "sonarr"}).AnyTimes()
	client.EXPECT().Service().Return(queue.ServiceSonarr).AnyTimes()
	client.EXPECT().FetchQueue(gomock.Any(), gomock.Any()).Return(queue.InstanceQueue{
		InstanceID:   "tv",
		InstanceName: "TV",
		Service:      queue.ServiceSonarr,
		Records:      records,
		TotalCount:   len(records),
	}, nil).AnyTimes()

	m := manager.New(arr.NewRouter(client), config.Manager{})
	require.NoError(t, m.Refresh(context.Background()))

	return New(zap.NewNop().Sugar(), m).Handler(), client
}

type envelope struct {
	Error    string          `json:"error"`
	Response json.RawMessage `json:"response"`
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return rr, env
}

func TestServer_ListQueue(t *testing.T) {
	h, _ := testServer(t,
		rec(1, "downloading", "dl-1"),
		rec(2, "stalled", "dl-1"),
		rec(3, "downloading", ""),
	)

	t.Run("grouped rows", func(t *testing.T) {
		rr, env := do(t, h, http.MethodGet, "/api/v1/queue", "")
		require.Equal(t, http.StatusOK, rr.Code)
		_, err := uuid.Parse(rr.Header().Get(requestIDHeader))
		assert.NoError(t, err)

		var resp manager.RowsResponse
		require.NoError(t, json.Unmarshal(env.Response, &resp))
		require.Len(t, resp.Rows, 2)
		assert.Equal(t, 2, resp.Rows[0].GroupCount)
		assert.Equal(t, 3, resp.TotalCount)
		require.Len(t, resp.Instances, 1)
	})

	t.Run("problematic with paging", func(t *testing.T) {
		rr, env := do(t, h, http.MethodGet, "/api/v1/queue?problematic=true&page=1&pageSize=10", "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp manager.RowsResponse
		require.NoError(t, json.Unmarshal(env.Response, &resp))
		require.Len(t, resp.Rows, 1)
		assert.Equal(t, "sonarr:tv:2", resp.Rows[0].Key)
		assert.Equal(t, 1, resp.Meta.TotalPages)
	})

	t.Run("bad params", func(t *testing.T) {
		for _, target := range []string{
			"/api/v1/queue?page=0",
			"/api/v1/queue?pageSize=-1",
			"/api/v1/queue?problematic=maybe",
			"/api/v1/queue?service=lidarr",
		} {
			rr, env := do(t, h, http.MethodGet, target, "")
			assert.Equal(t, http.StatusBadRequest, rr.Code, target)
			assert.NotEmpty(t, env.Error)
		}
	})
}

func TestServer_DiagnoseRecord(t *testing.T) {
	h, _ := testServer(t, rec(1, "Stalled", ""))

	rr, env := do(t, h, http.MethodGet, "/api/v1/queue/sonarr/tv/1", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var d manager.Diagnosis
	require.NoError(t, json.Unmarshal(env.Response, &d))
	assert.True(t, d.Analysis.IsProblematic)
	require.NotNil(t, d.Analysis.RecommendedAction)
	assert.EqualValues(t, "retry", *d.Analysis.RecommendedAction)

	rr, _ = do(t, h, http.MethodGet, "/api/v1/queue/sonarr/tv/2", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestServer_RefreshQueue(t *testing.T) {
	h, _ := testServer(t)
	rr, env := do(t, h, http.MethodPost, "/api/v1/queue/refresh", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `"ok"`, string(env.Response))
}

func TestServer_ExecuteAction(t *testing.T) {
	t.Run("retry", func(t *testing.T) {
		h, client := testServer(t, rec(1, "stalled", ""), rec(2, "stalled", ""))
		client.EXPECT().Retry(gomock.Any(), int64(1), int64(2)).Return(nil)

		rr, env := do(t, h, http.MethodPost, "/api/v1/queue/actions", `{"action":"retry","keys":["sonarr:tv:1","sonarr:tv:2"]}`)
		require.Equal(t, http.StatusOK, rr.Code, env.Error)

		var run map[string]any
		require.NoError(t, json.Unmarshal(env.Response, &run))
		assert.Equal(t, "reconciled", run["state"])
	})

	t.Run("manual import without download id", func(t *testing.T) {
		r := rec(1, "completed", "")
		r.Actions = &queue.Capabilities{CanManualImport: true}
		h, _ := testServer(t, r)

		rr, env := do(t, h, http.MethodPost, "/api/v1/queue/actions", `{"action":"manualImport","keys":["sonarr:tv:1"]}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
		assert.Contains(t, env.Error, "download id")
	})

	t.Run("remote failure", func(t *testing.T) {
		h, client := testServer(t, rec(1, "failed", ""))
		client.EXPECT().Delete(gomock.Any(), gomock.Any(), int64(1)).Return(errors.New("backend down"))

		rr, env := do(t, h, http.MethodPost, "/api/v1/queue/actions", `{"action":"delete","keys":["sonarr:tv:1"],"options":{"removeFromClient":true,"blocklist":true}}`)
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, env.Error, "backend down")

		var run map[string]any
		require.NoError(t, json.Unmarshal(env.Response, &run))
		assert.Equal(t, "reconciled", run["state"])
	})

	t.Run("invalid request", func(t *testing.T) {
		h, _ := testServer(t)
		for _, body := range []string{
			`not json`,
			`{"action":"pause","keys":["sonarr:tv:1"]}`,
			`{"action":"retry","keys":[]}`,
			`{"action":"retry","keys":[""]}`,
		} {
			rr, _ := do(t, h, http.MethodPost, "/api/v1/queue/actions", body)
			assert.Equal(t, http.StatusBadRequest, rr.Code, body)
		}
	})

	t.Run("malformed key is rejected before any call", func(t *testing.T) {
		h, _ := testServer(t)
		rr, env := do(t, h, http.MethodPost, "/api/v1/queue/actions", `{"action":"retry","keys":["sonarr:tv:1","sonarr:tv:abc"]}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, env.Error, `invalid record key "sonarr:tv:abc"`)
	})
}
