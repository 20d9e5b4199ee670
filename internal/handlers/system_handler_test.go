package handlers_test

import (
	"bufio"
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"TripKeeper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, s string) time.Time {
	t.Helper()
	v, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return v
}

func TestSession_SetGetClear(t *testing.T) {
	api := newTestAPI(t)
	trip, err := api.store.CreateTrip("Oslo", mustTime(t, "2024-06-01T00:00:00Z"), nil)
	require.NoError(t, err)

	rr := api.do(t, http.MethodGet, "/api/session", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decode[map[string]any](t, rr)["active_trip_id"])

	rr = api.do(t, http.MethodPut, "/api/session", `{"trip_id":"missing"}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = api.do(t, http.MethodPut, "/api/session", `{"trip_id":"`+trip.ID+`"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, trip.ID, decode[map[string]any](t, rr)["active_trip_id"])

	rr = api.do(t, http.MethodDelete, "/api/session", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	_, ok := api.store.ActiveTrip()
	assert.False(t, ok)
}

func TestMedia_UploadAndServe(t *testing.T) {
	api := newTestAPI(t)
	payload := samplePNG(t)

	rr := api.do(t, http.MethodPost, "/api/media", payload)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	m := decode[model.Media](t, rr)
	assert.Equal(t, "image/png", m.ContentType)
	assert.Equal(t, int64(len(payload)), m.Size)

	rr = api.do(t, http.MethodGet, "/api/media/"+m.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))
	assert.Equal(t, payload, rr.Body.Bytes())

	rr = api.do(t, http.MethodGet, "/api/media/"+m.ID+"/image", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "image/png", rr.Header().Get("Content-Type"))

	rr = api.do(t, http.MethodGet, "/api/media/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = api.do(t, http.MethodGet, "/api/media/unknown/image", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/media", []byte{})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = api.do(t, http.MethodPost, "/api/media", bytes.Repeat([]byte{1}, 2<<20))
	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestHealthSeedAndMetrics(t *testing.T) {
	api := newTestAPI(t)

	rr := api.do(t, http.MethodPost, "/api/seed", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]bool{"seeded": true}, decode[map[string]bool](t, rr))
	rr = api.do(t, http.MethodPost, "/api/seed", nil)
	assert.Equal(t, map[string]bool{"seeded": false}, decode[map[string]bool](t, rr))

	rr = api.do(t, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	health := decode[map[string]any](t, rr)
	assert.Equal(t, true, health["persistence_healthy"])
	assert.EqualValues(t, 1, health["trips"])
	assert.EqualValues(t, 3, health["cards"])

	rr = api.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `tripkeeper_store_commits_total{op="create_trip"} 1`)
	assert.Contains(t, body, `tripkeeper_store_entities{kind="trip"} 1`)
}

func TestGzipResponse(t *testing.T) {
	api := newTestAPI(t)
	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rr := httptest.NewRecorder()
	api.router.ServeHTTP(rr, req)

	require.Equal(t, "gzip", rr.Header().Get("Content-Encoding"))
	zr, err := gzip.NewReader(bytes.NewReader(rr.Body.Bytes()))
	require.NoError(t, err)
	data, err := io.ReadAll(zr)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(data))
}

func TestEvents_StreamsCommittedSnapshots(t *testing.T) {
	api := newTestAPI(t)
	srv := httptest.NewServer(api.router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/events", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	sc := bufio.NewScanner(resp.Body)
	next := func() map[string]any {
		for sc.Scan() {
			line := sc.Text()
			if data, ok := strings.CutPrefix(line, "data: "); ok {
				var ev map[string]any
				require.NoError(t, json.Unmarshal([]byte(data), &ev))
				return ev
			}
		}
		t.Fatalf("stream ended: %v", sc.Err())
		return nil
	}

	first := next()
	assert.EqualValues(t, 0, first["version"])

	_, err = api.store.CreateTrip("Live", mustTime(t, "2024-06-01T00:00:00Z"), nil)
	require.NoError(t, err)
	second := next()
	assert.EqualValues(t, 1, second["version"])
	assert.EqualValues(t, 1, second["trips"])
}
