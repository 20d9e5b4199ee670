package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"TripKeeper/internal/bootstrap"
	"TripKeeper/internal/config"
	"TripKeeper/internal/handlers"
	"TripKeeper/internal/seed"
	"TripKeeper/internal/store"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testAPI struct {
	router http.Handler
	store  *store.Store
	cfg    *config.Config
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		DatabaseDSN:    filepath.Join(dir, "trips.db"),
		DataDir:        dir,
		MediaBackend:   config.MediaBackendFS,
		MediaDir:       filepath.Join(dir, "media"),
		MediaCacheSize: 8,
		MediaMaxSizeMB: 1,
		SessionFile:    filepath.Join(dir, "active_trip"),
	}
	logger := zap.NewNop().Sugar()
	reg := prometheus.NewRegistry()

	s, done, err := bootstrap.OpenStore(context.Background(), cfg, logger, reg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = done() })

	h := handlers.NewHandler(s, seed.NewSeeder(s, logger), logger, cfg, reg)
	return &testAPI{router: h.Router, store: s, cfg: cfg}
}

func (a *testAPI) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case []byte:
			buf.Write(b)
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.router.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(bytes.NewReader(rr.Body.Bytes())).Decode(&v))
	return v
}

func samplePNG(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 200, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
