package commands

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"TripKeeper/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var idRe = regexp.MustCompile(`[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}`)

// run выполняет команду через диспетчер и возвращает код и вывод.
func run(t *testing.T, cfg *config.Config, args ...string) (int, string) {
	t.Helper()
	var code int
	out := withStdoutCapture(t, func() { code = Dispatch(context.Background(), cfg, args) })
	return code, out
}

func createdID(t *testing.T, out string) string {
	t.Helper()
	id := idRe.FindString(out)
	require.NotEmpty(t, id, "no id in output: %s", out)
	return id
}

func TestTripCommands_Flow(t *testing.T) {
	cfg := withTempConfig(t)
	withFixedNow(t, time.Date(2024, 6, 2, 10, 0, 0, 0, time.UTC))

	code, out := run(t, cfg, "trips")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Нет поездок")

	code, out = run(t, cfg, "trip-add", "Paris Trip", "2024-06-01")
	require.Equal(t, 0, code, out)
	paris := createdID(t, out)
	assert.Contains(t, out, "2024-06-01 → …")

	code, out = run(t, cfg, "trip-add", "Rome", "2024-07-01", "2024-07-05")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "2024-07-01 → 2024-07-05")

	code, out = run(t, cfg, "use", paris)
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "card-add", "photo", "Tower at dusk", "eiffel,night")
	require.Equal(t, 0, code, out)
	card := createdID(t, out)

	code, out = run(t, cfg, "resv-add", "hotel", "H-42", "Hotel du Nord", "2024-06-01")
	require.Equal(t, 0, code, out)

	code, out = run(t, cfg, "cards")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, card)
	assert.Contains(t, out, "#eiffel #night")
	assert.Contains(t, out, "Tower at dusk")

	code, out = run(t, cfg, "trips")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "* "+paris)
	assert.Contains(t, out, "cards=1  reservations=1")
	assert.Contains(t, out, "Всего: 2")

	code, out = run(t, cfg, "trip-rm", paris)
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "cards=1 reservations=1")

	code, out = run(t, cfg, "status")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Trips:        1")
	assert.Contains(t, out, "Cards:        0")
	assert.Contains(t, out, "Active trip:  -")
	assert.Contains(t, out, "Persistence:  ok")
}

func TestTripCommands_Errors(t *testing.T) {
	cfg := withTempConfig(t)

	code, _ := run(t, cfg, "trip-add")
	assert.Equal(t, 2, code)

	code, out := run(t, cfg, "trip-add", "X", "01/06/2024")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "YYYY-MM-DD")

	code, out = run(t, cfg, "trip-add", "   ")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "trip name is required")

	code, _ = run(t, cfg, "trip-rm", "missing")
	assert.Equal(t, 1, code)

	code, _ = run(t, cfg, "use", "missing")
	assert.Equal(t, 1, code)

	code, out = run(t, cfg, "card-add", "note", "no trip yet")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "нет активной поездки")

	code, _ = run(t, cfg, "card-rm", "missing")
	assert.Equal(t, 1, code)
}

func TestCardCommands_InvalidKindAndRemove(t *testing.T) {
	cfg := withTempConfig(t)
	_, out := run(t, cfg, "trip-add", "Oslo", "2024-01-01")
	trip := createdID(t, out)
	code, _ := run(t, cfg, "use", trip)
	require.Equal(t, 0, code)

	code, out = run(t, cfg, "card-add", "video")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "invalid card")

	code, out = run(t, cfg, "card-add", "note", "hello")
	require.Equal(t, 0, code, out)
	card := createdID(t, out)

	code, _ = run(t, cfg, "card-rm", card)
	assert.Equal(t, 0, code)
	code, out = run(t, cfg, "cards", trip)
	require.Equal(t, 0, code)
	assert.Contains(t, out, "Нет карточек")

	code, _ = run(t, cfg, "use", "-")
	assert.Equal(t, 0, code)
	code, out = run(t, cfg, "cards")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "нет активной поездки")
}

func TestMediaAndSeedCommands(t *testing.T) {
	cfg := withTempConfig(t)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 2, 2))))
	file := filepath.Join(t.TempDir(), "shot.png")
	require.NoError(t, os.WriteFile(file, buf.Bytes(), 0o600))

	code, out := run(t, cfg, "media-add", file, "cover")
	assert.Equal(t, 1, code, "cover needs an active trip")

	code, out = run(t, cfg, "seed")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Демо-поездка создана")
	code, out = run(t, cfg, "seed")
	require.Equal(t, 0, code)
	assert.Contains(t, out, "уже есть")

	_, out = run(t, cfg, "trips")
	trip := createdID(t, out)
	code, _ = run(t, cfg, "use", trip)
	require.Equal(t, 0, code)

	code, out = run(t, cfg, "media-add", file, "photo")
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "image/png")
	assert.Contains(t, out, "Created photo card")

	code, out = run(t, cfg, "media-add", file, "cover")
	require.Equal(t, 0, code, out)
	assert.True(t, strings.Contains(out, "Cover of"))

	code, _ = run(t, cfg, "media-add", file, "banner")
	assert.Equal(t, 2, code)
	code, _ = run(t, cfg, "media-add", filepath.Join(t.TempDir(), "missing.png"))
	assert.Equal(t, 1, code)
}
