// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package bestiary_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/shanhai/internal/atlas"
	"github.com/taibuivan/shanhai/internal/bestiary"
	"github.com/taibuivan/shanhai/internal/layout"
)

func newRouter() http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := bestiary.NewService(atlas.Embedded(), layout.NewEngine(15), logger)
	return bestiary.NewHandler(service).Routes()
}

func get(t *testing.T, router http.Handler, target string, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(http.MethodGet, target, nil)
	for i := 0; i+1 < len(headers); i += 2 {
		request.Header.Set(headers[i], headers[i+1])
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

// envelope decodes the standard response envelope.
type envelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  map[string]int  `json:"meta"`
	Code  string          `json:"code"`
	Error string          `json:"error"`
}

func decode(t *testing.T, recorder *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &env))
	return env
}

func TestHandler_Status(t *testing.T) {
	router := newRouter()

	tests := []struct {
		name   string
		target string
		status int
		code   string
	}{
		{"locations", "/locations", http.StatusOK, ""},
		{"location", "/locations/kunlun", http.StatusOK, ""},
		{"unknown_location", "/locations/atlantis", http.StatusNotFound, "NOT_FOUND"},
		{"layout_unknown", "/locations/atlantis/layout", http.StatusNotFound, "NOT_FOUND"},
		{"water", "/waters/jade-lake", http.StatusOK, ""},
		{"unknown_water", "/waters/styx", http.StatusNotFound, "NOT_FOUND"},
		{"creature", "/creatures/shenyu", http.StatusOK, ""},
		{"unknown_creature", "/creatures/kraken", http.StatusNotFound, "NOT_FOUND"},
		{"bad_period", "/creatures/shenyu/depictions/future", http.StatusBadRequest, "VALIDATION_ERROR"},
		{"empty_search", "/search?q=", http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := get(t, router, tt.target)
			assert.Equal(t, tt.status, recorder.Code)
			if tt.code != "" {
				assert.Equal(t, tt.code, decode(t, recorder).Code)
			}
		})
	}
}

func TestHandler_Layout(t *testing.T) {
	recorder := get(t, newRouter(), "/locations/kunlun/layout")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body struct {
		Location atlas.Location `json:"location"`
		Nodes    []struct {
			Water atlas.Water `json:"water"`
			Index int         `json:"index"`
			Path  string      `json:"path"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &body))

	assert.Equal(t, "kunlun", body.Location.ID)
	require.Len(t, body.Nodes, 2)
	assert.Equal(t, "kunlun-river", body.Nodes[0].Water.ID)
	assert.Equal(t, "M 25 60 Q 32.5 65 40 60", body.Nodes[0].Path)
	assert.Equal(t, "jade-lake", body.Nodes[1].Water.ID)
	assert.Equal(t, 1, body.Nodes[1].Index)
}

func TestHandler_WaterCreatures(t *testing.T) {
	router := newRouter()

	recorder := get(t, router, "/waters/jade-lake/creatures")
	require.Equal(t, http.StatusOK, recorder.Code)
	env := decode(t, recorder)

	var creatures []atlas.Creature
	require.NoError(t, json.Unmarshal(env.Data, &creatures))
	require.Len(t, creatures, 1)
	assert.Equal(t, "shenyu", creatures[0].ID)
	assert.Equal(t, 1, env.Meta["total"])

	// A page past the end is empty, not an error.
	recorder = get(t, router, "/waters/jade-lake/creatures?page=3&limit=1")
	require.Equal(t, http.StatusOK, recorder.Code)
	env = decode(t, recorder)
	require.NoError(t, json.Unmarshal(env.Data, &creatures))
	assert.Empty(t, creatures)
	assert.Equal(t, 3, env.Meta["page"])
	assert.Equal(t, 1, env.Meta["total_pages"])

	// Offsets past the int range still produce an empty page.
	assert.NotPanics(t, func() {
		recorder = get(t, router, "/waters/jade-lake/creatures?page=4611686018427387905&limit=2")
	})
	require.Equal(t, http.StatusOK, recorder.Code)
	env = decode(t, recorder)
	require.NoError(t, json.Unmarshal(env.Data, &creatures))
	assert.Empty(t, creatures)
}

func TestHandler_Depiction(t *testing.T) {
	recorder := get(t, newRouter(), "/creatures/shenyu/depictions/modern2")
	require.Equal(t, http.StatusOK, recorder.Code)

	var depiction atlas.Depiction
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &depiction))
	assert.Equal(t, atlas.PeriodModern2, depiction.Period)
}

func TestHandler_Search(t *testing.T) {
	recorder := get(t, newRouter(), "/search?q=kunlnu&limit=1")
	require.Equal(t, http.StatusOK, recorder.Code)

	var matches []atlas.Match
	require.NoError(t, json.Unmarshal(decode(t, recorder).Data, &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "kunlun", matches[0].ID)

	recorder = get(t, newRouter(), "/search?q=zzzzzz")
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `[]`, string(decode(t, recorder).Data))
}

/*
TestHandler_ETag revalidates a cached response with the returned ETag and
expects a bodyless 304.
*/
func TestHandler_ETag(t *testing.T) {
	router := newRouter()

	first := get(t, router, "/locations")
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, `"`+atlas.Embedded().Fingerprint()+`"`, etag)

	second := get(t, router, "/creatures/shenyu", "If-None-Match", etag)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())

	stale := get(t, router, "/locations", "If-None-Match", `"stale"`)
	assert.Equal(t, http.StatusOK, stale.Code)
}
