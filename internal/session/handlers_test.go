package session_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/wrapping-quotes/internal/session"
)

const cubeBody = `{"title":"Box","shape":"cube","dimensions":["10"],"paper":"cheap","colour":"purple"}`

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func newAPI(t *testing.T, exporter session.Exporter) (http.Handler, *session.Store) {
	t.Helper()
	store := newStore(t, exporter)
	h := &session.Handler{Store: store, Logger: zerolog.Nop()}
	r := chi.NewRouter()
	r.Route("/api/v1", h.Routes)
	return r, store
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var env apiEnvelope
	if rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	}
	return rr, env
}

func createSession(t *testing.T, h http.Handler) string {
	t.Helper()
	rr, env := doJSON(t, h, http.MethodPost, "/api/v1/sessions", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.NotEmpty(t, snap.SessionID)
	return snap.SessionID
}

func TestColoursEndpoint(t *testing.T) {
	api, _ := newAPI(t, nil)
	rr, env := doJSON(t, api, http.MethodGet, "/api/v1/colours", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var colours []map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &colours))
	require.Len(t, colours, 6)
	require.Equal(t, map[string]string{"name": "Purple", "tag": "purple"}, colours[0])
}

func TestPreviewEndpoint(t *testing.T) {
	api, _ := newAPI(t, nil)
	rr, env := doJSON(t, api, http.MethodPost, "/api/v1/quotes/preview",
		`{"shape":"cuboid","dimensions":["5","5","5"],"paper":"expensive","colour":"Gold","bow":true,"giftCard":true,"message":"Congrats!"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var view session.QuoteView
	require.NoError(t, json.Unmarshal(env.Data, &view))
	require.Equal(t, "Untitled Quote", view.Title)
	require.Equal(t, "cuboid", view.Shape)
	require.Equal(t, "Gold", view.Colour)
	require.True(t, view.Bow)
	require.NotNil(t, view.GiftCard)
	require.Equal(t, "Congrats!", *view.GiftCard)
}

func TestPreviewValidationErrors(t *testing.T) {
	api, _ := newAPI(t, nil)
	rr, env := doJSON(t, api, http.MethodPost, "/api/v1/quotes/preview",
		`{"shape":"cube","dimensions":["abc"],"paper":"cheap","colour":"teal"}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	require.Contains(t, env.Error.Details, "dimensions")
	require.Contains(t, env.Error.Details, "colour")

	rr, env = doJSON(t, api, http.MethodPost, "/api/v1/quotes/preview", `{not json`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestAddQuoteRejectsOverflowingArea(t *testing.T) {
	api, store := newAPI(t, nil)
	id := createSession(t, api)

	rr, env := doJSON(t, api, http.MethodPost, "/api/v1/sessions/"+id+"/quotes",
		`{"shape":"cube","dimensions":["1e13"],"paper":"cheap","colour":"Gold","bow":true}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Equal(t, "VALIDATION_FAILED", env.Error.Code)
	require.Contains(t, env.Error.Details, "dimensions")

	sess, err := store.Get(id)
	require.NoError(t, err)
	require.Empty(t, sess.Snapshot().Quotes)
}

func TestSessionQuoteFlow(t *testing.T) {
	api, _ := newAPI(t, nil)
	id := createSession(t, api)
	base := "/api/v1/sessions/" + id

	rr, env := doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	var added session.QuoteView
	require.NoError(t, json.Unmarshal(env.Data, &added))
	require.Equal(t, 0, added.Index)
	require.Equal(t, "6.62", added.Price)

	rr, env = doJSON(t, api, http.MethodPut, base+"/quotes/0",
		`{"title":"Box","shape":"cube","dimensions":["10"],"paper":"cheap","colour":"purple","bow":true}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var replaced session.QuoteView
	require.NoError(t, json.Unmarshal(env.Data, &replaced))
	require.Equal(t, "8.12", replaced.Price)

	rr, env = doJSON(t, api, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Equal(t, "8.12", snap.Total)
	require.True(t, snap.ExportPending)

	rr, _ = doJSON(t, api, http.MethodDelete, base+"/quotes/0", "")
	require.Equal(t, http.StatusNoContent, rr.Code)

	rr, env = doJSON(t, api, http.MethodDelete, base+"/quotes/0", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "QUOTE_NOT_FOUND", env.Error.Code)

	rr, env = doJSON(t, api, http.MethodDelete, base+"/quotes/minus-one", "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	require.Equal(t, "BAD_REQUEST", env.Error.Code)
}

func TestEditEndpoints(t *testing.T) {
	api, _ := newAPI(t, nil)
	id := createSession(t, api)
	base := "/api/v1/sessions/" + id

	rr, _ := doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env := doJSON(t, api, http.MethodPost, base+"/quotes/0/edit", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var editing session.QuoteView
	require.NoError(t, json.Unmarshal(env.Data, &editing))
	require.Equal(t, "Box", editing.Title)

	rr, env = doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "CONFLICT", env.Error.Code)

	rr, env = doJSON(t, api, http.MethodDelete, base+"/quotes/0", "")
	require.Equal(t, http.StatusConflict, rr.Code)

	rr, env = doJSON(t, api, http.MethodPut, base+"/edit",
		`{"title":"Edited","shape":"cube","dimensions":["10"],"paper":"cheap","colour":"gold"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	var committed session.QuoteView
	require.NoError(t, json.Unmarshal(env.Data, &committed))
	require.Equal(t, "Edited", committed.Title)

	rr, env = doJSON(t, api, http.MethodPut, base+"/edit", cubeBody)
	require.Equal(t, http.StatusConflict, rr.Code)

	rr, _ = doJSON(t, api, http.MethodPost, base+"/quotes/0/edit", "")
	require.Equal(t, http.StatusOK, rr.Code)
	rr, _ = doJSON(t, api, http.MethodDelete, base+"/quotes/0/edit", "")
	require.Equal(t, http.StatusNoContent, rr.Code)
	rr, _ = doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env = doJSON(t, api, http.MethodPost, base+"/quotes/9/edit", "")
	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestExportEndpoints(t *testing.T) {
	api, _ := newAPI(t, nil)
	id := createSession(t, api)
	base := "/api/v1/sessions/" + id

	rr, env := doJSON(t, api, http.MethodPost, base+"/export", "")
	require.Equal(t, http.StatusConflict, rr.Code)
	require.Equal(t, "EMPTY_ORDER", env.Error.Code)
	require.Equal(t, "You cannot export an empty order.", env.Error.Message)

	rr, _ = doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env = doJSON(t, api, http.MethodPost, base+"/export", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var exported map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &exported))
	require.FileExists(t, exported["exportPath"])

	rr, env = doJSON(t, api, http.MethodPost, base+"/orders?export=true", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var rolled session.Rollover
	require.NoError(t, json.Unmarshal(env.Data, &rolled))
	require.Empty(t, rolled.ExportPath)
	require.Equal(t, 2, rolled.OrderNumber)

	rr, _ = doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)
	rr, env = doJSON(t, api, http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusCreated, rr.Code)
	require.NoError(t, json.Unmarshal(env.Data, &rolled))
	require.FileExists(t, rolled.ExportPath)
	require.Equal(t, 3, rolled.OrderNumber)
}

func TestExportFailureEndpoint(t *testing.T) {
	api, _ := newAPI(t, failingExporter{})
	id := createSession(t, api)
	base := "/api/v1/sessions/" + id

	rr, _ := doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env := doJSON(t, api, http.MethodPost, base+"/checkout", "")
	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, "EXPORT_FAILED", env.Error.Code)
	require.Contains(t, env.Error.Message, "write access")

	rr, env = doJSON(t, api, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rr.Code)
	var snap session.Snapshot
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	require.Len(t, snap.Quotes, 1)
}

func TestCloseSessionEndpoint(t *testing.T) {
	api, store := newAPI(t, nil)
	id := createSession(t, api)
	base := "/api/v1/sessions/" + id

	rr, _ := doJSON(t, api, http.MethodPost, base+"/quotes", cubeBody)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, env := doJSON(t, api, http.MethodDelete, base+"?export=true", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var closed map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &closed))
	require.FileExists(t, closed["exportPath"])
	require.Zero(t, store.Len())

	rr, env = doJSON(t, api, http.MethodGet, base, "")
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Equal(t, "NOT_FOUND", env.Error.Code)

	id = createSession(t, api)
	rr, _ = doJSON(t, api, http.MethodDelete, "/api/v1/sessions/"+id, "")
	require.Equal(t, http.StatusNoContent, rr.Code)
}
