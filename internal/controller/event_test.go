package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/eventshuffle/backend/internal/dto"
	"github.com/eventshuffle/backend/internal/repository"
	"github.com/eventshuffle/backend/internal/service"
	"github.com/eventshuffle/backend/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := dto.Config{DateFormat: "2006-01-02"}
	repositories := repository.NewRepositories(testutil.OpenDB(t))
	services := service.NewServices(repositories, cfg)

	e := echo.New()
	NewControllers(services, cfg).Route(e)
	return e
}

func do(t *testing.T, e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestCreateEventEndpoint(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		e := newTestServer(t)

		rec := do(t, e, http.MethodPost, "/api/v1/event",
			`{"name":"Jake's secret party","dates":["2014-01-01","2014-01-05","2014-01-12"]}`)

		require.Equal(t, http.StatusOK, rec.Code)
		out := decode[dto.CreateEventOutput](t, rec)
		assert.NotZero(t, out.ID)
	})

	t.Run("malformed date is a parse failure", func(t *testing.T) {
		e := newTestServer(t)

		rec := do(t, e, http.MethodPost, "/api/v1/event",
			`{"name":"TestEvent","dates":["01.09.2021"]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		out := decode[dto.ErrorResponse](t, rec)
		assert.Equal(t, "cannot parse date '01.09.2021': expected format '2006-01-02'", out.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		e := newTestServer(t)

		rec := do(t, e, http.MethodPost, "/api/v1/event", `{"name": `)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("validation failure", func(t *testing.T) {
		e := newTestServer(t)

		rec := do(t, e, http.MethodPost, "/api/v1/event", `{"name":"","dates":["2021-09-01"]}`)

		require.Equal(t, http.StatusBadRequest, rec.Code)
		out := decode[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Event name should not be blank", out.Error)
	})
}

func TestGetEventEndpoints(t *testing.T) {
	t.Run("unknown event", func(t *testing.T) {
		e := newTestServer(t)

		rec := do(t, e, http.MethodGet, "/api/v1/event/42", "")
		require.Equal(t, http.StatusNotFound, rec.Code)
		out := decode[dto.ErrorResponse](t, rec)
		assert.Equal(t, "Event with ID '42' not found", out.Error)

		rec = do(t, e, http.MethodGet, "/api/v1/event/42/results", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad id", func(t *testing.T) {
		e := newTestServer(t)

		rec := do(t, e, http.MethodGet, "/api/v1/event/banana", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("list", func(t *testing.T) {
		e := newTestServer(t)
		do(t, e, http.MethodPost, "/api/v1/event", `{"name":"First","dates":["2021-09-01"]}`)
		do(t, e, http.MethodPost, "/api/v1/event", `{"name":"Second","dates":["2021-09-02"]}`)

		rec := do(t, e, http.MethodGet, "/api/v1/event/list", "")
		require.Equal(t, http.StatusOK, rec.Code)
		out := decode[dto.GetEventsDTO](t, rec)
		require.Len(t, out.Events, 2)
		assert.Equal(t, "First", out.Events[0].Name)
		assert.Equal(t, "Second", out.Events[1].Name)
	})
}

func TestVoteAndResultsFlow(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodPost, "/api/v1/event",
		`{"name":"TestEvent","dates":["2021-09-01","2021-09-02","2021-09-03"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	created := decode[dto.CreateEventOutput](t, rec)

	base := "/api/v1/event/" + itoa(created.ID)

	rec = do(t, e, http.MethodPost, base+"/vote",
		`{"name":"User1","votes":["2021-09-01","2021-09-02"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[dto.GetEventDTO](t, rec)
	assert.Equal(t, []string{"2021-09-01", "2021-09-02", "2021-09-03"}, view.Dates)
	require.Len(t, view.Votes, 2)
	assert.Equal(t, []string{"User1"}, view.Votes[0].People)

	rec = do(t, e, http.MethodPost, base+"/vote",
		`{"name":"User2","votes":["2021-09-01"]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, e, http.MethodGet, base+"/results", "")
	require.Equal(t, http.StatusOK, rec.Code)
	results := decode[dto.GetEventResultsDTO](t, rec)
	assert.Equal(t, "TestEvent", results.Name)
	require.Len(t, results.SuitableDates, 1)
	assert.Equal(t, "2021-09-01", results.SuitableDates[0].Date)
	assert.Equal(t, []string{"User1", "User2"}, results.SuitableDates[0].People)

	// Voting again for the same date is rejected and changes nothing.
	rec = do(t, e, http.MethodPost, base+"/vote",
		`{"name":"user1","votes":["2021-09-01"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "User 'user1' has already voted for event 'TestEvent' and date '2021-09-01'", out.Error)

	// Voting for a date the event does not offer is rejected.
	rec = do(t, e, http.MethodPost, base+"/vote",
		`{"name":"User3","votes":["2021-10-15"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	out = decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "Event 'TestEvent' does not have date '2021-10-15' suggested", out.Error)

	// Unknown event id on the vote route.
	rec = do(t, e, http.MethodPost, "/api/v1/event/999/vote",
		`{"name":"User1","votes":["2021-09-01"]}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInfoEndpoint(t *testing.T) {
	e := newTestServer(t)

	rec := do(t, e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	out := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", out["status"])
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
