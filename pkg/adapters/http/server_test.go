package http_test

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/acceptor"
	httpadapter "github.com/aretw0/acceptor/pkg/adapters/http"
	"github.com/aretw0/acceptor/pkg/adapters/memory"
	"github.com/aretw0/acceptor/pkg/automaton"
	"github.com/aretw0/acceptor/pkg/observability"
)

func evenA() *automaton.NFAEDefinition {
	return &automaton.NFAEDefinition{
		Name:     "even-a",
		States:   []string{"e", "o"},
		Start:    "e",
		Finals:   []string{"e"},
		Alphabet: []string{"a"},
		Transitions: map[string]map[string][]string{
			"e": {"a": {"o"}},
			"o": {"a": {"e"}},
		},
	}
}

type fixture struct {
	handler http.Handler
	streams *httpadapter.StreamManager
}

func newFixture(t *testing.T, opts ...acceptor.Option) fixture {
	t.Helper()
	streams := httpadapter.NewStreamManager()
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	opts = append(opts, acceptor.WithLifecycleHooks(observability.Combine(metrics.Hooks(), streams.Hooks())))
	engine, err := acceptor.NewFromDefinitions([]automaton.Definition{evenA()}, opts...)
	require.NoError(t, err)

	h := httpadapter.NewHandler(engine,
		httpadapter.WithStreams(streams),
		httpadapter.WithMetrics(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)
	return fixture{handler: h, streams: streams}
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestGetHealth(t *testing.T) {
	rr := do(t, newFixture(t).handler, "GET", "/health", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestGetInfo(t *testing.T) {
	rr := do(t, newFixture(t).handler, "GET", "/info", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "acceptor-http", resp["app"])
	assert.NotEmpty(t, resp["version"])
	assert.EqualValues(t, 1, resp["machines"])
}

func TestMachines(t *testing.T) {
	h := newFixture(t).handler

	rr := do(t, h, "GET", "/machines", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[{"name":"even-a","kind":"nfae"}]`, rr.Body.String())

	rr = do(t, h, "GET", "/machines/even-a", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var info acceptor.MachineInfo
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &info))
	assert.EqualValues(t, "e", info.Start)
	assert.Len(t, info.Edges, 2)

	rr = do(t, h, "GET", "/machines/nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestGetGraph(t *testing.T) {
	rr := do(t, newFixture(t).handler, "GET", "/machines/even-a/graph", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "stateDiagram-v2"))
	assert.Contains(t, rr.Body.String(), "e --> o : a")
}

func TestCheck(t *testing.T) {
	h := newFixture(t).handler

	tests := []struct {
		name    string
		path    string
		body    string
		status  int
		verdict string
	}{
		{"Accepted", "/machines/even-a/check", `{"input":"aa"}`, http.StatusOK, "accepted"},
		{"Rejected", "/machines/even-a/check", `{"input":"a"}`, http.StatusOK, "rejected"},
		{"Malformed", "/machines/even-a/check", `{"input":"ab"}`, http.StatusOK, "malformed_input"},
		{"Unknown Machine", "/machines/nope/check", `{"input":"a"}`, http.StatusNotFound, ""},
		{"Bad Body", "/machines/even-a/check", `{`, http.StatusBadRequest, ""},
		{"Bad UTF-8", "/machines/even-a/check", "{\"input\":\"\xff\"}", http.StatusBadRequest, ""},
		{"Control Character", "/machines/even-a/check", `{"input":"a\u0001a"}`, http.StatusOK, "malformed_input"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, "POST", tt.path, tt.body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())
			if tt.verdict == "" {
				return
			}
			var resp struct {
				Machine string `json:"machine"`
				Outcome struct {
					Verdict string           `json:"verdict"`
					Trace   []map[string]any `json:"trace"`
				} `json:"outcome"`
			}
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, "even-a", resp.Machine)
			assert.Equal(t, tt.verdict, resp.Outcome.Verdict)
		})
	}
}

func TestCheckAll(t *testing.T) {
	rr := do(t, newFixture(t).handler, "POST", "/check", `{"input":"aa"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var results []acceptor.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "even-a", results[0].Machine)
	assert.True(t, results[0].Outcome.Accepted())
}

func TestGetHistory(t *testing.T) {
	t.Run("No Store", func(t *testing.T) {
		rr := do(t, newFixture(t).handler, "GET", "/machines/even-a/history", "")
		assert.Equal(t, http.StatusNotImplemented, rr.Code)
	})

	t.Run("With Store", func(t *testing.T) {
		h := newFixture(t, acceptor.WithResultStore(memory.NewStore())).handler
		do(t, h, "POST", "/machines/even-a/check", `{"input":"a"}`)
		do(t, h, "POST", "/machines/even-a/check", `{"input":"aa"}`)

		rr := do(t, h, "GET", "/machines/even-a/history?limit=1", "")
		require.Equal(t, http.StatusOK, rr.Code)
		var records []map[string]any
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &records))
		require.Len(t, records, 1)
		assert.Equal(t, "aa", records[0]["input"])
		assert.Equal(t, "accepted", records[0]["verdict"])

		rr = do(t, h, "GET", "/machines/even-a/history?limit=x", "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestMetricsEndpoint(t *testing.T) {
	h := newFixture(t).handler
	do(t, h, "POST", "/machines/even-a/check", `{"input":"aa"}`)

	rr := do(t, h, "GET", "/metrics", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `acceptor_checks_total{kind="nfae",machine="even-a",verdict="accepted"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	rr := do(t, newFixture(t).handler, "OPTIONS", "/check", "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestSubscribeEvents(t *testing.T) {
	f := newFixture(t)
	srv := httptest.NewServer(f.handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/events?machine=even-a")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		sc := bufio.NewScanner(resp.Body)
		for sc.Scan() {
			lines <- sc.Text()
		}
		close(lines)
	}()

	next := func() string {
		select {
		case l := <-lines:
			return l
		case <-time.After(2 * time.Second):
			t.Fatal("no SSE line")
			return ""
		}
	}
	require.Equal(t, "event: ping", next())
	require.Equal(t, "data: connected", next())
	require.Equal(t, "", next())

	checkResp, err := http.Post(srv.URL+"/machines/even-a/check", "application/json", strings.NewReader(`{"input":"aa"}`))
	require.NoError(t, err)
	checkResp.Body.Close()

	require.Equal(t, "event: check", next())
	data := next()
	require.True(t, strings.HasPrefix(data, "data: "))

	var ev struct {
		Type    string         `json:"type"`
		Machine string         `json:"machine"`
		Input   string         `json:"input"`
		Outcome map[string]any `json:"outcome"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(data, "data: ")), &ev))
	assert.Equal(t, "check_end", ev.Type)
	assert.Equal(t, "even-a", ev.Machine)
	assert.Equal(t, "aa", ev.Input)
	assert.Equal(t, "accepted", ev.Outcome["verdict"])
	assert.NotContains(t, ev.Outcome, "trace", "the broadcast carries a summary only")
}

func TestSubscribeEvents_UnknownMachine(t *testing.T) {
	rr := do(t, newFixture(t).handler, "GET", "/events?machine=nope", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStreamManager(t *testing.T) {
	sm := httpadapter.NewStreamManager()
	one, stopOne := sm.Subscribe("m")
	all, stopAll := sm.Subscribe("")
	defer stopAll()

	sm.Broadcast("m", "hello")
	assert.Equal(t, "hello", <-one)
	assert.Equal(t, "hello", <-all)

	sm.Broadcast("other", "x")
	assert.Equal(t, "x", <-all)
	assert.Empty(t, one)

	stopOne()
	stopOne()
	_, open := <-one
	assert.False(t, open)
}
