package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	srv := NewServer("127.0.0.1:0")
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(func() {
		ts.Close()
		_ = srv.Stop()
	})
	return srv, ts
}

func postEvaluate(t *testing.T, ts *httptest.Server, body string) (*http.Response, EvaluateResponse) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/api/evaluate", "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var out EvaluateResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	return resp, out
}

func TestIndexServesPageWithETag(t *testing.T) {
	srv, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, srv.indexETag, resp.Header.Get("ETag"))
	assert.Contains(t, string(body), "rechenschnell")

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/", nil)
	require.NoError(t, err)
	req.Header.Set("If-None-Match", srv.indexETag)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotModified, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	var health map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", health["status"])
}

func TestEvaluateSuccess(t *testing.T) {
	_, ts := newTestServer(t)

	resp, out := postEvaluate(t, ts, `{"input": "3(4+5)"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotNil(t, out.Result)
	assert.Equal(t, int64(27), *out.Result)
	assert.Equal(t, "(3 * (4 + 5))", out.Tree)
	assert.Empty(t, out.Error)
}

func TestEvaluateZeroResultIsPresent(t *testing.T) {
	_, ts := newTestServer(t)

	_, out := postEvaluate(t, ts, `{"input": "5-5"}`)
	require.NotNil(t, out.Result)
	assert.Equal(t, int64(0), *out.Result)
}

func TestEvaluateCalculatorErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  string
		stage string
	}{
		{"2.5", "UnrecognizedCharacter", "lexical"},
		{"(1+2", "MismatchedParentheses", "structural"},
		{"1+", "MismatchedOperator", "structural"},
		{"", "EmptyOrUnparseable", "structural"},
		{"1/0", "DivisionByZero", "semantic"},
		{"0^0", "UndefinedPower", "semantic"},
		{"9223372036854775807+1", "Overflow", "semantic"},
	}

	_, ts := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			body, err := json.Marshal(EvaluateRequest{Input: tt.input})
			require.NoError(t, err)

			resp, out := postEvaluate(t, ts, string(body))
			assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
			assert.Nil(t, out.Result)
			assert.NotEmpty(t, out.Error)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.stage, out.Stage)
		})
	}
}

func TestEvaluateRejectsBadRequests(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/evaluate", "application/json", strings.NewReader("{not json"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	huge := `{"input": "` + strings.Repeat("1", 8*1024) + `"}`
	resp, err = http.Post(ts.URL+"/api/evaluate", "application/json", strings.NewReader(huge))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
}

func TestEvaluateInputTooLong(t *testing.T) {
	_, ts := newTestServer(t)

	body, err := json.Marshal(EvaluateRequest{Input: strings.Repeat("1+", 200) + "1"})
	require.NoError(t, err)

	resp, out := postEvaluate(t, ts, string(body))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, ErrInputTooLong.Error(), out.Error)
	assert.Empty(t, out.Kind)
}

func TestEvaluateMethodNotAllowed(t *testing.T) {
	_, ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/evaluate")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestWebSocketEvaluatesFrames(t *testing.T) {
	_, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	exchange := func(input string) EvaluateResponse {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(input)))
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

		var out EvaluateResponse
		require.NoError(t, conn.ReadJSON(&out))
		return out
	}

	out := exchange("2^3^2")
	require.NotNil(t, out.Result)
	assert.Equal(t, int64(512), *out.Result)
	assert.Equal(t, "2^3^2", out.Input)

	out = exchange("1%0")
	assert.Nil(t, out.Result)
	assert.Equal(t, "ModuloByZero", out.Kind)
	assert.Equal(t, "semantic", out.Stage)

	out = exchange("-3+5\n")
	require.NotNil(t, out.Result)
	assert.Equal(t, int64(2), *out.Result)
}

func TestStopClosesWebSocketClients(t *testing.T) {
	srv, ts := newTestServer(t)

	wsURL := "ws" + strings.TrimPrefix(ts.URL, "http") + "/api/ws"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return srv.hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, srv.Stop())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	require.Error(t, err)
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "unexpected error: %v", err)
}

func TestStartAndStop(t *testing.T) {
	srv := NewServer("127.0.0.1:0")
	require.NoError(t, srv.Start())
	assert.Error(t, srv.Start())

	resp, err := http.Get(srv.URL() + "health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, srv.Stop())
	require.NoError(t, srv.Stop())
}
