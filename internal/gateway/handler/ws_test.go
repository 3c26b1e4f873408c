package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfredang/trip-advisor/internal/llm"
	"github.com/alfredang/trip-advisor/internal/pipeline"
	"github.com/alfredang/trip-advisor/internal/search"
	"github.com/alfredang/trip-advisor/internal/trip"
)

func dialPlanWS(t *testing.T, h *PlanHandler) *websocket.Conn {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(h.HandlePlanWS))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/plan/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestPlanWSStreamsProgress(t *testing.T) {
	provider := &search.FakeProvider{Results: []search.Result{{Title: "Advisory", Snippet: "Rain."}}}
	h := newTestHandler(t, llm.NewFakeClient(), provider, pipeline.AlwaysResearch)
	conn := dialPlanWS(t, h)

	require.NoError(t, conn.WriteJSON(planWSInbound{
		Type:    "plan",
		Request: trip.Request{Destination: "Tokyo", Days: 5, Budget: 2000},
	}))

	var started []string
	var finished []string
	var final *planPayload
	for final == nil {
		var out planWSOutbound
		require.NoError(t, conn.ReadJSON(&out))
		switch out.Type {
		case "agent_started":
			started = append(started, out.Agent)
		case "agent_finished":
			finished = append(finished, out.Agent)
			assert.NotEmpty(t, out.Text)
		case "plan":
			final = out.Plan
		case "error":
			t.Fatalf("unexpected error event: %s %s", out.Code, out.Message)
		}
	}

	want := []string{"planner", "budget", "local_guide", "research", "travel"}
	assert.Equal(t, want, started)
	assert.Equal(t, want, finished)
	require.NotNil(t, final)
	assert.Equal(t, "plan-1", final.PlanID)
	assert.Len(t, final.Sections, 5)
}

func TestPlanWSValidationError(t *testing.T) {
	cli := llm.NewFakeClient()
	h := newTestHandler(t, cli, nil, nil)
	conn := dialPlanWS(t, h)

	require.NoError(t, conn.WriteJSON(planWSInbound{
		Type:    "plan",
		Request: trip.Request{Destination: "Tokyo", Days: 0, Budget: 2000},
	}))

	var out planWSOutbound
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, "invalid_request", out.Code)
	assert.Empty(t, cli.Calls())
}

func TestPlanWSUpstreamError(t *testing.T) {
	cli := llm.NewFakeClient().FailOn("local_guide", assert.AnError)
	h := newTestHandler(t, cli, nil, nil)
	conn := dialPlanWS(t, h)

	require.NoError(t, conn.WriteJSON(planWSInbound{
		Type:    "plan",
		Request: trip.Request{Destination: "Tokyo", Days: 5, Budget: 2000},
	}))

	sawError := false
	for !sawError {
		var out planWSOutbound
		require.NoError(t, conn.ReadJSON(&out))
		switch out.Type {
		case "plan":
			t.Fatalf("no plan should be produced")
		case "error":
			sawError = true
			assert.Equal(t, "upstream_failed", out.Code)
		}
	}
}

func TestPlanWSRejectsUnknownMessage(t *testing.T) {
	h := newTestHandler(t, llm.NewFakeClient(), nil, nil)
	conn := dialPlanWS(t, h)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "chat"}))

	var out planWSOutbound
	require.NoError(t, conn.ReadJSON(&out))
	assert.Equal(t, "error", out.Type)
	assert.Equal(t, "invalid_request", out.Code)
}
