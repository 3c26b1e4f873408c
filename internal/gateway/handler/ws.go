package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/alfredang/trip-advisor/internal/trip"
)

const (
	planWSWriteWait = 10 * time.Second
	planWSPongWait  = 60 * time.Second
	planWSPingEvery = (planWSPongWait * 9) / 10
)

var planWSUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

type planWSInbound struct {
	Type    string       `json:"type"`
	Request trip.Request `json:"request"`
}

type planWSOutbound struct {
	Type    string       `json:"type"`
	Agent   string       `json:"agent,omitempty"`
	Label   string       `json:"label,omitempty"`
	Text    string       `json:"text,omitempty"`
	Plan    *planPayload `json:"plan,omitempty"`
	Code    string       `json:"code,omitempty"`
	Message string       `json:"message,omitempty"`
}

// wsObserver forwards per-agent progress to the write channel. The
// failing step's error is reported once by the final error event, not
// per agent.
type wsObserver struct {
	writeCh chan planWSOutbound
}

func (o *wsObserver) AgentStarted(agent trip.Agent) {
	pushPlanWS(o.writeCh, planWSOutbound{Type: "agent_started", Agent: string(agent), Label: agent.Label()})
}

func (o *wsObserver) AgentFinished(agent trip.Agent, out trip.Output, err error) {
	if err != nil {
		return
	}
	pushPlanWS(o.writeCh, planWSOutbound{Type: "agent_finished", Agent: string(agent), Label: agent.Label(), Text: out.Text})
}

// HandlePlanWS upgrades the connection, reads one plan request, and
// streams per-agent progress followed by the finished plan.
func (h *PlanHandler) HandlePlanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := planWSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	ctx := r.Context()

	if err := conn.SetReadDeadline(time.Now().Add(planWSPongWait)); err != nil {
		log.Printf("plan ws set read deadline failed: %v", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(planWSPongWait))
	})

	writeCh := make(chan planWSOutbound, 32)
	writerDone := make(chan struct{})
	stopWriter := make(chan struct{})
	go func() {
		defer close(writerDone)
		ticker := time.NewTicker(planWSPingEvery)
		defer ticker.Stop()

		for {
			select {
			case <-stopWriter:
				// Drain queued events before closing.
				for {
					select {
					case out := <-writeCh:
						if err := conn.SetWriteDeadline(time.Now().Add(planWSWriteWait)); err != nil {
							return
						}
						if err := conn.WriteJSON(out); err != nil {
							return
						}
					default:
						return
					}
				}
			case out := <-writeCh:
				if err := conn.SetWriteDeadline(time.Now().Add(planWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteJSON(out); err != nil {
					return
				}
			case <-ticker.C:
				if err := conn.SetWriteDeadline(time.Now().Add(planWSWriteWait)); err != nil {
					return
				}
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}()
	defer func() {
		close(stopWriter)
		<-writerDone
	}()

	var in planWSInbound
	if err := conn.ReadJSON(&in); err != nil {
		return
	}
	if in.Type != "plan" {
		pushPlanWS(writeCh, planWSOutbound{Type: "error", Code: "invalid_request", Message: "first message must have type \"plan\""})
		return
	}

	obs := &wsObserver{writeCh: writeCh}
	rec, err := h.svc.Generate(ctx, in.Request, obs)
	if err != nil {
		code := "internal"
		message := "could not generate plan"
		var verr *trip.ValidationError
		var uerr *trip.UpstreamError
		switch {
		case errors.As(err, &verr):
			code, message = "invalid_request", verr.Error()
		case errors.As(err, &uerr):
			code = "upstream_failed"
		}
		pushPlanWS(writeCh, planWSOutbound{Type: "error", Code: code, Message: message})
		return
	}

	payload := planPayloadFrom(rec)
	pushPlanWS(writeCh, planWSOutbound{Type: "plan", Plan: &payload})
}

func pushPlanWS(ch chan planWSOutbound, out planWSOutbound) {
	select {
	case ch <- out:
	default:
		log.Printf("plan ws send buffer full; dropping %s event", out.Type)
	}
}
