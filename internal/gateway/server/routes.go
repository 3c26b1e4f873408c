package server

import (
	"net/http"

	"github.com/alfredang/trip-advisor/internal/gateway/handler"
	"github.com/alfredang/trip-advisor/internal/gateway/middleware"
)

func NewMux(planHandler *handler.PlanHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/plan", planHandler.HandleGenerate)
	mux.HandleFunc("/api/plan/download", planHandler.HandleDownload)
	mux.HandleFunc("/api/plan/ws", planHandler.HandlePlanWS)
	mux.HandleFunc("/healthz", planHandler.HandleHealth)

	return middleware.CORS(mux)
}
