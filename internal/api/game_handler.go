package api

import (
	"github.com/hyukkyo/demon-tournament/internal/realtime"
	"github.com/hyukkyo/demon-tournament/internal/service"
)

// MatchHandler groups all match-related HTTP handlers.
type MatchHandler struct {
	ctl *service.Controller
	hub *realtime.Hub
}

// NewMatchHandler creates a MatchHandler backed by the match controller
// and the realtime hub it publishes to.
func NewMatchHandler(ctl *service.Controller, hub *realtime.Hub) *MatchHandler {
	return &MatchHandler{ctl: ctl, hub: hub}
}
