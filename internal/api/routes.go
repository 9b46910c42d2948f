package api

import (
	"github.com/hyukkyo/demon-tournament/internal/constants"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the REST API, the health probe and the websocket
// endpoint on r.
func RegisterRoutes(r *gin.Engine, h *MatchHandler) {
	r.GET(constants.RouteHealthz, Healthz)
	r.GET(constants.RouteWebsocket, h.Subscribe)

	apiRoutes := r.Group(constants.RouteAPIPrefix)
	{
		// Public endpoints
		apiRoutes.GET(constants.RouteCards, ListCards)
		apiRoutes.GET(constants.RouteCharacters, ListCharacters)
		apiRoutes.GET(constants.RouteLeaderboard, h.ListLeaderboard)
		apiRoutes.GET(constants.RouteVersion, Version)
		apiRoutes.GET(constants.RouteMatchByCode, h.GetMatch)
		apiRoutes.GET(constants.RouteMatchRounds, h.ListRounds)

		// Endpoints that act on behalf of a player
		player := apiRoutes.Group("")
		player.Use(PlayerRequired())

		player.GET(constants.RoutePlayerStats, h.GetPlayerStats)
		player.POST(constants.RouteMatches, h.CreateMatch)
		player.POST(constants.RouteMatchesJoin, h.JoinMatch)
		player.POST(constants.RouteMatchSelection, h.SubmitSelection)
		player.POST(constants.RouteMatchLeave, h.LeaveMatch)
		player.POST(constants.RouteMatchmaking, h.JoinQueue)
		player.DELETE(constants.RouteMatchmaking, h.LeaveQueue)
		player.GET(constants.RouteMatchmaking, h.QueueStatus)
	}
}
