package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iamavinashmourya/SIA/internal/handler"
	"github.com/iamavinashmourya/SIA/pkg/constants"
)

// Deps bundles everything the router mounts.
type Deps struct {
	Auth         *handler.AuthHandler
	Rooms        *handler.RoomHandler
	Participants *handler.ParticipantHandler
	Queue        *handler.QueueHandler
	Dashboard    *handler.DashboardHandler
	WS           *handler.WSHandler
	Health       *handler.HealthHandler
	RequireHost  gin.HandlerFunc
}

// New builds the HTTP router.
func New(d Deps) http.Handler {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET(constants.PathHealth, d.Health.Health)
	r.GET(constants.PathReady, d.Health.Ready)

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", d.Auth.Register)
		authGroup.POST("/login", d.Auth.Login)
	}

	rooms := r.Group("/api/rooms", d.RequireHost)
	{
		rooms.POST("", d.Rooms.Create)
		rooms.GET("", d.Rooms.List)
		rooms.GET("/:id", d.Rooms.Get)
		rooms.PATCH("/:id", d.Rooms.Update)
		rooms.DELETE("/:id", d.Rooms.Delete)
		rooms.GET("/:id/queue", d.Queue.RoomQueue)
	}

	participants := r.Group("/api/participants")
	{
		participants.POST("/join", d.Participants.Join)
		participants.GET("/session/:id", d.Participants.GetSession)
		participants.POST("/session/:id/end", d.Participants.EndSession)
	}

	queue := r.Group("/api/queue")
	{
		queue.POST("/call-host", d.Queue.CallHost)
		queue.GET("/status/:session_id", d.Queue.Status)
		queue.GET("/item/:queue_id", d.RequireHost, d.Queue.Item)
		queue.POST("/:queue_id/accept", d.RequireHost, d.Queue.Accept)
		queue.POST("/:queue_id/decline", d.RequireHost, d.Queue.Decline)
	}

	dashboard := r.Group("/api/dashboard", d.RequireHost)
	{
		dashboard.GET("/me", d.Dashboard.Me)
		dashboard.GET("/stats", d.Dashboard.Stats)
		dashboard.GET("/queue", d.Dashboard.Queue)
	}

	// WebSocket endpoints
	r.GET("/ws/host/:host_id", d.WS.ServeHost)
	r.GET("/ws/participant/:session_id", d.WS.ServeParticipant)

	return r
}
