package api

import (
	"github.com/gin-gonic/gin"
	"github.com/lalith-99/lockerroom/internal/middleware"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth           *AuthHandler
	Teams          *TeamHandler
	Members        *MembershipHandler
	Messages       *MessageHandler
	DirectMessages *DirectMessageHandler
	HealthChecks   map[string]HealthCheck
}

// NewRouter wires every route. Identity runs on all of them; routes outside
// the public set also pass RequireUser.
func NewRouter(logger *zap.Logger, resolver middleware.IdentityResolver, cookieName string, h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Identity(resolver, cookieName))

	v1 := r.Group("/v1")
	v1.GET("/health", Health(h.HealthChecks))

	v1.POST("/auth/signup", h.Auth.Signup)
	v1.POST("/auth/login", h.Auth.Login)
	v1.POST("/auth/logout", h.Auth.Logout)

	authed := v1.Group("")
	authed.Use(middleware.RequireUser())

	authed.DELETE("/auth/account", h.Auth.DeleteAccount)
	authed.GET("/me", GetMe)

	authed.GET("/teams", h.Teams.List)
	authed.POST("/teams", h.Teams.Create)
	authed.DELETE("/teams/:teamId", h.Teams.Delete)

	authed.GET("/teams/:teamId/members", h.Members.List)
	authed.POST("/teams/:teamId/members", h.Members.Add)

	authed.GET("/teams/:teamId/messages", h.Messages.List)
	authed.POST("/teams/:teamId/messages", h.Messages.Create)
	authed.GET("/teams/:teamId/messages/next", h.Messages.Next)
	authed.PATCH("/teams/:teamId/messages/:messageId", h.Messages.Edit)
	authed.DELETE("/teams/:teamId/messages/:messageId", h.Messages.Delete)
	authed.GET("/teams/:teamId/ws", h.Messages.Stream)

	authed.GET("/direct-messages", h.DirectMessages.List)
	authed.POST("/direct-messages", h.DirectMessages.Send)
	authed.PATCH("/direct-messages/:messageId", h.DirectMessages.Edit)
	authed.DELETE("/direct-messages/:messageId", h.DirectMessages.Delete)

	return r
}
