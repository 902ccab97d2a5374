// Package server exposes the HTTP control plane: session auth, Instagram
// account and cookie management, automation dispatch, the activity log
// feed, and the admin user surface.
package server

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/EzekielClervo/instagram/internal/auth"
	"github.com/EzekielClervo/instagram/internal/automation"
	"github.com/EzekielClervo/instagram/internal/instagram"
	"github.com/EzekielClervo/instagram/internal/repository"
)

const sessionName = "igboost_session"

// Server wires the store and the Instagram client behind the HTTP routes.
type Server struct {
	store  repository.Store
	ig     *instagram.Client
	runner *automation.Runner
}

// New creates a Server.
func New(store repository.Store, ig *instagram.Client) *Server {
	return &Server{
		store:  store,
		ig:     ig,
		runner: automation.NewRunner(store, ig),
	}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router(sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sessions.Sessions(sessionName, cookie.NewStore([]byte(sessionSecret))))

	api := r.Group("/api")
	{
		api.POST("/register", s.handleRegister)
		api.POST("/login", s.handleLogin)
		api.POST("/logout", s.handleLogout)
		api.GET("/user", s.handleCurrentUser)
	}

	ig := api.Group("/instagram", auth.RequireAuth())
	{
		ig.GET("/accounts", s.handleListAccounts)
		ig.POST("/accounts", s.handleCreateAccount)
		ig.DELETE("/accounts/:id", s.handleDeleteAccount)

		ig.GET("/cookies", s.handleListCookies)
		ig.POST("/cookies", s.handleCreateCookie)
		ig.DELETE("/cookies/:id", s.handleDeleteCookie)
		ig.GET("/cookies/:id/check", s.handleCheckCookie)
	}

	api.GET("/activity-logs", auth.RequireAuth(), s.handleActivityLogs)
	api.POST("/automation/run", auth.RequireAuth(), s.handleRunAutomation)

	admin := api.Group("/admin", auth.RequireAdmin())
	{
		admin.GET("/users", s.handleListUsers)
		admin.DELETE("/users/:id", s.handleDeleteUser)
	}

	return r
}
