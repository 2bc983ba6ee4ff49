package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/feedbackhub/feedbackhub/api/auth"
	"github.com/feedbackhub/feedbackhub/api/handler"
	"github.com/feedbackhub/feedbackhub/config"
	"github.com/feedbackhub/feedbackhub/database"
	"github.com/feedbackhub/feedbackhub/web"
)

type Server struct {
	cfg        *config.Config
	ginEngine  *gin.Engine
	httpServer *http.Server
	db         *database.Client
}

func New(cfg *config.Config, db *database.Client, debug bool) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.Default(),
		db:        db,
	}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:    cfg.Listen,
		Handler: s.ginEngine,
	}

	return s, nil
}

// ServeHTTP makes the server usable as a plain http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.ginEngine.ServeHTTP(w, r)
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SessionSecure,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions("feedbackhub_session", store))
}

func (s *Server) setupRoutes() {
	s.ginEngine.SetHTMLTemplate(web.Templates())
	s.ginEngine.Use(gzip.Gzip(gzip.DefaultCompression))
	s.setupSession()
	s.ginEngine.Use(auth.CSRF())

	h := handler.New(s.db, s.cfg)

	s.ginEngine.GET("/", h.Home)
	s.ginEngine.GET("/register", h.RegisterPage)
	s.ginEngine.POST("/register", h.Register)
	s.ginEngine.GET("/login", h.LoginPage)
	s.ginEngine.POST("/login", h.Login)

	// Logout only needs an existing session.
	s.ginEngine.GET("/logout", auth.RequireAuth(), h.Logout)

	// Profile routes are bound to the identity named in the path.
	users := s.ginEngine.Group("/users/:username")
	users.Use(auth.RequireUser("username"))

	users.GET("", h.Profile)
	users.POST("/delete", h.DeleteUser)
	users.GET("/feedback/new", h.NewFeedbackPage)
	users.POST("/feedback/new", h.CreateFeedback)

	// Feedback routes check ownership against the stored row.
	feedback := s.ginEngine.Group("/feedback/:id")
	feedback.Use(auth.RequireAuth())

	feedback.GET("/update", h.EditFeedbackPage)
	feedback.POST("/update", h.UpdateFeedback)
	feedback.POST("/delete", h.DeleteFeedback)
}

// Run serves until the listener fails or Shutdown is called.
func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting new connections and drains in-flight requests
// until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
