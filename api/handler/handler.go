package handler

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/feedbackhub/feedbackhub/api/auth"
	"github.com/feedbackhub/feedbackhub/api/models"
	"github.com/feedbackhub/feedbackhub/config"
	"github.com/feedbackhub/feedbackhub/database"
)

type Handler struct {
	db  *database.Client
	cfg *config.Config
}

func New(db *database.Client, cfg *config.Config) *Handler {
	return &Handler{
		db:  db,
		cfg: cfg,
	}
}

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	h.render(c, http.StatusOK, "index", gin.H{})
}

// render writes an HTML page, merging flashes, the anti-forgery token and
// the current session identity into the template data.
func (h *Handler) render(c *gin.Context, status int, name string, data gin.H) {
	username, _ := auth.SessionUsername(c)
	data["CurrentUser"] = username
	data["CSRFToken"] = auth.Token(c)
	data["Flashes"] = takeFlashes(c)
	c.HTML(status, name, data)
}

// renderNotFound renders the shared 404 page.
func (h *Handler) renderNotFound(c *gin.Context) {
	h.render(c, http.StatusNotFound, "notfound", gin.H{})
}

// addFlash queues a one-shot message for the next rendered page.
func addFlash(c *gin.Context, category, message string) {
	session := sessions.Default(c)
	session.AddFlash(models.Flash{Category: category, Message: message})
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
}

// takeFlashes consumes all queued flash messages.
func takeFlashes(c *gin.Context) []models.Flash {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		log.Error("failed to save session", "error", err)
	}
	flashes := make([]models.Flash, 0, len(raw))
	for _, f := range raw {
		if flash, ok := f.(models.Flash); ok {
			flashes = append(flashes, flash)
		}
	}
	return flashes
}
