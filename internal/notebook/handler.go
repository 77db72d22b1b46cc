package notebook

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"galvani/internal/auth"
	"galvani/internal/cell"
	"galvani/internal/live"
	"galvani/pkg/models"
)

type Handler struct {
	Repo   *Repo
	Cells  *cell.Service
	Hub    *live.Hub
	Logger *zap.Logger
}

func NewHandler(repo *Repo, cells *cell.Service, hub *live.Hub, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Repo: repo, Cells: cells, Hub: hub, Logger: logger}
}

// RegisterRoutes expects rg to be behind auth.AuthMiddleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/notebook", h.list)
	rg.POST("/notebook", h.add)
	rg.GET("/notebook/:id", h.getOne)
	rg.DELETE("/notebook/:id", h.remove)
}

type addReq struct {
	First  string `json:"first" binding:"required"`
	Second string `json:"second" binding:"required"`
	Note   string `json:"note" binding:"max=500"`
}

func (h *Handler) add(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req addReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first and second are required; note is at most 500 chars"})
		return
	}

	out, err := h.Cells.Simulate(c.Request.Context(), "notebook", req.First, req.Second)
	if err != nil {
		cell.RespondError(c, err)
		return
	}

	entry := EntryFrom(claims.UserID, out.Catalog, req.First, req.Second, strings.TrimSpace(req.Note), out.Resolution)
	if err := h.Repo.Insert(c.Request.Context(), entry); err != nil {
		h.Logger.Error("save notebook entry", zap.String("user_id", claims.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "save failed"})
		return
	}

	if h.Hub != nil {
		ev := live.NewCellEvent(live.EventNotebookSaved, "http", out.Catalog, out.Resolution)
		ev.UserID = claims.UserID
		ev.EntryID = entry.ID
		go h.Hub.Broadcast(ev)
	}

	c.JSON(http.StatusCreated, gin.H{
		"entry":   entry,
		"outcome": out,
	})
}

func (h *Handler) list(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var mode models.Mode
	switch m := models.Mode(strings.TrimSpace(c.Query("mode"))); m {
	case "", models.ModeRoleOnly, models.ModePotentialRanked:
		mode = m
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be role-only or potential-ranked"})
		return
	}

	limit := parseInt(c.Query("limit"), 20)
	offset := parseInt(c.Query("offset"), 0)

	items, total, err := h.Repo.List(c.Request.Context(), claims.UserID, mode, limit, offset)
	if err != nil {
		h.Logger.Error("list notebook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":  total,
		"limit":  limit,
		"offset": offset,
		"items":  items,
	})
}

func (h *Handler) getOne(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	e, err := h.Repo.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "get failed"})
		return
	}
	if e == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *Handler) remove(c *gin.Context) {
	claims := auth.MustGetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	id := c.Param("id")
	ok, err := h.Repo.Delete(c.Request.Context(), claims.UserID, id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "delete failed"})
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return
	}

	if h.Hub != nil {
		go h.Hub.Broadcast(live.CellEvent{
			Type:    live.EventNotebookDeleted,
			UserID:  claims.UserID,
			EntryID: id,
			At:      time.Now().UTC(),
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}

func parseInt(s string, def int) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
