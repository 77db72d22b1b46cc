package cell

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galvani/pkg/models"
)

type Handler struct {
	Service *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Service: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/species", h.listSpecies)          // GET /species
	rg.GET("/species/lookup", h.lookupSpecies) // GET /species/lookup?formula=
	rg.POST("/cells", h.resolve)               // POST /cells
}

func (h *Handler) listSpecies(c *gin.Context) {
	var role models.Role
	if s := c.Query("role"); s != "" {
		r, err := models.ParseRole(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		role = r
	}

	items := h.Service.Species(role)
	c.JSON(http.StatusOK, gin.H{
		"catalog": h.Service.CatalogName(),
		"mode":    h.Service.Engine.Resolver.Mode(),
		"total":   len(items),
		"items":   items,
	})
}

func (h *Handler) lookupSpecies(c *gin.Context) {
	formula, ok := c.GetQuery("formula")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "formula is required"})
		return
	}
	sp, err := h.Service.Lookup(formula)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sp)
}

type resolveReq struct {
	First  string `json:"first" binding:"required"`
	Second string `json:"second" binding:"required"`
}

func (h *Handler) resolve(c *gin.Context) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "first and second are required"})
		return
	}

	out, err := h.Service.Simulate(c.Request.Context(), "http", req.First, req.Second)
	if err != nil {
		RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}
