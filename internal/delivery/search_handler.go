package delivery

import (
	"net/http"

	"catalog_ui/internal/middleware"
	"catalog_ui/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

type searchForm struct {
	Name       string `form:"nome"`
	CategoryID int    `form:"categoriaId"`
}

type searchPage struct {
	List usecase.ListSnapshot
}

// SearchHandler serves the search page backed by the API's search endpoint.
type SearchHandler struct {
	workspaces *WorkspaceStore
	log        *logrus.Logger
}

func NewSearchHandler(workspaces *WorkspaceStore, logger *logrus.Logger) *SearchHandler {
	return &SearchHandler{
		workspaces: workspaces,
		log:        logger,
	}
}

func (h *SearchHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/busca", h.ShowSearch)
	router.POST("/busca", h.Search)
}

func (h *SearchHandler) ShowSearch(c *gin.Context) {
	ws, release := h.workspaces.Acquire(c.GetString(middleware.SessionKey))
	defer release()

	ws.Search.Mount(c.Request.Context())
	c.HTML(http.StatusOK, "busca.tmpl", searchPage{List: ws.Search.Snapshot()})
}

func (h *SearchHandler) Search(c *gin.Context) {
	var form searchForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.log.Warnf("Failed to bind search form: %v", err)
		c.String(http.StatusBadRequest, "Busca inválida")
		return
	}

	ws, release := h.workspaces.Acquire(c.GetString(middleware.SessionKey))
	defer release()

	ws.Search.SetDraftName(form.Name)
	ws.Search.SetDraftCategory(form.CategoryID)
	ws.Search.ApplyFilter(c.Request.Context())
	h.log.Infof("Search (nome=%q, categoriaId=%d) returned %d products", form.Name, form.CategoryID, len(ws.Search.Visible()))

	redirect(c, "/busca")
}
