package delivery

import (
	"net/http"

	"catalog_ui/internal/currency"
	"catalog_ui/internal/middleware"
	"catalog_ui/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/sirupsen/logrus"
)

type productForm struct {
	Name       string `form:"nome"`
	Price      string `form:"preco"`
	Quantity   string `form:"quantidade"`
	CategoryID int    `form:"categoriaId"`
}

type listFilterForm struct {
	Name       string `form:"busca"`
	CategoryID int    `form:"categoriaBusca"`
}

type priceForm struct {
	Price string `form:"preco"`
}

type catalogPage struct {
	Form usecase.RegistrationSnapshot
	List usecase.ListSnapshot
}

// CatalogHandler serves the registration form and the product list with inline
// edit and delete.
type CatalogHandler struct {
	workspaces *WorkspaceStore
	log        *logrus.Logger
}

func NewCatalogHandler(workspaces *WorkspaceStore, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		workspaces: workspaces,
		log:        logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/", h.ShowCatalog)

	products := router.Group("/produtos")
	{
		products.POST("", h.RegisterProduct)
		products.POST("/preco", h.FormatPrice)
	}

	list := router.Group("/lista")
	{
		list.POST("/filtro", h.ApplyFilter)
		list.POST("/produtos/:id/editar", h.StartEdit)
		list.POST("/produtos/:id/excluir", h.RequestDelete)
		list.POST("/edicao/salvar", h.SaveEdit)
		list.POST("/edicao/cancelar", h.CancelEdit)
		list.POST("/exclusao/confirmar", h.ConfirmDelete)
		list.POST("/exclusao/cancelar", h.RejectDelete)
	}
}

func (h *CatalogHandler) workspace(c *gin.Context) (*Workspace, func()) {
	return h.workspaces.Acquire(c.GetString(middleware.SessionKey))
}

func (h *CatalogHandler) ShowCatalog(c *gin.Context) {
	ws, release := h.workspace(c)
	defer release()

	ws.List.Mount(c.Request.Context())
	page := catalogPage{
		Form: ws.Form.Snapshot(),
		List: ws.List.Snapshot(),
	}
	ws.Form.ClearNotice()

	c.HTML(http.StatusOK, "catalog.tmpl", page)
}

func (h *CatalogHandler) RegisterProduct(c *gin.Context) {
	var form productForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.log.Warnf("Failed to bind registration form: %v", err)
		c.String(http.StatusBadRequest, "Formulário inválido")
		return
	}

	ws, release := h.workspace(c)
	defer release()

	ws.Form.SetName(form.Name)
	ws.Form.SetPrice(form.Price)
	if !ws.Form.SetQuantity(form.Quantity) {
		h.log.Debugf("Rejected non-numeric quantity %q", form.Quantity)
	}
	ws.Form.SetCategory(form.CategoryID)
	ws.Form.Submit(c.Request.Context())

	redirect(c, "/")
}

// FormatPrice re-renders price keystrokes for the live-formatting script.
func (h *CatalogHandler) FormatPrice(c *gin.Context) {
	var form priceForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if !currency.Fits(form.Price) {
		ErrorResponse(c, http.StatusUnprocessableEntity, usecase.MsgInvalidPrice)
		return
	}
	formatted := currency.FormatDigits(form.Price)
	c.JSON(http.StatusOK, gin.H{
		"formatted": formatted,
		"value":     currency.Parse(formatted),
	})
}

func (h *CatalogHandler) ApplyFilter(c *gin.Context) {
	var form listFilterForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.log.Warnf("Failed to bind list filter: %v", err)
		c.String(http.StatusBadRequest, "Filtro inválido")
		return
	}

	ws, release := h.workspace(c)
	defer release()

	ws.List.SetDraftName(form.Name)
	ws.List.SetDraftCategory(form.CategoryID)
	ws.List.ApplyFilter(c.Request.Context())

	redirect(c, "/")
}

func (h *CatalogHandler) StartEdit(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "StartEdit")
	id, ok := productID(c, handlerLogger)
	if !ok {
		return
	}

	ws, release := h.workspace(c)
	defer release()

	if !ws.List.StartEdit(id) {
		handlerLogger.Warnf("Product %d is not in the list", id)
	}
	redirect(c, "/")
}

func (h *CatalogHandler) SaveEdit(c *gin.Context) {
	var form productForm
	if err := c.ShouldBindWith(&form, binding.Form); err != nil {
		h.log.Warnf("Failed to bind edit form: %v", err)
		c.String(http.StatusBadRequest, "Formulário inválido")
		return
	}

	ws, release := h.workspace(c)
	defer release()

	ws.List.SetEditName(form.Name)
	ws.List.SetEditPrice(form.Price)
	ws.List.SetEditQuantity(form.Quantity)
	ws.List.SetEditCategory(form.CategoryID)
	ws.List.SaveEdit(c.Request.Context())

	redirect(c, "/")
}

func (h *CatalogHandler) CancelEdit(c *gin.Context) {
	ws, release := h.workspace(c)
	defer release()

	ws.List.CancelEdit()
	redirect(c, "/")
}

func (h *CatalogHandler) RequestDelete(c *gin.Context) {
	handlerLogger := h.log.WithField("handler", "RequestDelete")
	id, ok := productID(c, handlerLogger)
	if !ok {
		return
	}

	ws, release := h.workspace(c)
	defer release()

	if !ws.List.RequestDelete(id) {
		handlerLogger.Warnf("Product %d is not in the list", id)
	}
	redirect(c, "/")
}

func (h *CatalogHandler) ConfirmDelete(c *gin.Context) {
	ws, release := h.workspace(c)
	defer release()

	ws.List.ConfirmDelete(c.Request.Context())
	redirect(c, "/")
}

func (h *CatalogHandler) RejectDelete(c *gin.Context) {
	ws, release := h.workspace(c)
	defer release()

	ws.List.RejectDelete()
	redirect(c, "/")
}
