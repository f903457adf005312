package delivery

import (
	"fmt"
	"net/http"

	"catalog_ui/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// NewRouter wires middleware, templates and every page route.
func NewRouter(workspaces *WorkspaceStore, logger *logrus.Logger, secureCookies bool) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse page templates: %w", err)
	}

	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		SuccessResponse(c, http.StatusOK, "OK", gin.H{"sessions": workspaces.Len()})
	})

	pages := router.Group("/")
	pages.Use(middleware.Session(logger, workspaces, secureCookies))
	NewCatalogHandler(workspaces, logger).RegisterRoutes(pages)
	NewSearchHandler(workspaces, logger).RegisterRoutes(pages)

	return router, nil
}
