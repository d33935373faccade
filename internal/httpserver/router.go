package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	AuthHandler    *AuthHTTP
	SearchHandler  *SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	api := e.Group("/api")

	api.GET("/categories", d.CatalogHandler.GetCategories)
	api.GET("/items", d.CatalogHandler.GetItems)

	api.POST("/admin/login", d.AuthHandler.Login)
	api.POST("/admin/logout", d.AuthHandler.Logout)
	api.GET("/admin/me", d.AuthHandler.Me)

	if d.SearchHandler != nil && d.SearchHandler.ES != nil {
		api.GET("/search", d.SearchHandler.Search)
	}

	admin := api.Group("", d.AuthHandler.RequireAdmin)

	admin.POST("/categories", d.CatalogHandler.CreateCategory)
	admin.DELETE("/categories/:id", d.CatalogHandler.DeleteCategory)

	admin.POST("/items", d.CatalogHandler.CreateItem)
	admin.PUT("/items/:id", d.CatalogHandler.UpdateItem)
	admin.DELETE("/items/:id", d.CatalogHandler.DeleteItem)
}
