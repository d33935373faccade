package httpserver

import (
	"context"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pricelist/internal/logging"
	"github.com/Skotchmaster/pricelist/internal/mykafka"
	"github.com/Skotchmaster/pricelist/internal/service"
	"github.com/Skotchmaster/pricelist/internal/transport"
)

type CatalogHTTP struct {
	Svc      *service.CatalogService
	Producer *mykafka.Producer
	ES       *elasticsearch.Client
	Index    string
}

func (h *CatalogHTTP) publish(c echo.Context, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := h.Producer.PublishEvent(ctx, "catalog_events", key, event); err != nil {
		c.Logger().Errorf("Kafka publish error: %v", err)
	}
}

func (h *CatalogHTTP) GetCategories(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_categories")

	categories, err := h.Svc.GetCategories(ctx)
	if err != nil {
		l.Error("get_categories_failed", "status", 500, "error", err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, categories)
}

func (h *CatalogHTTP) CreateCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_category")

	var req transport.CreateCategoryRequest
	if err := c.Bind(&req); err != nil {
		l.Warn("create_category_failed", "status", 400, "reason", "invalid body", "error", err)
		return errorJSON(c, http.StatusBadRequest, service.ErrNameRequired)
	}

	category, err := h.Svc.CreateCategory(ctx, req.Name)
	if err != nil {
		l.Warn("create_category_failed", "reason", err.Error())
		return mapError(c, err)
	}

	h.publish(c, category.ID, map[string]any{
		"type":       "category_created",
		"categoryID": category.ID,
		"name":       category.Name,
	})

	l.Info("create_category_success", "categoryID", category.ID)
	return c.JSON(http.StatusCreated, category)
}

func (h *CatalogHTTP) DeleteCategory(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_category")

	id := c.Param("id")
	if err := h.Svc.DeleteCategory(ctx, id); err != nil {
		l.Warn("delete_category_failed", "categoryID", id, "reason", err.Error())
		return mapError(c, err)
	}

	h.publish(c, id, map[string]any{
		"type":       "category_deleted",
		"categoryID": id,
	})

	l.Info("delete_category_success", "categoryID", id)
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}
