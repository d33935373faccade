package httpserver

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/pricelist/internal/logging"
	"github.com/Skotchmaster/pricelist/internal/models"
	"github.com/Skotchmaster/pricelist/internal/service"
	"github.com/Skotchmaster/pricelist/internal/service/search"
	"github.com/Skotchmaster/pricelist/internal/transport"
)

func (h *CatalogHTTP) GetItems(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.get_items")

	items, err := h.Svc.GetItems(ctx, c.QueryParam("categoryId"), c.QueryParam("q"))
	if err != nil {
		l.Error("get_items_failed", "status", 500, "error", err)
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

// itemForm reads the multipart fields shared by create and update. A
// missing icon file comes back as empty bytes; the service decides
// whether that is an error.
func (h *CatalogHTTP) itemForm(c echo.Context) (service.CreateItemInput, error) {
	in := service.CreateItemInput{
		CategoryID: c.FormValue("categoryId"),
		Name:       c.FormValue("name"),
		Price:      c.FormValue("price"),
	}

	fh, err := c.FormFile("icon")
	if err != nil {
		return in, nil
	}

	f, err := fh.Open()
	if err != nil {
		return in, err
	}
	defer f.Close()

	// One byte past the limit is enough for ingest to reject it.
	raw, err := io.ReadAll(io.LimitReader(f, h.Svc.MaxIconBytes+1))
	if err != nil {
		return in, err
	}

	in.IconBytes = raw
	in.IconMIME = fh.Header.Get("Content-Type")
	return in, nil
}

func (h *CatalogHTTP) indexItem(c echo.Context, item *models.Item) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.IndexItem(ctx, h.ES, h.Index, item); err != nil {
		c.Logger().Errorf("ES index error: %v", err)
	}
}

func (h *CatalogHTTP) unindexItem(c echo.Context, id string) {
	if h.ES == nil {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := search.DeleteItem(ctx, h.ES, h.Index, id); err != nil {
		c.Logger().Errorf("ES delete error: %v", err)
	}
}

func (h *CatalogHTTP) CreateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.create_item")

	in, err := h.itemForm(c)
	if err != nil {
		l.Warn("create_item_failed", "status", 400, "reason", "invalid form", "error", err)
		return errorJSON(c, http.StatusBadRequest, err)
	}

	item, err := h.Svc.CreateItem(ctx, in)
	if err != nil {
		l.Warn("create_item_failed", "reason", err.Error())
		return mapError(c, err)
	}

	h.publish(c, item.ID, map[string]any{
		"type":   "item_created",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("create_item_success", "itemID", item.ID)
	return c.JSON(http.StatusCreated, item)
}

func (h *CatalogHTTP) UpdateItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.update_item")

	id := c.Param("id")
	in, err := h.itemForm(c)
	if err != nil {
		l.Warn("update_item_failed", "status", 400, "reason", "invalid form", "error", err)
		return errorJSON(c, http.StatusBadRequest, err)
	}

	item, err := h.Svc.UpdateItem(ctx, id, in)
	if err != nil {
		l.Warn("update_item_failed", "itemID", id, "reason", err.Error())
		return mapError(c, err)
	}

	h.publish(c, item.ID, map[string]any{
		"type":   "item_updated",
		"itemID": item.ID,
		"name":   item.Name,
	})
	h.indexItem(c, item)

	l.Info("update_item_success", "itemID", item.ID)
	return c.JSON(http.StatusOK, item)
}

func (h *CatalogHTTP) DeleteItem(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "catalog.delete_item")

	id := c.Param("id")
	if err := h.Svc.DeleteItem(ctx, id); err != nil {
		l.Warn("delete_item_failed", "itemID", id, "reason", err.Error())
		return mapError(c, err)
	}

	h.publish(c, id, map[string]any{
		"type":   "item_deleted",
		"itemID": id,
	})
	h.unindexItem(c, id)

	l.Info("delete_item_success", "itemID", id)
	return c.JSON(http.StatusOK, transport.OKResponse{OK: true})
}
