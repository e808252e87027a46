package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/core/ports"
)

type ShortcutHandler struct {
	shortcutService ports.ShortcutService
}

func NewShortcutHandler(shortcutService ports.ShortcutService) *ShortcutHandler {
	return &ShortcutHandler{shortcutService: shortcutService}
}

// @Summary      List shortcuts
// @Tags         shortcuts
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Shortcut
// @Router       /shortcuts [get]
func (h *ShortcutHandler) List(c echo.Context) error {
	list, err := h.shortcutService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// @Summary      Create shortcut
// @Tags         shortcuts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      shortcutRequest  true  "Shortcut"
// @Success      201   {object}  domain.Shortcut
// @Failure      422   {object}  errorResponse
// @Router       /shortcuts [post]
func (h *ShortcutHandler) Create(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req shortcutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	sc, err := h.shortcutService.Create(c.Request().Context(), v, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sc)
}

// @Summary      Update shortcut
// @Tags         shortcuts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Shortcut ID"
// @Param        body  body      shortcutRequest  true  "Shortcut"
// @Success      200   {object}  domain.Shortcut
// @Failure      404   {object}  errorResponse
// @Router       /shortcuts/{id} [put]
func (h *ShortcutHandler) Update(c echo.Context) error {
	var req shortcutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	sc, err := h.shortcutService.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sc)
}

// @Summary      Delete shortcut
// @Tags         shortcuts
// @Security     BearerAuth
// @Param        id   path  string  true  "Shortcut ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /shortcuts/{id} [delete]
func (h *ShortcutHandler) Delete(c echo.Context) error {
	if err := h.shortcutService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
