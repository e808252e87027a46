package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/core/ports"
)

type ExtensionHandler struct {
	extensionService ports.ExtensionService
}

func NewExtensionHandler(extensionService ports.ExtensionService) *ExtensionHandler {
	return &ExtensionHandler{extensionService: extensionService}
}

// List returns the phone list grouped by sector. The company selector is
// ignored for regular users.
//
// @Summary      Phone extensions
// @Tags         extensions
// @Produce      json
// @Security     BearerAuth
// @Param        company  query    string  false  "Company ID or all (admins only)"
// @Success      200      {array}  domain.SectorGroup
// @Router       /extensions [get]
func (h *ExtensionHandler) List(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	groups, err := h.extensionService.List(c.Request().Context(), v, c.QueryParam("company"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, groups)
}

// @Summary      Create extension
// @Tags         extensions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      extensionRequest  true  "Extension"
// @Success      201   {object}  domain.Extension
// @Failure      422   {object}  errorResponse
// @Router       /extensions [post]
func (h *ExtensionHandler) Create(c echo.Context) error {
	var req extensionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	e, err := h.extensionService.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// @Summary      Update extension
// @Tags         extensions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string            true  "Extension ID"
// @Param        body  body      extensionRequest  true  "Extension"
// @Success      200   {object}  domain.Extension
// @Failure      404   {object}  errorResponse
// @Router       /extensions/{id} [put]
func (h *ExtensionHandler) Update(c echo.Context) error {
	var req extensionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	e, err := h.extensionService.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// @Summary      Delete extension
// @Tags         extensions
// @Security     BearerAuth
// @Param        id   path  string  true  "Extension ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /extensions/{id} [delete]
func (h *ExtensionHandler) Delete(c echo.Context) error {
	if err := h.extensionService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
