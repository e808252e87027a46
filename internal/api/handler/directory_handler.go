package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/core/ports"
)

type DirectoryHandler struct {
	directoryService ports.DirectoryService
}

func NewDirectoryHandler(directoryService ports.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

// Search finds collaborators by name, sector, email, phone or company.
//
// @Summary      Search directory
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        q    query    string  false  "Free text"
// @Success      200  {array}  domain.Collaborator
// @Router       /directory [get]
func (h *DirectoryHandler) Search(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	list, err := h.directoryService.Search(c.Request().Context(), v, c.QueryParam("q"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Birthdays lists the birthdays of a month together with the next upcoming one.
//
// @Summary      Birthdays
// @Tags         directory
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month 1-12; defaults to the current month"
// @Success      200    {object}  birthdaysResponse
// @Failure      422    {object}  errorResponse
// @Router       /directory/birthdays [get]
func (h *DirectoryHandler) Birthdays(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	month := 0
	if raw := c.QueryParam("month"); raw != "" {
		month, err = strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "month must be a number")
		}
	}

	ctx := c.Request().Context()
	list, err := h.directoryService.Birthdays(ctx, v, time.Month(month))
	if err != nil {
		return err
	}
	next, err := h.directoryService.NextBirthday(ctx, v)
	if err != nil {
		return err
	}
	if month == 0 {
		month = int(time.Now().Month())
	}
	return c.JSON(http.StatusOK, birthdaysResponse{Month: month, Collaborators: list, Next: next})
}
