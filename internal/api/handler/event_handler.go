package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/core/domain"
	"github.com/ayel/intranet/internal/core/ports"
)

type EventHandler struct {
	eventService ports.EventService
}

func NewEventHandler(eventService ports.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// List returns the calendar visible to the caller, sorted and grouped by date.
//
// @Summary      Calendar events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     int  false  "Month 1-12; omit for all"
// @Success      200    {object}  calendarResponse
// @Failure      422    {object}  errorResponse
// @Router       /events [get]
func (h *EventHandler) List(c echo.Context) error {
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

	events, err := h.eventService.List(c.Request().Context(), v, month)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, calendarResponse{Events: events, ByDate: domain.EventsByDate(events)})
}

// Get returns one event.
//
// @Summary      Get event
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Event ID"
// @Success      200  {object}  domain.Event
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [get]
func (h *EventHandler) Get(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	e, err := h.eventService.Get(c.Request().Context(), v, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Create adds a calendar event.
//
// @Summary      Create event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      eventRequest  true  "Event"
// @Success      201   {object}  domain.Event
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /events [post]
func (h *EventHandler) Create(c echo.Context) error {
	v, err := viewer(c)
	if err != nil {
		return err
	}
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	e, err := h.eventService.Create(c.Request().Context(), v, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, e)
}

// Update replaces an event.
//
// @Summary      Update event
// @Tags         events
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string        true  "Event ID"
// @Param        body  body      eventRequest  true  "Event"
// @Success      200   {object}  domain.Event
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /events/{id} [put]
func (h *EventHandler) Update(c echo.Context) error {
	var req eventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	e, err := h.eventService.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, e)
}

// Delete removes an event.
//
// @Summary      Delete event
// @Tags         events
// @Security     BearerAuth
// @Param        id   path  string  true  "Event ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /events/{id} [delete]
func (h *EventHandler) Delete(c echo.Context) error {
	if err := h.eventService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
