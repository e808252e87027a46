package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ayel/intranet/internal/core/ports"
)

type TrainingHandler struct {
	trainingService ports.TrainingService
}

func NewTrainingHandler(trainingService ports.TrainingService) *TrainingHandler {
	return &TrainingHandler{trainingService: trainingService}
}

// List returns trainings, newest first.
//
// @Summary      List trainings
// @Tags         trainings
// @Produce      json
// @Security     BearerAuth
// @Param        company   query     string  false  "Company ID or all"
// @Param        category  query     string  false  "vendedor, tecnico, suporte, geral or all"
// @Success      200       {array}   domain.Training
// @Router       /trainings [get]
func (h *TrainingHandler) List(c echo.Context) error {
	list, err := h.trainingService.List(c.Request().Context(), c.QueryParam("company"), c.QueryParam("category"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one training.
//
// @Summary      Get training
// @Tags         trainings
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Training ID"
// @Success      200  {object}  domain.Training
// @Failure      404  {object}  errorResponse
// @Router       /trainings/{id} [get]
func (h *TrainingHandler) Get(c echo.Context) error {
	t, err := h.trainingService.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// Create adds a training.
//
// @Summary      Create training
// @Tags         trainings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      trainingRequest  true  "Training"
// @Success      201   {object}  domain.Training
// @Failure      422   {object}  errorResponse
// @Router       /trainings [post]
func (h *TrainingHandler) Create(c echo.Context) error {
	var req trainingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	t, err := h.trainingService.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

// Update replaces a training.
//
// @Summary      Update training
// @Tags         trainings
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string           true  "Training ID"
// @Param        body  body      trainingRequest  true  "Training"
// @Success      200   {object}  domain.Training
// @Failure      404   {object}  errorResponse
// @Router       /trainings/{id} [put]
func (h *TrainingHandler) Update(c echo.Context) error {
	var req trainingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	t, err := h.trainingService.Update(c.Request().Context(), c.Param("id"), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

// @Summary      Delete training
// @Tags         trainings
// @Security     BearerAuth
// @Param        id   path  string  true  "Training ID"
// @Success      204
// @Failure      404  {object}  errorResponse
// @Router       /trainings/{id} [delete]
func (h *TrainingHandler) Delete(c echo.Context) error {
	if err := h.trainingService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
