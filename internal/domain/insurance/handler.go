package insurance

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/clinova/clinova/pkg/pagination"
	"github.com/clinova/clinova/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/insurances", h.List)
	api.GET("/insurances/:id", h.Get)
	api.POST("/insurances", h.Create)
	api.PUT("/insurances/:id", h.Update)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c, "providerName")
	items, total, err := h.svc.List(c.Request().Context(), c.QueryParam("providerName"), pg)
	if err != nil {
		log.Error().Err(err).Msg("insurance list failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	if items == nil {
		items = []*Insurance{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"insurances":    items,
		"page":          pg.Page,
		"totalPages":    pagination.TotalPages(total, pg.Size),
		"totalElements": total,
	})
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	ins, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "insurance not found")
		}
		log.Error().Err(err).Str("insurance_id", id.String()).Msg("insurance lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, ins)
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ins, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("insurance create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, ins)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ins, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "insurance not found")
		}
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("insurance_id", id.String()).Msg("insurance update failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, ins)
}
