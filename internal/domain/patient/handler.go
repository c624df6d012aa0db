package patient

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/clinova/clinova/internal/platform/auth"
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
	api.GET("/patients/search", h.Search)
	api.GET("/patients/:id", h.Get)
	api.POST("/patients", h.Create)
	api.PUT("/patients/:id", h.Update)
}

func (h *Handler) Search(c echo.Context) error {
	pg := pagination.FromContext(c, "lastName")
	q := SearchQuery{
		FirstName: c.QueryParam("firstName"),
		LastName:  c.QueryParam("lastName"),
		DOB:       c.QueryParam("dob"),
		Phone:     c.QueryParam("phone"),
		Email:     c.QueryParam("email"),
		City:      c.QueryParam("city"),
		State:     c.QueryParam("state"),
		Zip:       c.QueryParam("zip"),
	}
	items, total, err := h.svc.Search(c.Request().Context(), q, pg)
	if err != nil {
		log.Error().Err(err).Msg("patient search failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	rows := make([]map[string]interface{}, 0, len(items))
	for _, p := range items {
		rows = append(rows, p.Summary())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"patients":      rows,
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
	p, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		log.Error().Err(err).Str("patient_id", id.String()).Msg("patient lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, p.ToDTO())
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	actor := auth.UsernameFromContext(c.Request().Context())
	p, err := h.svc.Create(c.Request().Context(), &in, actor)
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("patient create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, p.ToDTO())
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
	actor := auth.UsernameFromContext(c.Request().Context())
	p, err := h.svc.Update(c.Request().Context(), id, &in, actor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "patient not found")
		}
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("patient_id", id.String()).Msg("patient update failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, p.ToDTO())
}
