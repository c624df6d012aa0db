package provider

import (
	"errors"
	"net/http"
	"strconv"

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
	api.GET("/providers/search", h.Search)
	api.GET("/providers/:id", h.Get)
	api.POST("/providers", h.Create)
	api.PUT("/providers/:id", h.Update)
}

func (h *Handler) Search(c echo.Context) error {
	pg := pagination.FromContext(c, "lastName")
	q := SearchQuery{
		FirstName:      c.QueryParam("firstName"),
		LastName:       c.QueryParam("lastName"),
		Specialty:      c.QueryParam("specialty"),
		InPracticeOnly: boolParam(c, "inPracticeOnly"),
		ActiveOnly:     boolParam(c, "activeOnly"),
	}
	items, total, err := h.svc.Search(c.Request().Context(), q, pg)
	if err != nil {
		log.Error().Err(err).Msg("provider search failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "search failed")
	}
	rows := make([]DTO, 0, len(items))
	for _, p := range items {
		rows = append(rows, p.ToDTO())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"providers":     rows,
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
			return echo.NewHTTPError(http.StatusNotFound, "provider not found")
		}
		log.Error().Err(err).Str("provider_id", id.String()).Msg("provider lookup failed")
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
		log.Error().Err(err).Msg("provider create failed")
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
			return echo.NewHTTPError(http.StatusNotFound, "provider not found")
		}
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("provider_id", id.String()).Msg("provider update failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, p.ToDTO())
}

// boolParam reads a tri-state boolean query parameter: absent or
// unparseable values mean "no filter".
func boolParam(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}
