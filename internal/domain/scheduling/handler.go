package scheduling

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/clinova/clinova/internal/platform/auth"
	"github.com/clinova/clinova/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/schedule/provider/:providerId", h.Schedule)
	api.GET("/schedule/appointment/:id", h.GetAppointment)
	api.POST("/schedule", h.Create)
	api.PUT("/schedule/:id", h.Update)
	api.DELETE("/schedule/:id", h.Delete)
	api.GET("/rooms", h.ListRooms)
	api.POST("/rooms", h.CreateRoom)
}

func (h *Handler) Schedule(c echo.Context) error {
	providerID, err := uuid.Parse(c.Param("providerId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid providerId")
	}
	events, err := h.svc.Schedule(c.Request().Context(), providerID, c.QueryParam("start"), c.QueryParam("end"))
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("provider_id", providerID.String()).Msg("schedule load failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "schedule load failed")
	}
	return c.JSON(http.StatusOK, events)
}

func (h *Handler) GetAppointment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	a, err := h.svc.GetAppointment(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.JSON(http.StatusNotFound, map[string]interface{}{"error": "appointment not found"})
		}
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("appointment lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, a.ToDTO())
}

func (h *Handler) Create(c echo.Context) error {
	var in CreateInput
	if err := c.Bind(&in); err != nil {
		return failure(c, http.StatusBadRequest, err.Error())
	}
	actor := auth.UsernameFromContext(c.Request().Context())
	a, err := h.svc.Create(c.Request().Context(), &in, actor)
	if err != nil {
		if validate.IsError(err) {
			return failure(c, http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("appointment create failed")
		return failure(c, http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "id": a.ID})
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return failure(c, http.StatusBadRequest, "invalid id")
	}
	var in UpdateInput
	if err := c.Bind(&in); err != nil {
		return failure(c, http.StatusBadRequest, err.Error())
	}
	actor := auth.UsernameFromContext(c.Request().Context())
	a, err := h.svc.Update(c.Request().Context(), id, &in, actor)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure(c, http.StatusNotFound, err.Error())
		}
		if validate.IsError(err) {
			return failure(c, http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("appointment update failed")
		return failure(c, http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true, "id": a.ID})
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return failure(c, http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return failure(c, http.StatusNotFound, err.Error())
		}
		log.Error().Err(err).Str("appointment_id", id.String()).Msg("appointment delete failed")
		return failure(c, http.StatusInternalServerError, "delete failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"success": true})
}

func (h *Handler) ListRooms(c echo.Context) error {
	rooms, err := h.svc.ListRooms(c.Request().Context())
	if err != nil {
		log.Error().Err(err).Msg("room list failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	if rooms == nil {
		rooms = []*Room{}
	}
	return c.JSON(http.StatusOK, rooms)
}

func (h *Handler) CreateRoom(c echo.Context) error {
	var rm Room
	if err := c.Bind(&rm); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateRoom(c.Request().Context(), &rm); err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("room create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, rm)
}

func failure(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]interface{}{"success": false, "error": msg})
}
