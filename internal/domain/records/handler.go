package records

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/clinova/clinova/pkg/validate"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/patients/:id/notes", h.ListNotes)
	api.POST("/patients/:id/notes", h.CreateNote)
	api.GET("/notes/:id", h.GetNote)
	api.DELETE("/notes/:id", h.DeleteNote)

	api.GET("/patients/:id/documents", h.ListDocuments)
	api.POST("/patients/:id/documents", h.CreateDocument)
	api.GET("/documents/:id", h.GetDocument)
	api.DELETE("/documents/:id", h.DeleteDocument)
}

func pathID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// -- Notes --

func (h *Handler) ListNotes(c echo.Context) error {
	patientID, err := pathID(c)
	if err != nil {
		return err
	}
	notes, err := h.svc.ListNotes(c.Request().Context(), patientID)
	if err != nil {
		log.Error().Err(err).Msg("note list failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	if notes == nil {
		notes = []*MedicalNote{}
	}
	return c.JSON(http.StatusOK, notes)
}

func (h *Handler) CreateNote(c echo.Context) error {
	patientID, err := pathID(c)
	if err != nil {
		return err
	}
	var in NoteInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	n, err := h.svc.CreateNote(c.Request().Context(), patientID, &in)
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("note create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, n)
}

func (h *Handler) GetNote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	n, err := h.svc.GetNote(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "note not found")
		}
		log.Error().Err(err).Str("note_id", id.String()).Msg("note lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, n)
}

func (h *Handler) DeleteNote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteNote(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "note not found")
		}
		log.Error().Err(err).Str("note_id", id.String()).Msg("note delete failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// -- Documents --

func (h *Handler) ListDocuments(c echo.Context) error {
	patientID, err := pathID(c)
	if err != nil {
		return err
	}
	docs, err := h.svc.ListDocuments(c.Request().Context(), patientID)
	if err != nil {
		log.Error().Err(err).Msg("document list failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	if docs == nil {
		docs = []*Document{}
	}
	return c.JSON(http.StatusOK, docs)
}

func (h *Handler) CreateDocument(c echo.Context) error {
	patientID, err := pathID(c)
	if err != nil {
		return err
	}
	var in DocumentInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	d, err := h.svc.CreateDocument(c.Request().Context(), patientID, &in)
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("document create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, d)
}

func (h *Handler) GetDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	d, err := h.svc.GetDocument(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "document not found")
		}
		log.Error().Err(err).Str("document_id", id.String()).Msg("document lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, d)
}

func (h *Handler) DeleteDocument(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.svc.DeleteDocument(c.Request().Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "document not found")
		}
		log.Error().Err(err).Str("document_id", id.String()).Msg("document delete failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "delete failed")
	}
	return c.NoContent(http.StatusNoContent)
}
