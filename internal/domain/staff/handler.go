package staff

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
	svc    *Service
	issuer *auth.TokenIssuer
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer) *Handler {
	return &Handler{svc: svc, issuer: issuer}
}

// RegisterRoutes wires the handler into three route groups: the open
// api group (login), the admin-only group (account creation) and the
// staff group (directory CRUD).
func (h *Handler) RegisterRoutes(api, admin, staffGroup *echo.Group) {
	api.POST("/login", h.Login)
	admin.POST("/users", h.CreateUser)
	staffGroup.GET("", h.List)
	staffGroup.GET("/:id", h.Get)
	staffGroup.POST("", h.Create)
	staffGroup.PUT("/:id", h.Update)
}

// Login accepts form-encoded credentials, matching the login page's
// plain form post.
func (h *Handler) Login(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")
	u, err := h.svc.Authenticate(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
		}
		log.Error().Err(err).Msg("login failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	token, err := h.issuer.Issue(u.Username, u.Role)
	if err != nil {
		log.Error().Err(err).Msg("token issue failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "login failed")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"token":    token,
		"username": u.Username,
		"role":     u.Role,
	})
}

type createUserRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Role     string     `json:"role"`
	StaffID  *uuid.UUID `json:"staffId"`
}

func (h *Handler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	u, err := h.svc.CreateUser(c.Request().Context(), req.Username, req.Password, req.Role, req.StaffID)
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("user create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, u)
}

func (h *Handler) List(c echo.Context) error {
	pg := pagination.FromContext(c, "lastName")
	items, total, err := h.svc.List(c.Request().Context(), pg)
	if err != nil {
		log.Error().Err(err).Msg("staff list failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "list failed")
	}
	if items == nil {
		items = []*Staff{}
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"staff":         items,
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
	st, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "staff not found")
		}
		log.Error().Err(err).Str("staff_id", id.String()).Msg("staff lookup failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "lookup failed")
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) Create(c echo.Context) error {
	var in Input
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	st, err := h.svc.Create(c.Request().Context(), &in)
	if err != nil {
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Msg("staff create failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "create failed")
	}
	return c.JSON(http.StatusCreated, st)
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
	st, err := h.svc.Update(c.Request().Context(), id, &in)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return echo.NewHTTPError(http.StatusNotFound, "staff not found")
		}
		if validate.IsError(err) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		log.Error().Err(err).Str("staff_id", id.String()).Msg("staff update failed")
		return echo.NewHTTPError(http.StatusInternalServerError, "update failed")
	}
	return c.JSON(http.StatusOK, st)
}
