package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"tambo/internal/auth"
	apperrors "tambo/internal/errors"
	"tambo/internal/service"
)

// UserHandler handles customer profile endpoints.
type UserHandler struct {
	userService service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdateProfileRequest represents a partial profile update. Omitted fields
// keep their current value; a present password is re-hashed.
type UpdateProfileRequest struct {
	Name        string `json:"nombre"`
	Phone       string `json:"telefono"`
	City        string `json:"ciudad"`
	District    string `json:"distrito"`
	Address     string `json:"direccion"`
	AddressHint string `json:"referencia_domicilio"`
	Password    string `json:"password" validate:"omitempty,min=6"`
}

// GetProfile godoc
// @Summary Read a customer profile by email
// @Tags usuarios
// @Produce json
// @Param email path string true "Email"
// @Success 200 {object} model.User
// @Failure 404 {object} errors.ErrorResponse
// @Router /usuarios/{email} [get]
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.userService.GetByEmail(c.Request().Context(), c.Param("email"))
	if err != nil {
		return jsonError(c, err)
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update a customer profile
// @Tags usuarios
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateProfileRequest true "Profile fields"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Security BearerAuth
// @Router /usuarios/{id} [put]
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	id, err := parseID(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "ID inválido")
	}

	// Callers may only mutate their own row unless they hold the admin role.
	claims, ok := claimsFromContext(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if claims.Role != auth.RoleAdmin && claims.UserID != id {
		return jsonError(c, apperrors.ErrForbidden)
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.userService.UpdateProfile(c.Request().Context(), id, service.UpdateProfileInput{
		Name:        req.Name,
		Phone:       req.Phone,
		City:        req.City,
		District:    req.District,
		Address:     req.Address,
		AddressHint: req.AddressHint,
		Password:    req.Password,
	})
	if err != nil {
		return jsonError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Perfil actualizado correctamente",
		"usuario": user,
	})
}

// claimsFromContext extracts the parsed token claims set by the JWT middleware.
func claimsFromContext(c echo.Context) (*auth.Claims, bool) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return nil, false
	}
	claims, ok := token.Claims.(*auth.Claims)
	return claims, ok
}
