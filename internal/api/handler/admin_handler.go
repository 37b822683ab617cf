package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/zopuu/soa-team-20/internal/core/ports"
)

// AdminHandler handles the privileged account management routes. The routes
// sit behind the Auth and RBAC(Admin) middleware, so handlers can assume an
// authenticated Admin caller.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// List returns every account.
//
// @Summary      List all accounts
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Account
// @Failure      401  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /api/admin [get]
func (h *AdminHandler) List(c echo.Context) error {
	accounts, err := h.adminService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, accounts)
}

// Block blocks an account by id.
//
// @Summary      Block an account
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/{id}/block [put]
func (h *AdminHandler) Block(c echo.Context) error {
	if err := h.adminService.Block(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Unblock restores a blocked account by id.
//
// @Summary      Unblock an account
// @Tags         admin
// @Security     BearerAuth
// @Param        id  path  string  true  "Account id"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/admin/{id}/unblock [put]
func (h *AdminHandler) Unblock(c echo.Context) error {
	if err := h.adminService.Unblock(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
