package controllers

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

type MenuStore interface {
	ListMenus(ctx context.Context, options utils.ListOptions, filter repos.MenuFilter) ([]*rbac.Menu, int, error)
	GetMenu(ctx context.Context, id int64) (*rbac.Menu, error)
	CreateMenu(ctx context.Context, menu *rbac.Menu) error
	UpdateMenu(ctx context.Context, id int64, patch repos.MenuPatch) (*rbac.Menu, error)
	DeleteMenu(ctx context.Context, id int64) (*rbac.Menu, error)
}

type MenusController struct {
	fx.In

	Repo MenuStore
}

type createMenuRequest struct {
	Name           string          `json:"name" validate:"required,max=255"`
	Description    string          `json:"description"`
	UrlMenu        string          `json:"urlMenu"`
	IconMenu       string          `json:"iconMenu"`
	Category       string          `json:"category" validate:"max=255"`
	OrderingNumber int             `json:"orderingNumber"`
	ParentMenu     json.RawMessage `json:"parentMenu"`
}

type updateMenuRequest struct {
	Name           *string         `json:"name" validate:"omitempty,min=1,max=255"`
	Description    *string         `json:"description"`
	UrlMenu        *string         `json:"urlMenu"`
	IconMenu       *string         `json:"iconMenu"`
	Category       *string         `json:"category" validate:"omitempty,max=255"`
	OrderingNumber *int            `json:"orderingNumber"`
	ParentMenu     json.RawMessage `json:"parentMenu"`
}

// RegisterMenusController mounts the menu routes. Listing menus is public so
// the login screen can render navigation.
func RegisterMenusController(r *utils.Router, c MenusController) {
	menus := r.Group("/menu")

	menus.Get("/", c.listMenus)
	menus.Get("/:id", r.Session, c.getMenu)
	menus.Post("/", r.Session, c.createMenu)
	menus.Put("/:id", r.Session, c.updateMenu)
	menus.Delete("/:id", r.Session, c.deleteMenu)
}

func (r *MenusController) listMenus(c *fiber.Ctx) error {
	options, ok, err := parseListOptions(c, repos.MenuSortColumns)
	if !ok {
		return err
	}

	menus, total, err := r.Repo.ListMenus(c.UserContext(), options, repos.MenuFilter{
		Name:     c.Query("name"),
		Category: c.Query("category"),
	})
	if err != nil {
		return utils.StandardInternalError(c, "Failed to retrieve menus", err)
	}

	return utils.RespondOK(c, "Menus retrieved successfully", utils.NewPage(menus, total, options))
}

func (r *MenusController) getMenu(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Menu not found")
	}

	menu, err := r.Repo.GetMenu(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Menu not found", "Failed to retrieve menu")
	}

	return utils.RespondOK(c, "Menu retrieved successfully", menu)
}

func (r *MenusController) createMenu(c *fiber.Ctx) error {
	req := new(createMenuRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	menu := &rbac.Menu{
		Name:           req.Name,
		Description:    req.Description,
		UrlMenu:        req.UrlMenu,
		IconMenu:       req.IconMenu,
		Category:       req.Category,
		OrderingNumber: req.OrderingNumber,
	}
	if !isEmptyJson(req.ParentMenu) {
		menu.ParentMenu = req.ParentMenu
	}

	if err := r.Repo.CreateMenu(c.UserContext(), menu); err != nil {
		return repoError(c, err, "Menu not found", "Failed to create menu")
	}

	return utils.RespondCreated(c, "Menu created successfully", menu)
}

func (r *MenusController) updateMenu(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Menu not found")
	}

	req := new(updateMenuRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	menu, err := r.Repo.UpdateMenu(c.UserContext(), id, repos.MenuPatch{
		Name:           req.Name,
		Description:    req.Description,
		UrlMenu:        req.UrlMenu,
		IconMenu:       req.IconMenu,
		Category:       req.Category,
		OrderingNumber: req.OrderingNumber,
		ParentMenu:     req.ParentMenu,
	})
	if err != nil {
		return repoError(c, err, "Menu not found", "Failed to update menu")
	}

	return utils.RespondOK(c, "Menu updated successfully", menu)
}

func (r *MenusController) deleteMenu(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Menu not found")
	}

	menu, err := r.Repo.DeleteMenu(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Menu not found", "Failed to delete menu")
	}

	return utils.RespondOK(c, "Menu deleted successfully", menu)
}
