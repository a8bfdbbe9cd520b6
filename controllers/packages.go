package controllers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

type PackageStore interface {
	ListPackages(ctx context.Context, options utils.ListOptions, filter repos.PackageFilter) ([]*billing.Package, int, error)
	GetPackage(ctx context.Context, id int64) (*billing.Package, error)
	CreatePackage(ctx context.Context, pkg *billing.Package) error
	UpdatePackage(ctx context.Context, id int64, patch repos.PackagePatch) (*billing.Package, error)
	DeletePackage(ctx context.Context, id int64) (*billing.Package, error)
}

type PackagesController struct {
	fx.In

	Repo PackageStore
}

type createPackageRequest struct {
	Name         string  `json:"name" validate:"required,max=255"`
	Description  string  `json:"description"`
	ImageUrl     string  `json:"imageUrl"`
	SelectedMenu []int64 `json:"selectedMenu" validate:"dive,gt=0"`
}

type updatePackageRequest struct {
	Name         *string  `json:"name" validate:"omitempty,min=1,max=255"`
	Description  *string  `json:"description"`
	ImageUrl     *string  `json:"imageUrl"`
	SelectedMenu *[]int64 `json:"selectedMenu" validate:"omitempty,dive,gt=0"`
}

func RegisterPackagesController(r *utils.Router, c PackagesController) {
	packages := r.Group("/packages")

	packages.Get("/", r.Session, c.listPackages)
	packages.Get("/:id", r.Session, c.getPackage)
	packages.Post("/", r.Session, c.createPackage)
	packages.Put("/:id", r.Session, c.updatePackage)
	packages.Delete("/:id", r.Session, c.deletePackage)
}

func (r *PackagesController) listPackages(c *fiber.Ctx) error {
	options, ok, err := parseListOptions(c, repos.PackageSortColumns)
	if !ok {
		return err
	}

	packages, total, err := r.Repo.ListPackages(c.UserContext(), options, repos.PackageFilter{Name: c.Query("name")})
	if err != nil {
		return utils.StandardInternalError(c, "Failed to retrieve packages", err)
	}

	return utils.RespondOK(c, "Packages retrieved successfully", utils.NewPage(packages, total, options))
}

func (r *PackagesController) getPackage(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Package not found")
	}

	pkg, err := r.Repo.GetPackage(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Package not found", "Failed to retrieve package")
	}

	return utils.RespondOK(c, "Package retrieved successfully", pkg)
}

func (r *PackagesController) createPackage(c *fiber.Ctx) error {
	req := new(createPackageRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	pkg := &billing.Package{
		Name:         req.Name,
		Description:  req.Description,
		ImageUrl:     req.ImageUrl,
		SelectedMenu: req.SelectedMenu,
	}

	if err := r.Repo.CreatePackage(c.UserContext(), pkg); err != nil {
		return repoError(c, err, "Package not found", "Failed to create package")
	}

	return utils.RespondCreated(c, "Package created successfully", pkg)
}

func (r *PackagesController) updatePackage(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Package not found")
	}

	req := new(updatePackageRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	pkg, err := r.Repo.UpdatePackage(c.UserContext(), id, repos.PackagePatch{
		Name:         req.Name,
		Description:  req.Description,
		ImageUrl:     req.ImageUrl,
		SelectedMenu: req.SelectedMenu,
	})
	if err != nil {
		return repoError(c, err, "Package not found", "Failed to update package")
	}

	return utils.RespondOK(c, "Package updated successfully", pkg)
}

func (r *PackagesController) deletePackage(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Package not found")
	}

	pkg, err := r.Repo.DeletePackage(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Package not found", "Failed to delete package")
	}

	return utils.RespondOK(c, "Package deleted successfully", pkg)
}
