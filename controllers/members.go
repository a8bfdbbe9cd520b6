package controllers

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"go.uber.org/fx"
)

type MemberStore interface {
	ListMembers(ctx context.Context, options utils.ListOptions, filter repos.MemberFilter) ([]*userdata.Member, int, error)
	GetMember(ctx context.Context, id int64) (*userdata.Member, error)
	CreateComposite(ctx context.Context, member *userdata.Member, admin *userdata.MemberAdministration, relatives []*userdata.MemberRelative) error
	UpdateComposite(ctx context.Context, id int64, update repos.MemberUpdate) (*userdata.Member, error)
	DeleteMember(ctx context.Context, id int64) (*userdata.Member, error)
}

type MembersController struct {
	fx.In

	Repo MemberStore
}

type relativeRequest struct {
	FullName     string `json:"fullName" validate:"required,max=255"`
	RelationType string `json:"relationType" validate:"max=64"`
	PhoneNumber  string `json:"phoneNumber" validate:"max=32"`
	IsEmergency  bool   `json:"isEmergency"`
}

type memberFields struct {
	PhoneNumber   *string         `json:"phoneNumber" validate:"omitempty,max=32"`
	FirstName     *string         `json:"firstName" validate:"omitempty,max=255"`
	LastName      *string         `json:"lastName" validate:"omitempty,max=255"`
	FullName      *string         `json:"fullName" validate:"omitempty,max=255"`
	Name          *string         `json:"name" validate:"omitempty,max=255"`
	HomeAddress   *string         `json:"homeAddress"`
	District      *string         `json:"district"`
	SubDistrict   *string         `json:"subDistrict"`
	BirthPlace    *string         `json:"birthPlace"`
	Gender        *string         `json:"gender" validate:"omitempty,max=32"`
	Nationality   *string         `json:"nationality"`
	Religion      *string         `json:"religion"`
	MaritalStatus *string         `json:"maritalStatus"`
	ProfileImage  *string         `json:"profileImage"`
	JoinedDate    *utils.FlexTime `json:"joinedDate"`
	ResignedDate  *utils.FlexTime `json:"resignedDate"`
	BirthDate     *utils.FlexTime `json:"birthDate"`

	TaxNumber                *string `json:"taxNumber"`
	TaxNumberAttachment      *string `json:"taxNumberAttachment"`
	IdentityNumber           *string `json:"identityNumber"`
	IdentityNumberAttachment *string `json:"identityNumberAttachment"`
}

type createMemberRequest struct {
	memberFields
	Email          string            `json:"email" validate:"required,email"`
	EmployeeNumber string            `json:"employeeNumber" validate:"max=64"`
	RoleId         int64             `json:"roleId" validate:"required,gt=0"`
	TeamId         *int64            `json:"teamId" validate:"omitempty,gt=0"`
	Relatives      []relativeRequest `json:"relatives" validate:"dive"`
}

type updateMemberRequest struct {
	memberFields
	RoleId    *int64             `json:"roleId" validate:"omitempty,gt=0"`
	TeamId    *int64             `json:"teamId" validate:"omitempty,gt=0"`
	Relatives *[]relativeRequest `json:"relatives" validate:"omitempty,dive"`
}

func RegisterMembersController(r *utils.Router, c MembersController) {
	members := r.Group("/members")

	members.Get("/", r.Session, c.listMembers)
	members.Get("/:id", r.Session, c.getMember)
	members.Post("/", r.Session, c.createMember)
	members.Put("/verify/:id", r.Session, c.updateMember)
	members.Put("/:id", r.Session, c.updateMember)
	members.Delete("/:id", r.Session, c.deleteMember)
}

func value(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRelatives(in []relativeRequest) []*userdata.MemberRelative {
	relatives := make([]*userdata.MemberRelative, 0, len(in))
	for _, r := range in {
		relatives = append(relatives, &userdata.MemberRelative{
			FullName:     r.FullName,
			RelationType: r.RelationType,
			PhoneNumber:  r.PhoneNumber,
			IsEmergency:  r.IsEmergency,
		})
	}
	return relatives
}

func (f memberFields) patch() repos.MemberPatch {
	return repos.MemberPatch{
		PhoneNumber:   f.PhoneNumber,
		FirstName:     f.FirstName,
		LastName:      f.LastName,
		FullName:      f.FullName,
		Name:          f.Name,
		HomeAddress:   f.HomeAddress,
		District:      f.District,
		SubDistrict:   f.SubDistrict,
		BirthPlace:    f.BirthPlace,
		Gender:        f.Gender,
		Nationality:   f.Nationality,
		Religion:      f.Religion,
		MaritalStatus: f.MaritalStatus,
		ProfileImage:  f.ProfileImage,
		JoinedDate:    f.JoinedDate.Ptr(),
		ResignedDate:  f.ResignedDate.Ptr(),
		BirthDate:     f.BirthDate.Ptr(),
	}
}

func (f memberFields) administration() repos.AdministrationPatch {
	return repos.AdministrationPatch{
		TaxNumber:                f.TaxNumber,
		TaxNumberAttachment:      f.TaxNumberAttachment,
		IdentityNumber:           f.IdentityNumber,
		IdentityNumberAttachment: f.IdentityNumberAttachment,
	}
}

func (r *MembersController) listMembers(c *fiber.Ctx) error {
	options, ok, err := parseListOptions(c, repos.MemberSortColumns)
	if !ok {
		return err
	}

	filter := repos.MemberFilter{}
	if c.Query("type") == "team" {
		teamId, ok := queryId(c, "teamId")
		if !ok {
			return utils.RespondBadRequest(c, invalidParameters, fiber.Map{"teamId": c.Query("teamId")})
		}
		filter.TeamId = teamId
	}

	members, total, err := r.Repo.ListMembers(c.UserContext(), options, filter)
	if err != nil {
		return utils.StandardInternalError(c, "Failed to retrieve members", err)
	}

	for _, m := range members {
		m.Sanitize()
		m.Administration = nil
	}

	return utils.RespondOK(c, "Members retrieved successfully", utils.NewPage(members, total, options))
}

func (r *MembersController) getMember(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Member not found")
	}

	member, err := r.Repo.GetMember(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Member not found", "Failed to retrieve member")
	}

	member.Sanitize()
	return utils.RespondOK(c, "Member retrieved successfully", member)
}

func (r *MembersController) createMember(c *fiber.Ctx) error {
	req := new(createMemberRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	member := &userdata.Member{
		Email:          req.Email,
		EmployeeNumber: req.EmployeeNumber,
		PhoneNumber:    value(req.PhoneNumber),
		FirstName:      value(req.FirstName),
		LastName:       value(req.LastName),
		FullName:       value(req.FullName),
		Name:           value(req.Name),
		HomeAddress:    value(req.HomeAddress),
		District:       value(req.District),
		SubDistrict:    value(req.SubDistrict),
		BirthPlace:     value(req.BirthPlace),
		Gender:         value(req.Gender),
		Nationality:    value(req.Nationality),
		Religion:       value(req.Religion),
		MaritalStatus:  value(req.MaritalStatus),
		ProfileImage:   value(req.ProfileImage),
		JoinedDate:     req.JoinedDate.Ptr(),
		ResignedDate:   req.ResignedDate.Ptr(),
		BirthDate:      req.BirthDate.Ptr(),
		TeamId:         req.TeamId,
		RoleId:         req.RoleId,
	}
	if member.FullName == "" {
		member.FullName = strings.TrimSpace(member.FirstName + " " + member.LastName)
	}

	admin := &userdata.MemberAdministration{
		TaxNumber:                value(req.TaxNumber),
		TaxNumberAttachment:      value(req.TaxNumberAttachment),
		IdentityNumber:           value(req.IdentityNumber),
		IdentityNumberAttachment: value(req.IdentityNumberAttachment),
	}

	if err := r.Repo.CreateComposite(c.UserContext(), member, admin, toRelatives(req.Relatives)); err != nil {
		return repoError(c, err, "Member not found", "Failed to create member")
	}

	member.Sanitize()
	return utils.RespondCreated(c, "Member created successfully", member)
}

func (r *MembersController) updateMember(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Member not found")
	}

	req := new(updateMemberRequest)
	if ok, err := parseBody(c, req); !ok {
		return err
	}

	update := repos.MemberUpdate{
		Member:         req.patch(),
		Administration: req.administration(),
	}
	update.Member.RoleId = req.RoleId
	update.Member.TeamId = req.TeamId

	if req.Relatives != nil {
		relatives := toRelatives(*req.Relatives)
		update.Relatives = &relatives
	}

	member, err := r.Repo.UpdateComposite(c.UserContext(), id, update)
	if err != nil {
		return repoError(c, err, "Member not found", "Failed to update member")
	}

	member.Sanitize()
	return utils.RespondOK(c, "Member updated successfully", member)
}

func (r *MembersController) deleteMember(c *fiber.Ctx) error {
	id, ok := utils.ParseId(c, "id")
	if !ok {
		return utils.RespondNotFound(c, "Member not found")
	}

	member, err := r.Repo.DeleteMember(c.UserContext(), id)
	if err != nil {
		return repoError(c, err, "Member not found", "Failed to delete member")
	}

	member.Sanitize()
	return utils.RespondOK(c, "Member deleted successfully", member)
}
