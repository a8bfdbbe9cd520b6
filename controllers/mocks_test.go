package controllers

import (
	"context"

	"github.com/sigap/sigap-server/models/billing"
	joined_models "github.com/sigap/sigap-server/models/joined-models"
	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/repos"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/stretchr/testify/mock"
)

type mockRoleStore struct{ mock.Mock }

func (m *mockRoleStore) ListRoles(ctx context.Context, options utils.ListOptions, filter repos.RoleFilter) ([]*rbac.Role, int, error) {
	args := m.Called(ctx, options, filter)
	roles, _ := args.Get(0).([]*rbac.Role)
	return roles, args.Int(1), args.Error(2)
}

func (m *mockRoleStore) GetRole(ctx context.Context, id int64) (*rbac.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*rbac.Role)
	return role, args.Error(1)
}

func (m *mockRoleStore) CreateRole(ctx context.Context, role *rbac.Role) error {
	return m.Called(ctx, role).Error(0)
}

func (m *mockRoleStore) UpdateRole(ctx context.Context, id int64, patch repos.RolePatch) (*rbac.Role, error) {
	args := m.Called(ctx, id, patch)
	role, _ := args.Get(0).(*rbac.Role)
	return role, args.Error(1)
}

func (m *mockRoleStore) DeleteRole(ctx context.Context, id int64) (*rbac.Role, error) {
	args := m.Called(ctx, id)
	role, _ := args.Get(0).(*rbac.Role)
	return role, args.Error(1)
}

type mockMenuStore struct{ mock.Mock }

func (m *mockMenuStore) ListMenus(ctx context.Context, options utils.ListOptions, filter repos.MenuFilter) ([]*rbac.Menu, int, error) {
	args := m.Called(ctx, options, filter)
	menus, _ := args.Get(0).([]*rbac.Menu)
	return menus, args.Int(1), args.Error(2)
}

func (m *mockMenuStore) GetMenu(ctx context.Context, id int64) (*rbac.Menu, error) {
	args := m.Called(ctx, id)
	menu, _ := args.Get(0).(*rbac.Menu)
	return menu, args.Error(1)
}

func (m *mockMenuStore) CreateMenu(ctx context.Context, menu *rbac.Menu) error {
	return m.Called(ctx, menu).Error(0)
}

func (m *mockMenuStore) UpdateMenu(ctx context.Context, id int64, patch repos.MenuPatch) (*rbac.Menu, error) {
	args := m.Called(ctx, id, patch)
	menu, _ := args.Get(0).(*rbac.Menu)
	return menu, args.Error(1)
}

func (m *mockMenuStore) DeleteMenu(ctx context.Context, id int64) (*rbac.Menu, error) {
	args := m.Called(ctx, id)
	menu, _ := args.Get(0).(*rbac.Menu)
	return menu, args.Error(1)
}

type mockMemberStore struct{ mock.Mock }

func (m *mockMemberStore) ListMembers(ctx context.Context, options utils.ListOptions, filter repos.MemberFilter) ([]*userdata.Member, int, error) {
	args := m.Called(ctx, options, filter)
	members, _ := args.Get(0).([]*userdata.Member)
	return members, args.Int(1), args.Error(2)
}

func (m *mockMemberStore) GetMember(ctx context.Context, id int64) (*userdata.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*userdata.Member)
	return member, args.Error(1)
}

func (m *mockMemberStore) CreateComposite(ctx context.Context, member *userdata.Member, admin *userdata.MemberAdministration, relatives []*userdata.MemberRelative) error {
	return m.Called(ctx, member, admin, relatives).Error(0)
}

func (m *mockMemberStore) UpdateComposite(ctx context.Context, id int64, update repos.MemberUpdate) (*userdata.Member, error) {
	args := m.Called(ctx, id, update)
	member, _ := args.Get(0).(*userdata.Member)
	return member, args.Error(1)
}

func (m *mockMemberStore) DeleteMember(ctx context.Context, id int64) (*userdata.Member, error) {
	args := m.Called(ctx, id)
	member, _ := args.Get(0).(*userdata.Member)
	return member, args.Error(1)
}

type mockTeamStore struct{ mock.Mock }

func (m *mockTeamStore) ListTeams(ctx context.Context, options utils.ListOptions, filter repos.TeamFilter) ([]*userdata.Team, int, error) {
	args := m.Called(ctx, options, filter)
	teams, _ := args.Get(0).([]*userdata.Team)
	return teams, args.Int(1), args.Error(2)
}

func (m *mockTeamStore) GetTeam(ctx context.Context, id int64) (*userdata.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*userdata.Team)
	return team, args.Error(1)
}

func (m *mockTeamStore) CreateWithContractAndManager(ctx context.Context, team *userdata.Team, contract *billing.TeamContract, manager *userdata.Member) error {
	return m.Called(ctx, team, contract, manager).Error(0)
}

func (m *mockTeamStore) UpdateTeam(ctx context.Context, id int64, patch repos.TeamPatch) (*userdata.Team, error) {
	args := m.Called(ctx, id, patch)
	team, _ := args.Get(0).(*userdata.Team)
	return team, args.Error(1)
}

func (m *mockTeamStore) DeleteTeam(ctx context.Context, id int64) (*userdata.Team, error) {
	args := m.Called(ctx, id)
	team, _ := args.Get(0).(*userdata.Team)
	return team, args.Error(1)
}

type mockWelcomeMailer struct{ mock.Mock }

func (m *mockWelcomeMailer) SendWelcome(ctx context.Context, team *userdata.Team, manager *userdata.Member, password string) error {
	return m.Called(ctx, team, manager, password).Error(0)
}

type mockContractStore struct{ mock.Mock }

func (m *mockContractStore) ListContracts(ctx context.Context, options utils.ListOptions, filter repos.ContractFilter) ([]*billing.TeamContract, int, error) {
	args := m.Called(ctx, options, filter)
	contracts, _ := args.Get(0).([]*billing.TeamContract)
	return contracts, args.Int(1), args.Error(2)
}

func (m *mockContractStore) GetContract(ctx context.Context, id int64, filter repos.ContractFilter) (*joined_models.ContractWithTeam, error) {
	args := m.Called(ctx, id, filter)
	contract, _ := args.Get(0).(*joined_models.ContractWithTeam)
	return contract, args.Error(1)
}

func (m *mockContractStore) CreateContract(ctx context.Context, contract *billing.TeamContract) error {
	return m.Called(ctx, contract).Error(0)
}

func (m *mockContractStore) UpdateContract(ctx context.Context, id int64, filter repos.ContractFilter, patch repos.ContractPatch) (*billing.TeamContract, error) {
	args := m.Called(ctx, id, filter, patch)
	contract, _ := args.Get(0).(*billing.TeamContract)
	return contract, args.Error(1)
}

func (m *mockContractStore) DeleteContract(ctx context.Context, id int64, filter repos.ContractFilter) (*billing.TeamContract, error) {
	args := m.Called(ctx, id, filter)
	contract, _ := args.Get(0).(*billing.TeamContract)
	return contract, args.Error(1)
}

type mockPackageStore struct{ mock.Mock }

func (m *mockPackageStore) ListPackages(ctx context.Context, options utils.ListOptions, filter repos.PackageFilter) ([]*billing.Package, int, error) {
	args := m.Called(ctx, options, filter)
	packages, _ := args.Get(0).([]*billing.Package)
	return packages, args.Int(1), args.Error(2)
}

func (m *mockPackageStore) GetPackage(ctx context.Context, id int64) (*billing.Package, error) {
	args := m.Called(ctx, id)
	pkg, _ := args.Get(0).(*billing.Package)
	return pkg, args.Error(1)
}

func (m *mockPackageStore) CreatePackage(ctx context.Context, pkg *billing.Package) error {
	return m.Called(ctx, pkg).Error(0)
}

func (m *mockPackageStore) UpdatePackage(ctx context.Context, id int64, patch repos.PackagePatch) (*billing.Package, error) {
	args := m.Called(ctx, id, patch)
	pkg, _ := args.Get(0).(*billing.Package)
	return pkg, args.Error(1)
}

func (m *mockPackageStore) DeletePackage(ctx context.Context, id int64) (*billing.Package, error) {
	args := m.Called(ctx, id)
	pkg, _ := args.Get(0).(*billing.Package)
	return pkg, args.Error(1)
}
