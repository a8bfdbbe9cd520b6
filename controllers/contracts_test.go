package controllers

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sigap/sigap-server/models/billing"
	joined_models "github.com/sigap/sigap-server/models/joined-models"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/repos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newContractsApp(t *testing.T, flat bool) (*testApp, *mockContractStore) {
	t.Helper()

	a := newTestApp(t)
	store := new(mockContractStore)
	RegisterContractsController(a.router, ContractsController{Repo: store, Options: &Options{FlatContracts: flat}})
	return a, store
}

func teamScope(id int64) repos.ContractFilter {
	return repos.ContractFilter{TeamId: &id}
}

func TestContractsController_List(t *testing.T) {
	t.Run("nested routes scope to the path team", func(t *testing.T) {
		a, store := newContractsApp(t, false)
		store.On("ListContracts", mock.Anything, mock.Anything, teamScope(7)).
			Return([]*billing.TeamContract{{Id: 1, TeamId: 7}}, 1, nil).Once()

		status, body := a.do(t, fiber.MethodGet, "/api/teams/7/contracts", nil, true)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "Contracts retrieved successfully", body.Message)
		assert.Len(t, body.Data["items"], 1)
		store.AssertExpectations(t)
	})

	t.Run("flat routes scope by query", func(t *testing.T) {
		a, store := newContractsApp(t, true)
		store.On("ListContracts", mock.Anything, mock.Anything, teamScope(7)).
			Return([]*billing.TeamContract{}, 0, nil).Once()
		store.On("ListContracts", mock.Anything, mock.Anything, repos.ContractFilter{}).
			Return([]*billing.TeamContract{{Id: 1, TeamId: 7}, {Id: 2, TeamId: 8}}, 2, nil).Once()

		status, _ := a.do(t, fiber.MethodGet, "/api/contracts?teamId=7", nil, true)
		assert.Equal(t, fiber.StatusOK, status)

		status, body := a.do(t, fiber.MethodGet, "/api/contracts", nil, true)
		assert.Equal(t, fiber.StatusOK, status)
		assert.Len(t, body.Data["items"], 2)
		store.AssertExpectations(t)
	})

	t.Run("malformed team id", func(t *testing.T) {
		a, store := newContractsApp(t, true)

		status, body := a.do(t, fiber.MethodGet, "/api/teams/abc/contracts", nil, true)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Team not found", body.Message)

		status, _ = a.do(t, fiber.MethodGet, "/api/contracts?teamId=-1", nil, true)
		assert.Equal(t, fiber.StatusNotFound, status)
		store.AssertNotCalled(t, "ListContracts", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("flat routes are off by default", func(t *testing.T) {
		a, store := newContractsApp(t, false)

		resp, err := a.app.Test(httptest.NewRequest(fiber.MethodGet, "/api/contracts", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
		store.AssertNotCalled(t, "ListContracts", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestContractsController_Create(t *testing.T) {
	body := map[string]interface{}{
		"contractNumber":  "C-001",
		"activePeriodEnd": "2027-01-01",
		"memberQuota":     10,
		"packageId":       3,
	}

	t.Run("nested create takes the team from the path", func(t *testing.T) {
		a, store := newContractsApp(t, false)
		store.On("CreateContract", mock.Anything, mock.MatchedBy(func(c *billing.TeamContract) bool {
			return c.TeamId == 7 && c.PackageId == 3 && c.ActivePeriodEnd != nil
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*billing.TeamContract).Id = 11
		}).Return(nil).Once()

		status, resp := a.do(t, fiber.MethodPost, "/api/teams/7/contracts", body, true)

		assert.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, "Contract created successfully", resp.Message)
		assert.Equal(t, float64(11), resp.Data["id"])
		assert.Equal(t, float64(7), resp.Data["teamId"])
		store.AssertExpectations(t)
	})

	t.Run("nested create on a missing team", func(t *testing.T) {
		a, store := newContractsApp(t, false)
		store.On("CreateContract", mock.Anything, mock.Anything).Return(repos.ErrInvalidReference).Once()

		status, resp := a.do(t, fiber.MethodPost, "/api/teams/99/contracts", body, true)

		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Team not found", resp.Message)
		store.AssertExpectations(t)
	})

	t.Run("flat create requires a team", func(t *testing.T) {
		a, store := newContractsApp(t, true)

		status, resp := a.do(t, fiber.MethodPost, "/api/contracts", body, true)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid parameters", resp.Message)
		store.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
	})

	t.Run("flat create with an unknown package", func(t *testing.T) {
		a, store := newContractsApp(t, true)
		store.On("CreateContract", mock.Anything, mock.Anything).Return(repos.ErrInvalidReference).Once()

		withTeam := map[string]interface{}{"teamId": 7, "activePeriodEnd": "2027-01-01", "packageId": 404}
		status, _ := a.do(t, fiber.MethodPost, "/api/contracts", withTeam, true)

		assert.Equal(t, fiber.StatusBadRequest, status)
		store.AssertExpectations(t)
	})

	t.Run("missing package", func(t *testing.T) {
		a, store := newContractsApp(t, false)

		status, _ := a.do(t, fiber.MethodPost, "/api/teams/7/contracts", map[string]interface{}{"activePeriodEnd": "2027-01-01"}, true)

		assert.Equal(t, fiber.StatusBadRequest, status)
		store.AssertNotCalled(t, "CreateContract", mock.Anything, mock.Anything)
	})
}

func TestContractsController_GetRedactsTeam(t *testing.T) {
	a, store := newContractsApp(t, false)
	store.On("GetContract", mock.Anything, int64(11), teamScope(7)).Return(&joined_models.ContractWithTeam{
		TeamContract: billing.TeamContract{Id: 11, TeamId: 7, Status: "active"},
		Team: &userdata.Team{
			Id:           7,
			TeamName:     "Acme",
			HqAddress:    "Jl. Merdeka 1",
			ManagerEmail: "manager@acme.example.com",
			ManagerPhone: "0800",
		},
	}, nil).Once()

	status, body := a.do(t, fiber.MethodGet, "/api/teams/7/contracts/11", nil, true)

	require.Equal(t, fiber.StatusOK, status)
	team, ok := body.Data["team"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Acme", team["teamName"])
	assert.NotContains(t, team, "hqAddress")
	assert.NotContains(t, team, "managerEmail")
	assert.NotContains(t, team, "managerPhone")
	store.AssertExpectations(t)
}

func TestContractsController_DeleteThenGet(t *testing.T) {
	a, store := newContractsApp(t, false)
	store.On("DeleteContract", mock.Anything, int64(11), teamScope(7)).
		Return(&billing.TeamContract{Id: 11, TeamId: 7, Status: "non-active"}, nil).Once()
	store.On("GetContract", mock.Anything, int64(11), teamScope(7)).Return(nil, repos.ErrNotFound).Once()
	store.On("DeleteContract", mock.Anything, int64(11), teamScope(7)).Return(nil, repos.ErrNotFound).Once()

	status, body := a.do(t, fiber.MethodDelete, "/api/teams/7/contracts/11", nil, true)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Contract deleted successfully", body.Message)
	assert.Equal(t, "non-active", body.Data["status"])

	status, body = a.do(t, fiber.MethodGet, "/api/teams/7/contracts/11", nil, true)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "Contract not found", body.Message)

	status, _ = a.do(t, fiber.MethodDelete, "/api/teams/7/contracts/11", nil, true)
	assert.Equal(t, fiber.StatusNotFound, status)
	store.AssertExpectations(t)
}

func TestContractsController_Update(t *testing.T) {
	a, store := newContractsApp(t, true)
	quota := 25
	store.On("UpdateContract", mock.Anything, int64(11), repos.ContractFilter{}, mock.MatchedBy(func(p repos.ContractPatch) bool {
		return p.MemberQuota != nil && *p.MemberQuota == quota && p.PackageId == nil
	})).Return(&billing.TeamContract{Id: 11, TeamId: 7, MemberQuota: quota}, nil).Once()

	status, body := a.do(t, fiber.MethodPut, "/api/contracts/11", map[string]interface{}{"memberQuota": quota}, true)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(25), body.Data["memberQuota"])

	status, _ = a.do(t, fiber.MethodPut, "/api/contracts/11", map[string]interface{}{"memberQuota": -1}, true)
	assert.Equal(t, fiber.StatusBadRequest, status)
	store.AssertExpectations(t)
}

func TestPackagesController(t *testing.T) {
	newApp := func(t *testing.T) (*testApp, *mockPackageStore) {
		a := newTestApp(t)
		store := new(mockPackageStore)
		RegisterPackagesController(a.router, PackagesController{Repo: store})
		return a, store
	}

	t.Run("list filters by name", func(t *testing.T) {
		a, store := newApp(t)
		store.On("ListPackages", mock.Anything, mock.Anything, repos.PackageFilter{Name: "gold"}).
			Return([]*billing.Package{{Id: 1, Name: "Gold"}}, 1, nil).Once()

		status, body := a.do(t, fiber.MethodGet, "/api/packages?name=gold&sortBy=name", nil, true)

		assert.Equal(t, fiber.StatusOK, status)
		assert.Equal(t, "name", body.Data["orderBy"])
		assert.Len(t, body.Data["items"], 1)
		store.AssertExpectations(t)
	})

	t.Run("create requires a name", func(t *testing.T) {
		a, store := newApp(t)

		status, body := a.do(t, fiber.MethodPost, "/api/packages", map[string]interface{}{"selectedMenu": []int64{1, 2}}, true)

		assert.Equal(t, fiber.StatusBadRequest, status)
		assert.Equal(t, "Invalid parameters", body.Message)
		store.AssertNotCalled(t, "CreatePackage", mock.Anything, mock.Anything)
	})

	t.Run("create", func(t *testing.T) {
		a, store := newApp(t)
		store.On("CreatePackage", mock.Anything, mock.MatchedBy(func(p *billing.Package) bool {
			return p.Name == "Gold" && len(p.SelectedMenu) == 2
		})).Return(nil).Once()

		status, body := a.do(t, fiber.MethodPost, "/api/packages", map[string]interface{}{"name": "Gold", "selectedMenu": []int64{1, 2}}, true)

		assert.Equal(t, fiber.StatusCreated, status)
		assert.Equal(t, "Package created successfully", body.Message)
		store.AssertExpectations(t)
	})

	t.Run("deleted package is gone", func(t *testing.T) {
		a, store := newApp(t)
		store.On("DeletePackage", mock.Anything, int64(4)).Return(&billing.Package{Id: 4, Name: "Gold", Status: "non-active"}, nil).Once()
		store.On("GetPackage", mock.Anything, int64(4)).Return(nil, repos.ErrNotFound).Once()

		status, _ := a.do(t, fiber.MethodDelete, "/api/packages/4", nil, true)
		assert.Equal(t, fiber.StatusOK, status)

		status, body := a.do(t, fiber.MethodGet, "/api/packages/4", nil, true)
		assert.Equal(t, fiber.StatusNotFound, status)
		assert.Equal(t, "Package not found", body.Message)
		store.AssertExpectations(t)
	})

	t.Run("requires session", func(t *testing.T) {
		a, store := newApp(t)

		status, _ := a.do(t, fiber.MethodGet, "/api/packages", nil, false)

		assert.Equal(t, fiber.StatusUnauthorized, status)
		store.AssertNotCalled(t, "ListPackages", mock.Anything, mock.Anything, mock.Anything)
	})
}
