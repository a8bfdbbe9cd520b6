//go:build integration

package repos

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sigap/sigap-server/migrations"
	"github.com/sigap/sigap-server/models/billing"
	"github.com/sigap/sigap-server/models/rbac"
	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/utils-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
)

func setupTestDB(t *testing.T) *bun.DB {
	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("sigap_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := utils.OpenPostgres(&utils.PostgresConfig{Dsn: dsn, IsProduction: true})
	require.NoError(t, err)

	require.NoError(t, migrations.Up(ctx, db))

	t.Cleanup(func() { _ = db.Close() })

	return db
}

func seedReferences(t *testing.T, db *bun.DB) (*rbac.Role, *billing.Package) {
	ctx := context.Background()

	role := &rbac.Role{Name: "Admin", Description: "Full access"}
	require.NoError(t, NewRoleRepo(db, utils.ExcludeNonActive).CreateRole(ctx, role))

	pkg := &billing.Package{Name: "Basic"}
	require.NoError(t, NewPackageRepo(db, utils.ExcludeNonActive).CreatePackage(ctx, pkg))

	return role, pkg
}

func TestIntegration_TeamLifecycle(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	role, pkg := seedReferences(t, db)

	teams := NewTeamRepo(db, utils.ExcludeNonActive)
	end := time.Now().AddDate(1, 0, 0)

	team := &userdata.Team{TeamName: "Platform", ManagerEmail: "lead@example.com"}
	contract := &billing.TeamContract{PackageId: pkg.Id, ActivePeriodEnd: &end}
	manager := &userdata.Member{Email: "lead@example.com", Uid: "100000001", RoleId: role.Id}

	require.NoError(t, teams.CreateWithContractAndManager(ctx, team, contract, manager))
	assert.NotZero(t, team.Id)

	t.Run("duplicate team name leaves nothing behind", func(t *testing.T) {
		dup := &userdata.Team{TeamName: "Platform"}
		err := teams.CreateWithContractAndManager(ctx, dup, &billing.TeamContract{PackageId: pkg.Id}, &userdata.Member{Email: "other@example.com", Uid: "100000002", RoleId: role.Id})
		assert.Error(t, err)

		count, err := db.NewSelect().Model((*userdata.Member)(nil)).Where("email = ?", "other@example.com").Count(ctx)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("get loads members and contracts", func(t *testing.T) {
		loaded, err := teams.GetTeam(ctx, team.Id)
		require.NoError(t, err)

		require.Len(t, loaded.Members, 1)
		assert.Equal(t, "lead@example.com", loaded.Members[0].Email)
		require.Len(t, loaded.Contracts, 1)
		require.NotNil(t, loaded.Contracts[0].Package)
		assert.Equal(t, "Basic", loaded.Contracts[0].Package.Name)
	})

	t.Run("soft delete hides the team", func(t *testing.T) {
		deleted, err := teams.DeleteTeam(ctx, team.Id)
		require.NoError(t, err)
		assert.Equal(t, utils.StatusNonActive, deleted.Status)

		_, err = teams.GetTeam(ctx, team.Id)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = teams.DeleteTeam(ctx, team.Id)
		assert.ErrorIs(t, err, ErrNotFound)

		options, err := utils.ParseListOptions("", "", "", "", TeamSortColumns)
		require.NoError(t, err)
		items, total, err := teams.ListTeams(ctx, options, TeamFilter{})
		require.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, items)
	})
}

func TestIntegration_MemberComposite(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	role, _ := seedReferences(t, db)

	members := NewMemberRepo(db, utils.ExcludeNonActive)

	member := &userdata.Member{Email: "Dewi@Example.com", FirstName: "Dewi", RoleId: role.Id}
	relatives := []*userdata.MemberRelative{{FullName: "Ayu", IsEmergency: true}}
	require.NoError(t, members.CreateComposite(ctx, member, &userdata.MemberAdministration{TaxNumber: "01.234"}, relatives))

	found, err := members.GetMemberByEmail(ctx, "dewi@example.com")
	require.NoError(t, err)
	assert.Equal(t, member.Id, found.Id)

	taxNumber := "09.876"
	updated, err := members.UpdateComposite(ctx, member.Id, MemberUpdate{
		Administration: AdministrationPatch{TaxNumber: &taxNumber},
		Relatives:      &[]*userdata.MemberRelative{},
	})
	require.NoError(t, err)

	require.NotNil(t, updated.Administration)
	assert.Equal(t, "09.876", updated.Administration.TaxNumber)
	assert.Empty(t, updated.Relatives)

	missing := int64(9999)
	_, err = members.UpdateComposite(ctx, member.Id, MemberUpdate{Member: MemberPatch{TeamId: &missing}})
	assert.ErrorIs(t, err, ErrInvalidReference)
}

func TestIntegration_ContractSoftDelete(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	role, pkg := seedReferences(t, db)

	teams := NewTeamRepo(db, utils.ExcludeNonActive)
	contracts := NewContractRepo(db, utils.ExcludeNonActive)
	end := time.Now().AddDate(1, 0, 0)

	team := &userdata.Team{TeamName: "Billing"}
	require.NoError(t, teams.CreateWithContractAndManager(ctx, team,
		&billing.TeamContract{PackageId: pkg.Id, ActivePeriodEnd: &end},
		&userdata.Member{Email: "billing@example.com", Uid: "100000003", RoleId: role.Id}))

	other := &userdata.Team{TeamName: "Other"}
	require.NoError(t, teams.CreateWithContractAndManager(ctx, other,
		&billing.TeamContract{PackageId: pkg.Id, ActivePeriodEnd: &end},
		&userdata.Member{Email: "other@example.com", Uid: "100000004", RoleId: role.Id}))

	contract := &billing.TeamContract{TeamId: team.Id, ContractNumber: "C-100", PackageId: pkg.Id, ActivePeriodEnd: &end, MemberQuota: 5}
	require.NoError(t, contracts.CreateContract(ctx, contract))

	scope := ContractFilter{TeamId: &team.Id}
	wrongScope := ContractFilter{TeamId: &other.Id}

	t.Run("another team cannot delete it", func(t *testing.T) {
		_, err := contracts.DeleteContract(ctx, contract.Id, wrongScope)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("get joins the team", func(t *testing.T) {
		loaded, err := contracts.GetContract(ctx, contract.Id, scope)
		require.NoError(t, err)
		require.NotNil(t, loaded.Team)
		assert.Equal(t, "Billing", loaded.Team.TeamName)
	})

	t.Run("delete keeps the row as non-active", func(t *testing.T) {
		deleted, err := contracts.DeleteContract(ctx, contract.Id, scope)
		require.NoError(t, err)
		assert.Equal(t, utils.StatusNonActive, deleted.Status)

		_, err = contracts.GetContract(ctx, contract.Id, scope)
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = contracts.DeleteContract(ctx, contract.Id, ContractFilter{})
		assert.ErrorIs(t, err, ErrNotFound)

		stored := new(billing.TeamContract)
		require.NoError(t, db.NewSelect().Model(stored).Where("?TableAlias.id = ?", contract.Id).Scan(ctx))
		assert.Equal(t, utils.StatusNonActive, stored.Status)
		assert.Equal(t, "C-100", stored.ContractNumber)

		options, err := utils.ParseListOptions("", "", "", "", ContractSortColumns)
		require.NoError(t, err)
		items, total, err := contracts.ListContracts(ctx, options, scope)
		require.NoError(t, err)
		assert.Equal(t, 1, total)
		require.Len(t, items, 1)
		assert.NotEqual(t, contract.Id, items[0].Id)
	})

	t.Run("contracts of a missing team are rejected", func(t *testing.T) {
		err := contracts.CreateContract(ctx, &billing.TeamContract{TeamId: 999999, PackageId: pkg.Id, ActivePeriodEnd: &end})
		assert.ErrorIs(t, err, ErrInvalidReference)
	})
}

func TestIntegration_ResetTokens(t *testing.T) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	testcontainers.CleanupContainer(t, container)
	require.NoError(t, err)

	endpoint, err := container.Endpoint(ctx, "")
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{Addr: endpoint})
	t.Cleanup(func() { _ = client.Close() })

	tokens := NewResetTokenRepo(client)

	first, err := tokens.MarkUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, first)

	again, err := tokens.MarkUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.False(t, again)

	require.NoError(t, tokens.Release(ctx, "jti-1"))

	retried, err := tokens.MarkUsed(ctx, "jti-1", time.Minute)
	require.NoError(t, err)
	assert.True(t, retried)
}
