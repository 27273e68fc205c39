package access

import (
	"context"
	"math/rand"
	"testing"

	"preben-prepper/domain"
	"preben-prepper/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accessKey struct{ userID, homeID uint }

type fakeAccessRepository struct {
	homes    map[uint]*entities.Home
	users    map[uint]bool
	accesses map[accessKey]*entities.HomeAccess
	nextID   uint
}

func newFakeAccessRepository() *fakeAccessRepository {
	return &fakeAccessRepository{
		homes:    map[uint]*entities.Home{},
		users:    map[uint]bool{},
		accesses: map[accessKey]*entities.HomeAccess{},
	}
}

func (f *fakeAccessRepository) addUser(id uint) { f.users[id] = true }

func (f *fakeAccessRepository) addHome(id, ownerID uint) {
	f.homes[id] = &entities.Home{ID: id, OwnerID: ownerID}
}

func (f *fakeAccessRepository) GetHomeByID(_ context.Context, homeID uint) (*entities.Home, error) {
	return f.homes[homeID], nil
}

func (f *fakeAccessRepository) GetHomeAccess(_ context.Context, userID, homeID uint) (*entities.HomeAccess, error) {
	return f.accesses[accessKey{userID, homeID}], nil
}

func (f *fakeAccessRepository) UserExists(_ context.Context, userID uint) (bool, error) {
	return f.users[userID], nil
}

func (f *fakeAccessRepository) CreateHomeAccess(_ context.Context, access *entities.HomeAccess) error {
	key := accessKey{access.UserID, access.HomeID}
	if _, ok := f.accesses[key]; ok {
		return domain.ErrAccessAlreadyGranted
	}
	f.nextID++
	access.ID = f.nextID
	f.accesses[key] = access
	return nil
}

func (f *fakeAccessRepository) UpdateHomeAccess(_ context.Context, access *entities.HomeAccess) error {
	f.accesses[accessKey{access.UserID, access.HomeID}] = access
	return nil
}

func (f *fakeAccessRepository) DeleteHomeAccess(_ context.Context, userID, homeID uint) error {
	key := accessKey{userID, homeID}
	if _, ok := f.accesses[key]; !ok {
		return domain.ErrHomeAccessNotFound
	}
	delete(f.accesses, key)
	return nil
}

const (
	ownerA   uint = 1
	userB    uint = 2
	userC    uint = 3
	homeH    uint = 10
	noSuchID uint = 99
)

func setup() (*fakeAccessRepository, AccessService) {
	repo := newFakeAccessRepository()
	repo.addUser(ownerA)
	repo.addUser(userB)
	repo.addUser(userC)
	repo.addHome(homeH, ownerA)
	return repo, NewAccessService(repo)
}

func TestHasAccess(t *testing.T) {
	ctx := context.Background()
	repo, svc := setup()
	repo.accesses[accessKey{userC, homeH}] = &entities.HomeAccess{UserID: userC, HomeID: homeH, Role: entities.HomeRoleAdmin}

	cases := []struct {
		name   string
		userID uint
		homeID uint
		want   bool
	}{
		{"owner", ownerA, homeH, true},
		{"admin accessor", userC, homeH, true},
		{"unrelated user", userB, homeH, false},
		{"missing home", ownerA, noSuchID, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := svc.HasAccess(ctx, tc.userID, tc.homeID)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestHasAccessMatchesOwnershipOrGrant(t *testing.T) {
	ctx := context.Background()
	rng := rand.New(rand.NewSource(7))

	for round := 0; round < 50; round++ {
		repo := newFakeAccessRepository()
		svc := NewAccessService(repo)

		const users, homes = 8, 5
		for u := uint(1); u <= users; u++ {
			repo.addUser(u)
		}
		owners := map[uint]uint{}
		for h := uint(1); h <= homes; h++ {
			owner := uint(rng.Intn(users)) + 1
			owners[h] = owner
			repo.addHome(h, owner)
		}
		granted := map[accessKey]bool{}
		for i := 0; i < 10; i++ {
			u := uint(rng.Intn(users)) + 1
			h := uint(rng.Intn(homes)) + 1
			if owners[h] == u {
				continue
			}
			role := entities.HomeRoleMember
			if rng.Intn(2) == 0 {
				role = entities.HomeRoleAdmin
			}
			repo.accesses[accessKey{u, h}] = &entities.HomeAccess{UserID: u, HomeID: h, Role: role}
			granted[accessKey{u, h}] = true
		}

		for u := uint(1); u <= users; u++ {
			for h := uint(1); h <= homes+1; h++ {
				want := owners[h] == u || granted[accessKey{u, h}]
				got, err := svc.HasAccess(ctx, u, h)
				require.NoError(t, err)
				assert.Equal(t, want, got, "round %d user %d home %d", round, u, h)
			}
		}
	}
}

func TestGrantAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("member grant flips access", func(t *testing.T) {
		_, svc := setup()

		ok, err := svc.HasAccess(ctx, userB, homeH)
		require.NoError(t, err)
		require.False(t, ok)

		res, err := svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: userB, Role: "MEMBER"})
		require.NoError(t, err)
		assert.Equal(t, "MEMBER", res.Role)
		assert.Equal(t, userB, res.UserID)

		ok, err = svc.HasAccess(ctx, userB, homeH)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("role defaults to member", func(t *testing.T) {
		repo, svc := setup()

		_, err := svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: userB})
		require.NoError(t, err)
		assert.Equal(t, entities.HomeRoleMember, repo.accesses[accessKey{userB, homeH}].Role)
	})

	t.Run("second grant conflicts", func(t *testing.T) {
		repo, svc := setup()

		_, err := svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: userB})
		require.NoError(t, err)

		_, err = svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: userB, Role: "ADMIN"})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.ErrorIs(t, err, domain.ErrAccessAlreadyGranted)
		assert.Len(t, repo.accesses, 1)
	})

	t.Run("owner cannot be granted", func(t *testing.T) {
		repo, svc := setup()

		_, err := svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: ownerA})
		assert.ErrorIs(t, err, domain.ErrConflict)
		assert.ErrorIs(t, err, domain.ErrGrantToOwner)
		assert.Empty(t, repo.accesses)
	})

	t.Run("member cannot grant", func(t *testing.T) {
		repo, svc := setup()
		repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleMember}

		_, err := svc.GrantAccess(ctx, userB, homeH, domain.GrantAccessRequest{UserID: userC})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("admin can grant", func(t *testing.T) {
		repo, svc := setup()
		repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleAdmin}

		_, err := svc.GrantAccess(ctx, userB, homeH, domain.GrantAccessRequest{UserID: userC})
		require.NoError(t, err)
		assert.Contains(t, repo.accesses, accessKey{userC, homeH})
	})

	t.Run("unrelated requester is forbidden", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.GrantAccess(ctx, userB, homeH, domain.GrantAccessRequest{UserID: userC})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing home is forbidden", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.GrantAccess(ctx, ownerA, noSuchID, domain.GrantAccessRequest{UserID: userB})
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("missing grantee is not found", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: noSuchID})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown role is invalid", func(t *testing.T) {
		_, svc := setup()

		_, err := svc.GrantAccess(ctx, ownerA, homeH, domain.GrantAccessRequest{UserID: userB, Role: "OWNER"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

func TestCanManage(t *testing.T) {
	ctx := context.Background()
	repo, svc := setup()
	repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleMember}
	repo.accesses[accessKey{userC, homeH}] = &entities.HomeAccess{UserID: userC, HomeID: homeH, Role: entities.HomeRoleAdmin}

	for _, tc := range []struct {
		userID uint
		want   bool
	}{{ownerA, true}, {userB, false}, {userC, true}, {noSuchID, false}} {
		ok, err := svc.CanManage(ctx, tc.userID, homeH)
		require.NoError(t, err)
		assert.Equal(t, tc.want, ok, "user %d", tc.userID)
	}
}

func TestUpdateAccessRole(t *testing.T) {
	ctx := context.Background()
	repo, svc := setup()
	repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleMember}

	res, err := svc.UpdateAccessRole(ctx, ownerA, homeH, userB, domain.UpdateHomeAccessRequest{Role: "ADMIN"})
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", res.Role)

	_, err = svc.UpdateAccessRole(ctx, ownerA, homeH, userC, domain.UpdateHomeAccessRequest{Role: "ADMIN"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateAccessRole(ctx, userC, homeH, userB, domain.UpdateHomeAccessRequest{Role: "MEMBER"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestRevokeAccess(t *testing.T) {
	ctx := context.Background()

	t.Run("owner revokes", func(t *testing.T) {
		repo, svc := setup()
		repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleMember}

		require.NoError(t, svc.RevokeAccess(ctx, ownerA, homeH, userB))

		ok, err := svc.HasAccess(ctx, userB, homeH)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("accessor leaves", func(t *testing.T) {
		repo, svc := setup()
		repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleMember}

		require.NoError(t, svc.RevokeAccess(ctx, userB, homeH, userB))
		assert.Empty(t, repo.accesses)
	})

	t.Run("member cannot revoke others", func(t *testing.T) {
		repo, svc := setup()
		repo.accesses[accessKey{userB, homeH}] = &entities.HomeAccess{UserID: userB, HomeID: homeH, Role: entities.HomeRoleMember}
		repo.accesses[accessKey{userC, homeH}] = &entities.HomeAccess{UserID: userC, HomeID: homeH, Role: entities.HomeRoleMember}

		err := svc.RevokeAccess(ctx, userB, homeH, userC)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.Len(t, repo.accesses, 2)
	})

	t.Run("missing grant", func(t *testing.T) {
		_, svc := setup()

		err := svc.RevokeAccess(ctx, ownerA, homeH, userB)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRequireAccess(t *testing.T) {
	ctx := context.Background()
	_, svc := setup()

	assert.NoError(t, RequireAccess(ctx, svc, ownerA, homeH))

	err := RequireAccess(ctx, svc, userB, homeH)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.ErrorIs(t, err, domain.ErrHomeAccessDenied)
}
