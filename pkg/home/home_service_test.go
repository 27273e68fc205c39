package home

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"preben-prepper/domain"
	"preben-prepper/entities"
	"preben-prepper/internal/testutil"
	"preben-prepper/pkg/access"
	"preben-prepper/pkg/logger"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeS3 struct {
	deleted   []string
	deleteErr error
}

func (f *fakeS3) UploadFile(context.Context, *multipart.FileHeader, string) (string, error) {
	return "", errors.New("not supported")
}

func (f *fakeS3) DeleteFile(_ context.Context, key string) error {
	f.deleted = append(f.deleted, key)
	return f.deleteErr
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	return strings.TrimPrefix(link, "https://bucket.test/")
}

func newHomeService(db *gorm.DB) HomeService {
	return newHomeServiceWith(db, &fakeS3{}, logger.Discard())
}

func newHomeServiceWith(db *gorm.DB, s3 *fakeS3, log *logrus.Logger) HomeService {
	return NewHomeService(NewHomeRepository(db), access.NewAccessService(access.NewAccessRepository(db)), s3, log)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestCreateHomeDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newHomeService(db)
	owner := testutil.CreateUser(t, db, "Olga Owner")

	res, err := svc.CreateHome(context.Background(), owner.ID, domain.CreateHomeRequest{Name: " Cabin "})
	require.NoError(t, err)
	assert.Equal(t, "Cabin", res.Name)
	assert.Equal(t, 2, res.NumberOfAdults)
	assert.Equal(t, 0, res.NumberOfChildren)
	assert.Equal(t, 0, res.NumberOfPets)
	assert.Equal(t, owner.ID, res.Owner.ID)
	assert.Equal(t, "Olga Owner", res.Owner.Name)
	assert.Empty(t, res.HomeAccesses)

	res, err = svc.CreateHome(context.Background(), owner.ID, domain.CreateHomeRequest{
		Name: "Flat", NumberOfAdults: intPtr(1), NumberOfChildren: intPtr(3), NumberOfPets: intPtr(1),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.NumberOfAdults)
	assert.Equal(t, 3, res.NumberOfChildren)
	assert.Equal(t, 1, res.NumberOfPets)
}

func TestGetHomes(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newHomeService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Olga Owner")
	member := testutil.CreateUser(t, db, "Mats Member")
	stranger := testutil.CreateUser(t, db, "Stian Stranger")

	cabin := testutil.CreateHome(t, db, owner, "Cabin")
	flat := testutil.CreateHome(t, db, member, "Flat")
	testutil.CreateHome(t, db, stranger, "Elsewhere")
	testutil.Grant(t, db, member, cabin, entities.HomeRoleMember)
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: cabin.ID, Name: "Water", Quantity: 3}).Error)
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: cabin.ID, Name: "Rice", Quantity: 1}).Error)

	homes, err := svc.GetHomes(ctx, member.ID)
	require.NoError(t, err)
	require.Len(t, homes, 2)

	byID := map[uint]domain.HomeResponse{}
	for _, h := range homes {
		byID[h.ID] = h
	}
	assert.EqualValues(t, 2, byID[cabin.ID].InventoryCount)
	assert.EqualValues(t, 0, byID[flat.ID].InventoryCount)
	require.Len(t, byID[cabin.ID].HomeAccesses, 1)
	assert.Equal(t, member.ID, byID[cabin.ID].HomeAccesses[0].User.ID)

	homes, err = svc.GetHomes(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, homes, 1)
	assert.Equal(t, cabin.ID, homes[0].ID)
}

func TestGetHomeHidesInaccessible(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newHomeService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Olga Owner")
	stranger := testutil.CreateUser(t, db, "Stian Stranger")
	cabin := testutil.CreateHome(t, db, owner, "Cabin")

	_, err := svc.GetHome(ctx, stranger.ID, cabin.ID)
	assert.ErrorIs(t, err, domain.ErrHomeNotFound)

	_, err = svc.GetHome(ctx, owner.ID, 9999)
	assert.ErrorIs(t, err, domain.ErrHomeNotFound)

	res, err := svc.GetHome(ctx, owner.ID, cabin.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cabin", res.Name)
}

func TestUpdateHome(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newHomeService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Olga Owner")
	admin := testutil.CreateUser(t, db, "Ada Admin")
	member := testutil.CreateUser(t, db, "Mats Member")
	cabin := testutil.CreateHome(t, db, owner, "Cabin")
	testutil.Grant(t, db, admin, cabin, entities.HomeRoleAdmin)
	testutil.Grant(t, db, member, cabin, entities.HomeRoleMember)

	res, err := svc.UpdateHome(ctx, admin.ID, cabin.ID, domain.UpdateHomeRequest{Name: strPtr("Mountain cabin"), NumberOfPets: intPtr(0)})
	require.NoError(t, err)
	assert.Equal(t, "Mountain cabin", res.Name)
	assert.Equal(t, 2, res.NumberOfAdults)

	_, err = svc.UpdateHome(ctx, member.ID, cabin.ID, domain.UpdateHomeRequest{Name: strPtr("Mine")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err = svc.UpdateHome(ctx, owner.ID, cabin.ID, domain.UpdateHomeRequest{NumberOfChildren: intPtr(2)})
	require.NoError(t, err)
	assert.Equal(t, "Mountain cabin", res.Name)
	assert.Equal(t, 2, res.NumberOfChildren)
}

func TestDeleteHomeCascades(t *testing.T) {
	db := testutil.NewDB(t)
	svc := newHomeService(db)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Olga Owner")
	admin := testutil.CreateUser(t, db, "Ada Admin")
	stranger := testutil.CreateUser(t, db, "Stian Stranger")
	cabin := testutil.CreateHome(t, db, owner, "Cabin")
	testutil.Grant(t, db, admin, cabin, entities.HomeRoleAdmin)
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: cabin.ID, Name: "Water", Quantity: 3}).Error)
	require.NoError(t, db.Model(admin).Update("default_home_id", cabin.ID).Error)

	assert.ErrorIs(t, svc.DeleteHome(ctx, stranger.ID, cabin.ID), domain.ErrHomeNotFound)
	assert.ErrorIs(t, svc.DeleteHome(ctx, admin.ID, cabin.ID), domain.ErrHomeOwnerOnly)

	require.NoError(t, svc.DeleteHome(ctx, owner.ID, cabin.ID))

	var count int64
	require.NoError(t, db.Model(&entities.InventoryItem{}).Where("home_id = ?", cabin.ID).Count(&count).Error)
	assert.Zero(t, count)
	require.NoError(t, db.Model(&entities.HomeAccess{}).Where("home_id = ?", cabin.ID).Count(&count).Error)
	assert.Zero(t, count)

	var reloaded entities.User
	require.NoError(t, db.First(&reloaded, admin.ID).Error)
	assert.Nil(t, reloaded.DefaultHomeID)
}

func TestDeleteHomeRemovesItemImages(t *testing.T) {
	db := testutil.NewDB(t)
	s3 := &fakeS3{}
	svc := newHomeServiceWith(db, s3, logger.Discard())
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Olga Owner")
	cabin := testutil.CreateHome(t, db, owner, "Cabin")
	flat := testutil.CreateHome(t, db, owner, "Flat")
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: cabin.ID, Name: "Torch", Quantity: 1, ImageURL: "https://bucket.test/homes/1/items/torch.png"}).Error)
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: cabin.ID, Name: "Water", Quantity: 3}).Error)
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: flat.ID, Name: "Radio", Quantity: 1, ImageURL: "https://bucket.test/homes/2/items/radio.png"}).Error)

	require.NoError(t, svc.DeleteHome(ctx, owner.ID, cabin.ID))
	assert.Equal(t, []string{"homes/1/items/torch.png"}, s3.deleted)
}

func TestDeleteHomeSucceedsWhenImageDeleteFails(t *testing.T) {
	db := testutil.NewDB(t)
	s3 := &fakeS3{deleteErr: errors.New("access denied")}
	log, logs := logtest.NewNullLogger()
	svc := newHomeServiceWith(db, s3, log)
	ctx := context.Background()

	owner := testutil.CreateUser(t, db, "Olga Owner")
	cabin := testutil.CreateHome(t, db, owner, "Cabin")
	require.NoError(t, db.Create(&entities.InventoryItem{HomeID: cabin.ID, Name: "Torch", Quantity: 1, ImageURL: "https://bucket.test/torch.png"}).Error)

	require.NoError(t, svc.DeleteHome(ctx, owner.ID, cabin.ID))

	var count int64
	require.NoError(t, db.Model(&entities.Home{}).Where("id = ?", cabin.ID).Count(&count).Error)
	assert.Zero(t, count)

	entry := logs.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.WarnLevel, entry.Level)
	assert.Equal(t, "https://bucket.test/torch.png", entry.Data["image_url"])
}
