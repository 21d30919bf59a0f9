package repositoryImp_test

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airrvie/database"
	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/farm/repositoryImp"
	"airrvie/pkg/patch"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedFarm(t *testing.T, db *gorm.DB, userID, name string) *entities.Farm {
	t.Helper()
	f := &entities.Farm{UserID: userID, Name: name, Province: "An Giang", District: "Châu Thành"}
	require.NoError(t, db.Create(f).Error)
	return f
}

func TestListCountsOnlyLivePlots(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	f := seedFarm(t, db, "u1", "F1")

	p1 := &entities.Plot{FarmID: f.ID, Name: "P1", AreaM2: 100}
	p2 := &entities.Plot{FarmID: f.ID, Name: "P2", AreaM2: 200}
	require.NoError(t, db.Create(p1).Error)
	require.NoError(t, db.Create(p2).Error)
	require.NoError(t, db.Delete(p2).Error)

	rows, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.EqualValues(t, 1, rows[0].PlotCount)
}

func TestListScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	seedFarm(t, db, "u1", "mine")
	seedFarm(t, db, "u2", "theirs")

	rows, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "mine", rows[0].Name)
}

func TestUpdateCrossOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	f := seedFarm(t, db, "u1", "F1")

	err := repo.Update(f.ID, "u2", patch.New().Set("name", "hijacked"))
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var got entities.Farm
	require.NoError(t, db.First(&got, "id = ?", f.ID).Error)
	require.Equal(t, "F1", got.Name)
}

func TestSoftDeleteIsIdempotentFailure(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	f := seedFarm(t, db, "u1", "F1")

	require.NoError(t, repo.SoftDelete(f.ID, "u1"))
	// second delete finds no live row
	require.ErrorIs(t, repo.SoftDelete(f.ID, "u1"), apperr.ErrNotFound)

	// row survives physically, flagged deleted
	var got entities.Farm
	require.NoError(t, db.Unscoped().First(&got, "id = ?", f.ID).Error)
	require.True(t, got.DeletedAt.Valid)
}

func TestDeletedFarmLeavesLists(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	f := seedFarm(t, db, "u1", "F1")
	require.NoError(t, repo.SoftDelete(f.ID, "u1"))

	rows, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.Empty(t, rows)
}
