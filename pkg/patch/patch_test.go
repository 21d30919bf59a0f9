package patch_test

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airrvie/database"
	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/patch"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSetKeepsInsertionOrder(t *testing.T) {
	p := patch.New().
		Set("name", "a").
		Set("province", "b").
		Set("district", "c")

	require.Equal(t, []string{"name", "province", "district"}, p.Columns())
	require.Equal(t, 3, p.Len())
}

func TestSetOverrideKeepsPosition(t *testing.T) {
	p := patch.New().
		Set("name", "first").
		Set("province", "x").
		Set("name", "second")

	require.Equal(t, []string{"name", "province"}, p.Columns())
	v, ok := p.Get("name")
	require.True(t, ok)
	require.Equal(t, "second", v)
}

func TestZeroValuesAreAssignments(t *testing.T) {
	p := patch.New().Set("completed", false).Set("notes", "")
	require.True(t, p.Has("completed"))
	require.True(t, p.Has("notes"))
	require.False(t, p.Empty())
}

func TestApplyEmptyPatchFailsBeforeSQL(t *testing.T) {
	db := newTestDB(t)
	scoped := db.Model(&entities.Farm{}).Where("id = ?", "whatever")

	_, err := patch.Apply(scoped, patch.New())
	require.ErrorIs(t, err, apperr.ErrNoFieldsToUpdate)
}

func TestApplyUpdatesOnlyNamedColumns(t *testing.T) {
	db := newTestDB(t)
	f := &entities.Farm{UserID: "u1", Name: "old", Province: "Cần Thơ", District: "Ninh Kiều"}
	require.NoError(t, db.Create(f).Error)

	scoped := db.Model(&entities.Farm{}).Where("id = ?", f.ID)
	n, err := patch.Apply(scoped, patch.New().Set("name", "new"))
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	var got entities.Farm
	require.NoError(t, db.First(&got, "id = ?", f.ID).Error)
	require.Equal(t, "new", got.Name)
	require.Equal(t, "Cần Thơ", got.Province)
	require.True(t, got.UpdatedAt.After(got.CreatedAt) || got.UpdatedAt.Equal(got.CreatedAt))
}

func TestDisjointPatchesBothLand(t *testing.T) {
	db := newTestDB(t)
	f := &entities.Farm{UserID: "u1", Name: "old", Province: "Cần Thơ"}
	require.NoError(t, db.Create(f).Error)

	// two writers patching disjoint columns: both assignments survive,
	// whichever order they land in
	scope := func() *gorm.DB { return db.Model(&entities.Farm{}).Where("id = ?", f.ID) }
	_, err := patch.Apply(scope(), patch.New().Set("name", "renamed"))
	require.NoError(t, err)
	_, err = patch.Apply(scope(), patch.New().Set("province", "Hậu Giang"))
	require.NoError(t, err)

	var got entities.Farm
	require.NoError(t, db.First(&got, "id = ?", f.ID).Error)
	require.Equal(t, "renamed", got.Name)
	require.Equal(t, "Hậu Giang", got.Province)
}

func TestOverlappingPatchesLastWriterWins(t *testing.T) {
	db := newTestDB(t)
	f := &entities.Farm{UserID: "u1", Name: "old"}
	require.NoError(t, db.Create(f).Error)

	scope := func() *gorm.DB { return db.Model(&entities.Farm{}).Where("id = ?", f.ID) }
	_, err := patch.Apply(scope(), patch.New().Set("name", "first"))
	require.NoError(t, err)
	_, err = patch.Apply(scope(), patch.New().Set("name", "second"))
	require.NoError(t, err)

	var got entities.Farm
	require.NoError(t, db.First(&got, "id = ?", f.ID).Error)
	require.Equal(t, "second", got.Name)
}

func TestApplyMissedScopeIsNotFound(t *testing.T) {
	db := newTestDB(t)
	f := &entities.Farm{UserID: "u1", Name: "mine"}
	require.NoError(t, db.Create(f).Error)

	scoped := db.Model(&entities.Farm{}).Where("id = ? AND user_id = ?", f.ID, "someone-else")
	_, err := patch.Apply(scoped, patch.New().Set("name", "stolen"))
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var got entities.Farm
	require.NoError(t, db.First(&got, "id = ?", f.ID).Error)
	require.Equal(t, "mine", got.Name)
}
