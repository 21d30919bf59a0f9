package repositoryImp_test

import (
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airrvie/database"
	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/journal/repositoryImp"
	"airrvie/pkg/patch"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedChain(t *testing.T, db *gorm.DB, userID string) *entities.Plot {
	t.Helper()
	f := &entities.Farm{UserID: userID, Name: "F", Province: "Sóc Trăng"}
	require.NoError(t, db.Create(f).Error)
	p := &entities.Plot{FarmID: f.ID, Name: "P", AreaM2: 800}
	require.NoError(t, db.Create(p).Error)
	return p
}

func TestCreateReturnsProjection(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	p := seedChain(t, db, "u1")

	row, err := repo.Create(&entities.JournalEntry{
		PlotID: p.ID, UserID: "u1",
		EntryDate: time.Now(), Type: "irrigation", Title: "bơm nước",
	})
	require.NoError(t, err)
	require.Equal(t, "P", row.PlotName)
	require.Equal(t, "F", row.FarmName)
	require.NotNil(t, row.Photos)
}

func TestPhotosRoundTrip(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	p := seedChain(t, db, "u1")

	row, err := repo.Create(&entities.JournalEntry{
		PlotID: p.ID, UserID: "u1",
		EntryDate: time.Now(), Type: "pest", Title: "sâu cuốn lá",
		Photos: []string{"/uploads/images/1.jpg", "/uploads/images/2.jpg"},
	})
	require.NoError(t, err)
	require.Equal(t, []string{"/uploads/images/1.jpg", "/uploads/images/2.jpg"}, row.Photos)

	listed, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, []string{"/uploads/images/1.jpg", "/uploads/images/2.jpg"}, listed[0].Photos)
}

func TestEmptyPhotosStayEmptyNotNull(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	p := seedChain(t, db, "u1")

	_, err := repo.Create(&entities.JournalEntry{
		PlotID: p.ID, UserID: "u1",
		EntryDate: time.Now(), Type: "other", Title: "ghi chú",
		Photos: []string{},
	})
	require.NoError(t, err)

	listed, err := repo.ListByUser("u1")
	require.NoError(t, err)
	require.NotNil(t, listed[0].Photos)
	require.Empty(t, listed[0].Photos)
}

func TestListByPlotScopesBothKeys(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	p1 := seedChain(t, db, "u1")
	p2 := seedChain(t, db, "u2")

	_, err := repo.Create(&entities.JournalEntry{PlotID: p1.ID, UserID: "u1", EntryDate: time.Now(), Type: "other", Title: "mine"})
	require.NoError(t, err)
	_, err = repo.Create(&entities.JournalEntry{PlotID: p2.ID, UserID: "u2", EntryDate: time.Now(), Type: "other", Title: "theirs"})
	require.NoError(t, err)

	rows, err := repo.ListByPlot(p2.ID, "u1")
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestUpdateAndDeleteScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	p := seedChain(t, db, "u1")
	row, err := repo.Create(&entities.JournalEntry{PlotID: p.ID, UserID: "u1", EntryDate: time.Now(), Type: "other", Title: "x"})
	require.NoError(t, err)

	require.ErrorIs(t, repo.Update(row.ID, "u2", patch.New().Set("title", "y")), apperr.ErrNotFound)
	require.ErrorIs(t, repo.SoftDelete(row.ID, "u2"), apperr.ErrNotFound)

	require.NoError(t, repo.SoftDelete(row.ID, "u1"))
	require.ErrorIs(t, repo.SoftDelete(row.ID, "u1"), apperr.ErrNotFound)
}

func TestStats(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	p := seedChain(t, db, "u1")

	now := time.Now()
	for _, e := range []entities.JournalEntry{
		{PlotID: p.ID, UserID: "u1", EntryDate: now, Type: "fertilizer", Title: "a"},
		{PlotID: p.ID, UserID: "u1", EntryDate: now.AddDate(0, 0, -3), Type: "fertilizer", Title: "b"},
		{PlotID: p.ID, UserID: "u1", EntryDate: now.AddDate(0, 0, -30), Type: "harvest", Title: "c"},
	} {
		e := e
		_, err := repo.Create(&e)
		require.NoError(t, err)
	}

	s, err := repo.Stats("u1")
	require.NoError(t, err)
	require.EqualValues(t, 3, s.Total)
	require.EqualValues(t, 1, s.Today)
	require.EqualValues(t, 2, s.LastWeek)
	require.EqualValues(t, 2, s.ByType["fertilizer"])
	require.EqualValues(t, 1, s.ByType["harvest"])
}
