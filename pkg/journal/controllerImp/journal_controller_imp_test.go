package controllerImp_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"airrvie/database"
	"airrvie/entities"
	"airrvie/pkg/journal/controllerImp"
	"airrvie/pkg/journal/repositoryImp"
	"airrvie/pkg/ownership"
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

func TestExportOneRowPerLiveEntry(t *testing.T) {
	db := newTestDB(t)
	repo := repositoryImp.New(db)
	ctrl := controllerImp.New(repo, ownership.New(db))
	p := seedChain(t, db, "u1")

	_, err := repo.Create(&entities.JournalEntry{
		PlotID: p.ID, UserID: "u1",
		EntryDate: time.Now(), Type: "sowing", Title: "sạ giống",
	})
	require.NoError(t, err)
	_, err = repo.Create(&entities.JournalEntry{
		PlotID: p.ID, UserID: "u1",
		EntryDate: time.Now(), Type: "irrigation", Title: "bơm nước",
	})
	require.NoError(t, err)
	gone, err := repo.Create(&entities.JournalEntry{
		PlotID: p.ID, UserID: "u1",
		EntryDate: time.Now(), Type: "other", Title: "đã xoá",
	})
	require.NoError(t, err)
	require.NoError(t, repo.SoftDelete(gone.ID, "u1"))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "u1")
	require.NoError(t, ctrl.Export(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".xlsx")

	x, err := excelize.OpenReader(rec.Body)
	require.NoError(t, err)
	rows, err := x.GetRows("Journal")
	require.NoError(t, err)

	// header plus one row per live entry; the deleted one is gone
	require.Len(t, rows, 3)
	require.Equal(t, "Date", rows[0][0])
	titles := []string{rows[1][4], rows[2][4]}
	require.ElementsMatch(t, []string{"sạ giống", "bơm nước"}, titles)
	for _, r := range rows[1:] {
		require.Equal(t, "F", r[1])
		require.Equal(t, "P", r[2])
	}
}
