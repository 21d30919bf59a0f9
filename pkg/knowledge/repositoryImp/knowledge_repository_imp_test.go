package repositoryImp_test

import (
	"path/filepath"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"airrvie/database"
	"airrvie/entities"
	"airrvie/pkg/knowledge/repositoryImp"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedChunks(t *testing.T, db *gorm.DB) {
	t.Helper()
	repo := repositoryImp.New(db)
	require.NoError(t, repo.BulkInsert([]entities.KnowledgeChunk{
		{Source: "manual", Title: "Bón phân cho lúa", Content: "Chia làm ba đợt bón phân chính.", Lang: "vi", Tags: []string{"fertilizer"}},
		{Source: "manual", Title: "Quản lý mực nước", Content: "Giữ mực nước ngập 3-5cm giai đoạn đẻ nhánh.", Lang: "vi", Tags: []string{}},
		{Source: "manual", Title: "Rice varieties", Content: "Salt tolerant varieties for coastal provinces.", Lang: "en", Tags: []string{}},
		{Source: "manual", Title: "Chung", Content: "Áp dụng cho cả hai ngôn ngữ.", Lang: "both", Tags: []string{}},
	}))
}

func TestSearchMatchesTitleAndContent(t *testing.T) {
	db := newTestDB(t)
	seedChunks(t, db)
	repo := repositoryImp.New(db)

	got, err := repo.Search("bón phân", "vi", 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Bón phân cho lúa", got[0].Title)
}

func TestSearchScopedToLanguagePlusBoth(t *testing.T) {
	db := newTestDB(t)
	seedChunks(t, db)
	repo := repositoryImp.New(db)

	got, err := repo.Recent("vi", 10)
	require.NoError(t, err)
	require.Len(t, got, 3) // two vi plus one both, never the en chunk
	for _, c := range got {
		require.NotEqual(t, "en", c.Lang)
	}
}

func TestTagsNeverNull(t *testing.T) {
	db := newTestDB(t)
	seedChunks(t, db)
	repo := repositoryImp.New(db)

	got, err := repo.Recent("vi", 10)
	require.NoError(t, err)
	for _, c := range got {
		require.NotNil(t, c.Tags)
	}
}

func TestSearchNoMatches(t *testing.T) {
	db := newTestDB(t)
	seedChunks(t, db)
	repo := repositoryImp.New(db)

	got, err := repo.Search("máy gặt đập liên hợp", "vi", 10)
	require.NoError(t, err)
	require.Empty(t, got)
}
