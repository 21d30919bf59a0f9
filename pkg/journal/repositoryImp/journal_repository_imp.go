package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/journal/repository"
	"airrvie/pkg/patch"
)

type journalRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.JournalRepository { return &journalRepo{db} }

func (r *journalRepo) projected() *gorm.DB {
	return r.db.Model(&entities.JournalEntry{}).
		Select("journal_entries.*, plots.name AS plot_name, farms.name AS farm_name").
		Joins("JOIN plots ON plots.id = journal_entries.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL")
}

func (r *journalRepo) Create(e *entities.JournalEntry) (*repository.JournalRow, error) {
	if err := r.db.Create(e).Error; err != nil {
		return nil, err
	}
	var row repository.JournalRow
	err := r.projected().Where("journal_entries.id = ?", e.ID).First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *journalRepo) ListByUser(userID string) ([]repository.JournalRow, error) {
	out := []repository.JournalRow{}
	err := r.projected().
		Where("journal_entries.user_id = ?", userID).
		Order("journal_entries.entry_date DESC").
		Order("journal_entries.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *journalRepo) ListByPlot(plotID, userID string) ([]repository.JournalRow, error) {
	out := []repository.JournalRow{}
	err := r.projected().
		Where("journal_entries.plot_id = ? AND journal_entries.user_id = ?", plotID, userID).
		Order("journal_entries.entry_date DESC").
		Order("journal_entries.created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *journalRepo) Update(entryID, userID string, p *patch.Patch) error {
	scoped := r.db.Model(&entities.JournalEntry{}).Where("id = ? AND user_id = ?", entryID, userID)
	_, err := patch.Apply(scoped, p)
	return err
}

func (r *journalRepo) SoftDelete(entryID, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", entryID, userID).Delete(&entities.JournalEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.With(apperr.ErrNotFound, "journal entry not found")
	}
	return nil
}

func (r *journalRepo) Stats(userID string) (repository.Stats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var agg struct {
		Total    int64
		Today    int64
		LastWeek int64
	}
	err := r.db.Model(&entities.JournalEntry{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN entry_date >= ? AND entry_date < ? THEN 1 ELSE 0 END), 0) AS today,
			COALESCE(SUM(CASE WHEN entry_date >= ? THEN 1 ELSE 0 END), 0) AS last_week`,
			today, today.AddDate(0, 0, 1), today.AddDate(0, 0, -7)).
		Where("user_id = ?", userID).
		Scan(&agg).Error
	if err != nil {
		return repository.Stats{}, err
	}

	byType := map[string]int64{}
	var rows []struct {
		Type string
		N    int64
	}
	err = r.db.Model(&entities.JournalEntry{}).
		Select("type, COUNT(*) AS n").
		Where("user_id = ?", userID).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return repository.Stats{}, err
	}
	for _, row := range rows {
		byType[row.Type] = row.N
	}
	return repository.Stats{
		Total:    agg.Total,
		Today:    agg.Today,
		LastWeek: agg.LastWeek,
		ByType:   byType,
	}, nil
}
