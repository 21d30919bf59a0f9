package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/dates"
	"airrvie/pkg/patch"
	"airrvie/pkg/user/repository"
)

type userRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.UserRepository { return &userRepo{db} }

func (r *userRepo) FindByID(id string) (*entities.User, error) {
	var u entities.User
	err := r.db.Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.With(apperr.ErrNotFound, "user not found")
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Update(userID string, p *patch.Patch) error {
	scoped := r.db.Model(&entities.User{}).Where("id = ?", userID)
	_, err := patch.Apply(scoped, p)
	return err
}

func (r *userRepo) Stats(userID string) (repository.Stats, error) {
	var s repository.Stats
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	count := func(q *gorm.DB, dst *int64) error { return q.Count(dst).Error }

	if err := count(r.db.Model(&entities.Farm{}).Where("user_id = ?", userID), &s.Farms); err != nil {
		return s, err
	}
	err := count(r.db.Model(&entities.Plot{}).
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("farms.user_id = ?", userID), &s.Plots)
	if err != nil {
		return s, err
	}
	if err := count(r.db.Model(&entities.Task{}).Where("user_id = ?", userID), &s.Tasks.Total); err != nil {
		return s, err
	}
	if err := count(r.db.Model(&entities.Task{}).Where("user_id = ? AND status = ?", userID, entities.TaskStatusPending), &s.Tasks.Pending); err != nil {
		return s, err
	}
	if err := count(r.db.Model(&entities.Task{}).Where("user_id = ? AND status = ?", userID, entities.TaskStatusDone), &s.Tasks.Completed); err != nil {
		return s, err
	}
	if err := count(r.db.Model(&entities.JournalEntry{}).Where("user_id = ?", userID), &s.Journal.Total); err != nil {
		return s, err
	}
	err = count(r.db.Model(&entities.JournalEntry{}).
		Where("user_id = ? AND entry_date >= ? AND entry_date < ?", userID, today, today.AddDate(0, 0, 1)), &s.Journal.Today)
	return s, err
}

func (r *userRepo) RecentTasks(userID string, limit int) ([]repository.RecentTask, error) {
	var rows []struct {
		entities.Task
		PlotName string `gorm:"column:plot_name"`
		FarmName string `gorm:"column:farm_name"`
	}
	err := r.db.Model(&entities.Task{}).
		Select("tasks.*, plots.name AS plot_name, farms.name AS farm_name").
		Joins("JOIN plots ON plots.id = tasks.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("tasks.user_id = ?", userID).
		Order("tasks.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.RecentTask, 0, len(rows))
	for _, t := range rows {
		out = append(out, repository.RecentTask{
			ID:       t.ID,
			Title:    t.Title,
			DueDate:  dates.Format(t.DueDate),
			Priority: t.Priority,
			Status:   t.Status,
			Type:     t.Type,
			PlotName: t.PlotName,
			FarmName: t.FarmName,
		})
	}
	return out, nil
}

func (r *userRepo) RecentJournal(userID string, limit int) ([]repository.RecentJournal, error) {
	var rows []struct {
		entities.JournalEntry
		PlotName string `gorm:"column:plot_name"`
		FarmName string `gorm:"column:farm_name"`
	}
	err := r.db.Model(&entities.JournalEntry{}).
		Select("journal_entries.*, plots.name AS plot_name, farms.name AS farm_name").
		Joins("JOIN plots ON plots.id = journal_entries.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("journal_entries.user_id = ?", userID).
		Order("journal_entries.entry_date DESC").
		Order("journal_entries.created_at DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]repository.RecentJournal, 0, len(rows))
	for _, e := range rows {
		out = append(out, repository.RecentJournal{
			ID:       e.ID,
			Title:    e.Title,
			Date:     dates.Format(e.EntryDate),
			Type:     e.Type,
			PlotName: e.PlotName,
			FarmName: e.FarmName,
		})
	}
	return out, nil
}
