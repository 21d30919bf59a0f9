package repositoryImp

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/apperr"
	"airrvie/pkg/patch"
	"airrvie/pkg/task/repository"
)

type taskRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TaskRepository { return &taskRepo{db} }

func (r *taskRepo) Create(t *entities.Task) error { return r.db.Create(t).Error }

func (r *taskRepo) FindByID(taskID, userID string) (*entities.Task, error) {
	var t entities.Task
	err := r.db.Where("id = ? AND user_id = ?", taskID, userID).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.With(apperr.ErrNotFound, "task not found")
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *taskRepo) projected(userID string) *gorm.DB {
	return r.db.Model(&entities.Task{}).
		Select("tasks.*, plots.name AS plot_name, farms.name AS farm_name").
		Joins("JOIN plots ON plots.id = tasks.plot_id AND plots.deleted_at IS NULL").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("tasks.user_id = ?", userID)
}

func (r *taskRepo) ListByUser(userID string) ([]repository.TaskRow, error) {
	out := []repository.TaskRow{}
	err := r.projected(userID).
		Order("CASE tasks.status WHEN 'pending' THEN 1 WHEN 'in_progress' THEN 2 ELSE 3 END").
		Order("CASE tasks.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END").
		Order("tasks.due_date").
		Find(&out).Error
	return out, err
}

func (r *taskRepo) Upcoming(userID string, days int) ([]repository.TaskRow, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	out := []repository.TaskRow{}
	err := r.projected(userID).
		Where("tasks.due_date >= ? AND tasks.due_date < ?", today, today.AddDate(0, 0, days+1)).
		Where("tasks.status <> ?", entities.TaskStatusDone).
		Order("tasks.due_date").
		Order("CASE tasks.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END").
		Find(&out).Error
	return out, err
}

func (r *taskRepo) Update(taskID, userID string, p *patch.Patch) error {
	if v, ok := p.Get("status"); ok {
		st, _ := v.(string)
		// Derived field: completed always tracks status, overriding any
		// caller-supplied value in the same request.
		p.Set("completed", st == entities.TaskStatusDone)
	}
	scoped := r.db.Model(&entities.Task{}).Where("id = ? AND user_id = ?", taskID, userID)
	_, err := patch.Apply(scoped, p)
	return err
}

func (r *taskRepo) Complete(taskID, userID string) error {
	p := patch.New().Set("status", entities.TaskStatusDone)
	return r.Update(taskID, userID, p)
}

func (r *taskRepo) SoftDelete(taskID, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", taskID, userID).Delete(&entities.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.With(apperr.ErrNotFound, "task not found")
	}
	return nil
}

func (r *taskRepo) Stats(userID string) (repository.Stats, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var s repository.Stats
	err := r.db.Model(&entities.Task{}).
		Select(`COUNT(*) AS total,
			COALESCE(SUM(CASE WHEN status = 'pending' THEN 1 ELSE 0 END), 0) AS pending,
			COALESCE(SUM(CASE WHEN status = 'in_progress' THEN 1 ELSE 0 END), 0) AS in_progress,
			COALESCE(SUM(CASE WHEN status = 'done' THEN 1 ELSE 0 END), 0) AS completed,
			COALESCE(SUM(CASE WHEN due_date < ? AND status <> 'done' THEN 1 ELSE 0 END), 0) AS overdue,
			COALESCE(SUM(CASE WHEN due_date >= ? AND due_date < ? AND status <> 'done' THEN 1 ELSE 0 END), 0) AS due_today`,
			today, today, today.AddDate(0, 0, 1)).
		Where("user_id = ?", userID).
		Scan(&s).Error
	return s, err
}
