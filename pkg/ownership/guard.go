// Package ownership re-derives, per request, whether an acting user is the
// ancestor-owner of a target entity. The chain is walked with a join query;
// every node on the path must be live. Callers surface a failed check as
// "not found", never "forbidden", so the existence of other users' data is
// not leaked.
package ownership

import (
	"gorm.io/gorm"

	"airrvie/entities"
)

type Guard struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Guard { return &Guard{db: db} }

// FarmOwned checks the length-1 chain farm -> user.
func (g *Guard) FarmOwned(farmID, userID string) (bool, error) {
	var n int64
	err := g.db.Model(&entities.Farm{}).
		Where("id = ? AND user_id = ?", farmID, userID).
		Count(&n).Error
	return n > 0, err
}

// PlotOwned checks the chain plot -> farm -> user. The plot's soft-delete
// filter comes from the model; the joined farm is filtered explicitly.
func (g *Guard) PlotOwned(plotID, userID string) (bool, error) {
	var n int64
	err := g.db.Model(&entities.Plot{}).
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("plots.id = ? AND farms.user_id = ?", plotID, userID).
		Count(&n).Error
	return n > 0, err
}

// TaskOwned checks the redundant task.user_id link; tasks carry the owner
// directly so the full chain walk is not needed here.
func (g *Guard) TaskOwned(taskID, userID string) (bool, error) {
	var n int64
	err := g.db.Model(&entities.Task{}).
		Where("id = ? AND user_id = ?", taskID, userID).
		Count(&n).Error
	return n > 0, err
}

// ConversationOwned checks the length-1 chain conversation -> user.
func (g *Guard) ConversationOwned(conversationID, userID string) (bool, error) {
	var n int64
	err := g.db.Model(&entities.Conversation{}).
		Where("id = ? AND user_id = ?", conversationID, userID).
		Count(&n).Error
	return n > 0, err
}
