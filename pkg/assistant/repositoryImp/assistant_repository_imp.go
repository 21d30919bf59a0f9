package repositoryImp

import (
	"errors"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/ai"
	"airrvie/pkg/apperr"
	"airrvie/pkg/assistant/repository"
)

type assistantRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.AssistantRepository {
	return &assistantRepo{db: db}
}

func (r *assistantRepo) ListConversations(userID string) ([]entities.Conversation, error) {
	var out []entities.Conversation
	err := r.db.Where("user_id = ?", userID).
		Order("started_at DESC").
		Find(&out).Error
	return out, err
}

func (r *assistantRepo) CreateConversation(cv *entities.Conversation) error {
	return r.db.Create(cv).Error
}

func (r *assistantRepo) FindConversation(conversationID, userID string) (*entities.Conversation, []entities.Message, error) {
	var cv entities.Conversation
	err := r.db.Where("id = ? AND user_id = ?", conversationID, userID).First(&cv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, apperr.With(apperr.ErrNotFound, "conversation not found")
	}
	if err != nil {
		return nil, nil, err
	}
	var msgs []entities.Message
	err = r.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&msgs).Error
	if err != nil {
		return nil, nil, err
	}
	return &cv, msgs, nil
}

func (r *assistantRepo) AddMessage(m *entities.Message) error {
	return r.db.Create(m).Error
}

func (r *assistantRepo) SoftDeleteConversation(conversationID, userID string) error {
	res := r.db.Where("id = ? AND user_id = ?", conversationID, userID).
		Delete(&entities.Conversation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.With(apperr.ErrNotFound, "conversation not found")
	}
	return nil
}

func (r *assistantRepo) PlotContext(plotID, userID string) (*ai.PlotContext, error) {
	var row struct {
		Name     string
		Variety  *string
		SoilType *string
		FarmName string `gorm:"column:farm_name"`
	}
	err := r.db.Model(&entities.Plot{}).
		Select("plots.name, plots.variety, plots.soil_type, farms.name AS farm_name").
		Joins("JOIN farms ON farms.id = plots.farm_id AND farms.deleted_at IS NULL").
		Where("plots.id = ? AND farms.user_id = ?", plotID, userID).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Unknown plots do not fail the message; the reply just goes
		// unannotated.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	pc := &ai.PlotContext{PlotName: row.Name, FarmName: row.FarmName}
	if row.Variety != nil {
		pc.Variety = *row.Variety
	}
	if row.SoilType != nil {
		pc.SoilType = *row.SoilType
	}
	return pc, nil
}
