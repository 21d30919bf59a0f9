package repositoryImp

import (
	"strings"

	"gorm.io/gorm"

	"airrvie/entities"
	"airrvie/pkg/knowledge/repository"
)

type knowledgeRepo struct {
	db *gorm.DB
}

func New(db *gorm.DB) repository.KnowledgeRepository {
	return &knowledgeRepo{db: db}
}

func (r *knowledgeRepo) BulkInsert(chunks []entities.KnowledgeChunk) error {
	if len(chunks) == 0 {
		return nil
	}
	return r.db.Create(&chunks).Error
}

func (r *knowledgeRepo) Search(query, lang string, limit int) ([]entities.KnowledgeChunk, error) {
	q := r.db.Where("lang = ? OR lang = ?", lang, "both")
	for _, w := range strings.Fields(strings.ToLower(query)) {
		like := "%" + w + "%"
		q = q.Where("LOWER(content) LIKE ? OR LOWER(title) LIKE ?", like, like)
	}
	var out []entities.KnowledgeChunk
	err := q.Order("created_at DESC").Limit(limit).Find(&out).Error
	return out, err
}

func (r *knowledgeRepo) Recent(lang string, limit int) ([]entities.KnowledgeChunk, error) {
	var out []entities.KnowledgeChunk
	err := r.db.Where("lang = ? OR lang = ?", lang, "both").
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
