package repository

import "airrvie/entities"

type KnowledgeRepository interface {
	BulkInsert(chunks []entities.KnowledgeChunk) error
	// Search matches query words against title and content of chunks in
	// the given language (or "both"), best matches first.
	Search(query, lang string, limit int) ([]entities.KnowledgeChunk, error)
	Recent(lang string, limit int) ([]entities.KnowledgeChunk, error)
}
