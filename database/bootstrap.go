package database

import (
	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"airrvie/entities"
)

// OpenSQLite opens (or creates) the database and migrates the full schema.
func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		logrus.WithError(err).Fatal("open sqlite")
	}
	if err := Migrate(db); err != nil {
		logrus.WithError(err).Fatal("automigrate")
	}
	return db
}

// Migrate runs AutoMigrate for every entity. Split out so tests can point
// it at an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entities.User{},
		&entities.Farm{},
		&entities.Plot{},
		&entities.Task{},
		&entities.JournalEntry{},
		&entities.MediaAsset{},
		&entities.Conversation{},
		&entities.Message{},
		&entities.KnowledgeChunk{},
	)
}
