package repository

import (
	"fmt"

	"github.com/fadilmartias/labour-intake/internal/model"
	"gorm.io/gorm"
)

var extensions = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,
	`CREATE EXTENSION IF NOT EXISTS vector`,
}

// Migrate installs the uuid and pgvector extensions and syncs the intake tables.
func Migrate(db *gorm.DB) error {
	for _, stmt := range extensions {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("%s: %w", stmt, err)
		}
	}
	return db.AutoMigrate(&model.ConversationSession{}, &model.LabourProfile{})
}
