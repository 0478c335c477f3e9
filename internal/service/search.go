package service

import (
	"BotDisk/internal/repo"
	"BotDisk/model"
	"fmt"
	"strings"
)

// SearchFileRecords returns records whose display name contains the query,
// case-insensitively, newest first. An empty query matches everything.
func SearchFileRecords(query string) ([]model.FileRecord, error) {
	var records []model.FileRecord
	pattern := fmt.Sprintf("%%%s%%", strings.ToLower(query))
	err := repo.Db.Model(&model.FileRecord{}).
		Where("LOWER(file_name) LIKE ?", pattern).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
