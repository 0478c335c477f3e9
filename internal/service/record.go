package service

import (
	"BotDisk/internal/repo"
	"BotDisk/model"
	"errors"
)

// ErrDuplicateURL is returned when a record with the same URL already
// exists. Timestamp-derived URLs make this nearly impossible, but the
// invariant is checked, not assumed.
var ErrDuplicateURL = errors.New("url already exists")

// CreateFileRecord inserts a file record.
func CreateFileRecord(record *model.FileRecord) error {
	if err := repo.Db.Create(record).Error; err != nil {
		if repo.IsDuplicateKeyError(err) {
			return ErrDuplicateURL
		}
		return err
	}
	return nil
}

// GetFileRecordByURL finds a record by its public URL. Returns
// gorm.ErrRecordNotFound when the URL is unknown.
func GetFileRecordByURL(url string) (*model.FileRecord, error) {
	var record model.FileRecord
	err := repo.Db.Where("url = ?", url).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// DeleteFileRecordByURL removes a record. Deleting the record is what makes
// the URL stop being servable, regardless of the blob backend's state.
func DeleteFileRecordByURL(url string) error {
	return repo.Db.Where("url = ?", url).Delete(&model.FileRecord{}).Error
}

// ListFileRecords returns all records, newest first.
func ListFileRecords() ([]model.FileRecord, error) {
	var records []model.FileRecord
	err := repo.Db.Order("created_at DESC").Find(&records).Error
	return records, err
}
