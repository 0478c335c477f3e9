package model

import "time"

type FetchTask struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`

	Source   string `gorm:"column:source;type:text;not null" json:"source"`
	FileName string `gorm:"column:file_name;type:varchar(255);not null" json:"file_name"`

	// ResultURL is the public URL once the fetched file has been relayed.
	ResultURL string `gorm:"column:result_url;type:varchar(512)" json:"result_url"`

	Status      string     `gorm:"column:status;type:varchar(32);index;not null" json:"status"`
	ErrorMsg    string     `gorm:"column:error_msg;type:text" json:"error_msg"`
	RetryCount  int        `gorm:"column:retry_count;default:0" json:"retry_count"`
	NextRetryAt *time.Time `gorm:"column:next_retry_at" json:"next_retry_at"`
	StartedAt   *time.Time `gorm:"column:started_at" json:"started_at"`
	FinishedAt  *time.Time `gorm:"column:finished_at" json:"finished_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name.
func (FetchTask) TableName() string {
	return "fetch_task"
}
