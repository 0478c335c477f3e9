package task

import (
	"BotDisk/config"
	"BotDisk/internal/mq"
	"BotDisk/internal/repo"
	"BotDisk/internal/service"
	"BotDisk/model"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// FetchMessage is the payload sent to the worker.
type FetchMessage struct {
	TaskID  uint64 `json:"task_id"`
	Attempt int    `json:"attempt"`
}

const fetchLockTTL = 30 * time.Minute

// CreateFetchTask creates and enqueues a fetch task.
func CreateFetchTask(url, fileName string) (*model.FetchTask, error) {
	task := &model.FetchTask{
		Source:   url,
		FileName: fileName,
		Status:   "pending",
	}
	if err := repo.Db.Create(task).Error; err != nil {
		return nil, err
	}
	msg := FetchMessage{
		TaskID:  task.ID,
		Attempt: 0,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		markFetchTaskFailed(task.ID, err)
		return nil, err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		markFetchTaskFailed(task.ID, err)
		return nil, err
	}
	if err := publisher.PublishTask(context.Background(), body); err != nil {
		markFetchTaskFailed(task.ID, err)
		return nil, err
	}
	return task, nil
}

// ListFetchTasks lists the most recent fetch tasks.
func ListFetchTasks(limit int) ([]model.FetchTask, error) {
	if limit <= 0 {
		limit = 20
	}
	var tasks []model.FetchTask
	err := repo.Db.Order("created_at DESC").
		Limit(limit).
		Find(&tasks).Error
	return tasks, err
}

// ProcessFetchTask executes a fetch task: download the source, relay the
// bytes through the upload flow, record the resulting public URL. A Redis
// lock on the source URL keeps two workers from fetching the same source
// at once.
func ProcessFetchTask(ctx context.Context, taskID uint64) error {
	var task model.FetchTask
	if err := repo.Db.Where("id = ?", taskID).First(&task).Error; err != nil {
		return err
	}
	if task.Status == "completed" {
		return nil
	}
	origin := config.AppConfig.PublicOrigin
	if origin == "" {
		return errors.New("PUBLIC_ORIGIN must be set for fetch tasks")
	}

	startedAt := time.Now()
	res := repo.Db.Model(&model.FetchTask{}).
		Where("id = ? AND status IN ?", taskID, []string{"pending", "retrying"}).
		Updates(map[string]interface{}{
			"status":     "running",
			"started_at": &startedAt,
			"error_msg":  "",
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	lock := repo.NewRedisLock(repo.Redis, "fetch:lock:"+task.Source, fetchLockTTL)
	if err := lock.Lock(ctx); err != nil {
		return fmt.Errorf("source busy: %w", err)
	}
	defer func() {
		_ = lock.Unlock(ctx)
	}()

	data, err := service.FetchByHTTP(ctx, task.Source)
	if err != nil {
		return err
	}

	record, err := service.UploadFile(
		ctx,
		origin,
		task.FileName,
		bytes.NewReader(data),
		int64(len(data)),
	)
	if err != nil {
		return err
	}

	finishedAt := time.Now()
	return repo.Db.Model(&task).Updates(map[string]interface{}{
		"status":      "completed",
		"result_url":  record.URL,
		"finished_at": &finishedAt,
	}).Error
}

func markFetchTaskFailed(taskID uint64, err error) {
	finishedAt := time.Now()
	_ = repo.Db.Model(&model.FetchTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":      "failed",
			"error_msg":   err.Error(),
			"finished_at": &finishedAt,
		}).Error
}
