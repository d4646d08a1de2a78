package download

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/logger"
	"github.com/ytget/remote-downloader/internal/model"
)

// ErrInvalidQuality is returned for a preset outside the closed set.
var ErrInvalidQuality = errors.New("invalid quality preset")

// Service sends download requests and keeps their history
type Service struct {
	backend    Backend
	tasks      map[string]*model.DownloadTask
	tasksMutex sync.RWMutex
	onUpdate   func(model.DownloadTask) // callback for UI updates
	log        *zap.Logger
}

// NewService creates a new download service
func NewService(backend Backend) *Service {
	return &Service{
		backend: backend,
		tasks:   make(map[string]*model.DownloadTask),
		log:     logger.Named("download"),
	}
}

// SetUpdateCallback sets the callback function for task updates
func (s *Service) SetUpdateCallback(callback func(model.DownloadTask)) {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()
	s.onUpdate = callback
}

// Submit sends one download request and blocks until the backend answers. The
// returned error is the backend or transport failure; a warning answer is not
// an error and is reported through the task status.
func (s *Service) Submit(ctx context.Context, url string, quality config.QualityPreset, title string) (model.DownloadTask, api.DownloadResponse, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return model.DownloadTask{}, api.DownloadResponse{}, errors.New("url is required")
	}
	if !quality.Valid() {
		return model.DownloadTask{}, api.DownloadResponse{}, fmt.Errorf("%w: %q", ErrInvalidQuality, quality)
	}

	task := &model.DownloadTask{
		ID:          generateTaskID(),
		URL:         url,
		Quality:     string(quality),
		Selector:    quality.Selector(),
		Status:      model.TaskStatusSubmitting,
		Title:       title,
		SubmittedAt: time.Now(),
	}

	s.tasksMutex.Lock()
	s.tasks[task.ID] = task
	s.tasksMutex.Unlock()
	s.notifyUpdate(task)

	s.log.Info("submitting download",
		zap.String("task_id", task.ID),
		zap.String("url", url),
		zap.String("quality", task.Quality))

	resp, err := s.backend.Download(ctx, url, task.Selector)

	s.tasksMutex.Lock()
	task.FinishedAt = time.Now()
	switch {
	case err != nil:
		task.Status = model.TaskStatusError
		task.Message = err.Error()
	case resp.Success:
		task.Status = model.TaskStatusCompleted
		task.Message = resp.Message
		if info, ok := resp.Verification(); ok && info.Title() != "" {
			task.Title = info.Title()
		} else if resp.Title != "" {
			task.Title = resp.Title
		}
	default:
		task.Status = model.TaskStatusWarning
		task.Message = resp.Warning
	}
	snapshot := *task
	s.tasksMutex.Unlock()

	if err != nil {
		s.log.Warn("download failed", zap.String("task_id", task.ID), zap.Error(err))
	} else {
		s.log.Info("download answered",
			zap.String("task_id", task.ID),
			zap.String("status", snapshot.Status.String()),
			zap.Duration("elapsed", snapshot.FinishedAt.Sub(snapshot.SubmittedAt)))
	}
	s.notifyUpdate(&snapshot)

	return snapshot, resp, err
}

// GetTask returns a copy of a task by ID
func (s *Service) GetTask(id string) (model.DownloadTask, bool) {
	s.tasksMutex.RLock()
	defer s.tasksMutex.RUnlock()
	task, exists := s.tasks[id]
	if !exists {
		return model.DownloadTask{}, false
	}
	return *task, true
}

// GetAllTasks returns copies of all tasks, newest first
func (s *Service) GetAllTasks() []model.DownloadTask {
	s.tasksMutex.RLock()
	tasks := make([]model.DownloadTask, 0, len(s.tasks))
	for _, task := range s.tasks {
		tasks = append(tasks, *task)
	}
	s.tasksMutex.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		return tasks[i].SubmittedAt.After(tasks[j].SubmittedAt)
	})
	return tasks
}

// RemoveTask removes a finished task from the history
func (s *Service) RemoveTask(id string) error {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	task, exists := s.tasks[id]
	if !exists {
		return fmt.Errorf("task not found: %s", id)
	}
	if task.Status.IsActive() {
		return fmt.Errorf("task is still active: %s", task.Status)
	}
	delete(s.tasks, id)
	return nil
}

// ClearFinished drops every finished task and returns how many were removed
func (s *Service) ClearFinished() int {
	s.tasksMutex.Lock()
	defer s.tasksMutex.Unlock()

	removed := 0
	for id, task := range s.tasks {
		if task.Status.IsFinished() {
			delete(s.tasks, id)
			removed++
		}
	}
	return removed
}

// notifyUpdate calls the update callback with a copy of the task
func (s *Service) notifyUpdate(task *model.DownloadTask) {
	s.tasksMutex.RLock()
	callback := s.onUpdate
	snapshot := *task
	s.tasksMutex.RUnlock()

	if callback != nil {
		callback(snapshot)
	}
}

// generateTaskID generates a unique, time-ordered task ID
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return "dl-" + uuid.NewString()
	}
	return "dl-" + id.String()
}
