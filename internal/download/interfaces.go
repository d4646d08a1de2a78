package download

import (
	"context"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/model"
)

// Backend is the part of the API client the service needs.
type Backend interface {
	Download(ctx context.Context, url, selector string) (api.DownloadResponse, error)
}

// Submitter defines the interface for the download service.
type Submitter interface {
	SetUpdateCallback(func(model.DownloadTask))
	Submit(ctx context.Context, url string, quality config.QualityPreset, title string) (model.DownloadTask, api.DownloadResponse, error)
	GetTask(id string) (model.DownloadTask, bool)
	GetAllTasks() []model.DownloadTask
	RemoveTask(id string) error
	ClearFinished() int
}
