package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/ytget/remote-downloader/internal/api"
	"github.com/ytget/remote-downloader/internal/config"
	"github.com/ytget/remote-downloader/internal/download"
	"github.com/ytget/remote-downloader/internal/form"
	"github.com/ytget/remote-downloader/internal/logger"
	"github.com/ytget/remote-downloader/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.remote-downloader"
	AppName = "Remote Downloader"

	WindowWidth  = 720
	WindowHeight = 760
)

func main() {
	// .env and REMOTE_DL_* only provide fallbacks; saved settings win
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to load .env: %v\n", err)
	}
	env, err := config.FromViper(config.NewViper())
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid environment, using defaults: %v\n", err)
		env = config.Env{
			APIBaseURL: config.DefaultAPIBaseURL,
			Debounce:   config.DefaultDebounceDelay,
			LogLevel:   "info",
		}
	}

	if err := logger.Init(env.LogLevel, env.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("starting", zap.String("app", AppName), zap.String("version", version))

	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewCompactTheme())
	myApp.SetIcon(ui.LogoResource())

	myWindow := myApp.NewWindow(fmt.Sprintf("%s v%s", AppName, version))
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	settings.SetFallbackAPIBaseURL(env.APIBaseURL)

	client := api.NewClient(settings.GetAPIBaseURL(),
		api.WithTimeout(settings.GetRequestTimeout()),
		api.WithLogger(logger.Named("api")))
	downloadSvc := download.NewService(client)
	workflow := form.New(client, downloadSvc,
		form.WithDebounce(env.Debounce),
		form.WithSitesSource(client))

	root := ui.NewRootUI(myWindow, settings, client, workflow, downloadSvc)
	myWindow.SetOnClosed(root.Close)

	myWindow.ShowAndRun()
}
