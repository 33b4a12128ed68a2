package service

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/xolan/tasktime/internal/api"
	"github.com/xolan/tasktime/internal/config"
	"github.com/xolan/tasktime/internal/git"
	"github.com/xolan/tasktime/internal/logging"
	"github.com/xolan/tasktime/internal/secret"
	"github.com/xolan/tasktime/internal/storage"
	"github.com/xolan/tasktime/internal/taskid"
	"github.com/xolan/tasktime/internal/timeinput"
)

// Services holds all service instances used by the application
type Services struct {
	Task    *TaskService
	TimeLog *TimeLogService
	Token   *TokenService
	Hook    *HookService
	Config  *ConfigService
}

// Options carries everything NewServicesWith needs. Nil fields get
// defaults built from Config.
type Options struct {
	Config      config.Config
	ConfigPath  string
	JournalPath string
	Repository  *git.Repository
	Branches    BranchReader // defaults to Repository
	Client      TaskClient
	Tokens      secret.Store
	Executable  string
	Logger      *log.Logger
}

// NewServices creates a new Services instance with default paths, the
// git repository of the working directory and the configured tracker.
func NewServices(logger *log.Logger) (*Services, error) {
	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	journalPath, err := storage.GetJournalPath()
	if err != nil {
		return nil, err
	}

	credentialsPath, err := secret.GetCredentialsPath()
	if err != nil {
		return nil, err
	}

	executable, err := os.Executable()
	if err != nil {
		executable = "tasktime"
	}

	return NewServicesWith(Options{
		Config:      cfg,
		ConfigPath:  configPath,
		JournalPath: journalPath,
		Repository:  git.NewRepository("."),
		Tokens:      secret.NewEnvStore(secret.NewFileStore(credentialsPath)),
		Executable:  executable,
		Logger:      logger,
	})
}

// NewServicesWith creates a new Services instance from explicit options
// (useful for testing). It fails only when the configured task ID pattern
// does not compile.
func NewServicesWith(opts Options) (*Services, error) {
	extractor, err := taskid.New(opts.Config.TaskIDPattern)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	repo := opts.Repository
	if repo == nil {
		repo = git.NewRepository(".")
	}
	branches := opts.Branches
	if branches == nil {
		branches = repo
	}

	store := opts.Tokens
	if store == nil {
		store = secret.NewFileStore(filepath.Join(filepath.Dir(opts.JournalPath), secret.CredentialsFile))
	}
	tokens := NewTokenService(store, nil)

	client := opts.Client
	if client == nil {
		client = api.NewClient(api.Options{
			BaseURL:           opts.Config.API.BaseURL,
			Token:             tokens.Token,
			Timeout:           opts.Config.API.TimeoutDuration(),
			RequestsPerMinute: opts.Config.API.RequestsPerMinute,
			CacheTTL:          opts.Config.API.CacheTTLDuration(),
			Logger:            logger,
		})
	}
	tokens.client = client

	executable := opts.Executable
	if executable == "" {
		executable = "tasktime"
	}

	processor := timeinput.New(opts.Config.Time.Policy())

	return &Services{
		Task:    NewTaskService(branches, client, extractor),
		TimeLog: NewTimeLogService(processor, client, opts.JournalPath, logger),
		Token:   tokens,
		Hook:    NewHookService(repo, executable),
		Config:  NewConfigService(opts.ConfigPath, opts.Config),
	}, nil
}
