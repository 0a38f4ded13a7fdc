package app

import (
	"context"
	"errors"
	"io"

	"github.com/doeshing/termbot/internal/application/chat"
	appconfig "github.com/doeshing/termbot/internal/application/config"
	"github.com/doeshing/termbot/internal/application/dispatch"
	"github.com/doeshing/termbot/internal/application/doctor"
	"github.com/doeshing/termbot/internal/domain"
	"github.com/doeshing/termbot/internal/infrastructure/ai"
	"github.com/doeshing/termbot/internal/infrastructure/config"
	"github.com/doeshing/termbot/internal/infrastructure/executor"
	"github.com/doeshing/termbot/internal/infrastructure/files"
	"github.com/doeshing/termbot/internal/infrastructure/history"
	"github.com/doeshing/termbot/internal/infrastructure/security"
	"github.com/doeshing/termbot/internal/infrastructure/system"
	"github.com/doeshing/termbot/internal/pkg/logger"
	"github.com/doeshing/termbot/internal/ports"
)

// Options controls container construction.
type Options struct {
	ConfigPath string
	Verbose    bool
}

// Terminal bundles the interactive adapters owned by the CLI layer.
type Terminal struct {
	Input     ports.LineReader
	Output    io.Writer
	Confirmer ports.Confirmer
	Progress  ports.ProgressIndicator
}

// Container wires up application services with infrastructure adapters.
type Container struct {
	Config        domain.Config
	ConfigLoader  *config.FileLoader
	Logger        *logger.ZapLogger
	Classifier    *security.Classifier
	Files         *files.Accessor
	Inspector     *system.Inspector
	AuditStore    ports.AuditRepository
	Completion    ports.CompletionClient
	Session       *chat.Session
	DoctorService *doctor.Service
}

// BuildContainer constructs the dependency graph. Terminal-bound pieces are
// assembled later by NewDispatcher so non-interactive subcommands never touch stdin.
func BuildContainer(ctx context.Context, opts Options) (*Container, error) {
	log := logger.New(opts.Verbose)

	cfgLoader := config.NewFileLoader(opts.ConfigPath)
	cfg, err := cfgLoader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if err := appconfig.Validate(cfg); err != nil {
		return nil, err
	}

	classifier, err := security.NewClassifier(cfg.Security.RulesFile)
	if err != nil {
		log.Warn("danger pattern file unusable, using embedded set", map[string]interface{}{
			"path":  cfg.Security.RulesFile,
			"error": err.Error(),
		})
		classifier, err = security.NewClassifier("")
		if err != nil {
			return nil, err
		}
	}

	var auditStore ports.AuditRepository
	if cfg.IsHistoryEnabled() {
		auditStore = history.Open(ctx, cfg.History.Path, log)
	}

	completion := ai.NewFactory(cfg.GetModelTimeout()).ForConfig(&cfg)
	session := chat.NewSession(completion, chat.Options{
		AuthEnvVar: cfg.GetAuthEnvVar(),
		Logger:     log,
	})
	inspector := system.NewInspector(log)

	doctorService := &doctor.Service{
		ConfigProvider: cfgLoader,
		Patterns:       classifier,
		Audit:          auditStore,
		Inspector:      inspector,
		Shell:          executor.NewLocalExecutor(executor.Options{Shell: cfg.GetExecutionShell()}).Shell(),
	}

	log.Debug("container ready", map[string]interface{}{
		"config":   cfgLoader.Path(),
		"provider": completion.Name(),
		"patterns": classifier.Source(),
		"session":  session.ID(),
	})

	return &Container{
		Config:        cfg,
		ConfigLoader:  cfgLoader,
		Logger:        log,
		Classifier:    classifier,
		Files:         files.NewAccessor(log),
		Inspector:     inspector,
		AuditStore:    auditStore,
		Completion:    completion,
		Session:       session,
		DoctorService: doctorService,
	}, nil
}

// NewDispatcher builds the REPL dispatcher around the given terminal adapters.
func (c *Container) NewDispatcher(term Terminal) *dispatch.Dispatcher {
	exec := executor.NewLocalExecutor(executor.Options{
		Shell:      c.Config.GetExecutionShell(),
		Timeout:    c.Config.GetCommandTimeout(),
		Classifier: c.Classifier,
		Confirmer:  term.Confirmer,
		Logger:     c.Logger,
	})
	return &dispatch.Dispatcher{
		Executor:  exec,
		Files:     c.Files,
		Inspector: c.Inspector,
		Session:   c.Session,
		Audit:     c.AuditStore,
		Input:     term.Input,
		Output:    term.Output,
		Progress:  term.Progress,
		Logger:    c.Logger,
	}
}

// Close releases the audit store and flushes the logger.
func (c *Container) Close() error {
	var errs []error
	if c.AuditStore != nil {
		errs = append(errs, c.AuditStore.Close())
	}
	_ = c.Logger.Sync()
	return errors.Join(errs...)
}
