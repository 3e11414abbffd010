package cmd

import (
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/smira/commander"
	"github.com/smira/flag"

	"github.com/repoaudit-dev/repoaudit/console"
	"github.com/repoaudit-dev/repoaudit/repoaudit"
	"github.com/repoaudit-dev/repoaudit/utils"
)

// AuditContext is a common context shared by all commands
type AuditContext struct {
	globalFlags *flag.FlagSet
	progress    repoaudit.Progress
}

var context *AuditContext

// FatalError is type for panicking to abort execution with non-zero
// exit code and print meaningful explanation
type FatalError struct {
	ReturnCode int
	Message    string
}

// Fatal panics and aborts execution with exit code 1
func Fatal(err error) {
	returnCode := 1
	if err == commander.ErrFlagError || err == commander.ErrCommandError {
		returnCode = 2
	}
	panic(&FatalError{ReturnCode: returnCode, Message: err.Error()})
}

// InitContext initializes context: loads configuration, applies flag
// overrides and starts progress display
func InitContext(flags *flag.FlagSet) error {
	context = &AuditContext{globalFlags: flags}

	configLocation := flags.Lookup("config").Value.String()
	if configLocation != "" {
		err := utils.LoadConfig(configLocation, &utils.Config)
		if err != nil {
			return err
		}
	} else {
		configLocations := []string{
			filepath.Join(os.Getenv("HOME"), ".repoaudit.conf"),
			"/etc/repoaudit.conf",
		}

		for _, configLocation = range configLocations {
			err := utils.LoadConfig(configLocation, &utils.Config)
			if err == nil {
				break
			}
			if !os.IsNotExist(err) {
				return err
			}
		}
	}

	if value := flags.Lookup("db").Value.String(); value != "" {
		utils.Config.DatabasePath = value
	}
	if value := flags.Lookup("recipe-root").Value.String(); value != "" {
		utils.Config.RecipeRoot = value
	}
	if value := flags.Lookup("repository").Value.String(); value != "" {
		utils.Config.Repository = value
	}
	if value := flags.Lookup("threads").Value.Get().(int); value != 0 {
		utils.Config.Threads = value
	}
	if value := flags.Lookup("log-level").Value.String(); value != "" {
		utils.Config.LogLevel = value
	}
	if value := flags.Lookup("log-format").Value.String(); value != "" {
		utils.Config.LogFormat = value
	}

	utils.SetupLogger(utils.Config.LogFormat, utils.Config.LogLevel)
	log.Debug().Str("config", configLocation).Msg("context initialized")

	context.progress = console.NewProgress()
	context.progress.Start()

	return nil
}

// ShutdownContext shuts context down
func ShutdownContext() {
	if context != nil && context.progress != nil {
		context.progress.Shutdown()
	}
}

// Config returns the loaded configuration
func (context *AuditContext) Config() *utils.ConfigStructure {
	return &utils.Config
}

// Progress returns the context's progress display
func (context *AuditContext) Progress() repoaudit.Progress {
	return context.progress
}
