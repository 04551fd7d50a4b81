package config

const (
	LogHandlerConsole  = "console"
	LogHandlerGeneral  = "general"
	LogHandlerErrors   = "errors"
	LogHandlerDebug    = "debug"
	LogHandlerDatabase = "database"
	LogHandlerServer   = "server"
	LogHandlerTasks    = "tasks"
)

const (
	RootLogger     = ""
	DatabaseLogger = "database"
	ServerLogger   = "server"
	TasksLogger    = "tasks"
)

const StdoutSink = "stdout"

// DefaultLoggingConfig is the routing table used when the config file does not override it.
// Every file handler is size bounded and keeps a fixed number of rotated backups.
func DefaultLoggingConfig(development bool) LoggingConfig {
	consoleLevel := "info"
	if development {
		consoleLevel = "debug"
	}

	rootHandlers := []string{LogHandlerConsole, LogHandlerGeneral, LogHandlerErrors}
	if development {
		rootHandlers = append(rootHandlers, LogHandlerDebug)
	}

	return LoggingConfig{
		Dir: "logs",
		Handlers: map[string]LogHandlerConfig{
			LogHandlerConsole: {
				Sink:   StdoutSink,
				Level:  consoleLevel,
				Format: "simple",
			},
			LogHandlerGeneral: {
				Sink:       "general.log",
				Level:      "info",
				Format:     "verbose",
				MaxSizeMb:  10,
				MaxBackups: 5,
			},
			LogHandlerErrors: {
				Sink:       "errors.log",
				Level:      "error",
				Format:     "verbose",
				MaxSizeMb:  10,
				MaxBackups: 10,
			},
			LogHandlerDebug: {
				Sink:       "debug.log",
				Level:      "debug",
				Format:     "verbose",
				MaxSizeMb:  10,
				MaxBackups: 3,
			},
			LogHandlerDatabase: {
				Sink:       "database.log",
				Level:      "debug",
				Format:     "verbose",
				MaxSizeMb:  10,
				MaxBackups: 3,
			},
			LogHandlerServer: {
				Sink:       "server.log",
				Level:      "info",
				Format:     "verbose",
				MaxSizeMb:  10,
				MaxBackups: 5,
			},
			LogHandlerTasks: {
				Sink:       "tasks.log",
				Level:      "info",
				Format:     "verbose",
				MaxSizeMb:  10,
				MaxBackups: 5,
			},
		},
		Loggers: map[string]LoggerConfig{
			RootLogger: {
				Level:    consoleLevel,
				Handlers: rootHandlers,
			},
			DatabaseLogger: {
				Level:     "debug",
				Handlers:  []string{LogHandlerDatabase},
				Propagate: false,
			},
			ServerLogger: {
				Level:     "info",
				Handlers:  []string{LogHandlerConsole, LogHandlerServer},
				Propagate: true,
			},
			TasksLogger: {
				Level:     "info",
				Handlers:  []string{LogHandlerConsole, LogHandlerTasks},
				Propagate: true,
			},
		},
	}
}
