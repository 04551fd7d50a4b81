package logging

import (
	"Keyo/internal/config"
	"fmt"

	"go.uber.org/zap"
)

var Logger = zap.NewNop().Sugar()

var router *Router

// Init builds the logger tree from config.C.Logging. Without a routing table
// it falls back to a plain console logger.
func Init() {
	if len(config.C.Logging.Loggers) == 0 {
		initConsole()
		return
	}

	r, err := NewRouter(config.C.Logging, config.IsDevelopment())
	if err != nil {
		panic(fmt.Errorf("failed to set up logging: %w", err))
	}

	router = r
	Logger = r.Root()
}

func initConsole() {
	if config.IsProduction() {
		logger, err := zap.NewProduction()
		if err != nil {
			panic(fmt.Errorf("failed to set up production logger: %w", err))
		}
		Logger = logger.Sugar()
	} else {
		logger, err := zap.NewDevelopment()
		if err != nil {
			panic(fmt.Errorf("failed to set up development logger: %w", err))
		}
		Logger = logger.Sugar()
	}
}

// Named returns the routed logger for a subsystem (database, server, tasks).
func Named(name string) *zap.SugaredLogger {
	if router == nil {
		return Logger.Named(name)
	}
	return router.Logger(name)
}

func Close() {
	if router != nil {
		_ = router.Close()
		return
	}
	_ = Logger.Sync()
}
