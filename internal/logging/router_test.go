package logging

import (
	"Keyo/internal/config"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type RouterSuite struct {
	suite.Suite
}

func TestRouterSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) newRouter(dir string) *Router {
	lc := config.DefaultLoggingConfig(true)
	lc.Dir = dir

	// keep test output quiet
	delete(lc.Handlers, config.LogHandlerConsole)
	for name, logger := range lc.Loggers {
		handlers := make([]string, 0, len(logger.Handlers))
		for _, h := range logger.Handlers {
			if h != config.LogHandlerConsole {
				handlers = append(handlers, h)
			}
		}
		logger.Handlers = handlers
		lc.Loggers[name] = logger
	}

	r, err := NewRouter(lc, true)
	s.Require().NoError(err)
	return r
}

func (s *RouterSuite) read(dir string, file string) string {
	content, err := os.ReadFile(filepath.Join(dir, file))
	if os.IsNotExist(err) {
		return ""
	}
	s.Require().NoError(err)
	return string(content)
}

func (s *RouterSuite) TestFileHandlersCarryRotationBounds() {
	// arrange
	dir := s.T().TempDir()
	r := s.newRouter(dir)
	defer func() { _ = r.Close() }()

	// act & assert
	for _, name := range []string{
		config.LogHandlerGeneral,
		config.LogHandlerErrors,
		config.LogHandlerDebug,
		config.LogHandlerDatabase,
		config.LogHandlerServer,
		config.LogHandlerTasks,
	} {
		file, ok := r.RotatingFile(name)
		s.Require().True(ok, name)
		s.Positive(file.MaxSize, name)
		s.Positive(file.MaxBackups, name)
		s.Equal(dir, filepath.Dir(file.Filename))
	}
}

func (s *RouterSuite) TestErrorsReachErrorFile() {
	// arrange
	dir := s.T().TempDir()
	r := s.newRouter(dir)

	// act
	r.Root().Info("routine message")
	r.Root().Error("broken message")
	s.Require().NoError(r.Close())

	// assert
	s.Contains(s.read(dir, "general.log"), "routine message")
	s.Contains(s.read(dir, "general.log"), "broken message")
	s.Contains(s.read(dir, "errors.log"), "broken message")
	s.NotContains(s.read(dir, "errors.log"), "routine message")
}

func (s *RouterSuite) TestDatabaseLoggerDoesNotPropagate() {
	// arrange
	dir := s.T().TempDir()
	r := s.newRouter(dir)

	// act
	r.Logger(config.DatabaseLogger).Debug("select 1")
	s.Require().NoError(r.Close())

	// assert
	s.Contains(s.read(dir, "database.log"), "select 1")
	s.NotContains(s.read(dir, "general.log"), "select 1")
	s.NotContains(s.read(dir, "debug.log"), "select 1")
}

func (s *RouterSuite) TestTasksLoggerPropagatesToRootHandlers() {
	// arrange
	dir := s.T().TempDir()
	r := s.newRouter(dir)

	// act
	r.Logger(config.TasksLogger).Info("outbox drained")
	s.Require().NoError(r.Close())

	// assert
	s.Contains(s.read(dir, "tasks.log"), "outbox drained")
	s.Contains(s.read(dir, "general.log"), "outbox drained")
}

func (s *RouterSuite) TestUnknownHandlerIsRejected() {
	// arrange
	lc := config.DefaultLoggingConfig(false)
	lc.Dir = s.T().TempDir()
	lc.Loggers[config.ServerLogger] = config.LoggerConfig{Handlers: []string{"missing"}}

	// act
	_, err := NewRouter(lc, false)

	// assert
	s.Error(err)
}

func (s *RouterSuite) TestUnboundedFileHandlerIsRejected() {
	// arrange
	lc := config.DefaultLoggingConfig(false)
	lc.Dir = s.T().TempDir()
	lc.Handlers[config.LogHandlerGeneral] = config.LogHandlerConfig{Sink: "general.log", Level: "info"}

	// act
	_, err := NewRouter(lc, false)

	// assert
	s.Error(err)
}

func (s *RouterSuite) TestRotationKeepsFilesBounded() {
	// arrange
	dir := s.T().TempDir()
	lc := config.LoggingConfig{
		Dir: dir,
		Handlers: map[string]config.LogHandlerConfig{
			"file": {Sink: "app.log", Level: "info", Format: "json", MaxSizeMb: 1, MaxBackups: 2},
		},
		Loggers: map[string]config.LoggerConfig{
			config.RootLogger: {Level: "info", Handlers: []string{"file"}},
		},
	}
	r, err := NewRouter(lc, false)
	s.Require().NoError(err)

	const megabyte = 1024 * 1024
	line := strings.Repeat("x", 1024)

	// act
	logger := r.Logger("rotation")
	for i := 0; i < 4*megabyte/len(line); i++ {
		logger.Infow("filler", "line", line)
	}
	_ = logger.Sync()
	s.Require().NoError(r.Close())

	// assert
	s.Eventually(func() bool {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return false
		}

		backups := 0
		for _, entry := range entries {
			info, err := entry.Info()
			if err != nil || info.Size() > megabyte {
				return false
			}
			if entry.Name() != "app.log" {
				backups++
			}
		}
		return backups > 0 && backups <= 2
	}, 5*time.Second, 50*time.Millisecond)
	s.Contains(s.read(dir, "app.log"), "filler")
}
