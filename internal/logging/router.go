package logging

import (
	"Keyo/internal/config"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type handler struct {
	name    string
	level   zapcore.Level
	encoder zapcore.Encoder
	writer  zapcore.WriteSyncer
	file    *lumberjack.Logger
}

func (h *handler) core(loggerLevel zapcore.Level) zapcore.Core {
	return zapcore.NewCore(h.encoder, h.writer, zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return l >= h.level && l >= loggerLevel
	}))
}

// Router owns the configured handlers and hands out loggers wired to them.
// Loggers that propagate also write to the root logger's handlers.
type Router struct {
	handlers map[string]*handler
	loggers  map[string]*zap.SugaredLogger
	root     *zap.SugaredLogger
}

func NewRouter(lc config.LoggingConfig, development bool) (*Router, error) {
	r := &Router{
		handlers: make(map[string]*handler),
		loggers:  make(map[string]*zap.SugaredLogger),
	}

	for name, hc := range lc.Handlers {
		h, err := newHandler(name, hc, lc.Dir, development)
		if err != nil {
			return nil, fmt.Errorf("handler %s: %w", name, err)
		}
		r.handlers[name] = h
	}

	rootConfig, ok := lc.Loggers[config.RootLogger]
	if !ok {
		return nil, errors.New("missing root logger")
	}

	rootCores, err := r.cores(rootConfig.Handlers, rootConfig.Level)
	if err != nil {
		return nil, fmt.Errorf("root logger: %w", err)
	}
	r.root = zap.New(zapcore.NewTee(rootCores...), zap.AddCaller()).Sugar()

	for name, loggerConfig := range lc.Loggers {
		if name == config.RootLogger {
			continue
		}

		cores, err := r.cores(loggerConfig.Handlers, loggerConfig.Level)
		if err != nil {
			return nil, fmt.Errorf("logger %s: %w", name, err)
		}

		if loggerConfig.Propagate {
			parentCores, err := r.cores(rootConfig.Handlers, loggerConfig.Level)
			if err != nil {
				return nil, fmt.Errorf("logger %s: %w", name, err)
			}
			cores = append(cores, parentCores...)
		}

		r.loggers[name] = zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(name).Sugar()
	}

	return r, nil
}

func newHandler(name string, hc config.LogHandlerConfig, dir string, development bool) (*handler, error) {
	level, err := zapcore.ParseLevel(hc.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing level: %w", err)
	}

	h := &handler{
		name:    name,
		level:   level,
		encoder: newEncoder(hc.Format, development),
	}

	if hc.Sink == "" || hc.Sink == config.StdoutSink {
		h.writer = zapcore.Lock(os.Stdout)
		return h, nil
	}

	if hc.MaxSizeMb <= 0 || hc.MaxBackups <= 0 {
		return nil, errors.New("file handlers need a maximum size and a backup count")
	}

	h.file = &lumberjack.Logger{
		Filename:   filepath.Join(dir, hc.Sink),
		MaxSize:    hc.MaxSizeMb,
		MaxBackups: hc.MaxBackups,
		MaxAge:     hc.MaxAgeDays,
		Compress:   hc.Compress,
	}
	h.writer = zapcore.AddSync(h.file)

	return h, nil
}

func newEncoder(format string, development bool) zapcore.Encoder {
	if format == "simple" {
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		if development {
			encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		}
		return zapcore.NewConsoleEncoder(encoderConfig)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return zapcore.NewJSONEncoder(encoderConfig)
}

func (r *Router) cores(handlerNames []string, level string) ([]zapcore.Core, error) {
	loggerLevel := zapcore.DebugLevel
	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parsing level: %w", err)
		}
		loggerLevel = parsed
	}

	cores := make([]zapcore.Core, 0, len(handlerNames))
	for _, handlerName := range handlerNames {
		h, ok := r.handlers[handlerName]
		if !ok {
			return nil, fmt.Errorf("unknown handler %s", handlerName)
		}
		cores = append(cores, h.core(loggerLevel))
	}

	return cores, nil
}

func (r *Router) Root() *zap.SugaredLogger {
	return r.root
}

func (r *Router) Logger(name string) *zap.SugaredLogger {
	logger, ok := r.loggers[name]
	if !ok {
		return r.root.Named(name)
	}
	return logger
}

// RotatingFile returns the lumberjack sink of a file handler.
func (r *Router) RotatingFile(handlerName string) (*lumberjack.Logger, bool) {
	h, ok := r.handlers[handlerName]
	if !ok || h.file == nil {
		return nil, false
	}
	return h.file, true
}

// Close flushes and closes the rotating files.
func (r *Router) Close() error {
	var errs []error
	for _, h := range r.handlers {
		if h.file != nil {
			errs = append(errs, h.file.Close())
		}
	}
	return errors.Join(errs...)
}
