package main

import (
	"sync"

	"github.com/daniacca/ssacore/internal/ssa"
)

// ssaLoggerAdapter adapts the server's leveled Logger to ssa.Logger.
type ssaLoggerAdapter struct {
	logger *Logger
}

func (a *ssaLoggerAdapter) Debugf(format string, v ...any) { a.logger.Debugf(format, v...) }
func (a *ssaLoggerAdapter) Infof(format string, v ...any)  { a.logger.Infof(format, v...) }
func (a *ssaLoggerAdapter) Warnf(format string, v ...any)  { a.logger.Warnf(format, v...) }
func (a *ssaLoggerAdapter) Errorf(format string, v ...any) { a.logger.Errorf(format, v...) }

// Server is the HTTP front end over a RunManager: every run is an
// independent trajectory with its own aggregator and RNG.
type Server struct {
	mu          sync.RWMutex
	runs        *ssa.RunManager
	notifiers   *ssa.NotificationManager
	problems    map[string]*ssa.JumpProblem
	logger      *Logger
	defaultSeed int64
}

// NewServer creates a server with its own RunManager and
// NotificationManager, both logging through logger.
func NewServer(logger *Logger, defaultSeed int64) *Server {
	adapter := &ssaLoggerAdapter{logger: logger}
	return &Server{
		runs:        ssa.NewRunManager(adapter),
		notifiers:   ssa.NewNotificationManager(adapter),
		problems:    make(map[string]*ssa.JumpProblem),
		logger:      logger,
		defaultSeed: defaultSeed,
	}
}
