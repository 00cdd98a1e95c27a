package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	logDir      = "logs"
	logFileName = "fsnav.log"
	maxLogSize  = 10 * 1024 * 1024
)

// setupLogging routes logrus and the standard logger to logs/fsnav.log when debug is set
// Output is discarded otherwise so nothing reaches the terminal under the UI
func setupLogging(debug bool) *os.File {
	logger := logrus.StandardLogger()
	if !debug {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	if err := os.MkdirAll(logDir, 0755); err != nil {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("fsnav-%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		logger.SetOutput(io.Discard)
		log.SetOutput(io.Discard)
		return nil
	}

	logger.SetOutput(f)
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{DisableColors: true, FullTimestamp: true})
	log.SetOutput(f)
	logger.Info("logging started")
	return f
}
