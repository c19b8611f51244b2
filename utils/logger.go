package utils

import (
	"os"

	"github.com/rifflock/lfshook"
	log "github.com/sirupsen/logrus"
)

// ConfigLogger sets up the global logrus logger. Output goes to stderr so
// it never mixes with data written to stdout; when logFile is not empty every
// entry is also appended to that file.
func ConfigLogger(isDebug bool, logFile string) {
	log.SetFormatter(&log.JSONFormatter{})

	log.SetReportCaller(true)
	log.SetOutput(os.Stderr)

	log.SetLevel(log.InfoLevel)

	if isDebug {
		log.SetLevel(log.DebugLevel)
	}

	if logFile != "" {
		log.AddHook(lfshook.NewHook(logFile, &log.JSONFormatter{}))
	}
}
