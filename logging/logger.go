// Package logging configures the shared logrus logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()
var once sync.Once

// Init configures the shared logger. When logFile is non-empty, output
// is rotated there (and mirrored to stderr); otherwise it goes to
// stderr only. Safe to call more than once; only the first call wins.
func Init(logFile string, level logrus.Level) {
	once.Do(func() {
		Logger.SetLevel(level)
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})

		if logFile == "" {
			Logger.SetOutput(os.Stderr)
			return
		}

		rotated := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     28, // days
			Compress:   true,
		}
		Logger.SetOutput(io.MultiWriter(os.Stderr, rotated))
		Logger.WithField("file", logFile).Info("logger initialized with rotation")
	})
}
