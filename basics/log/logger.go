package log

import (
	"fmt"
	"os"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates the service logger using LOGGING_* environment variables.
// Second return value reports if the output is the console.
func NewLogger(service string) (*zap.Logger, bool) {
	logType := os.Getenv("LOGGING_TYPE")
	if len(logType) == 0 {
		logType = "text" // json
	}

	logOutput := os.Getenv("LOGGING_OUTPUT")
	if len(logOutput) == 0 {
		logOutput = "console" // file
	}

	logConfig := zap.NewDevelopmentEncoderConfig()

	logEncoder := zapcore.NewConsoleEncoder(logConfig)
	if strings.Compare(logType, "json") == 0 {
		logEncoder = zapcore.NewJSONEncoder(logConfig)
	}

	logLock := zapcore.Lock(os.Stdout)
	if strings.Compare(logOutput, "file") == 0 {
		logTarget := os.Getenv("LOGGING_TARGET")
		if len(logTarget) == 0 {
			logTarget = "/var/log"
		}

		logPath := path.Join(logTarget, fmt.Sprintf("kertish-serve-%s", service))
		if err := os.MkdirAll(logPath, 0777); err != nil {
			fmt.Printf("ERROR: Unable to create logging path: %s", err.Error())
			os.Exit(1)
		}
		logPath = path.Join(logPath, fmt.Sprintf("%s.log", time.Now().Format("since-20060102")))
		file, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			fmt.Printf("ERROR: Unable to create logging file: %s", err.Error())
			os.Exit(2)
		}
		logLock = zapcore.Lock(file)
	}

	logCore := zapcore.NewCore(logEncoder, logLock, Level(os.Getenv("LOGGING_LEVEL")))
	return zap.New(logCore).Named(service), strings.Compare(logOutput, "file") != 0
}

// Level converts the textual logging level to zap level. Unknown values fall back to info
func Level(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "error":
		return zapcore.ErrorLevel
	case "warn":
		return zapcore.WarnLevel
	case "debug":
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}
