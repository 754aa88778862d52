package logger

import "gitlab.com/codejudge.net/internal/adapter/logging"

var Logger = logging.NewZapLogger()

// Init replaces the process logger, enabling debug output when requested
func Init(debug bool) {
	Logger = logging.NewZapLoggerWithLevel(debug)
}

func Info(msg string, args ...interface{}) {
	Logger.Info(msg, args...)
}

func Error(msg string, args ...interface{}) {
	Logger.Error(msg, args...)
}

func Debug(msg string, args ...interface{}) {
	Logger.Debug(msg, args...)
}

func Warn(msg string, args ...interface{}) {
	Logger.Warn(msg, args...)
}
