package utils

import (
	"fmt"
	"io"
	"log"
	"os"
)

type Log interface {
	Debug(a ...interface{})
	Info(a ...interface{})
	Warn(a ...interface{})
	Error(a ...interface{})
	Output(a ...interface{})
}

type LevelType int

const (
	DEBUG LevelType = iota
	INFO
	WARN
	ERROR
)

// DefaultLogger writes leveled messages to stderr and plain output to stdout.
type DefaultLogger struct {
	logLevel     LevelType
	logger       *log.Logger
	outputWriter io.Writer
}

func NewDefaultLogger(logLevel LevelType) *DefaultLogger {
	return NewLoggerWithWriters(logLevel, os.Stderr, os.Stdout)
}

// NewLoggerWithWriters is mostly useful for tests which need to inspect what was logged.
func NewLoggerWithWriters(logLevel LevelType, logWriter, outputWriter io.Writer) *DefaultLogger {
	return &DefaultLogger{
		logLevel:     logLevel,
		logger:       log.New(logWriter, "", 0),
		outputWriter: outputWriter,
	}
}

func (dl *DefaultLogger) GetLogLevel() LevelType {
	return dl.logLevel
}

func (dl *DefaultLogger) Debug(a ...interface{}) {
	dl.print(DEBUG, "[Debug]", a...)
}

func (dl *DefaultLogger) Info(a ...interface{}) {
	dl.print(INFO, "[Info]", a...)
}

func (dl *DefaultLogger) Warn(a ...interface{}) {
	dl.print(WARN, "[Warn]", a...)
}

func (dl *DefaultLogger) Error(a ...interface{}) {
	dl.print(ERROR, "[Error]", a...)
}

// Output prints regardless of the log level.
func (dl *DefaultLogger) Output(a ...interface{}) {
	_, _ = fmt.Fprintln(dl.outputWriter, a...)
}

func (dl *DefaultLogger) print(level LevelType, prefix string, a ...interface{}) {
	if level < dl.logLevel {
		return
	}
	dl.logger.Println(append([]interface{}{prefix}, a...)...)
}

// NullLog is a logger that does nothing
type NullLog struct {
}

func (nl *NullLog) Debug(...interface{}) {
}

func (nl *NullLog) Info(...interface{}) {
}

func (nl *NullLog) Warn(...interface{}) {
}

func (nl *NullLog) Error(...interface{}) {
}

func (nl *NullLog) Output(...interface{}) {
}
