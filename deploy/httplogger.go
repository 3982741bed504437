package deploy

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/jfrog/maven-deploy-go/utils"
)

// newLeveledLogger adapts utils.Log to retryablehttp. Client errors are logged at debug level.
func newLeveledLogger(log utils.Log) retryablehttp.LeveledLogger {
	return &leveledLogger{log: log}
}

type leveledLogger struct {
	log utils.Log
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.log.Debug(format(msg, keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug(format(msg, keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.Debug(format(msg, keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.log.Warn(format(msg, keysAndValues))
}

func format(msg string, keysAndValues []interface{}) string {
	var line strings.Builder
	line.WriteString(msg)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		line.WriteString(fmt.Sprintf(" %v=%v", keysAndValues[i], keysAndValues[i+1]))
	}
	return utils.RemoveCredentials(line.String())
}
