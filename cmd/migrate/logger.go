package migrate

import (
	"fmt"
	"strings"

	"github.com/gaze-network/tokensale/pkg/logger"
	"github.com/gaze-network/tokensale/pkg/logger/slogx"
	"github.com/golang-migrate/migrate/v4"
)

var _ migrate.Logger = (*migrationLogger)(nil)

// migrationLogger forwards golang-migrate progress lines to the structured logger.
type migrationLogger struct {
	module  string
	verbose bool
}

func (l *migrationLogger) Printf(format string, v ...interface{}) {
	msg := strings.TrimSpace(fmt.Sprintf(format, v...))
	if msg == "" {
		return
	}
	logger.Info(msg, slogx.String("package", "migrate"), slogx.String("module", l.module))
}

func (l *migrationLogger) Verbose() bool {
	return l.verbose
}
