package logger

import (
	"os"

	log "github.com/sirupsen/logrus"
)

// Setup configures the global logrus logger. Production gets JSON output.
func Setup(level, appEnv string) {
	log.SetOutput(os.Stdout)

	if appEnv == "production" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.Warnf("[logger] unknown LOG_LEVEL %q, falling back to info", level)
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
