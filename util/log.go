package util

import (
	"log"

	"github.com/coreos/go-systemd/v22/journal"
)

type journaldWriter struct{}

func (journaldWriter) Write(p []byte) (int, error) {
	if err := journal.Send(string(p), journal.PriInfo, nil); err != nil {
		return 0, err
	}
	return len(p), nil
}

// SetupLogging redirects the standard logger to journald when enabled and
// available. Timestamps are dropped in that case since journald adds its own.
func SetupLogging(conf *AppConfig) {
	if conf == nil || !conf.Conf.WithJournald {
		return
	}
	if !journal.Enabled() {
		log.Printf("journald logging requested but journald is not available")
		return
	}
	log.SetFlags(0)
	log.SetOutput(journaldWriter{})
}
