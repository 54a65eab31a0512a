package cli

import (
	"time"

	"github.com/charmbracelet/log"
)

// progress logs how long a pipeline stage took. Create one when the stage
// starts and call done when it finishes; not safe for concurrent done calls.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time since the tracker was created,
// rounded to the millisecond, e.g. "Inferred 7 types (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
