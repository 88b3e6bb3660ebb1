package direct

// LoggingSink reports command lifecycle events through a Logger, selected
// via --progress=log for non-interactive contexts (CI logs, cron jobs)
// where a `\r`-rewritten TermSink would produce unreadable output.
// Grounded on internal/adapters/shell.Executor's pattern of routing
// subprocess output through an injected logger, adapted here to report
// one line per lifecycle event instead of streaming raw subprocess
// output (kiln captures that separately in ExecError).
type LoggingSink struct {
	logger Logger
}

// NewLoggingSink wraps logger as a ProgressSink.
func NewLoggingSink(logger Logger) *LoggingSink {
	return &LoggingSink{logger: logger}
}

func (s *LoggingSink) Plan(total int) {}

func (s *LoggingSink) Started(pc *PendingCommand) {
	s.logger.Info("starting: " + describe(pc))
}

func (s *LoggingSink) Finished(pc *PendingCommand, err error) {
	if err != nil {
		s.logger.Error(err)
		return
	}
	s.logger.Info("done: " + describe(pc))
}

func (s *LoggingSink) Close() error { return nil }
