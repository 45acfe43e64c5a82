package logger

import (
	"fmt"

	"github.com/rs/zerolog"
)

// AddSinkToLoggerInstance attaches a secondary destination for WARN and
// above. The sink must not call back into the logger.
func AddSinkToLoggerInstance(l *Logger, sink func(level zerolog.Level, msg string)) {
	l.sink = sink
}

func (l *Logger) activateSinkFormatted(level zerolog.Level, format string, v ...interface{}) {
	if l.sink != nil {
		l.sink(level, fmt.Sprintf(format, v...))
	}
}

func (l *Logger) activateSink(level zerolog.Level, msg string) {
	if l.sink != nil {
		l.sink(level, msg)
	}
}
