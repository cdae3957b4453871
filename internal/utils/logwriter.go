package utils

import (
	"bytes"
	"sync"

	"github.com/rs/zerolog"
)

// LogWriterCtx forwards process output to the logger line by line.
type LogWriterCtx struct {
	logger zerolog.Logger
	level  zerolog.Level

	mu  sync.Mutex
	buf []byte
}

func LogWriter(l zerolog.Logger) *LogWriterCtx {
	return LogWriterLevel(l, zerolog.WarnLevel)
}

func LogWriterLevel(l zerolog.Logger, level zerolog.Level) *LogWriterCtx {
	return &LogWriterCtx{
		logger: l,
		level:  level,
	}
}

func (l *LogWriterCtx) Write(p []byte) (n int, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.buf = append(l.buf, p...)
	for {
		i := bytes.IndexAny(l.buf, "\r\n")
		if i == -1 {
			break
		}

		l.emit(l.buf[:i])
		l.buf = l.buf[i+1:]
	}

	return len(p), nil
}

// Flush logs any incomplete trailing line.
func (l *LogWriterCtx) Flush() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.emit(l.buf)
	l.buf = nil
}

func (l *LogWriterCtx) emit(line []byte) {
	line = bytes.TrimSpace(line)
	if len(line) == 0 {
		return
	}
	l.logger.WithLevel(l.level).Msg(string(line))
}
