package slowlog

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Logger interface {
	Start(name string)
	Stop(name string) time.Duration
	Track(name string) func()
}

type slowLogger struct {
	log           *zerolog.Logger
	threshold     time.Duration
	ongoingTimers map[string]time.Time
	sync.Mutex
}

func (s *slowLogger) Start(name string) {
	s.Lock()
	s.ongoingTimers[name] = time.Now()
	s.Unlock()
}

// Stop logs the elapsed time at debug level, or at warn level once the
// threshold is exceeded.
func (s *slowLogger) Stop(name string) time.Duration {
	s.Lock()
	defer s.Unlock()

	start, ok := s.ongoingTimers[name]
	if !ok {
		return 0
	}

	duration := time.Since(start)
	delete(s.ongoingTimers, name)

	event := s.log.Debug()
	if s.threshold > 0 && duration >= s.threshold {
		event = s.log.Warn()
	}

	event.
		Float64("duration", duration.Seconds()).
		Str("breakpoint_name", name).
		Msg("")

	return duration
}

// Track starts a timer and returns the function stopping it, meant for defer.
func (s *slowLogger) Track(name string) func() {
	s.Start(name)
	return func() {
		s.Stop(name)
	}
}

func CreateLogger(log *zerolog.Logger, threshold time.Duration) *slowLogger {
	logger := log.With().Str("label", "slowlog").Logger()
	return &slowLogger{
		log:           &logger,
		threshold:     threshold,
		ongoingTimers: make(map[string]time.Time),
	}
}
