// File: internal/topology/session.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package topology

import (
	"go.uber.org/zap"

	"github.com/momentics/hioload-shepherd/api"
)

// Session is an open, validated view of a TopologyProvider. It is passed
// explicitly to placement instead of living in process-wide state.
type Session struct {
	provider api.TopologyProvider
	log      *zap.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(l *zap.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Open validates p and returns a session over it. A nil provider, a failing
// group count, or an empty tree are environment errors.
func Open(p api.TopologyProvider, opts ...Option) (*Session, error) {
	if p == nil {
		return nil, api.EnvironmentError("topology: no provider", nil)
	}
	n, err := p.GroupCount()
	if err != nil {
		return nil, api.EnvironmentError("topology: group count", err)
	}
	if n <= 0 {
		return nil, api.EnvironmentError("topology: provider reports no groups", nil).
			WithContext("groups", n)
	}
	s := &Session{provider: p, log: zap.NewNop()}
	for _, o := range opts {
		o(s)
	}
	return s, nil
}

// Provider returns the underlying provider.
func (s *Session) Provider() api.TopologyProvider {
	return s.provider
}

// Logger returns the session logger.
func (s *Session) Logger() *zap.Logger {
	return s.log
}

// Groups walks the whole tree. An unreadable root or a tree with no CPUs is
// an environment error.
func (s *Session) Groups() ([]CPUGroup, error) {
	root, err := s.provider.Root()
	if err != nil {
		return nil, api.EnvironmentError("topology: root group", err)
	}
	groups := Walk(s.provider, root)
	if len(groups) == 0 {
		return nil, api.EnvironmentError("topology: no CPU groups found", nil)
	}
	s.log.Debug("walked topology", zap.Int("groups", len(groups)), zap.Int("cpus", TotalCPUs(groups)))
	return groups, nil
}

// Latency forwards to the provider.
func (s *Session) Latency(from, to api.LocalityID) (int, error) {
	return s.provider.Latency(from, to)
}

// Init fills zero-valued counts with guesses from this session.
func (s *Session) Init(c Counts) Counts {
	return Init(s.provider, c, s.log)
}

// Close closes the provider.
func (s *Session) Close() error {
	return s.provider.Close()
}
