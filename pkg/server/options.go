package server

import (
	"go.uber.org/zap"

	"github.com/mikekulinski/zkmock/pkg/journal"
	"github.com/mikekulinski/zkmock/pkg/znode"
)

// Option is the interface that applies a configuration option.
type Option interface {
	// Apply sets the Option value of a server.
	Apply(s *Server)
}

// enforce compilation error
var _ Option = OptionFunc(nil)

// OptionFunc implements the Option interface.
type OptionFunc func(*Server)

func (f OptionFunc) Apply(s *Server) {
	f(s)
}

// WithLogger sets the logger used for session and mutation events. The
// default logger discards everything.
func WithLogger(logger *zap.Logger) Option {
	return OptionFunc(func(s *Server) {
		s.logger = logger
	})
}

// WithTree replaces the default fixture tree with an already built one. The
// server takes exclusive ownership of the tree.
func WithTree(root *znode.ZNode) Option {
	return OptionFunc(func(s *Server) {
		s.root = root
	})
}

// WithJournalCapacity bounds the in-memory journal to the given number of
// entries, dropping the oldest when full. Zero keeps every entry.
func WithJournalCapacity(n int) Option {
	return OptionFunc(func(s *Server) {
		s.journal = journal.New(n)
	})
}
