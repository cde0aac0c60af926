package exchange

import (
	"errors"
	"sync"
)

// ErrScriptExhausted indicates an exit with no scripted response left.
var ErrScriptExhausted = errors.New("exchange: script exhausted")

// Script is a Channel that plays the hypervisor side of a session from
// a fixed list of responses. The register behaves like the real one:
// it holds the last written value until an exit replaces it with the
// next scripted response.
type Script struct {
	mu        sync.Mutex
	responses []uint64
	next      int
	current   uint64
	writes    []uint64
	exits     int
}

// NewScript returns a script that answers successive exits with the
// given responses in order.
func NewScript(responses ...uint64) *Script {
	return &Script{responses: responses}
}

func (s *Script) WriteMSR(value uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = value
	s.writes = append(s.writes, value)
	return nil
}

func (s *Script) Exit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.next >= len(s.responses) {
		return ErrScriptExhausted
	}
	s.current = s.responses[s.next]
	s.next++
	s.exits++
	return nil
}

func (s *Script) ReadMSR() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current, nil
}

// Writes returns every value written to the register, in order.
func (s *Script) Writes() []uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]uint64, len(s.writes))
	copy(out, s.writes)
	return out
}

// Exits returns how many exits the script has answered.
func (s *Script) Exits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exits
}

// Remaining returns how many scripted responses are left.
func (s *Script) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.responses) - s.next
}

var _ Channel = (*Script)(nil)
