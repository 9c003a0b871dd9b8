package session

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"

	"github.com/mikekulinski/zkmock/pkg/zookeeper"
)

// Session tracks one logical client connection. Sessions reference their
// ephemeral nodes by path, never by node pointer, so tree mutation and
// session bookkeeping stay decoupled.
type Session struct {
	// Handle is the numeric identifier handed back to the client. Handles
	// are reused only after the owning session closes.
	Handle int
	// ClientID is a generated identifier carried into logs and journal
	// records for this session's mutations.
	ClientID string
	// State is the session's coarse connection state.
	State zookeeper.State
	// Ephemerals is the set of paths created as ephemeral under this
	// session. They are deleted when the session closes.
	Ephemerals mapset.Set[string]
}

// NewSession returns a connected session with the given handle and a fresh
// client ID.
func NewSession(handle int) *Session {
	return &Session{
		Handle:     handle,
		ClientID:   uuid.New().String(),
		State:      zookeeper.StateConnected,
		Ephemerals: mapset.NewSet[string](),
	}
}
