package zookeeper

// Zookeeper is the operation surface of the emulated coordination service.
// It reproduces, call for call, the contract a ZooKeeper client depends on:
// numeric session handles, one-shot watches, ephemeral nodes bound to their
// creating session, and version-checked ACL updates.
//
// Every operation runs to completion under one exclusive lock, including the
// delivery of any watch callbacks it triggers. Failures are raised
// synchronously to the caller and nothing is retried internally.
type Zookeeper interface {
	// Init opens a session against the given address and returns its handle,
	// the lowest non-negative integer not owned by a live session. The
	// address must equal the configured connection string. If watch is
	// non-nil it is invoked synchronously with a session event before Init
	// returns.
	Init(addr string, watch Watcher) (int, error)
	// Close deletes every ephemeral node owned by the session (each deletion
	// firing the usual notifications), removes the session, and strips the
	// handle's watch registrations from every node in the tree.
	Close(handle int) error
	// State returns the connection state of a live session.
	State(handle int) (State, error)
	// Create inserts a new node at path with the given data, ACL and flags,
	// and returns the path actually created. With FlagSequence the leaf name
	// gets a zero padded per-parent counter appended. The parent's child
	// watchers fire.
	Create(handle int, path string, data []byte, acl []ACL, flags ...Flag) (string, error)
	// Delete unlinks the node at path. The node's own watchers of both kinds
	// fire with a deleted event, then the parent's child watchers fire.
	Delete(handle int, path string) error
	// Exists reports whether a node exists at path. No watch is registered.
	Exists(handle int, path string) (bool, error)
	// Get returns the node's data and metadata, registering watch (if
	// non-nil) as a one-shot data watch.
	Get(handle int, path string, watch Watcher) ([]byte, Meta, error)
	// Set replaces the node's data and fires its data watchers.
	Set(handle int, path string, data []byte) error
	// GetChildren returns the names of the node's children in lexicographic
	// order, registering watch (if non-nil) as a one-shot child watch.
	GetChildren(handle int, path string, watch Watcher) ([]string, error)
	// GetACL returns the node's ACL along with the aversion a caller must
	// present to SetACL.
	GetACL(handle int, path string) (ACLStat, []ACL, error)
	// SetACL replaces the node's ACL if aversion matches the node's current
	// aversion, incrementing it by one. On mismatch nothing changes.
	SetACL(handle int, path string, aversion int32, acl []ACL) error
}
