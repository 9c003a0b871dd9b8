package zookeeper

// EventType identifies the kind of notification delivered to a watch callback.
type EventType int32

const (
	// EventSession is delivered to the watch passed to Init once the session
	// is established.
	EventSession EventType = iota
	// EventNodeDataChanged is delivered to data watchers when a node's data
	// is overwritten by Set.
	EventNodeDataChanged
	// EventNodeDeleted is delivered to both the data watchers and the child
	// watchers of a node when the node is removed from the tree.
	EventNodeDeleted
	// EventNodeChildrenChanged is delivered to child watchers when a direct
	// child is created or deleted under the watched node.
	EventNodeChildrenChanged
)

func (e EventType) String() string {
	switch e {
	case EventSession:
		return "session"
	case EventNodeDataChanged:
		return "data-changed"
	case EventNodeDeleted:
		return "deleted"
	case EventNodeChildrenChanged:
		return "children-changed"
	default:
		return "unknown"
	}
}

// State is the coarse connection state of a session. It is distinct from the
// per-event kinds above: every event carries the state of the session it was
// delivered for.
type State int32

const (
	StateClosed State = iota
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Flag selects attributes of a node at creation time.
type Flag int32

const (
	// FlagEphemeral binds the node's lifetime to the creating session. The
	// node is automatically deleted when that session closes.
	FlagEphemeral Flag = 1 << iota
	// FlagSequence appends a zero padded, per-parent monotonic counter to
	// the requested node name.
	FlagSequence
)

// Watcher is a one-shot watch callback. It receives the handle it was
// registered under, the kind of event, the session's connection state and the
// path the event concerns. A registration is consumed by its first delivery;
// continued notification requires re-registration.
//
// Watchers are invoked synchronously while the emulator's lock is held. A
// watcher that calls back into the same emulator will deadlock.
type Watcher func(handle int, event EventType, state State, path string)

// ACL is a single access control entry. The emulator stores ACLs and versions
// them but never enforces them.
type ACL struct {
	Perms  int32
	Scheme string
	ID     string
}

const (
	PermRead   = 1
	PermWrite  = 2
	PermCreate = 4
	PermDelete = 8
	PermAdmin  = 16
	PermAll    = PermRead | PermWrite | PermCreate | PermDelete | PermAdmin
)

// WorldACL grants everything to everyone. It is the default ACL for nodes
// built without an explicit one, matching ZooKeeper's OPEN_ACL_UNSAFE.
var WorldACL = []ACL{{Perms: PermAll, Scheme: "world", ID: "anyone"}}

// Meta is the node metadata returned alongside the data from Get.
type Meta struct {
	// EphemeralOwner is non-zero when the node was created with
	// FlagEphemeral and will be removed when its owning session closes.
	EphemeralOwner int64
}

// ACLStat is the metadata returned from GetACL. Aversion is the value a
// caller must hand back to SetACL for the update to be accepted.
type ACLStat struct {
	Aversion int32
}
