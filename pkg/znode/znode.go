package znode

import (
	"github.com/mikekulinski/zkmock/pkg/zookeeper"
)

// watch is one registered one-shot callback, remembered together with the
// handle that registered it.
type watch struct {
	handle int
	fn     zookeeper.Watcher
}

// ZNode is one vertex of the emulated tree. A node's position in the tree is
// unique: it has one parent and one name, and the root is never deleted.
// Watch sets are owned by the node and never shared between nodes.
type ZNode struct {
	// Data is the opaque payload stored here by the client.
	Data []byte
	// Children maps child name to the owned child node.
	Children map[string]*ZNode
	// ACL is stored and versioned but never enforced.
	ACL []zookeeper.ACL
	// Aversion increments on every accepted ACL update.
	Aversion int32
	// Flags are the creation flags, notably FlagEphemeral.
	Flags zookeeper.Flag
	// NextSequence is the counter appended to names created under this node
	// with FlagSequence.
	NextSequence int

	dataWatches  []watch
	childWatches []watch
}

// NewZNode returns a node holding data, with no children and the default
// open ACL.
func NewZNode(data []byte) *ZNode {
	return &ZNode{
		Data: data,
		// Init the children to an empty map instead of nil to avoid panics
		// when writing to a nil map.
		Children: map[string]*ZNode{},
		ACL:      zookeeper.WorldACL,
	}
}

// Ephemeral reports whether this node's lifetime is bound to the session
// that created it.
func (z *ZNode) Ephemeral() bool {
	return z.Flags&zookeeper.FlagEphemeral != 0
}

// WatchData registers a one-shot callback fired on this node's next data
// change or deletion.
func (z *ZNode) WatchData(handle int, fn zookeeper.Watcher) {
	z.dataWatches = append(z.dataWatches, watch{handle: handle, fn: fn})
}

// WatchChildren registers a one-shot callback fired the next time this
// node's child set changes or the node itself is deleted.
func (z *ZNode) WatchChildren(handle int, fn zookeeper.Watcher) {
	z.childWatches = append(z.childWatches, watch{handle: handle, fn: fn})
}

// DataChanged drains the data watch set and invokes every captured callback
// with a data-changed event. The set is swapped to empty before the first
// callback runs, so each registration is delivered at most once.
func (z *ZNode) DataChanged(state zookeeper.State, path string) {
	watches := z.dataWatches
	z.dataWatches = nil
	for _, w := range watches {
		w.fn(w.handle, zookeeper.EventNodeDataChanged, state, path)
	}
}

// ChildrenChanged drains the child watch set and invokes every captured
// callback with a children-changed event.
func (z *ZNode) ChildrenChanged(state zookeeper.State, path string) {
	watches := z.childWatches
	z.childWatches = nil
	for _, w := range watches {
		w.fn(w.handle, zookeeper.EventNodeChildrenChanged, state, path)
	}
}

// Deleted notifies watchers of both kinds that this node is gone. The data
// watch set and the child watch set are drained independently, each exactly
// once, before the node is unlinked by the caller.
func (z *ZNode) Deleted(state zookeeper.State, path string) {
	watches := z.dataWatches
	z.dataWatches = nil
	for _, w := range watches {
		w.fn(w.handle, zookeeper.EventNodeDeleted, state, path)
	}
	watches = z.childWatches
	z.childWatches = nil
	for _, w := range watches {
		w.fn(w.handle, zookeeper.EventNodeDeleted, state, path)
	}
}

// ClearWatches strips every watch registered under handle from this node and
// all of its descendants, so no dangling registrations survive a session
// close.
func (z *ZNode) ClearWatches(handle int) {
	z.dataWatches = dropHandle(z.dataWatches, handle)
	z.childWatches = dropHandle(z.childWatches, handle)
	for _, child := range z.Children {
		child.ClearWatches(handle)
	}
}

func dropHandle(watches []watch, handle int) []watch {
	var kept []watch
	for _, w := range watches {
		if w.handle != handle {
			kept = append(kept, w)
		}
	}
	return kept
}
