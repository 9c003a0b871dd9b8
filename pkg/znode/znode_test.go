package znode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mikekulinski/zkmock/pkg/zookeeper"
)

type recordedEvent struct {
	handle int
	event  zookeeper.EventType
	state  zookeeper.State
	path   string
}

// recorder returns a watcher that appends every delivery to events.
func recorder(events *[]recordedEvent) zookeeper.Watcher {
	return func(handle int, event zookeeper.EventType, state zookeeper.State, path string) {
		*events = append(*events, recordedEvent{handle: handle, event: event, state: state, path: path})
	}
}

func TestZNode_DataChanged_OneShot(t *testing.T) {
	node := NewZNode([]byte("x"))
	var events []recordedEvent
	node.WatchData(3, recorder(&events))

	node.DataChanged(zookeeper.StateConnected, "/a")
	require.Len(t, events, 1)
	assert.Equal(t, recordedEvent{
		handle: 3,
		event:  zookeeper.EventNodeDataChanged,
		state:  zookeeper.StateConnected,
		path:   "/a",
	}, events[0])

	// A second change must not retrigger the consumed registration.
	node.DataChanged(zookeeper.StateConnected, "/a")
	assert.Len(t, events, 1)
}

func TestZNode_ChildrenChanged_OneShot(t *testing.T) {
	node := NewZNode(nil)
	var events []recordedEvent
	node.WatchChildren(0, recorder(&events))

	node.ChildrenChanged(zookeeper.StateConnected, "/a")
	require.Len(t, events, 1)
	assert.Equal(t, zookeeper.EventNodeChildrenChanged, events[0].event)

	node.ChildrenChanged(zookeeper.StateConnected, "/a")
	assert.Len(t, events, 1)
}

func TestZNode_Deleted_FiresBothWatchSets(t *testing.T) {
	node := NewZNode(nil)
	var events []recordedEvent
	node.WatchData(1, recorder(&events))
	node.WatchChildren(2, recorder(&events))

	node.Deleted(zookeeper.StateConnected, "/a")
	require.Len(t, events, 2)
	assert.Equal(t, recordedEvent{
		handle: 1,
		event:  zookeeper.EventNodeDeleted,
		state:  zookeeper.StateConnected,
		path:   "/a",
	}, events[0])
	assert.Equal(t, recordedEvent{
		handle: 2,
		event:  zookeeper.EventNodeDeleted,
		state:  zookeeper.StateConnected,
		path:   "/a",
	}, events[1])

	// Both sets drained, so nothing fires again.
	node.Deleted(zookeeper.StateConnected, "/a")
	node.DataChanged(zookeeper.StateConnected, "/a")
	node.ChildrenChanged(zookeeper.StateConnected, "/a")
	assert.Len(t, events, 2)
}

func TestZNode_ClearWatches_Recursive(t *testing.T) {
	root := NewZNode(nil)
	child := NewZNode(nil)
	root.Children["child"] = child

	var events []recordedEvent
	root.WatchData(1, recorder(&events))
	root.WatchData(2, recorder(&events))
	child.WatchChildren(1, recorder(&events))
	child.WatchChildren(2, recorder(&events))

	root.ClearWatches(1)

	root.DataChanged(zookeeper.StateConnected, "/")
	child.ChildrenChanged(zookeeper.StateConnected, "/child")
	require.Len(t, events, 2)
	for _, event := range events {
		assert.Equal(t, 2, event.handle)
	}
}
