package zookeeper

import "errors"

var (
	// ErrNoNode is returned when an operation addresses a path with a
	// missing segment or a missing leaf.
	ErrNoNode = errors.New("no node")

	// ErrNodeExists is returned when a create targets a name that is
	// already a child of the parent node.
	ErrNodeExists = errors.New("node exists")

	// ErrBadVersion is returned when an ACL update supplies a version that
	// does not match the node's current aversion.
	ErrBadVersion = errors.New("bad version")

	// ErrInvalidHandle is returned when an operation addresses a session
	// handle that is not currently live.
	ErrInvalidHandle = errors.New("handle out of range")

	// ErrAddressMismatch is returned when Init is called with an address
	// other than the one the emulator was configured with.
	ErrAddressMismatch = errors.New("address does not match the configured connection string")
)
