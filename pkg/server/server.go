// Package server implements an in-process emulator of a ZooKeeper ensemble.
// It holds a mutable tree of named nodes, session scoped ephemeral entries,
// one-shot change notifications and version-checked ACL updates, with no
// networking and no persistence. It exists so that software built on a
// ZooKeeper client can be exercised deterministically inside one process.
package server

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/mikekulinski/zkmock/pkg/journal"
	"github.com/mikekulinski/zkmock/pkg/session"
	"github.com/mikekulinski/zkmock/pkg/znode"
	"github.com/mikekulinski/zkmock/pkg/zookeeper"
	"github.com/mikekulinski/zkmock/pkg/zxid"
)

// Server is the emulated service. All tree and session state is guarded by
// one exclusive lock held for the full duration of every operation,
// including the synchronous delivery of watch callbacks. A watch callback
// that calls back into the same Server will therefore deadlock; this is the
// documented reentrancy contract, kept for fidelity with the real service's
// delivery-before-completion semantics.
type Server struct {
	connectionString string

	mu       sync.Mutex
	root     *znode.ZNode
	sessions map[int]*session.Session
	zxids    *zxid.Generator
	journal  *journal.Journal
	logger   *zap.Logger
}

// enforce compilation error
var _ zookeeper.Zookeeper = (*Server)(nil)

// NewServer returns an emulator configured with the given connection string.
// Init calls must present exactly that address. Without a WithTree option
// the server starts from the default fixture tree.
func NewServer(connectionString string, opts ...Option) *Server {
	s := &Server{
		connectionString: connectionString,
		sessions:         map[int]*session.Session{},
		zxids:            zxid.NewGenerator(1),
		journal:          journal.New(0),
		logger:           zap.NewNop(),
	}
	for _, opt := range opts {
		opt.Apply(s)
	}
	if s.root == nil {
		s.root = znode.DefaultTree()
	}
	return s
}

// Journal exposes the record of applied mutations.
func (s *Server) Journal() *journal.Journal {
	return s.journal
}

// Init opens a session. The handle returned is the lowest non-negative
// integer not currently owned by a live session. If watch is non-nil it is
// invoked with a session event before Init returns.
func (s *Server) Init(addr string, watch zookeeper.Watcher) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if addr != s.connectionString {
		return 0, fmt.Errorf("dialing [%s]: %w", addr, zookeeper.ErrAddressMismatch)
	}
	handle := 0
	for {
		if _, ok := s.sessions[handle]; !ok {
			break
		}
		handle++
	}
	sess := session.NewSession(handle)
	s.sessions[handle] = sess
	s.logger.Debug("session established",
		zap.Int("handle", handle),
		zap.String("client_id", sess.ClientID))

	if watch != nil {
		watch(handle, zookeeper.EventSession, zookeeper.StateConnected, "")
	}
	return handle, nil
}

// Close deletes every ephemeral node owned by the session, each deletion
// firing the usual notifications, then removes the session and strips its
// watch registrations from the whole tree.
func (s *Server) Close(handle int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.checkHandle(handle)
	if err != nil {
		return err
	}
	var errs error
	for _, path := range sess.Ephemerals.ToSlice() {
		errs = multierr.Append(errs, s.delete(sess, path))
	}
	sess.State = zookeeper.StateClosed
	delete(s.sessions, handle)
	s.root.ClearWatches(handle)
	s.logger.Debug("session closed",
		zap.Int("handle", handle),
		zap.String("client_id", sess.ClientID))
	return errs
}

// State returns the connection state of a live session.
func (s *Server) State(handle int) (zookeeper.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.checkHandle(handle)
	if err != nil {
		return zookeeper.StateClosed, err
	}
	return sess.State, nil
}

// Create inserts a new node at path and returns the path actually created,
// which differs from the request only when FlagSequence appends a counter to
// the leaf name. The parent's child watchers fire after the insert.
func (s *Server) Create(handle int, path string, data []byte, acl []zookeeper.ACL, flags ...zookeeper.Flag) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.checkHandle(handle)
	if err != nil {
		return "", err
	}
	if err := validatePath(path); err != nil {
		return "", err
	}
	parentPath, name := znode.Split(path)
	parent, err := s.find(parentPath)
	if err != nil {
		return "", err
	}

	var merged zookeeper.Flag
	for _, f := range flags {
		merged |= f
	}
	if merged&zookeeper.FlagSequence != 0 {
		name = fmt.Sprintf("%s%010d", name, parent.NextSequence)
		path = parentPath + "/" + name
	}
	if _, ok := parent.Children[name]; ok {
		return "", fmt.Errorf("node [%s] already exists at path [%s]: %w", name, path, zookeeper.ErrNodeExists)
	}

	node := znode.NewZNode(data)
	if acl != nil {
		node.ACL = acl
	}
	node.Flags = merged
	parent.Children[name] = node
	// Only advance the counter once the create has actually happened.
	if merged&zookeeper.FlagSequence != 0 {
		parent.NextSequence++
	}
	parent.ChildrenChanged(zookeeper.StateConnected, parentPath)
	if merged&zookeeper.FlagEphemeral != 0 {
		sess.Ephemerals.Add(path)
	}
	s.record(sess, journal.OpCreate, path)
	return path, nil
}

// Delete unlinks the node at path from its parent. The node's watchers of
// both kinds fire with a deleted event, then the parent's child watchers
// fire.
func (s *Server) Delete(handle int, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.checkHandle(handle)
	if err != nil {
		return err
	}
	if err := validatePath(path); err != nil {
		return err
	}
	return s.delete(sess, path)
}

// Exists reports whether a node exists at path. It never registers a watch.
func (s *Server) Exists(handle int, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.checkHandle(handle); err != nil {
		return false, err
	}
	return znode.Find(s.root, path) != nil, nil
}

// Get returns the node's data and metadata. If watch is non-nil it is
// registered as a one-shot data watch on the node.
func (s *Server) Get(handle int, path string, watch zookeeper.Watcher) ([]byte, zookeeper.Meta, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.checkHandle(handle); err != nil {
		return nil, zookeeper.Meta{}, err
	}
	node, err := s.find(path)
	if err != nil {
		return nil, zookeeper.Meta{}, err
	}
	if watch != nil {
		node.WatchData(handle, watch)
	}
	meta := zookeeper.Meta{}
	if node.Ephemeral() {
		meta.EphemeralOwner = 1
	}
	return node.Data, meta, nil
}

// Set replaces the node's data and fires its data watchers.
func (s *Server) Set(handle int, path string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.checkHandle(handle)
	if err != nil {
		return err
	}
	node, err := s.find(path)
	if err != nil {
		return err
	}
	node.Data = data
	node.DataChanged(zookeeper.StateConnected, path)
	s.record(sess, journal.OpSetData, path)
	return nil
}

// GetChildren returns the node's children names in lexicographic order. If
// watch is non-nil it is registered as a one-shot child watch on the node.
func (s *Server) GetChildren(handle int, path string, watch zookeeper.Watcher) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.checkHandle(handle); err != nil {
		return nil, err
	}
	node, err := s.find(path)
	if err != nil {
		return nil, err
	}
	if watch != nil {
		node.WatchChildren(handle, watch)
	}
	names := make([]string, 0, len(node.Children))
	for name := range node.Children {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// GetACL returns the node's ACL and the aversion SetACL will check against.
func (s *Server) GetACL(handle int, path string) (zookeeper.ACLStat, []zookeeper.ACL, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.checkHandle(handle); err != nil {
		return zookeeper.ACLStat{}, nil, err
	}
	node, err := s.find(path)
	if err != nil {
		return zookeeper.ACLStat{}, nil, err
	}
	return zookeeper.ACLStat{Aversion: node.Aversion}, node.ACL, nil
}

// SetACL replaces the node's ACL if aversion matches the node's current
// aversion. On success the aversion increments by exactly one; on mismatch
// nothing changes.
func (s *Server) SetACL(handle int, path string, aversion int32, acl []zookeeper.ACL) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.checkHandle(handle)
	if err != nil {
		return err
	}
	node, err := s.find(path)
	if err != nil {
		return err
	}
	if aversion != node.Aversion {
		return fmt.Errorf("expected aversion [%d], actual [%d]: %w", aversion, node.Aversion, zookeeper.ErrBadVersion)
	}
	node.Aversion++
	node.ACL = acl
	s.record(sess, journal.OpSetACL, path)
	return nil
}

// checkHandle must be called with the lock held.
func (s *Server) checkHandle(handle int) (*session.Session, error) {
	sess, ok := s.sessions[handle]
	if !ok {
		return nil, fmt.Errorf("handle [%d]: %w", handle, zookeeper.ErrInvalidHandle)
	}
	return sess, nil
}

// find must be called with the lock held.
func (s *Server) find(path string) (*znode.ZNode, error) {
	node := znode.Find(s.root, path)
	if node == nil {
		return nil, fmt.Errorf("path [%s]: %w", path, zookeeper.ErrNoNode)
	}
	return node, nil
}

// delete must be called with the lock held. It fires the deleted node's own
// watchers of both kinds before the parent's child watchers, and drops the
// path from the calling session's ephemeral set if it was recorded there.
func (s *Server) delete(sess *session.Session, path string) error {
	node, err := s.find(path)
	if err != nil {
		return err
	}
	parentPath, name := znode.Split(path)
	parent, err := s.find(parentPath)
	if err != nil {
		return err
	}
	delete(parent.Children, name)
	node.Deleted(zookeeper.StateConnected, path)
	parent.ChildrenChanged(zookeeper.StateConnected, parentPath)
	sess.Ephemerals.Remove(path)
	s.record(sess, journal.OpDelete, path)
	return nil
}

// record must be called with the lock held, after the mutation has applied.
func (s *Server) record(sess *session.Session, op journal.Op, path string) {
	entry := journal.Entry{
		Zxid:     s.zxids.Next(),
		ClientID: sess.ClientID,
		Op:       op,
		Path:     path,
	}
	if err := s.journal.Append(entry); err != nil {
		// Zxids are generated under the same lock the journal is fed from,
		// so a duplicate cannot happen.
		s.logger.Error("journal append failed", zap.Error(err))
		return
	}
	s.logger.Debug("applied transaction",
		zap.Int64("zxid", int64(entry.Zxid)),
		zap.String("op", string(op)),
		zap.String("path", path),
		zap.String("client_id", sess.ClientID))
}
