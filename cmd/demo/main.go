package main

import (
	"log"

	"go.uber.org/zap"

	"github.com/mikekulinski/zkmock/pkg/server"
	"github.com/mikekulinski/zkmock/pkg/zookeeper"
)

const connectionString = "zookeeper.example.com:2181"

// A small walkthrough of the emulator: open a session, register a service
// provider as an ephemeral sequence node, watch the provider list, and see
// the watch fire when the session closes.
func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal("logger error:", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	zk := server.NewServer(connectionString, server.WithLogger(logger))

	watcher, err := zk.Init(connectionString, nil)
	if err != nil {
		log.Fatal("init error:", err)
	}
	provider, err := zk.Init(connectionString, nil)
	if err != nil {
		log.Fatal("init error:", err)
	}

	path, err := zk.Create(provider, "/fooservice/providers/p", []byte("10.0.0.1:9999"), nil,
		zookeeper.FlagEphemeral, zookeeper.FlagSequence)
	if err != nil {
		log.Fatal("create error:", err)
	}
	logger.Info("registered provider", zap.String("path", path))

	children, err := zk.GetChildren(watcher, "/fooservice/providers",
		func(handle int, event zookeeper.EventType, state zookeeper.State, path string) {
			logger.Info("watch fired",
				zap.Int("handle", handle),
				zap.Stringer("event", event),
				zap.Stringer("state", state),
				zap.String("path", path))
		})
	if err != nil {
		log.Fatal("get children error:", err)
	}
	logger.Info("providers", zap.Strings("children", children))

	// Closing the provider session deletes its ephemeral node, which fires
	// the child watch registered above.
	if err := zk.Close(provider); err != nil {
		log.Fatal("close error:", err)
	}

	children, err = zk.GetChildren(watcher, "/fooservice/providers", nil)
	if err != nil {
		log.Fatal("get children error:", err)
	}
	logger.Info("providers after close", zap.Strings("children", children))

	if err := zk.Close(watcher); err != nil {
		log.Fatal("close error:", err)
	}
}
