package znode

import (
	"encoding/json"
	"strings"
)

// Find resolves a slash separated path by descending Children from start.
// Empty segments (leading, trailing or duplicate slashes) are skipped. It
// returns nil if any segment is missing.
func Find(start *ZNode, path string) *ZNode {
	node := start
	for _, name := range strings.Split(path, "/") {
		if name == "" {
			continue
		}
		child, ok := node.Children[name]
		if !ok {
			return nil
		}
		node = child
	}
	return node
}

// Split separates a rooted path into its parent path and leaf name. The
// parent of a root level node is the empty string, which Find resolves back
// to the root.
func Split(path string) (parent, name string) {
	i := strings.LastIndex(path, "/")
	return path[:i], path[i+1:]
}

// fixtureConfig is the JSON blob stored on the fixture's service node.
type fixtureConfig struct {
	Database      string `json:"database"`
	Threads       int    `json:"threads"`
	FavoriteColor string `json:"favorite_color"`
}

// DefaultTree builds the standard fixture tree used when no initial tree is
// supplied: a service entry holding a JSON configuration blob with an empty
// providers container, plus the usual root level quota container.
func DefaultTree() *ZNode {
	config, err := json.Marshal(fixtureConfig{
		Database:      "/databases/foomain",
		Threads:       1,
		FavoriteColor: "red",
	})
	if err != nil {
		panic(err)
	}

	fooservice := NewZNode(config)
	fooservice.Children["providers"] = NewZNode(nil)

	zk := NewZNode(nil)
	zk.Children["quota"] = NewZNode(nil)

	root := NewZNode(nil)
	root.Children["fooservice"] = fooservice
	root.Children["zookeeper"] = zk
	return root
}
