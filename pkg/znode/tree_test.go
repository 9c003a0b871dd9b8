package znode

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFind(t *testing.T) {
	root := NewZNode(nil)
	a := NewZNode([]byte("a"))
	b := NewZNode([]byte("b"))
	a.Children["b"] = b
	root.Children["a"] = a

	tests := []struct {
		name     string
		path     string
		expected *ZNode
	}{
		{
			name:     "empty path resolves to the start node",
			path:     "",
			expected: root,
		},
		{
			name:     "root path",
			path:     "/",
			expected: root,
		},
		{
			name:     "top level child",
			path:     "/a",
			expected: a,
		},
		{
			name:     "nested child",
			path:     "/a/b",
			expected: b,
		},
		{
			name:     "duplicate slashes are skipped",
			path:     "//a//b",
			expected: b,
		},
		{
			name:     "trailing slash is skipped",
			path:     "/a/",
			expected: a,
		},
		{
			name:     "missing top level node",
			path:     "/missing",
			expected: nil,
		},
		{
			name:     "missing nested node",
			path:     "/a/missing",
			expected: nil,
		},
		{
			name:     "missing intermediate segment",
			path:     "/x/y/z",
			expected: nil,
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			node := Find(root, test.path)
			if test.expected == nil {
				assert.Nil(t, node)
			} else {
				assert.Same(t, test.expected, node)
			}
		})
	}
}

func TestSplit(t *testing.T) {
	tests := []struct {
		name           string
		path           string
		expectedParent string
		expectedLeaf   string
	}{
		{
			name:           "root level node",
			path:           "/a",
			expectedParent: "",
			expectedLeaf:   "a",
		},
		{
			name:           "nested node",
			path:           "/a/b",
			expectedParent: "/a",
			expectedLeaf:   "b",
		},
		{
			name:           "deeply nested node",
			path:           "/a/b/c",
			expectedParent: "/a/b",
			expectedLeaf:   "c",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			parent, leaf := Split(test.path)
			assert.Equal(t, test.expectedParent, parent)
			assert.Equal(t, test.expectedLeaf, leaf)
		})
	}
}

func TestDefaultTree(t *testing.T) {
	root := DefaultTree()

	fooservice := Find(root, "/fooservice")
	require.NotNil(t, fooservice)
	var config map[string]any
	require.NoError(t, json.Unmarshal(fooservice.Data, &config))
	assert.Equal(t, "/databases/foomain", config["database"])
	assert.Equal(t, float64(1), config["threads"])
	assert.Equal(t, "red", config["favorite_color"])

	providers := Find(root, "/fooservice/providers")
	require.NotNil(t, providers)
	assert.Empty(t, providers.Children)

	quota := Find(root, "/zookeeper/quota")
	require.NotNil(t, quota)
}
