package filesystem_test

import (
	"os"
	"path/filepath"
	"testing"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"

	"github.com/airlift-sh/airlift/filesystem"
)

type node struct {
	name    string
	entries []*node // nil if the entry is a file
	mark    int
}

var tree = &node{
	"testdata",
	[]*node{
		{"a", nil, 0},
		{"b", []*node{}, 0},
		{
			"d",
			[]*node{
				{"x", nil, 0},
				{
					"z",
					[]*node{
						{"u", nil, 0},
						{"v", nil, 0},
					},
					0,
				},
			},
			0,
		},
	},
	0,
}

func walkTree(n *node, path string, f func(path string, n *node)) {
	f(path, n)
	for _, e := range n.entries {
		walkTree(e, filepath.Join(path, e.name), f)
	}
}

func makeTree(fs billy.Filesystem, t *testing.T) {
	walkTree(tree, tree.name, func(path string, n *node) {
		if n.entries == nil {
			fd, err := fs.Create(path)
			if err != nil {
				t.Fatalf("makeTree: %v", err)
			}
			fd.Close()
		} else {
			fs.MkdirAll(path, 0770)
		}
	})
}

func TestWalk(t *testing.T) {
	fs := memfs.New()
	makeTree(fs, t)

	markFn := func(fs billy.Filesystem, path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		walkTree(tree, tree.name, func(p string, n *node) {
			if p == path {
				n.mark++
			}
		})
		return nil
	}
	err := filesystem.Walk(fs, tree.name, markFn)
	if err != nil {
		t.Fatalf("no error expected, found: %s", err)
	}
	walkTree(tree, tree.name, func(path string, n *node) {
		if n.mark != 1 {
			t.Errorf("node %s mark = %d; expected 1", path, n.mark)
		}
		n.mark = 0
	})
}

func TestWalkMissingRoot(t *testing.T) {
	fs := memfs.New()
	called := false
	err := filesystem.Walk(fs, "no-such-dir", func(fs billy.Filesystem, path string, info os.FileInfo, err error) error {
		called = true
		return err
	})
	if err == nil {
		t.Error("expected an error for a missing root")
	}
	if !called {
		t.Error("walk function was not called with the root error")
	}
}
