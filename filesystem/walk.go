package filesystem

import (
	"os"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
)

// WalkFunc is called by Walk for each file or directory visited. It
// mirrors filepath.WalkFunc but carries the filesystem being walked.
type WalkFunc func(fs billy.Filesystem, path string, info os.FileInfo, err error) error

// Walk walks the file tree rooted at root in fs, calling walkFn for
// each file or directory, including root. Entries are visited in
// lexical order.
func Walk(fs billy.Filesystem, root string, walkFn WalkFunc) error {
	info, err := fs.Lstat(root)
	if err != nil {
		err = walkFn(fs, root, nil, err)
	} else {
		err = walk(fs, root, info, walkFn)
	}
	if err == filepath.SkipDir {
		return nil
	}
	return err
}

func walk(fs billy.Filesystem, path string, info os.FileInfo, walkFn WalkFunc) error {
	if !info.IsDir() {
		return walkFn(fs, path, info, nil)
	}

	infos, err := fs.ReadDir(path)
	err1 := walkFn(fs, path, info, err)
	if err != nil || err1 != nil {
		return err1
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	for _, fi := range infos {
		name := filepath.Join(path, fi.Name())
		err = walk(fs, name, fi, walkFn)
		if err != nil {
			if !fi.IsDir() || err != filepath.SkipDir {
				return err
			}
		}
	}
	return nil
}
