package filesystem

import (
	"io"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
)

// Copy copies src on the local filesystem to dest, in the destFs filesystem
func Copy(src, dest string, destFs billy.Filesystem) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return copy(src, dest, info, destFs)
}

func copy(src, dest string, info os.FileInfo, destFs billy.Filesystem) error {
	if info.IsDir() {
		return dcopy(src, dest, info, destFs)
	}
	return fcopy(src, dest, destFs)
}

func fcopy(src, dest string, destFs billy.Filesystem) error {

	f, err := destFs.Create(dest)
	if err != nil {
		return err
	}
	defer f.Close()

	s, err := os.Open(src)
	if err != nil {
		return err
	}
	defer s.Close()

	_, err = io.Copy(f, s)
	return err
}

func dcopy(src, dest string, info os.FileInfo, destFs billy.Filesystem) error {

	if err := destFs.MkdirAll(dest, info.Mode()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return err
		}
		if err := copy(
			filepath.Join(src, entry.Name()),
			filepath.Join(dest, entry.Name()),
			info,
			destFs,
		); err != nil {
			return err
		}
	}

	return nil
}
