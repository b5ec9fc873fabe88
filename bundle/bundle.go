// Package bundle stages a filtered copy of a source directory and
// archives it into a single tar.gz artifact for upload to the platform.
package bundle

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	log "github.com/sirupsen/logrus"

	"github.com/airlift-sh/airlift/filesystem"
)

const (
	workDirName  = ".airlift"
	stageDirName = "stage"
	archiveName  = "bundle.tar.gz"
)

// Builder packages a source directory into a single archive artifact,
// honoring an ordered include/exclude pattern list.
type Builder struct {
	srcDir   string
	patterns []string
}

// New returns a Builder for srcDir. Patterns is an ordered glob list;
// entries prefixed with "!" exclude, and later entries override earlier
// ones. An empty list includes the whole tree.
func New(srcDir string, patterns []string) *Builder {
	return &Builder{srcDir: srcDir, patterns: patterns}
}

// WorkDir is the bundle working area under the source directory.
func (b *Builder) WorkDir() string {
	return filepath.Join(b.srcDir, workDirName)
}

// StageDir is the directory the filtered source tree is copied into.
func (b *Builder) StageDir() string {
	return filepath.Join(b.WorkDir(), stageDirName)
}

// ArchivePath is the fixed path of the archive artifact.
func (b *Builder) ArchivePath() string {
	return filepath.Join(b.WorkDir(), archiveName)
}

// Pack copies the selected files into a fresh staging directory and
// archives the staged tree into a tar.gz artifact, returning the
// archive path. The staged files are intentionally left on disk after
// completion so a deployment can be inspected afterwards.
func (b *Builder) Pack() (archive string, err error) {
	err = os.RemoveAll(b.StageDir())
	if err != nil {
		return "", fmt.Errorf("error clearing stale staging directory: %v", err)
	}
	err = os.MkdirAll(b.StageDir(), 0755)
	if err != nil {
		return "", fmt.Errorf("error creating staging directory: %v", err)
	}

	files, err := b.selectFiles()
	if err != nil {
		return "", fmt.Errorf("error selecting bundle files: %v", err)
	}
	log.WithFields(log.Fields{
		"srcDir": b.srcDir,
		"files":  len(files),
	}).Info("staging bundle")

	stageFs := osfs.New(b.StageDir())
	for _, rel := range files {
		err = filesystem.Copy(filepath.Join(b.srcDir, rel), rel, stageFs)
		if err != nil {
			return "", fmt.Errorf("error staging %s: %v", rel, err)
		}
	}

	err = writeArchive(stageFs, b.ArchivePath())
	if err != nil {
		return "", fmt.Errorf("error archiving bundle: %v", err)
	}
	return b.ArchivePath(), nil
}

// Clear deletes the bundle working area (staged files and archive).
// It is a no-op when nothing has been packed.
func (b *Builder) Clear() error {
	srcFs := osfs.New(b.srcDir)
	if _, err := srcFs.Lstat(workDirName); err != nil {
		return nil
	}
	return filesystem.Remove(workDirName, srcFs)
}

// selectFiles walks the source tree and returns the relative paths of
// the files matching the pattern list, skipping the working area so a
// bundle never nests an older bundle.
func (b *Builder) selectFiles() (files []string, err error) {
	err = filepath.Walk(b.srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path == b.WorkDir() {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(b.srcDir, path)
		if err != nil {
			return err
		}
		ok, err := selected(rel, info.Name(), b.patterns)
		if err != nil {
			return err // malformed pattern, this is fatal.
		}
		if ok {
			files = append(files, rel)
		}
		return nil
	})
	return
}

// selected reports whether a file is part of the bundle. Patterns are
// evaluated in order and the last matching pattern wins; a "!" prefix
// turns a pattern into an exclusion. A file matching no pattern is
// included only when the list contains no plain include patterns.
func selected(rel, name string, patterns []string) (bool, error) {
	include := false
	matched := false
	for _, pattern := range patterns {
		negate := false
		if len(pattern) > 0 && pattern[0] == '!' {
			negate = true
			pattern = pattern[1:]
		}
		m, err := filepath.Match(pattern, rel)
		if err != nil {
			return false, err
		}
		if !m {
			m, err = filepath.Match(pattern, name)
			if err != nil {
				return false, err
			}
		}
		if m {
			matched = true
			include = !negate
		}
	}
	if !matched {
		return defaultInclude(patterns), nil
	}
	return include, nil
}

// defaultInclude is the fate of a file matching no pattern: included
// unless the list names any plain (non-negated) include pattern.
func defaultInclude(patterns []string) bool {
	for _, pattern := range patterns {
		if len(pattern) > 0 && pattern[0] != '!' {
			return false
		}
	}
	return true
}

// writeArchive tars and gzips the contents of stageFs (not the staging
// directory entry itself) into an artifact at dest.
func writeArchive(stageFs billy.Filesystem, dest string) error {
	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	defer out.Close()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	err = filesystem.Walk(stageFs, ".", func(fs billy.Filesystem, path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(path)
		if err = tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := fs.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		return err
	}

	if err = tw.Close(); err != nil {
		return err
	}
	if err = gz.Close(); err != nil {
		return err
	}
	return out.Close()
}
