package epubpack

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// stagingFolder is an ephemeral directory owning one export's working tree.
// It is created fresh per export and destroyed unconditionally when the
// export returns, so concurrent exports can never interfere.
type stagingFolder struct {
	path string
}

// newStagingFolder allocates a fresh temporary staging folder.
func newStagingFolder() (*stagingFolder, error) {
	dir, err := os.MkdirTemp("", "epubpack-")
	if err != nil {
		return nil, cannotOpen(os.TempDir(), err)
	}
	return &stagingFolder{path: dir}, nil
}

// Path returns the staging folder's absolute path.
func (s *stagingFolder) Path() string {
	return s.path
}

// Release deletes the staging folder and everything under it. Safe to call
// on every exit path; errors are ignored because the folder lives under the
// system temp directory.
func (s *stagingFolder) Release() {
	if s.path != "" {
		os.RemoveAll(s.path)
		s.path = ""
	}
}

// copyTree recursively copies every regular file under src into dst,
// preserving relative structure. Hidden files are copied like any other.
// The first failing path aborts the copy with a FileError naming it.
func copyTree(src, dst string) error {
	src = filepath.Clean(src)
	return filepath.WalkDir(src, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return cannotOpen(p, err)
		}
		rel, err := filepath.Rel(src, p)
		if err != nil {
			return cannotOpen(p, err)
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			if err := os.MkdirAll(target, 0o755); err != nil {
				return cannotStore(target, err)
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		return copyFile(p, target)
	})
}

// copyFile copies a single regular file, creating parent directories of dst
// as needed.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return cannotOpen(src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return cannotStore(dst, err)
	}
	out, err := os.Create(dst)
	if err != nil {
		return cannotStore(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return cannotStore(dst, err)
	}
	if err := out.Close(); err != nil {
		return cannotStore(dst, err)
	}
	return nil
}
