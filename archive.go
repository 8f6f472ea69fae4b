package epubpack

import (
	"archive/zip"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// writeArchive archives the staged tree rooted at root into a new EPUB
// container at dst.
//
// The "mimetype" entry is written first, stored without compression, so a
// generic ZIP reader can identify the container MIME type from the first
// bytes of the file. Every other staged file becomes a deflate-compressed
// entry named by its forward-slash relative path. Paths are sorted before
// writing so two exports of the same tree are byte-comparable.
//
// On any failure the partially written destination file is removed; a
// successfully closed archive is the only success signal.
func writeArchive(root, dst string) (err error) {
	f, err := os.Create(dst)
	if err != nil {
		return cannotOpen(dst, err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(dst)
		}
	}()

	zw := zip.NewWriter(f)

	if err = writeMimetypeEntry(zw); err != nil {
		return err
	}

	files, err := collectFiles(root)
	if err != nil {
		return err
	}
	buf := make([]byte, copyBufferSize)
	for _, p := range files {
		if err = writeFileEntry(zw, root, p, buf); err != nil {
			return err
		}
	}

	if err = zw.Close(); err != nil {
		return cannotStore(dst, err)
	}
	if err = f.Close(); err != nil {
		return cannotStore(dst, err)
	}
	return nil
}

// writeMimetypeEntry writes the mandatory uncompressed first entry.
func writeMimetypeEntry(zw *zip.Writer) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   mimetypeEntryName,
		Method: zip.Store,
	})
	if err != nil {
		return cannotStore(mimetypeEntryName, err)
	}
	if _, err := w.Write([]byte(ContentTypeEPUB)); err != nil {
		return cannotStore(mimetypeEntryName, err)
	}
	return nil
}

// collectFiles enumerates every regular file under root, hidden files
// included, and returns their absolute paths sorted by archive entry name.
// A stray root-level "mimetype" file is excluded: the archiver owns that
// entry.
func collectFiles(root string) ([]string, error) {
	root = filepath.Clean(root)
	var files []string
	walkErr := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return cannotOpen(p, err)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if entryName(root, p) == mimetypeEntryName {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	sort.Slice(files, func(i, j int) bool {
		return entryName(root, files[i]) < entryName(root, files[j])
	})
	return files, nil
}

// writeFileEntry streams one staged file into the archive as a deflated
// entry. archive/zip switches the entry to the 64-bit ZIP format on its own
// when the file exceeds the 32-bit size fields.
func writeFileEntry(zw *zip.Writer, root, p string, buf []byte) error {
	name := entryName(root, p)
	if !isSafeEntryName(name) {
		return cannotStore(name, nil)
	}

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return cannotStore(name, err)
	}

	src, err := os.Open(p)
	if err != nil {
		return cannotOpen(name, err)
	}
	defer src.Close()

	if _, err := io.CopyBuffer(w, src, buf); err != nil {
		return cannotStore(name, err)
	}
	return nil
}
