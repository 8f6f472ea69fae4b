package epubpack

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"
)

// testOPF is a minimal ePub 2 package document used across tests. It
// declares one chapter, one stylesheet, and one font, with an ISBN primary
// identifier and no UUID identifier.
const testOPF = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf" version="2.0" unique-identifier="BookId">
  <metadata>
    <dc:title>Test Book</dc:title>
    <dc:identifier id="BookId" opf:scheme="ISBN">978-0-00-000000-0</dc:identifier>
  </metadata>
  <manifest>
    <item id="chapter1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
    <item id="styles" href="styles.css" media-type="text/css"/>
    <item id="font1" href="Fonts/serif.otf" media-type="application/vnd.ms-opentype"/>
  </manifest>
  <spine>
    <itemref idref="chapter1"/>
  </spine>
</package>
`

// testContainerXML points at the OPF used by writePublicationTree.
const testContainerXML = `<?xml version="1.0" encoding="utf-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>
`

// writeTree materializes the files map (forward-slash relative path →
// content) under dir, creating parent directories as needed.
func writeTree(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("writeTree: mkdir for %s: %v", rel, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("writeTree: write %s: %v", rel, err)
		}
	}
}

// buildTree creates a temporary directory holding the files map and returns
// its path.
func buildTree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	writeTree(t, dir, files)
	return dir
}

// writePublicationTree builds a complete publication folder: container.xml,
// the test OPF, a chapter, a stylesheet, and a font, plus any extra files.
func writePublicationTree(t *testing.T, extra map[string]string) string {
	t.Helper()
	files := map[string]string{
		"META-INF/container.xml": testContainerXML,
		"OEBPS/content.opf":      testOPF,
		"OEBPS/chapter1.xhtml":   "<html><body><p>Chapter one.</p></body></html>",
		"OEBPS/styles.css":       "body { margin: 0; }",
		"OEBPS/Fonts/serif.otf":  "OTTO-fake-font-bytes",
	}
	for rel, content := range extra {
		files[rel] = content
	}
	return buildTree(t, files)
}

// openArchive opens the archive at path for inspection and registers
// cleanup.
func openArchive(t *testing.T, path string) *zip.ReadCloser {
	t.Helper()
	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("openArchive: %v", err)
	}
	t.Cleanup(func() { zr.Close() })
	return zr
}

// readEntry returns the decompressed content of the named archive entry.
func readEntry(t *testing.T, zr *zip.ReadCloser, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("readEntry: open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("readEntry: read %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("readEntry: entry %s not found", name)
	return nil
}
