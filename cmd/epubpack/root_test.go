package main

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testOPF = `<?xml version="1.0" encoding="utf-8"?>
<package xmlns="http://www.idpf.org/2007/opf" xmlns:dc="http://purl.org/dc/elements/1.1/" version="2.0" unique-identifier="BookId">
  <metadata>
    <dc:title>CLI Book</dc:title>
    <dc:identifier id="BookId">urn:uuid:00000000-0000-0000-0000-000000000000</dc:identifier>
  </metadata>
  <manifest>
    <item id="chapter1" href="chapter1.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
  <spine>
    <itemref idref="chapter1"/>
  </spine>
</package>
`

func writeBookFolder(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"OEBPS/content.opf":    testOPF,
		"OEBPS/chapter1.xhtml": "<html><body><p>hi</p></body></html>",
	}
	for rel, content := range files {
		target := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", rel, err)
		}
		if err := os.WriteFile(target, []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", rel, err)
		}
	}
	return dir
}

func TestPackCommand(t *testing.T) {
	src := writeBookFolder(t)
	dst := filepath.Join(t.TempDir(), "out.epub")

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{src, "-o", dst})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("pack command failed: %v", err)
	}

	if !strings.Contains(buf.String(), dst) {
		t.Errorf("output %q does not mention the destination", buf.String())
	}

	zr, err := zip.OpenReader(dst)
	if err != nil {
		t.Fatalf("produced file is not a readable archive: %v", err)
	}
	defer zr.Close()
	if len(zr.File) == 0 || zr.File[0].Name != "mimetype" {
		t.Errorf("first archive entry is not mimetype")
	}
}

func TestPackCommand_MissingFolder(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{filepath.Join(t.TempDir(), "missing"), "-o", filepath.Join(t.TempDir(), "out.epub")})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("pack command succeeded on a missing folder")
	}
}
