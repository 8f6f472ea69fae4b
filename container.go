package epubpack

import (
	"encoding/xml"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// containerXML models META-INF/container.xml. The same structures serve
// both directions: locating the OPF when opening a folder-backed book, and
// generating the file for in-memory books that did not provide one.
type containerXML struct {
	XMLName   xml.Name   `xml:"container"`
	Version   string     `xml:"version,attr"`
	Xmlns     string     `xml:"xmlns,attr"`
	RootFiles []rootFile `xml:"rootfiles>rootfile"`
}

type rootFile struct {
	FullPath  string `xml:"full-path,attr"`
	MediaType string `xml:"media-type,attr"`
}

// containerXMLFor generates a container.xml document pointing at the OPF.
func containerXMLFor(opfPath string) ([]byte, error) {
	doc := containerXML{
		Version: "1.0",
		Xmlns:   containerNamespace,
		RootFiles: []rootFile{
			{FullPath: opfPath, MediaType: oebpsPackageMediaType},
		},
	}
	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), data...), nil
}

// locateOPF finds the publication's OPF path (forward-slash, relative to
// dir). It reads META-INF/container.xml first and falls back to scanning
// the folder for the first ".opf" file. Returns a wrapped ErrNoOPF when no
// OPF can be found.
func locateOPF(dir string) (string, error) {
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(containerFilePath)))
	if err == nil {
		return parseContainerXML(data)
	}

	return fallbackFindOPF(dir)
}

// parseContainerXML returns the full-path of the rootfile declaring the
// OPF media type, falling back to the first rootfile with a path.
func parseContainerXML(data []byte) (string, error) {
	var c containerXML
	if err := xml.Unmarshal(stripBOM(data), &c); err != nil {
		return "", fmt.Errorf("epubpack: parse container.xml: %w", err)
	}

	var fallback string
	for _, rf := range c.RootFiles {
		fullPath := strings.TrimSpace(rf.FullPath)
		if fullPath == "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(rf.MediaType), oebpsPackageMediaType) {
			return fullPath, nil
		}
		if fallback == "" {
			fallback = fullPath
		}
	}
	if fallback == "" {
		return "", fmt.Errorf("epubpack: container.xml has no rootfile entries: %w", ErrNoOPF)
	}
	return fallback, nil
}

// fallbackFindOPF scans dir for the first file ending in ".opf"
// (case-insensitive, lexicographic walk order).
func fallbackFindOPF(dir string) (string, error) {
	var found string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if found != "" || d.IsDir() {
			return nil
		}
		if strings.HasSuffix(strings.ToLower(d.Name()), ".opf") {
			found = entryName(dir, p)
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", cannotOpen(dir, err)
	}
	if found == "" {
		return "", fmt.Errorf("epubpack: no OPF file found under %s: %w", dir, ErrNoOPF)
	}
	return found, nil
}
