package epubpack

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
)

// Book is a concrete Publication: a publication tree plus the OPF package
// document describing it. A Book is either folder-backed (opened over an
// existing resource tree) or in-memory (resources added programmatically
// and materialized on save).
//
// A Book is not safe for concurrent use by multiple goroutines.
type Book struct {
	rootDir    string
	ownRootDir bool // rootDir was created by this Book; removed on Close

	opfPath  string // forward-slash path of the OPF, relative to rootDir
	opfData  []byte
	opfDirty bool
	pkg      *opfPackage

	resources   map[string][]byte // pending in-memory resources
	obfuscation map[string]string // font path → algorithm URI
}

// OpenFolder opens a folder-backed Book over an existing publication tree.
// The OPF is located via META-INF/container.xml, falling back to the first
// .opf file under dir.
func OpenFolder(dir string) (*Book, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, cannotOpen(dir, err)
	}

	opfPath, err := locateOPF(abs)
	if err != nil {
		return nil, err
	}

	opfData, err := os.ReadFile(filepath.Join(abs, filepath.FromSlash(opfPath)))
	if err != nil {
		return nil, cannotOpen(opfPath, err)
	}
	pkg, err := parseOPF(opfData)
	if err != nil {
		return nil, err
	}

	return &Book{
		rootDir:     abs,
		opfPath:     opfPath,
		opfData:     opfData,
		pkg:         pkg,
		resources:   make(map[string][]byte),
		obfuscation: make(map[string]string),
	}, nil
}

// NewBook creates an in-memory Book from an OPF package document. opfPath
// is the OPF's forward-slash path within the publication tree (e.g.
// "OEBPS/content.opf"). Resources are added with AddResource or AddChapter
// and materialized by SaveAllResources.
func NewBook(opfPath string, opf []byte) (*Book, error) {
	if !isSafeEntryName(opfPath) {
		return nil, fmt.Errorf("epubpack: unsafe OPF path %q: %w", opfPath, ErrNoOPF)
	}
	pkg, err := parseOPF(opf)
	if err != nil {
		return nil, err
	}
	return &Book{
		opfPath:     opfPath,
		opfData:     append([]byte(nil), opf...),
		opfDirty:    true,
		pkg:         pkg,
		resources:   make(map[string][]byte),
		obfuscation: make(map[string]string),
	}, nil
}

// Close releases the Book. For in-memory books it removes the canonical
// folder created by SaveAllResources; folder-backed books are left intact.
// Close is idempotent.
func (b *Book) Close() error {
	if b.ownRootDir && b.rootDir != "" {
		err := os.RemoveAll(b.rootDir)
		b.rootDir = ""
		b.ownRootDir = false
		return err
	}
	return nil
}

// AddResource stages an in-memory resource at the given forward-slash path
// relative to the publication root. The bytes are copied.
func (b *Book) AddResource(relPath string, data []byte) error {
	if !isSafeEntryName(relPath) {
		return cannotStore(relPath, nil)
	}
	b.resources[relPath] = append([]byte(nil), data...)
	return nil
}

// AddChapter stages chapter markup at the given path, normalizing it first:
// HTML named entities become numeric references and the document is
// re-serialised through a tolerant parser.
func (b *Book) AddChapter(relPath string, markup []byte) error {
	normalized, err := normalizeChapterHTML(markup)
	if err != nil {
		return fmt.Errorf("epubpack: normalize chapter %s: %w", relPath, err)
	}
	return b.AddResource(relPath, normalized)
}

// SetFontObfuscation marks the font at relPath (root-relative, forward
// slash) for obfuscation with the given algorithm URI. An empty algorithm
// clears the mark.
func (b *Book) SetFontObfuscation(relPath, algorithm string) {
	if algorithm == "" {
		delete(b.obfuscation, relPath)
		return
	}
	b.obfuscation[relPath] = algorithm
}

// OPFPath returns the OPF's path relative to the publication root.
func (b *Book) OPFPath() string {
	return b.opfPath
}

// RootFolderPath returns the canonical on-disk resource folder. For
// in-memory books it is empty until SaveAllResources runs.
func (b *Book) RootFolderPath() string {
	return b.rootDir
}

// HasObfuscatedFonts reports whether any font resource declares an
// obfuscation algorithm.
func (b *Book) HasObfuscatedFonts() bool {
	return len(b.obfuscation) > 0
}

// FontResources lists the publication's font resources: every manifest item
// with a font media type, in manifest order, plus any extra paths marked
// via SetFontObfuscation, sorted for determinism.
func (b *Book) FontResources() []FontResource {
	opfDir := path.Dir(b.opfPath)

	var fonts []FontResource
	seen := make(map[string]bool)
	for _, href := range manifestFontHrefs(b.pkg) {
		rel := path.Clean(path.Join(opfDir, href))
		if !isSafeEntryName(rel) {
			continue
		}
		fonts = append(fonts, FontResource{
			RelativePath: rel,
			Algorithm:    b.obfuscation[rel],
		})
		seen[rel] = true
	}

	var extra []string
	for rel := range b.obfuscation {
		if !seen[rel] {
			extra = append(extra, rel)
		}
	}
	sort.Strings(extra)
	for _, rel := range extra {
		fonts = append(fonts, FontResource{RelativePath: rel, Algorithm: b.obfuscation[rel]})
	}
	return fonts
}

// UUIDIdentifier returns the publication's UUID identifier without its
// urn:uuid: prefix, or "" when none exists.
func (b *Book) UUIDIdentifier() string {
	return uuidIdentifier(b.pkg)
}

// PublicationIdentifier returns the identifier referenced by the package
// unique-identifier attribute, falling back to the first identifier.
func (b *Book) PublicationIdentifier() string {
	return publicationIdentifier(b.pkg)
}

// EnsureUUIDIdentifier guarantees the OPF carries a UUID identifier,
// generating and appending one when absent. Idempotent.
func (b *Book) EnsureUUIDIdentifier() error {
	data, _, err := ensureUUIDIdentifier(b.opfData)
	if err != nil {
		return err
	}
	return b.setOPF(data)
}

// StampGenerator records the generating tool in the OPF metadata, replacing
// any previous generator meta element.
func (b *Book) StampGenerator(generator string) error {
	data, err := stampGeneratorMeta(b.opfData, generator)
	if err != nil {
		return err
	}
	return b.setOPF(data)
}

// setOPF installs a rewritten OPF document and refreshes the parsed view.
func (b *Book) setOPF(data []byte) error {
	if string(data) == string(b.opfData) {
		return nil
	}
	pkg, err := parseOPF(data)
	if err != nil {
		return err
	}
	b.opfData = data
	b.pkg = pkg
	b.opfDirty = true
	return nil
}

// SaveAllResources persists every in-memory resource to its canonical
// location under the root folder, creating the folder for in-memory books.
// The OPF is written back when it was modified, and a container.xml is
// generated when the tree has none.
func (b *Book) SaveAllResources() error {
	if b.rootDir == "" {
		dir, err := os.MkdirTemp("", "epubpack-book-")
		if err != nil {
			return cannotOpen(os.TempDir(), err)
		}
		b.rootDir = dir
		b.ownRootDir = true
	}

	names := make([]string, 0, len(b.resources))
	for rel := range b.resources {
		names = append(names, rel)
	}
	sort.Strings(names)
	for _, rel := range names {
		if err := b.writeResource(rel, b.resources[rel]); err != nil {
			return err
		}
	}

	if b.opfDirty {
		if err := b.writeResource(b.opfPath, b.opfData); err != nil {
			return err
		}
		b.opfDirty = false
	}

	return b.ensureContainerXML()
}

// writeResource writes one resource under the root folder, creating parent
// directories as needed.
func (b *Book) writeResource(rel string, data []byte) error {
	target := filepath.Join(b.rootDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return cannotStore(rel, err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return cannotStore(rel, err)
	}
	return nil
}

// ensureContainerXML generates META-INF/container.xml when the tree lacks
// one, so every saved publication is a complete OCF tree.
func (b *Book) ensureContainerXML() error {
	target := filepath.Join(b.rootDir, filepath.FromSlash(containerFilePath))
	if _, err := os.Stat(target); err == nil {
		return nil
	}
	data, err := containerXMLFor(b.opfPath)
	if err != nil {
		return err
	}
	return b.writeResource(containerFilePath, data)
}
