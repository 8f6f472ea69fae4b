package epubpack

// Publication is the document model an Exporter packages. The surrounding
// application owns the model; the exporter only needs this narrow surface.
// The Book type in this package is a ready-made implementation.
type Publication interface {
	// RootFolderPath returns the canonical on-disk folder holding the
	// publication's resource tree (the folder that becomes the archive
	// body, typically containing META-INF/ and OEBPS/).
	RootFolderPath() string

	// SaveAllResources persists every in-memory resource to its
	// canonical location under RootFolderPath.
	SaveAllResources() error

	// HasObfuscatedFonts reports whether any font resource declares an
	// obfuscation algorithm.
	HasObfuscatedFonts() bool

	// EnsureUUIDIdentifier guarantees the publication metadata carries a
	// UUID-style identifier, creating one if absent. Obfuscation
	// algorithms require a stable per-book identifier.
	EnsureUUIDIdentifier() error

	// StampGenerator records the generating tool in the publication
	// metadata.
	StampGenerator(generator string) error

	// UUIDIdentifier returns the publication's UUID-style identifier,
	// or "" if none exists.
	UUIDIdentifier() string

	// PublicationIdentifier returns the publication's primary
	// identifier (the one referenced by the package unique-identifier),
	// or "" if none exists.
	PublicationIdentifier() string

	// FontResources lists the publication's font resources.
	FontResources() []FontResource
}

// FontResource describes a font file within the publication tree.
type FontResource struct {
	// RelativePath is the font's path relative to the publication root,
	// forward-slash separated (e.g. "OEBPS/Fonts/serif.otf").
	RelativePath string

	// Algorithm is the obfuscation algorithm URI, or "" when the font
	// is not obfuscated.
	Algorithm string
}

// ObfuscateFunc scrambles the font file at path in place using the given
// algorithm URI and salt. The algorithm implementation is external to this
// package; the exporter only dispatches to it.
type ObfuscateFunc func(path, algorithm, salt string) error
