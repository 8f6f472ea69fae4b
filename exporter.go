package epubpack

// Version is stamped into exported publications as the generator name.
const Version = "epubpack 0.3.0"

// Exporter writes a Publication to an EPUB container file.
//
// An Exporter is not safe for concurrent use; each export allocates its own
// staging folder, so separate Exporter values may run concurrently.
type Exporter struct {
	// Path is the destination file path for the archive.
	Path string

	// Publication is the document model to package.
	Publication Publication

	// Obfuscate is the external font obfuscation primitive. Required
	// only when the publication reports obfuscated fonts.
	Obfuscate ObfuscateFunc

	// Generator overrides the generator string stamped into the
	// publication metadata. Defaults to Version.
	Generator string
}

// NewExporter returns an Exporter that writes pub to path.
func NewExporter(path string, pub Publication) *Exporter {
	return &Exporter{Path: path, Publication: pub}
}

// Write produces a valid EPUB file at the exporter's path or fails with an
// error naming the offending file. The destination is written last, from a
// fully assembled staging tree, and removed again if archival fails — a
// failed export never leaves a partial archive at the destination.
func (e *Exporter) Write() error {
	pub := e.Publication

	obfuscated := pub.HasObfuscatedFonts()
	if obfuscated && e.Obfuscate == nil {
		return ErrNoObfuscator
	}

	// Obfuscation algorithms need a stable per-book UUID identifier.
	if obfuscated {
		if err := pub.EnsureUUIDIdentifier(); err != nil {
			return err
		}
	}

	generator := e.Generator
	if generator == "" {
		generator = Version
	}
	if err := pub.StampGenerator(generator); err != nil {
		return err
	}
	if err := pub.SaveAllResources(); err != nil {
		return err
	}

	staging, err := newStagingFolder()
	if err != nil {
		return err
	}
	defer staging.Release()

	if err := e.assemblePublication(staging.Path()); err != nil {
		return err
	}

	if obfuscated {
		if err := obfuscateFonts(pub, staging.Path(), e.Obfuscate); err != nil {
			return err
		}
	}

	return writeArchive(staging.Path(), e.Path)
}

// assemblePublication copies the publication's canonical resource tree into
// the staging folder and, when any font is obfuscated, writes the
// encryption descriptor into the staged META-INF folder.
func (e *Exporter) assemblePublication(stagingRoot string) error {
	if err := copyTree(e.Publication.RootFolderPath(), stagingRoot); err != nil {
		return err
	}

	if e.Publication.HasObfuscatedFonts() {
		return writeEncryptionXML(stagingRoot, e.Publication.FontResources())
	}
	return nil
}
