package epubpack

// Container-level constants. These are the only places the well-known EPUB
// path and MIME strings appear; everything else refers to them by name.
const (
	// ContentTypeEPUB is the exact content of the "mimetype" entry.
	// No trailing newline: readers identify the container by comparing
	// the first bytes of the archive verbatim.
	ContentTypeEPUB = "application/epub+zip"

	// mimetypeEntryName is the required name of the first archive entry.
	mimetypeEntryName = "mimetype"

	// metaInfFolder is the reserved container metadata folder.
	metaInfFolder = "META-INF"

	// containerFilePath is the well-known location of container.xml.
	containerFilePath = "META-INF/container.xml"

	// encryptionFilePath is the well-known location of the encryption
	// descriptor inside the container.
	encryptionFilePath = "META-INF/encryption.xml"

	// oebpsPackageMediaType identifies the OPF rootfile in container.xml.
	oebpsPackageMediaType = "application/oebps-package+xml"
)

// Font obfuscation algorithm URIs.
const (
	// AdobeObfuscationAlgorithm is the Adobe font obfuscation algorithm URI.
	// Fonts obfuscated with it are salted with the publication's UUID
	// identifier rather than its general publication identifier.
	AdobeObfuscationAlgorithm = "http://ns.adobe.com/pdf/enc#RC"

	// IDPFObfuscationAlgorithm is the IDPF font obfuscation algorithm URI.
	IDPFObfuscationAlgorithm = "http://www.idpf.org/2008/embedding"
)

// copyBufferSize is the chunk size used when streaming file bytes into the
// archive. Not format-significant.
const copyBufferSize = 8192
