package epubpack

import "path/filepath"

// obfuscateFonts runs the external obfuscation primitive over every font
// resource that declares an algorithm, mutating the staged copies in place.
// Fonts with an empty algorithm identifier are left untouched.
//
// Salt selection: the Adobe algorithm is keyed by the publication's UUID
// identifier; every other algorithm (IDPF) by the general publication
// identifier.
func obfuscateFonts(pub Publication, stagingRoot string, obfuscate ObfuscateFunc) error {
	uuidID := pub.UUIDIdentifier()
	mainID := pub.PublicationIdentifier()

	for _, fr := range pub.FontResources() {
		if fr.Algorithm == "" {
			continue
		}

		fontPath := filepath.Join(stagingRoot, filepath.FromSlash(fr.RelativePath))

		salt := mainID
		if fr.Algorithm == AdobeObfuscationAlgorithm {
			salt = uuidID
		}
		if err := obfuscate(fontPath, fr.Algorithm, salt); err != nil {
			return cannotStore(fr.RelativePath, err)
		}
	}
	return nil
}
