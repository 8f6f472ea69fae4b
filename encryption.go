package epubpack

import (
	"encoding/xml"
	"os"
	"path/filepath"
)

// XML namespaces used by the encryption descriptor.
const (
	containerNamespace = "urn:oasis:names:tc:opendocument:xmlns:container"
	xmlencNamespace    = "http://www.w3.org/2001/04/xmlenc#"
)

// XML structures for generating META-INF/encryption.xml.

type encryptionXML struct {
	XMLName xml.Name        `xml:"encryption"`
	Xmlns   string          `xml:"xmlns,attr"`
	Entries []encryptedData `xml:"EncryptedData"`
}

type encryptedData struct {
	Xmlns  string           `xml:"xmlns,attr"`
	Method encryptionMethod `xml:"EncryptionMethod"`
	Cipher cipherData       `xml:"CipherData"`
}

type encryptionMethod struct {
	Algorithm string `xml:"Algorithm,attr"`
}

type cipherData struct {
	Reference cipherReference `xml:"CipherReference"`
}

type cipherReference struct {
	URI string `xml:"URI,attr"`
}

// writeEncryptionXML generates the encryption descriptor for every
// obfuscated font and places it at META-INF/encryption.xml under
// stagingRoot. The descriptor is written to a temporary file first and then
// copied into place, so an interruption mid-write never leaves a truncated
// descriptor visible in the staging tree.
//
// Callers must not invoke this when no resource is obfuscated; the
// descriptor is omitted entirely in that case.
func writeEncryptionXML(stagingRoot string, fonts []FontResource) error {
	doc := encryptionXML{Xmlns: containerNamespace}
	for _, fr := range fonts {
		if fr.Algorithm == "" {
			continue
		}
		doc.Entries = append(doc.Entries, encryptedData{
			Xmlns:  xmlencNamespace,
			Method: encryptionMethod{Algorithm: fr.Algorithm},
			Cipher: cipherData{Reference: cipherReference{URI: fr.RelativePath}},
		})
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	data = append([]byte(xml.Header), data...)

	tmp, err := os.CreateTemp("", "encryption-*.xml")
	if err != nil {
		return cannotOpen("encryption.xml", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return cannotStore(tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return cannotStore(tmpName, err)
	}

	return copyFile(tmpName, filepath.Join(stagingRoot, filepath.FromSlash(encryptionFilePath)))
}
