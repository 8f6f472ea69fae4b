package epubpack

import (
	"encoding/xml"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// opfPackage is the minimal view of the root <package> element this package
// needs: identifiers for salt selection and the manifest for font discovery.
type opfPackage struct {
	XMLName          xml.Name    `xml:"package"`
	Version          string      `xml:"version,attr"`
	UniqueIdentifier string      `xml:"unique-identifier,attr"`
	Metadata         opfMetadata `xml:"metadata"`
	Manifest         opfManifest `xml:"manifest"`
}

type opfMetadata struct {
	Identifiers []opfIdentifier `xml:"http://purl.org/dc/elements/1.1/ identifier"`
}

// opfIdentifier holds a dc:identifier with its ePub 2 attributes.
type opfIdentifier struct {
	Value  string `xml:",chardata"`
	ID     string `xml:"id,attr"`
	Scheme string `xml:"scheme,attr"`
}

type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

type opfManifestItem struct {
	ID        string `xml:"id,attr"`
	Href      string `xml:"href,attr"`
	MediaType string `xml:"media-type,attr"`
}

// parseOPF decodes an OPF package document.
func parseOPF(data []byte) (*opfPackage, error) {
	var pkg opfPackage
	if err := xml.Unmarshal(stripBOM(data), &pkg); err != nil {
		return nil, fmt.Errorf("epubpack: parse OPF: %w", err)
	}
	return &pkg, nil
}

// stripBOM removes a leading UTF-8 BOM (0xEF 0xBB 0xBF) from data, if present.
func stripBOM(data []byte) []byte {
	if len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF {
		return data[3:]
	}
	return data
}

// uuidPrefix marks UUID-valued identifiers.
const uuidPrefix = "urn:uuid:"

// publicationIdentifier returns the primary identifier value: the
// dc:identifier referenced by the package unique-identifier attribute,
// falling back to the first non-empty identifier.
func publicationIdentifier(pkg *opfPackage) string {
	for _, id := range pkg.Metadata.Identifiers {
		if pkg.UniqueIdentifier != "" && id.ID == pkg.UniqueIdentifier {
			return strings.TrimSpace(id.Value)
		}
	}
	for _, id := range pkg.Metadata.Identifiers {
		if v := strings.TrimSpace(id.Value); v != "" {
			return v
		}
	}
	return ""
}

// uuidIdentifier returns the first UUID-valued identifier, without the
// urn:uuid: prefix, or "" when none exists. An identifier qualifies either
// by its urn:uuid: value prefix or by an opf:scheme of UUID.
func uuidIdentifier(pkg *opfPackage) string {
	for _, id := range pkg.Metadata.Identifiers {
		v := strings.TrimSpace(id.Value)
		if strings.HasPrefix(v, uuidPrefix) {
			return strings.TrimPrefix(v, uuidPrefix)
		}
		if strings.EqualFold(strings.TrimSpace(id.Scheme), "UUID") && v != "" {
			return v
		}
	}
	return ""
}

// fontMediaTypes lists the manifest media types treated as font resources.
var fontMediaTypes = map[string]bool{
	"application/vnd.ms-opentype": true,
	"application/font-woff":       true,
	"application/x-font-ttf":      true,
	"application/x-font-otf":      true,
	"font/otf":                    true,
	"font/ttf":                    true,
	"font/woff":                   true,
	"font/woff2":                  true,
}

// manifestFontHrefs returns the hrefs of every manifest item with a font
// media type, in manifest order.
func manifestFontHrefs(pkg *opfPackage) []string {
	var hrefs []string
	for _, item := range pkg.Manifest.Items {
		if fontMediaTypes[strings.ToLower(strings.TrimSpace(item.MediaType))] {
			hrefs = append(hrefs, item.Href)
		}
	}
	return hrefs
}

// metadataClosePattern matches the metadata element's closing tag, with or
// without a namespace prefix.
var metadataClosePattern = regexp.MustCompile(`</(?:[A-Za-z][\w.-]*:)?metadata\s*>`)

// generatorMetaPattern matches an existing ePub 2 generator meta element.
var generatorMetaPattern = regexp.MustCompile(`<meta\s+name="generator"\s+content="[^"]*"\s*/>`)

// insertBeforeMetadataClose splices fragment immediately before the
// metadata closing tag of an OPF document.
func insertBeforeMetadataClose(data []byte, fragment string) ([]byte, error) {
	loc := metadataClosePattern.FindIndex(data)
	if loc == nil {
		return nil, fmt.Errorf("epubpack: OPF has no metadata element: %w", ErrNoOPF)
	}
	out := make([]byte, 0, len(data)+len(fragment))
	out = append(out, data[:loc[0]]...)
	out = append(out, fragment...)
	out = append(out, data[loc[0]:]...)
	return out, nil
}

// ensureUUIDIdentifier guarantees the OPF carries a UUID-valued
// dc:identifier, appending a freshly generated one when absent. Returns the
// (possibly rewritten) document and the identifier value without its
// urn:uuid: prefix.
func ensureUUIDIdentifier(data []byte) ([]byte, string, error) {
	pkg, err := parseOPF(data)
	if err != nil {
		return nil, "", err
	}
	if existing := uuidIdentifier(pkg); existing != "" {
		return data, existing, nil
	}

	// The urn:uuid: prefix alone marks the identifier as UUID-valued, so
	// no opf:scheme attribute is added (the document may not declare the
	// opf prefix).
	value := uuid.NewString()
	fragment := fmt.Sprintf(
		"<dc:identifier xmlns:dc=\"http://purl.org/dc/elements/1.1/\" id=\"UUID\">%s%s</dc:identifier>\n",
		uuidPrefix, value)
	out, err := insertBeforeMetadataClose(data, fragment)
	if err != nil {
		return nil, "", err
	}
	return out, value, nil
}

// stampGeneratorMeta records the generating tool in the OPF, replacing an
// existing generator meta element when present.
func stampGeneratorMeta(data []byte, generator string) ([]byte, error) {
	var escaped strings.Builder
	if err := xml.EscapeText(&escaped, []byte(generator)); err != nil {
		return nil, err
	}
	meta := fmt.Sprintf("<meta name=\"generator\" content=\"%s\" />", escaped.String())

	if generatorMetaPattern.Match(data) {
		return generatorMetaPattern.ReplaceAll(data, []byte(meta)), nil
	}
	return insertBeforeMetadataClose(data, meta+"\n")
}
