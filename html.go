package epubpack

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// entityNameToNumeric maps lowercase HTML entity names to their XML numeric
// character references. XML processors downstream (and encoding/xml in this
// package) do not recognise HTML named entities, so chapter markup is
// converted before it enters the publication tree.
var entityNameToNumeric = map[string][]byte{
	"nbsp": []byte("&#160;"), "mdash": []byte("&#8212;"), "ndash": []byte("&#8211;"),
	"hellip": []byte("&#8230;"),
	"lsquo": []byte("&#8216;"), "rsquo": []byte("&#8217;"),
	"ldquo": []byte("&#8220;"), "rdquo": []byte("&#8221;"),
	"copy": []byte("&#169;"), "reg": []byte("&#174;"), "trade": []byte("&#8482;"),
	"bull": []byte("&#8226;"), "middot": []byte("&#183;"),
	"times": []byte("&#215;"), "divide": []byte("&#247;"),
	"deg": []byte("&#176;"), "para": []byte("&#182;"), "sect": []byte("&#167;"),
	"laquo": []byte("&#171;"), "raquo": []byte("&#187;"),
	"iexcl": []byte("&#161;"), "iquest": []byte("&#191;"),
}

// htmlEntityPattern matches the supported HTML named entities
// case-insensitively.
var htmlEntityPattern = regexp.MustCompile(
	`(?i)&(nbsp|mdash|ndash|hellip|lsquo|rsquo|ldquo|rdquo|copy|reg|trade|bull|middot|` +
		`times|divide|deg|para|sect|laquo|raquo|iexcl|iquest);`)

// preprocessHTMLEntities replaces the supported HTML named entities with
// numeric character references. Matching is case-insensitive to handle
// non-standard source markup.
func preprocessHTMLEntities(data []byte) []byte {
	return htmlEntityPattern.ReplaceAllFunc(data, func(match []byte) []byte {
		name := strings.ToLower(string(match[1 : len(match)-1]))
		if replacement, ok := entityNameToNumeric[name]; ok {
			return replacement
		}
		return match
	})
}

// normalizeChapterHTML normalizes chapter markup on its way into the
// publication tree: named entities become numeric references and the
// document is re-serialised through a tolerant parser, which balances
// unclosed tags and supplies the html/head/body skeleton when missing.
func normalizeChapterHTML(data []byte) ([]byte, error) {
	data = preprocessHTMLEntities(stripBOM(data))

	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := html.Render(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
