package epubpack

import (
	"encoding/xml"
	"testing"
)

func TestContainerXMLFor(t *testing.T) {
	data, err := containerXMLFor("OEBPS/content.opf")
	if err != nil {
		t.Fatalf("containerXMLFor: %v", err)
	}

	var c containerXML
	if err := xml.Unmarshal(data, &c); err != nil {
		t.Fatalf("generated container.xml is not well-formed: %v", err)
	}
	if len(c.RootFiles) != 1 {
		t.Fatalf("generated container.xml has %d rootfiles; want 1", len(c.RootFiles))
	}
	if c.RootFiles[0].FullPath != "OEBPS/content.opf" {
		t.Errorf("full-path = %q; want OEBPS/content.opf", c.RootFiles[0].FullPath)
	}
	if c.RootFiles[0].MediaType != oebpsPackageMediaType {
		t.Errorf("media-type = %q; want %q", c.RootFiles[0].MediaType, oebpsPackageMediaType)
	}

	// The generated document must be locatable by our own reader.
	got, err := parseContainerXML(data)
	if err != nil {
		t.Fatalf("parseContainerXML: %v", err)
	}
	if got != "OEBPS/content.opf" {
		t.Errorf("round-tripped OPF path = %q; want OEBPS/content.opf", got)
	}
}

func TestParseContainerXML(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		want    string
		wantErr bool
	}{
		{
			"media type match preferred",
			`<container><rootfiles>
				<rootfile full-path="other.xml" media-type="text/xml"/>
				<rootfile full-path="OEBPS/book.opf" media-type="application/oebps-package+xml"/>
			</rootfiles></container>`,
			"OEBPS/book.opf", false,
		},
		{
			"fallback to first rootfile with path",
			`<container><rootfiles>
				<rootfile full-path="book.opf" media-type="unknown"/>
			</rootfiles></container>`,
			"book.opf", false,
		},
		{
			"no rootfiles",
			`<container><rootfiles/></container>`,
			"", true,
		},
		{
			"malformed xml",
			`<container><rootfiles>`,
			"", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseContainerXML([]byte(tt.data))
			if tt.wantErr {
				if err == nil {
					t.Fatal("parseContainerXML succeeded; want error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseContainerXML: %v", err)
			}
			if got != tt.want {
				t.Errorf("parseContainerXML = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestLocateOPF(t *testing.T) {
	t.Run("via container.xml", func(t *testing.T) {
		dir := buildTree(t, map[string]string{
			"META-INF/container.xml": testContainerXML,
			"OEBPS/content.opf":      testOPF,
		})
		got, err := locateOPF(dir)
		if err != nil {
			t.Fatalf("locateOPF: %v", err)
		}
		if got != "OEBPS/content.opf" {
			t.Errorf("locateOPF = %q; want OEBPS/content.opf", got)
		}
	})

	t.Run("fallback scan", func(t *testing.T) {
		dir := buildTree(t, map[string]string{
			"OEBPS/book.opf":    testOPF,
			"OEBPS/chapter.txt": "text",
		})
		got, err := locateOPF(dir)
		if err != nil {
			t.Fatalf("locateOPF: %v", err)
		}
		if got != "OEBPS/book.opf" {
			t.Errorf("locateOPF = %q; want OEBPS/book.opf", got)
		}
	})

	t.Run("no opf anywhere", func(t *testing.T) {
		dir := buildTree(t, map[string]string{"readme.txt": "nope"})
		if _, err := locateOPF(dir); err == nil {
			t.Fatal("locateOPF succeeded; want error")
		}
	})
}
