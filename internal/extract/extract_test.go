package extract

import (
	"errors"
	"strings"
	"testing"
)

func TestKindFromFilename(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     Kind
		wantErr  bool
	}{
		{name: "plain text", filename: "notes.txt", want: Plain},
		{name: "upper case extension", filename: "NOTES.TXT", want: Plain},
		{name: "word document", filename: "report.final.docx", want: StructuredDocument},
		{name: "pdf", filename: "paper.Pdf", want: PagedDocument},
		{name: "unknown extension", filename: "archive.xyz", wantErr: true},
		{name: "legacy word format", filename: "old.doc", wantErr: true},
		{name: "no extension", filename: "README", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KindFromFilename(tt.filename)
			if tt.wantErr {
				if !errors.Is(err, ErrUnsupportedFormat) {
					t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected kind %s, got %s", tt.want, got)
			}
		})
	}
}

func TestExtract_PlainIsVerbatim(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"two  spaces\tand tab\n\nnew paragraph",
		"  leading and trailing  \n",
		"ünïcödé wörds ✓",
	}

	for _, in := range inputs {
		got, err := Extract([]byte(in), Plain)
		if err != nil {
			t.Fatalf("Expected no error for %q, got %v", in, err)
		}
		if got != in {
			t.Errorf("Expected %q, got %q", in, got)
		}
	}
}

func TestExtract_PlainRejectsInvalidUTF8(t *testing.T) {
	_, err := Extract([]byte{0xff, 0xfe, 'a'}, Plain)
	if err == nil {
		t.Fatal("Expected error for invalid UTF-8, got nil")
	}
}

func TestExtract_Docx(t *testing.T) {
	body := docxParagraph("Hello ", "world") +
		`<w:tbl><w:tr><w:tc>` + docxParagraph("in table") + `</w:tc></w:tr></w:tbl>` +
		docxParagraph() +
		`<w:p><w:r><w:t>tab</w:t><w:tab/><w:t>separated</w:t></w:r></w:p>` +
		docxParagraph("last")

	got, err := Extract(buildDocx(t, body), StructuredDocument)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "Hello world  tab\tseparated last"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if strings.Contains(got, "in table") {
		t.Error("Expected table paragraphs to be excluded")
	}
}

func TestExtract_DocxIgnoresTextBoxes(t *testing.T) {
	textBox := `<w:txbxContent>` + docxParagraph("boxed") + `</w:txbxContent>`
	body := `<w:p><w:r><w:t>outer</w:t></w:r>` +
		`<w:r><mc:AlternateContent xmlns:mc="http://schemas.openxmlformats.org/markup-compatibility/2006">` +
		`<mc:Choice Requires="wps"><w:drawing>` + textBox + `</w:drawing></mc:Choice>` +
		`<mc:Fallback><w:pict>` + textBox + `</w:pict></mc:Fallback>` +
		`</mc:AlternateContent></w:r>` +
		`<w:r><w:t xml:space="preserve"> text</w:t></w:r></w:p>` +
		`<w:p><w:r><w:pict>` + textBox + `</w:pict></w:r></w:p>`

	got, err := Extract(buildDocx(t, body), StructuredDocument)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := "outer text "
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestExtract_DocxInvalidArchive(t *testing.T) {
	_, err := Extract([]byte("definitely not a zip"), StructuredDocument)
	if err == nil {
		t.Fatal("Expected error for invalid docx, got nil")
	}
}

func TestExtract_PDFSkipsPagesWithoutText(t *testing.T) {
	content := buildPDF(t, "hello world", "", "second page")

	got, err := Extract(content, PagedDocument)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	fields := strings.Fields(got)
	want := []string{"hello", "world", "second", "page"}
	if len(fields) != len(want) {
		t.Fatalf("Expected words %v, got %v (%q)", want, fields, got)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Errorf("Expected word %d to be %q, got %q", i, want[i], fields[i])
		}
	}
}

func TestExtract_PDFInvalid(t *testing.T) {
	_, err := Extract([]byte("%PDF-1.4 truncated"), PagedDocument)
	if err == nil {
		t.Fatal("Expected error for malformed PDF, got nil")
	}
}

func TestExtract_UnknownKind(t *testing.T) {
	_, err := Extract([]byte("x"), Kind(42))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Expected ErrUnsupportedFormat, got %v", err)
	}
}
