package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

const (
	wordMLNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	documentPart    = "word/document.xml"
)

var errMissingDocumentPart = errors.New("docx archive has no " + documentPart)

// extractDocx joins the text of the top-level body paragraphs with single spaces.
// Paragraphs nested in tables or text boxes are not part of the body sequence.
func extractDocx(content []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("failed to open docx archive: %w", err)
	}

	var part *zip.File
	for _, f := range archive.File {
		if f.Name == documentPart {
			part = f
			break
		}
	}
	if part == nil {
		return "", errMissingDocumentPart
	}

	rc, err := part.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", documentPart, err)
	}
	defer func() { _ = rc.Close() }()

	paragraphs, err := readBodyParagraphs(rc)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", documentPart, err)
	}
	return strings.Join(paragraphs, " "), nil
}

func readBodyParagraphs(r io.Reader) ([]string, error) {
	decoder := xml.NewDecoder(r)

	var (
		paragraphs []string
		stack      []string
		current    strings.Builder
		inText     bool
	)
	inBodyParagraph := func() bool {
		// document > body > p [> ...], never below foreign markup or a text box
		return len(stack) >= 3 && stack[1] == "body" && stack[2] == "p" &&
			!slices.Contains(stack, "") && !slices.Contains(stack, "txbxContent")
	}

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordMLNamespace {
				stack = append(stack, "")
				continue
			}
			stack = append(stack, t.Name.Local)
			if !inBodyParagraph() {
				continue
			}
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				current.WriteByte('\t')
			case "br", "cr":
				current.WriteByte('\n')
			}
		case xml.EndElement:
			if len(stack) == 0 {
				continue
			}
			if len(stack) == 3 && inBodyParagraph() {
				paragraphs = append(paragraphs, current.String())
				current.Reset()
			}
			if stack[len(stack)-1] == "t" {
				inText = false
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if inText && inBodyParagraph() {
				current.Write(t)
			}
		}
	}
	return paragraphs, nil
}
