package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

var (
	xmlTagRe     = regexp.MustCompile(`<[^>]+>`)
	blankRunRe   = regexp.MustCompile(`[ \t\r\f\v]+`)
	lineIndentRe = regexp.MustCompile(`\n[ ]*`)
	blankLinesRe = regexp.MustCompile(`\n{3,}`)
)

func extractTextFromPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	r, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	rs, err := r.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err = io.Copy(&buf, rs); err != nil {
		return "", err
	}
	return normalizeWhitespace(buf.String()), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var docXML []byte
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			rc, err := f.Open()
			if err != nil {
				return "", err
			}
			docXML, err = io.ReadAll(rc)
			rc.Close()
			if err != nil {
				return "", err
			}
			break
		}
	}
	if len(docXML) == 0 {
		return "", errors.New("no document.xml found in docx")
	}

	xml := string(docXML)
	// Paragraph boundaries become newlines before the tags are stripped.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	txt := xmlTagRe.ReplaceAllString(xml, " ")

	return normalizeWhitespace(txt), nil
}

func extractTextFromHTML(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		if n.Type == html.ElementNode {
			switch n.Data {
			case "p", "div", "br", "li", "h1", "h2", "h3", "h4", "tr":
				b.WriteString("\n")
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(doc)

	return normalizeWhitespace(b.String()), nil
}

func normalizeWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00A0", " ")
	s = blankRunRe.ReplaceAllString(s, " ")
	s = lineIndentRe.ReplaceAllString(s, "\n")
	s = blankLinesRe.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
