// Package source reads URL lists from files, stdin and WebDAV remotes.
package source

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Format is the layout of an input document
type Format string

const (
	FormatAuto  Format = ""
	FormatLines Format = "lines"
	FormatHTML  Format = "html"
)

// DetectFormat picks a format from the input name
func DetectFormat(name string) Format {
	switch strings.ToLower(path.Ext(name)) {
	case ".html", ".htm", ".xhtml":
		return FormatHTML
	default:
		return FormatLines
	}
}

// Read extracts URLs from r in the given format, detecting it from name when auto
func Read(r io.Reader, name string, format Format) ([]string, error) {
	if format == FormatAuto {
		format = DetectFormat(name)
	}
	switch format {
	case FormatLines:
		return ReadLines(r)
	case FormatHTML:
		return ReadHTML(r)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
}

// ReadLines returns one URL per line, skipping blank lines and # comments
func ReadLines(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read lines: %w", err)
	}
	return urls, nil
}

// ReadHTML returns the href of every anchor in document order
func ReadHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	var urls []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href != "" {
			urls = append(urls, href)
		}
	})
	return urls, nil
}
