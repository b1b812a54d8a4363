package sources

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"readnext/pkg/domain"
)

// Parser reads the plain-text links catalog: blocks separated by blank
// lines, where the first non-URL line of a block names the source and
// every URL line below it belongs to that source.
type Parser struct{}

// NewParser creates a new catalog parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse reads sources from r. A block whose first line is already a URL
// gets an empty name; a block that ends up with no URLs is dropped.
// Duplicate names are allowed and stay independent entries.
func (p *Parser) Parse(r io.Reader) ([]domain.Source, error) {
	var (
		result  []domain.Source
		current *domain.Source
	)

	flush := func() {
		if current != nil && len(current.URLs) > 0 {
			result = append(result, *current)
		}
		current = nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" {
			flush()
			continue
		}

		if isURL(line) {
			if current == nil {
				current = &domain.Source{}
			}
			current.URLs = append(current.URLs, line)
			continue
		}

		// A non-URL line starts a new block and names it.
		current = &domain.Source{Name: line}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}

	flush()
	return result, nil
}

// ParseFile reads sources from a links file on disk (links.txt)
func (p *Parser) ParseFile(path string) ([]domain.Source, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open links file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

func isURL(line string) bool {
	return strings.HasPrefix(line, "http://") || strings.HasPrefix(line, "https://")
}
