package collector

import (
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/go-shiori/go-readability"
)

const extractTimeout = 20 * time.Second

var (
	tagPattern       = regexp.MustCompile(`<[^>]*>`)
	paragraphPattern = regexp.MustCompile(`(?is)<p[^>]*>(.*?)</p>`)
)

// ExtractContent pulls the readable text out of a page. Readability strips
// navigation and boilerplate and prefers article/content containers; when it
// cannot identify an article, the first paragraph blocks of the raw page are
// used instead.
func ExtractContent(url string) (string, error) {
	article, err := readability.FromURL(url, extractTimeout)
	if err == nil && len(article.TextContent) > 0 {
		return article.TextContent, nil
	}

	return extractParagraphs(url)
}

// extractParagraphs keeps the first ~10 paragraph blocks of the raw HTML.
func extractParagraphs(url string) (string, error) {
	client := &http.Client{Timeout: extractTimeout}
	res, err := client.Get(url)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch failed (status %d)", res.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}

	matches := paragraphPattern.FindAllStringSubmatch(string(body), 10)
	if len(matches) == 0 {
		return "", fmt.Errorf("no paragraph blocks found")
	}

	var sb strings.Builder
	for _, m := range matches {
		text := strings.TrimSpace(tagPattern.ReplaceAllString(m[1], ""))
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}
