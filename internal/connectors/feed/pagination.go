package feed

import (
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/custodia-labs/hedwig/internal/core/domain"
)

// HeaderLink is the pagination header used by GitHub and Gitea.
const HeaderLink = "Link"

// linkRegex matches Link header entries: <url>; rel="type".
var linkRegex = regexp.MustCompile(`<([^>]+)>;\s*rel="([^"]+)"`)

// ParseNextLink extracts the "next" URL from a Link header.
// Returns empty string if no next link is found.
func ParseNextLink(linkHeader string) string {
	return ParseAllLinks(linkHeader)["next"]
}

// ParseAllLinks extracts all URLs from a Link header by relationship type.
func ParseAllLinks(linkHeader string) map[string]string {
	links := make(map[string]string)
	if linkHeader == "" {
		return links
	}

	for _, part := range strings.Split(linkHeader, ",") {
		matches := linkRegex.FindStringSubmatch(strings.TrimSpace(part))
		if len(matches) == 3 {
			links[matches[2]] = matches[1]
		}
	}
	return links
}

// LastPage returns the page number of the "last" link, or 0 if unknown.
func LastPage(linkHeader string) int {
	return lastPage(ParseAllLinks(linkHeader))
}

func lastPage(links map[string]string) int {
	last := links["last"]
	if last == "" {
		return 0
	}
	u, err := url.Parse(last)
	if err != nil {
		return 0
	}
	n, err := strconv.Atoi(u.Query().Get("page"))
	if err != nil {
		return 0
	}
	return n
}

// MetadataFromHeader builds page metadata from response headers.
func MetadataFromHeader(h http.Header) domain.PageMetadata {
	links := ParseAllLinks(h.Get(HeaderLink))
	return domain.PageMetadata{
		NextLink: links["next"],
		LastPage: lastPage(links),
	}
}
