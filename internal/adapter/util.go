package adapter

import (
	"crypto/md5"
	"encoding/hex"
	"html"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// maxDescriptionLen bounds stored descriptions; ATS content fields can run
// to hundreds of KB of markup.
const maxDescriptionLen = 5000

// extractText converts an HTML fragment to plain text with collapsed
// whitespace, truncated to maxDescriptionLen. Entities are unescaped first:
// Greenhouse double-encodes its content field, and the unescape is a no-op
// on already-real HTML.
func extractText(content string) string {
	if content == "" {
		return ""
	}
	content = html.UnescapeString(content)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return truncate(content, maxDescriptionLen)
	}
	plain := strings.Join(strings.Fields(doc.Text()), " ")
	return truncate(plain, maxDescriptionLen)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// JobID derives a job's stable identity from its posting URL: the URL is
// canonicalized and MD5-hashed. Tracking query params and fragments are
// stripped so the same posting seen twice hashes identically.
func JobID(rawURL string) string {
	sum := md5.Sum([]byte(canonicalURL(rawURL)))
	return hex.EncodeToString(sum[:])
}

func canonicalURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	q := u.Query()
	for key := range q {
		if strings.HasPrefix(strings.ToLower(key), "utm_") {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// normalizeLocation standardizes common location spellings so the location
// bonus rules see consistent input.
func normalizeLocation(location string) string {
	location = strings.TrimSpace(location)
	if location == "" {
		return ""
	}
	location = strings.ReplaceAll(location, "San Francisco Bay Area", "San Francisco, CA")
	location = strings.ReplaceAll(location, "SF", "San Francisco")
	return location
}
