// Package feed turns syndication feeds into normalized news items.
package feed

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// fingerprintLen is the hex prefix kept from the content hash. Identity
// only, not a security boundary.
const fingerprintLen = 16

// Source is one configured feed.
type Source struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// Item is a single ingested headline. Error items stand in for a source
// that failed to fetch or parse: the failure message travels in Summary
// and the feed URL in Link.
type Item struct {
	Source      string
	Title       string
	Link        string
	Summary     string
	Published   *time.Time
	Fingerprint string
	IsError     bool
}

// Fingerprint derives a stable identity for a headline from its title and
// link. Two items with the same title and link always collapse to one.
func Fingerprint(title, link string) string {
	h := sha256.Sum256([]byte(title + "||" + link))
	return hex.EncodeToString(h[:])[:fingerprintLen]
}
