// Package artwork locates and inspects the art files a render batch
// works through. Art filenames carry optional tags that override fetched
// card data:
//
//	Card Name (Artist) [SET] {123}$Creator.jpg
//
// Only the card name is required; tags may appear in any combination.
package artwork

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Tags is the card information carried by one art filename.
type Tags struct {
	// Name is the card name, the filename up to the first tag.
	Name string

	// FilePath is the path the tags were parsed from.
	FilePath string

	// Artist overrides the fetched artist credit when set.
	Artist string

	// SetCode selects a specific printing.
	SetCode string

	// Number selects a collector number within the set. It is only
	// honored when SetCode is present.
	Number string

	// Creator is the proxy creator credit after a "$" marker.
	Creator string
}

var (
	artistPattern = regexp.MustCompile(`\(+(.*?)\)`)
	setPattern    = regexp.MustCompile(`\[(.*)\]`)
	numberPattern = regexp.MustCompile(`\{(.*)\}`)
	namePattern   = regexp.MustCompile(` \[| \(| \{|\$`)
)

// ParseTags extracts the card name and optional tags from an art file
// path.
func ParseTags(path string) Tags {
	fileName := filepath.Base(path)
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))
	parts := namePattern.Split(stem, -1)

	tags := Tags{
		Name:     parts[0],
		FilePath: path,
	}

	if m := artistPattern.FindStringSubmatch(fileName); m != nil {
		tags.Artist = m[1]
	}
	if m := setPattern.FindStringSubmatch(fileName); m != nil {
		tags.SetCode = m[1]
		// A collector number without a set is meaningless, skip it.
		if n := numberPattern.FindStringSubmatch(fileName); n != nil {
			tags.Number = n[1]
		}
	}
	if strings.Contains(fileName, "$") {
		tags.Creator = parts[len(parts)-1]
	}

	return tags
}
