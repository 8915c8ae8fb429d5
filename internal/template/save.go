package template

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ramonehamilton/proxyforge/internal/surface"
)

// illegal filename characters, replaced before saving.
var filenameSanitizer = strings.NewReplacer(
	"/", "", "\\", "", ":", "", "*", "", "?", "", "\"", "", "<", "", ">", "", "|", "",
)

// exportDocument flattens the finished render into the output directory
// and returns the written path. The filename carries the card's display
// name, the variant suffix, and the artist when configured, and gains a
// counter instead of replacing an earlier render unless overwriting is
// enabled.
func exportDocument(r *Render) (string, error) {
	suffix := r.Spec.Suffix
	if r.Cfg.Render.SaveArtistName || r.Spec.ForceArtistName {
		if suffix != "" {
			suffix += " " + r.Card.Artist
		} else {
			suffix = r.Card.Artist
		}
	}

	format := surface.ParseFormat(r.Cfg.Render.OutputFiletype)
	name := filenameSanitizer.Replace(r.Card.DisplayName())
	base := name
	if suffix != "" {
		base = fmt.Sprintf("%s (%s)", name, suffix)
	}

	if err := os.MkdirAll(r.Cfg.App.OutputDir, 0o755); err != nil {
		return "", err
	}

	filename := base
	if !r.Cfg.Render.OverwriteDuplicate {
		for n := 1; fileExists(r.Cfg.App.OutputDir, filename, format); n++ {
			if suffix != "" {
				filename = fmt.Sprintf("%s (%s %d)", name, suffix, n)
			} else {
				filename = fmt.Sprintf("%s (%d)", name, n)
			}
		}
	}

	path := filepath.Join(r.Cfg.App.OutputDir, filename+format.Extension())
	if err := r.Doc.Export(path, format); err != nil {
		return "", err
	}
	return path, nil
}

func fileExists(dir, name string, format surface.Format) bool {
	_, err := os.Stat(filepath.Join(dir, name+format.Extension()))
	return err == nil
}
