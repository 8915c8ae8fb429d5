package artwork

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
)

// artExtensions are the file types the render loop accepts, limited to
// formats the image decoder handles.
var artExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".tif":  true,
	".tiff": true,
	".bmp":  true,
}

// IsArtFile reports whether a path has a supported art file extension.
func IsArtFile(path string) bool {
	return artExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanFolder lists the art files in a directory in filename order.
func ScanFolder(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read art folder: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !IsArtFile(entry.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}

	return files, nil
}

// Info describes a decoded art file.
type Info struct {
	Width  int
	Height int
}

// Inspect decodes an art file and reports its dimensions. A failure
// means the file cannot be rendered.
func Inspect(path string) (Info, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("failed to decode art file: %w", err)
	}

	bounds := img.Bounds()
	return Info{Width: bounds.Dx(), Height: bounds.Dy()}, nil
}
