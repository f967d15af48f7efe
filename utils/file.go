package utils

import (
	"path/filepath"
	"strings"
)

// extensions the frame processor has decoders registered for
var uploadableImageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// IsUploadableImage checks if the filename has an extension frame uploads accept
func IsUploadableImage(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return uploadableImageExtensions[ext]
}
