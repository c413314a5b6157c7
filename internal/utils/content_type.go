package utils

import "strings"

// GetFileExtensionFromContentType maps an image MIME type to the file
// extension used when building object storage keys.
func GetFileExtensionFromContentType(contentType string) string {
	contentType = strings.ToLower(contentType)

	switch {
	case strings.Contains(contentType, "jpeg") || strings.Contains(contentType, "jpg"):
		return "jpg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "svg"):
		return "svg"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	case strings.Contains(contentType, "tiff") || strings.Contains(contentType, "tif"):
		return "tiff"
	case strings.Contains(contentType, "bmp"):
		return "bmp"
	case strings.Contains(contentType, "heif") || strings.Contains(contentType, "heic"):
		return "heic"
	case strings.Contains(contentType, "avif"):
		return "avif"
	default:
		return "bin"
	}
}

// IsImageContentType reports whether the MIME type is an image type the
// upload endpoint accepts. An empty content type is allowed because browsers
// do not always set one on multipart file parts.
func IsImageContentType(contentType string) bool {
	if contentType == "" {
		return true
	}
	return strings.HasPrefix(strings.ToLower(contentType), "image/")
}
