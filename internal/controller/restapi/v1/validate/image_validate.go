package validate

const MaxFileSize int64 = 10 * 1024 * 1024

var (
	AllowedContentTypes = map[string]bool{
		"image/jpeg": true,
		"image/jpg":  true,
		"image/png":  true,
		"image/gif":  true,
		"image/bmp":  true,
		"image/tiff": true,
	}

	AllowedMarkdownExtensions = map[string]bool{
		".md":       true,
		".markdown": true,
	}
)
