package storage

import (
	"path"
	"strings"
)

// Classification maps a file extension to the content type and the backend
// upload method/field used to store it.
type Classification struct {
	MimeType string
	Method   string
	Field    string
}

const (
	MethodPhoto    = "sendPhoto"
	MethodVideo    = "sendVideo"
	MethodAudio    = "sendAudio"
	MethodDocument = "sendDocument"
)

// ExtOf returns the lower-cased extension of a file name without the dot,
// or "" when the name has none.
func ExtOf(name string) string {
	ext := strings.ToLower(path.Ext(name))
	return strings.TrimPrefix(ext, ".")
}

// Classify resolves an extension to its content type and upload method.
// Total: unknown extensions become generic documents.
func Classify(ext string) Classification {
	mimeType := mimeTypeOf(strings.ToLower(strings.TrimPrefix(ext, ".")))
	class := Classification{MimeType: mimeType}
	switch {
	case strings.HasPrefix(mimeType, "image/"):
		class.Method = MethodPhoto
		class.Field = "photo"
	case strings.HasPrefix(mimeType, "video/"):
		class.Method = MethodVideo
		class.Field = "video"
	case strings.HasPrefix(mimeType, "audio/"):
		class.Method = MethodAudio
		class.Field = "audio"
	default:
		class.Method = MethodDocument
		class.Field = "document"
	}
	return class
}

// mimeTypeOf returns the content type for a file extension.
func mimeTypeOf(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	case "bmp":
		return "image/bmp"
	case "mp4":
		return "video/mp4"
	case "webm":
		return "video/webm"
	case "mov":
		return "video/quicktime"
	case "mkv":
		return "video/x-matroska"
	case "mp3":
		return "audio/mpeg"
	case "wav":
		return "audio/wav"
	case "ogg":
		return "audio/ogg"
	case "flac":
		return "audio/flac"
	case "m4a":
		return "audio/mp4"
	case "txt":
		return "text/plain; charset=utf-8"
	case "md":
		return "text/markdown; charset=utf-8"
	case "html", "htm":
		return "text/html; charset=utf-8"
	case "css":
		return "text/css; charset=utf-8"
	case "csv":
		return "text/csv; charset=utf-8"
	case "js":
		return "text/javascript; charset=utf-8"
	case "json":
		return "application/json"
	case "pdf":
		return "application/pdf"
	case "zip":
		return "application/zip"
	case "tar":
		return "application/x-tar"
	case "gz":
		return "application/gzip"
	case "7z":
		return "application/x-7z-compressed"
	case "doc":
		return "application/msword"
	case "docx":
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	case "xls":
		return "application/vnd.ms-excel"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "ppt":
		return "application/vnd.ms-powerpoint"
	case "pptx":
		return "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	case "apk":
		return "application/vnd.android.package-archive"
	default:
		return "application/octet-stream"
	}
}
