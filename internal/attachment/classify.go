package attachment

import (
	"path/filepath"
	"strings"

	"chat-service/internal/message"
)

var codeExts = map[string]struct{}{
	".go": {}, ".py": {}, ".js": {}, ".ts": {}, ".jsx": {}, ".tsx": {},
	".java": {}, ".c": {}, ".h": {}, ".cpp": {}, ".hpp": {}, ".cs": {},
	".rb": {}, ".rs": {}, ".php": {}, ".swift": {}, ".kt": {}, ".scala": {},
	".sh": {}, ".sql": {}, ".html": {}, ".css": {}, ".json": {}, ".xml": {},
	".yaml": {}, ".yml": {}, ".toml": {}, ".md": {},
}

var docMimes = []string{
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument.wordprocessingml",
	"application/vnd.openxmlformats-officedocument.spreadsheetml",
	"application/vnd.openxmlformats-officedocument.presentationml",
	"application/vnd.ms-excel",
	"application/vnd.ms-powerpoint",
	"application/vnd.oasis.opendocument",
	"application/rtf",
}

// Classify maps an uploaded file to the message type that will carry it.
// Rules apply in priority order: images, then source/text, then office
// documents, then the generic file bucket.
func Classify(mimeType, fileName string) message.Type {
	mt := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.HasPrefix(mt, "image/"):
		return message.TypeImage
	case strings.HasPrefix(mt, "text/"):
		return message.TypeCode
	}
	if _, ok := codeExts[strings.ToLower(filepath.Ext(fileName))]; ok {
		return message.TypeCode
	}
	for _, d := range docMimes {
		if strings.HasPrefix(mt, d) {
			return message.TypeDocument
		}
	}
	return message.TypeFile
}
