package attachment_test

import (
	"testing"

	"chat-service/internal/attachment"
	"chat-service/internal/message"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name     string
		mime     string
		fileName string
		want     message.Type
	}{
		{"png image", "image/png", "diagram.png", message.TypeImage},
		{"jpeg image", "image/jpeg", "photo.jpg", message.TypeImage},
		{"plain text", "text/plain", "notes.txt", message.TypeCode},
		{"go source by extension", "application/octet-stream", "main.go", message.TypeCode},
		{"python source by extension", "application/octet-stream", "train.py", message.TypeCode},
		{"pdf", "application/pdf", "report.pdf", message.TypeDocument},
		{"word", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", "cv.docx", message.TypeDocument},
		{"spreadsheet", "application/vnd.ms-excel", "sheet.xls", message.TypeDocument},
		{"presentation", "application/vnd.ms-powerpoint", "deck.ppt", message.TypeDocument},
		{"zip falls through", "application/zip", "bundle.zip", message.TypeFile},
		{"unknown mime unknown ext", "", "mystery.bin", message.TypeFile},
		{"image beats code extension", "image/svg+xml", "icon.svg", message.TypeImage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, attachment.Classify(tc.mime, tc.fileName))
		})
	}
}
