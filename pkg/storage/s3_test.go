package storage

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAttachmentKey(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	key := AttachmentKey("org-123", at, "report.pdf")
	assert.Equal(t, fmt.Sprintf("org/org-123/%d-report.pdf", at.UnixMilli()), key)
}

func TestAttachmentKeyStripsDirectories(t *testing.T) {
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		filename string
		wantBase string
	}{
		{"plain", "a.txt", "a.txt"},
		{"nested", "dir/a.txt", "a.txt"},
		{"traversal", "../../etc/passwd", "passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := AttachmentKey("org-123", at, tt.filename)
			assert.Equal(t, fmt.Sprintf("org/org-123/%d-%s", at.UnixMilli(), tt.wantBase), key)
		})
	}
}
