package status

import (
	"fmt"
	"path/filepath"
)

// FileFormatter defines how artifacts and run progress are rendered
type FileFormatter interface {
	// FormatEntry formats one recorded artifact, with its path shown relative to root
	FormatEntry(e Entry, root string) string

	// FormatProgress formats a progress message
	FormatProgress(current, total int) string

	// FormatError formats an error message
	FormatError(err error) string
}

// DefaultFileFormatter provides a default implementation of FileFormatter
type DefaultFileFormatter struct{}

var _ FileFormatter = (*DefaultFileFormatter)(nil)

// NewDefaultFileFormatter creates a new DefaultFileFormatter
func NewDefaultFileFormatter() *DefaultFileFormatter {
	return &DefaultFileFormatter{}
}

// FormatEntry formats an artifact status message with emojis
func (f *DefaultFileFormatter) FormatEntry(e Entry, root string) string {
	path := e.Path
	if root != "" {
		if rel, err := filepath.Rel(root, e.Path); err == nil {
			path = rel
		}
	}

	switch e.Status {
	case StatusNew:
		return fmt.Sprintf("✨ Created %s (%s)", path, e.Kind)
	case StatusModified:
		return fmt.Sprintf("📝 Modified %s (%s)", path, e.Kind)
	case StatusDeleted:
		return fmt.Sprintf("🗑️  Removed %s (%s)", path, e.Kind)
	case StatusUnchanged:
		return fmt.Sprintf("👍 Unchanged %s (%s)", path, e.Kind)
	default:
		return fmt.Sprintf("❔ Unknown %s (%s)", path, e.Kind)
	}
}

// FormatProgress formats a progress message with percentage
func (f *DefaultFileFormatter) FormatProgress(current, total int) string {
	current = max(current, 0)
	total = max(total, 0)

	var percentage float64
	switch {
	case total == 0 && current > 0:
		percentage = 100
	case total > 0:
		percentage = min(float64(current)/float64(total)*100, 100)
	}

	if current >= total {
		return fmt.Sprintf("✅ Progress: %d/%d (%.0f%%)", current, total, percentage)
	}
	return fmt.Sprintf("⏳ Progress: %d/%d (%.0f%%)", current, total, percentage)
}

// FormatError formats an error message with emoji
func (f *DefaultFileFormatter) FormatError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("❌ Error: %v", err)
}
