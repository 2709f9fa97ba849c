package domain

const (
	// MaxFieldLength is the maximum rune length of any extracted metadata field
	MaxFieldLength = 200

	// PlaceholderTitle replaces an empty extracted title before persistence
	PlaceholderTitle = "Untitled Score"

	// PlaceholderComposer replaces an empty extracted composer before persistence
	PlaceholderComposer = "Unknown Composer"

	// DefaultPageSize is the collection page size when none is configured
	DefaultPageSize = 50
)
