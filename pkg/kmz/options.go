package kmz

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// ValidateCoordinates rejects latitudes outside ±90 and longitudes outside
	// ±180 with *ErrInvalidCoordinate.
	// Default is true.
	ValidateCoordinates bool

	// FallbackLayerName names folders without a display name.
	// Default is "Unnamed".
	FallbackLayerName string
}

// DefaultParseOptions returns default options.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{
		ValidateCoordinates: true,
		FallbackLayerName:   "Unnamed",
	}
}
