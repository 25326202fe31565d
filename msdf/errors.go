package msdf

// ErrorKind classifies a generation failure per §7's propagation table.
type ErrorKind int

const (
	// GlyphNotInFont means the caller asked to generate a glyph that the
	// upstream font/outline source doesn't have. Always produced by the
	// outline collaborator, never by this package, but named here so
	// callers can switch on a single Kind type across the boundary.
	GlyphNotInFont ErrorKind = iota

	// CorruptedOutline means the input Shape failed Validate: a contour
	// doesn't close, or otherwise isn't a well-formed set of loops.
	CorruptedOutline

	// AllocationFailed means the output bitmap (or an atlas slot it is
	// destined for) could not be allocated.
	AllocationFailed

	// DegenerateShape means the shape has no contours, or every contour
	// collapsed to nothing once normalized (e.g. the space glyph). This
	// is the one non-fatal kind: Generate returns a valid all-background
	// MSDF alongside a nil error, never a *GenerationError, when this
	// happens — it's listed here only so Metrics/logging can name it.
	DegenerateShape
)

func (k ErrorKind) String() string {
	switch k {
	case GlyphNotInFont:
		return "GlyphNotInFont"
	case CorruptedOutline:
		return "CorruptedOutline"
	case AllocationFailed:
		return "AllocationFailed"
	case DegenerateShape:
		return "DegenerateShape"
	default:
		return "Unknown"
	}
}

// GenerationError reports why Generate could not produce an MSDF.
type GenerationError struct {
	Kind   ErrorKind
	Reason string
}

func (e *GenerationError) Error() string {
	return "msdf: " + e.Kind.String() + ": " + e.Reason
}
