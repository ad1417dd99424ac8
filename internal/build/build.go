package build

// Overridden at build time via -ldflags
var (
	ShortVersion = "0.0.0"
	GitRef       = "unknown"
)

var LongVersion = ShortVersion + " (" + GitRef + ")"
