package output

// Response size limits.
const (
	// DefaultMaxResponseBytes is the limit suggested for deployments behind
	// clients with small context windows.
	DefaultMaxResponseBytes = 512 * 1024

	// AbsoluteMaxResponseBytes caps any configured limit.
	AbsoluteMaxResponseBytes = 2 * 1024 * 1024
)

// WarningKey is the top level field holding the truncation warning.
const WarningKey = "Truncation"

// ItemsKey wraps a truncated top level array.
const ItemsKey = "Items"

// TruncationWarning describes a truncated response.
type TruncationWarning struct {
	// Field is the array that was shortened.
	Field string `json:"Field"`

	// Shown is the number of elements kept.
	Shown int `json:"Shown"`

	// Total is the number of elements in the upstream response.
	Total int `json:"Total"`

	// Message is a human readable notice for the agent.
	Message string `json:"Message"`
}

// EffectiveLimit returns the limit to apply for a configured value.
// Zero or negative disables truncation.
func EffectiveLimit(configured int) int {
	if configured <= 0 {
		return 0
	}
	return min(configured, AbsoluteMaxResponseBytes)
}
