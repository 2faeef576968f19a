package domain

// Status represents the lifecycle of the current generation
type Status int

const (
	StatusIdle Status = iota
	StatusGenerating
	StatusSucceeded
	StatusFailed
)

// String returns the human-readable status name
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "Idle"
	case StatusGenerating:
		return "Generating"
	case StatusSucceeded:
		return "Succeeded"
	case StatusFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// CanSubmit reports whether a new submission is allowed from this status.
// A request in flight blocks resubmission; there is no queueing.
func (s Status) CanSubmit() bool {
	return s != StatusGenerating
}

// Terminal reports whether the status is a settled outcome
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// GenerationResult is the discriminated outcome of a finished generation.
// Exactly one of ImageURL or ErrorMessage is set, never both.
type GenerationResult struct {
	ImageURL     string
	ErrorMessage string
}

// SucceededResult builds the success outcome
func SucceededResult(imageURL string) GenerationResult {
	return GenerationResult{ImageURL: imageURL}
}

// FailedResult builds the failure outcome
func FailedResult(message string) GenerationResult {
	return GenerationResult{ErrorMessage: message}
}

// OK reports whether the result carries an image reference
func (r GenerationResult) OK() bool {
	return r.ImageURL != ""
}
