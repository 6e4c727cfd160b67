package domain

// ProviderResponse is a decoded JSON body returned by the graph API.
// It is nil for an empty body and {"raw": text} for a body that was not JSON.
type ProviderResponse = any

// PictureType selects the size variant of the profile picture.
type PictureType string

// Picture sizes accepted by the provider.
const (
	PictureSmall  PictureType = "small"
	PictureNormal PictureType = "normal"
	PictureLarge  PictureType = "large"
	PictureSquare PictureType = "square"
)

// PictureTypes lists the picture sizes in display order.
func PictureTypes() []PictureType {
	return []PictureType{PictureSmall, PictureNormal, PictureLarge, PictureSquare}
}

// IsValid returns true if the picture type is recognised.
func (p PictureType) IsValid() bool {
	switch p {
	case PictureSmall, PictureNormal, PictureLarge, PictureSquare:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (p PictureType) String() string {
	return string(p)
}

// FetchParams are the raw user inputs for one fetch.
type FetchParams struct {
	Token       string
	Fields      string
	PictureType PictureType
}

// FetchResult bundles the three payloads of a successful fetch.
type FetchResult struct {
	Profile     ProviderResponse
	Picture     ProviderResponse
	Permissions ProviderResponse

	// RequestedFields is the normalised field list sent to /me.
	RequestedFields []string

	// NoResults is set when /me succeeded but returned no id.
	NoResults bool
}

// Combined returns the raw payload shown for a completed fetch.
func (r *FetchResult) Combined() map[string]any {
	return map[string]any{
		"me":          r.Profile,
		"picture":     r.Picture,
		"permissions": r.Permissions,
	}
}

// OutcomeKind classifies how a fetch ended for the presentation layer.
type OutcomeKind string

// Fetch outcomes.
const (
	OutcomeSuccess   OutcomeKind = "success"
	OutcomeNoResults OutcomeKind = "no_results"
	OutcomeInvalid   OutcomeKind = "invalid"
	OutcomeFailed    OutcomeKind = "failed"
	OutcomeBusy      OutcomeKind = "busy"
)

// FetchOutcome is what a presented fetch hands back to its trigger.
type FetchOutcome struct {
	Kind    OutcomeKind
	Result  *FetchResult
	Err     error
	Message string
}

// StatusKind is the tone of the status indicator.
type StatusKind string

// Status indicator tones.
const (
	StatusIdle StatusKind = "idle"
	StatusOK   StatusKind = "ok"
	StatusBad  StatusKind = "bad"
)
