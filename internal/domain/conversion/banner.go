package conversion

import "errors"

// BannerKind selects how a result line is styled.
type BannerKind string

const (
	BannerSuccess BannerKind = "success"
	BannerWarning BannerKind = "warning"
	BannerError   BannerKind = "error"
)

// GenerationErrorMessage is shown whenever the model fails or answers with nothing.
const GenerationErrorMessage = "Error: Could not generate response. Please try again."

// Banner is the single user-visible line produced by a submission.
type Banner struct {
	Kind    BannerKind `json:"kind"`
	Message string     `json:"message"`
}

// NewBanner maps a Convert result onto a banner. A nil error always carries
// the model text verbatim; any other failure is never shown as success.
func NewBanner(out *Outcome, err error) Banner {
	var ve *ValidationError
	switch {
	case err == nil && out != nil:
		return Banner{Kind: BannerSuccess, Message: "Converted Value: " + out.Text}
	case errors.As(err, &ve):
		return Banner{Kind: BannerWarning, Message: ve.Message}
	default:
		return Banner{Kind: BannerError, Message: GenerationErrorMessage}
	}
}
