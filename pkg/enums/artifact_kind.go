package enums

import "fmt"

// ArtifactKind names the document uploads forwarded to the backend's file
// endpoints.
type ArtifactKind string

const (
	ArtifactKindGRN           ArtifactKind = "grn"
	ArtifactKindJobCompletion ArtifactKind = "job-completion"
	ArtifactKindInvoice       ArtifactKind = "invoice"
	ArtifactKindSignature     ArtifactKind = "signature"
)

var validArtifactKinds = []ArtifactKind{
	ArtifactKindGRN,
	ArtifactKindJobCompletion,
	ArtifactKindInvoice,
	ArtifactKindSignature,
}

// String implements fmt.Stringer.
func (a ArtifactKind) String() string {
	return string(a)
}

// IsValid reports whether the value is a known ArtifactKind.
func (a ArtifactKind) IsValid() bool {
	for _, candidate := range validArtifactKinds {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseArtifactKind converts raw input into an ArtifactKind.
func ParseArtifactKind(value string) (ArtifactKind, error) {
	for _, candidate := range validArtifactKinds {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid artifact kind %q", value)
}
