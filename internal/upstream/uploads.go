package upstream

import (
	"context"
	"io"
	"strings"

	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
)

// UploadArtifactInput describes one artifact document bound for the backend's
// file endpoints.
type UploadArtifactInput struct {
	Kind      enums.ArtifactKind
	RequestID string
	FileName  string
	File      io.Reader
}

// UploadArtifact streams a GRN, job-completion, invoice, or signature document
// to the backend and returns the stored artifact record.
func (c *Client) UploadArtifact(ctx context.Context, token string, input UploadArtifactInput) (*Artifact, error) {
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "artifact kind is invalid")
	}
	if strings.TrimSpace(input.FileName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	if input.File == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file content is required")
	}

	fields := map[string]string{}
	if input.RequestID != "" {
		fields["requestId"] = input.RequestID
	}

	var artifact Artifact
	path := "/uploads/" + input.Kind.String()
	if err := c.uploadMultipart(ctx, token, path, "file", input.FileName, input.File, fields, &artifact); err != nil {
		return nil, err
	}
	return &artifact, nil
}
