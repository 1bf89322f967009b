package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/blueanchorhq/procurement-gateway/api/middleware"
	"github.com/blueanchorhq/procurement-gateway/api/responses"
	"github.com/blueanchorhq/procurement-gateway/internal/upstream"
	"github.com/blueanchorhq/procurement-gateway/pkg/config"
	"github.com/blueanchorhq/procurement-gateway/pkg/enums"
	pkgerrors "github.com/blueanchorhq/procurement-gateway/pkg/errors"
	"github.com/blueanchorhq/procurement-gateway/pkg/logger"
)

// ArtifactUploader streams an artifact document to the procurement backend.
type ArtifactUploader interface {
	UploadArtifact(ctx context.Context, token string, input upstream.UploadArtifactInput) (*upstream.Artifact, error)
}

// UploadArtifact proxies a multipart document upload. The artifact kind comes
// from the URL; the file arrives in the "file" form field.
func UploadArtifact(uploader ArtifactUploader, cfg config.UploadsConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if uploader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "uploads unavailable"))
			return
		}

		kind, err := enums.ParseArtifactKind(chi.URLParam(r, "kind"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "artifact kind is invalid"))
			return
		}

		maxBytes := int64(cfg.MaxUploadMB) << 20
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart body"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file form field is required"))
			return
		}
		defer file.Close()

		artifact, err := uploader.UploadArtifact(r.Context(), middleware.UpstreamTokenFromContext(r.Context()), upstream.UploadArtifactInput{
			Kind:      kind,
			RequestID: r.FormValue("requestId"),
			FileName:  header.Filename,
			File:      file,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, artifact)
	}
}
