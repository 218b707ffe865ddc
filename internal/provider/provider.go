// Package provider defines the capability port that decouples the download
// pipeline from any concrete extraction backend.
package provider

import (
	"context"

	"ytgrab/internal/model"
)

// Port is the contract a backend must satisfy. Implementations live in the
// subpackages and are injected into the pipeline at construction time; the
// pipeline never references a concrete backend by name.
//
// Both operations return errors classified into the dlerr taxonomy; any
// backend-native failure an implementation fails to classify is wrapped by
// the pipeline's error mapper before leaving the core.
type Port interface {
	// FetchMetadata resolves a URL to video metadata. On success the
	// returned VideoInfo lists at least one format.
	FetchMetadata(ctx context.Context, url string) (model.VideoInfo, error)

	// Download transfers the given format to the request's output
	// location. Partial output cleanup is the implementation's concern.
	Download(ctx context.Context, req model.DownloadRequest, format model.FormatInfo) (model.DownloadResult, error)
}
