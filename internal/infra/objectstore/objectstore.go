package objectstore

import (
	"net/url"
	"strings"

	"printmarket/internal/pkg/config"

	"github.com/google/uuid"
)

// URLResolver maps stored file metadata to retrievable URLs on the
// external object store. File bytes never pass through this service.
type URLResolver struct {
	baseURL string
}

func NewURLResolver(cfg config.StorageConfig) *URLResolver {
	return &URLResolver{baseURL: strings.TrimRight(cfg.PublicBaseURL, "/")}
}

func (r *URLResolver) ResolveFileURL(requestID uuid.UUID, name string) string {
	return r.baseURL + "/" + requestID.String() + "/" + url.PathEscape(name)
}
