package fragment

import (
	"context"
	"log"
)

// Loader fetches fragments and mounts them into pages. Nothing is cached:
// every call fetches again.
type Loader struct {
	fetcher Fetcher
}

// NewLoader creates a loader over fetcher
func NewLoader(fetcher Fetcher) *Loader {
	return &Loader{fetcher: fetcher}
}

// Load fetches fragmentPath and mounts it into the container with the given
// id, then runs the hooks the fragment declares. Failures are logged and
// reported as false; callers must not assume content was inserted.
func (l *Loader) Load(ctx context.Context, page *Page, containerID, fragmentPath string, hooks Hooks) bool {
	markup, err := l.fetcher.Fetch(ctx, fragmentPath)
	if err != nil {
		log.Printf("Error loading component %s: %v", fragmentPath, err)
		return false
	}

	if !page.Mount(containerID, string(markup), hooks) {
		log.Printf("Error loading component %s: container #%s not found", fragmentPath, containerID)
		return false
	}
	return true
}
