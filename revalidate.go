package helpdesk

// PathRevalidator invalidates any cached views of a path after a
// mutation. The web layer plugs its cache here; the default does nothing.
type PathRevalidator interface {
	Revalidate(path string)
}

// PathRevalidatorFunc adapts a function to the PathRevalidator interface.
type PathRevalidatorFunc func(path string)

// Revalidate implements PathRevalidator.
func (f PathRevalidatorFunc) Revalidate(path string) {
	if f != nil {
		f(path)
	}
}

type noopRevalidator struct{}

func (noopRevalidator) Revalidate(string) {}

func normalizeRevalidator(r PathRevalidator) PathRevalidator {
	if r == nil {
		return noopRevalidator{}
	}
	return r
}
