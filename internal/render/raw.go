package render

// RawRenderer passes HTML sources through untouched.
type RawRenderer struct{}

func (RawRenderer) Name() string { return "raw" }

func (RawRenderer) RenderToHTML(_ Document, source string) (string, error) {
	return source, nil
}
