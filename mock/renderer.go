package mock

import "github.com/msaveliev/ozonkw"

var _ ozonkw.ScriptRenderer = (*ScriptRenderer)(nil)

// ScriptRenderer is a mock implementation of ozonkw.ScriptRenderer.
type ScriptRenderer struct {
	RenderFn func(keyword string, maxRetries int) (string, error)
}

func (r *ScriptRenderer) Render(keyword string, maxRetries int) (string, error) {
	return r.RenderFn(keyword, maxRetries)
}
