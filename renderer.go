package ozonkw

// ScriptRenderer turns a keyword and an in-page retry budget into
// ready-to-run extraction source text.
type ScriptRenderer interface {
	// Render returns a self-contained JavaScript function expression with no
	// external state besides the two injected parameters.
	// Returns ETEMPLATE if the backing template is missing or malformed.
	Render(keyword string, maxRetries int) (string, error)
}
