// Package generator defines the contract shared by artifact generators.
package generator

// Generator renders a model to text and optionally writes it to a file.
type Generator[T any] interface {
	Generate(model T, opts Options) (string, error)
}

// Options controls where generated content is written.
type Options struct {
	// Output is the destination file. Empty returns the content without writing.
	Output string
}
