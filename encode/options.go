package encode

import "github.com/fatih/color"

// Option configures AsYaml's rendering, following the functional-option
// idiom used throughout the retrieved stream package for Encoder/Decoder
// configuration.
type Option func(*yamlOpts)

type yamlOpts struct {
	color bool
}

// WithColor enables ANSI styling of key names and comments, for a terminal
// destination. Scalar values are left unstyled so piping colored output
// into another parser still yields a valid document for everything except
// keys/comments, matching the CLI's existing behavior of only coloring the
// parts that are purely decorative.
func WithColor(enabled bool) Option {
	return func(o *yamlOpts) { o.color = enabled }
}

var (
	keyColor     = color.New(color.FgCyan, color.Bold)
	commentColor = color.New(color.FgGreen)
)
