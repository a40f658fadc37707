package encode

import "github.com/signadot/treemerge/format"

type EncodeOption func(*EncState)

func EncodeFormat(f format.Format) EncodeOption {
	return func(es *EncState) { es.format = f }
}

// FormatFromOpts extracts the format from encode options.
func FormatFromOpts(opts ...EncodeOption) format.Format {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return es.format
}

// EncodeIndent makes JSON output multi-line, indenting each level by
// indent. The empty string gives compact output.
func EncodeIndent(indent string) EncodeOption {
	return func(es *EncState) { es.indent = indent }
}
func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
