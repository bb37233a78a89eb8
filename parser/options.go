package parser

const (
	DefaultMaxOutputSize = 0
)

type Options struct {
	// Checks the trailer. Defaults to NoVerification.
	Verifier Verifier

	// Return the partially decoded image together with a decoding
	// error. Only useful for looking at broken images.
	KeepPartial bool

	// Refuse images that decode to more than this many bytes. 0
	// means no limit.
	MaxOutputSize int
}

func GetDefaultOptions() Options {
	return Options{
		Verifier:      NoVerification,
		MaxOutputSize: DefaultMaxOutputSize,
	}
}
