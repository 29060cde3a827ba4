package splitcode

// ProgressFunc observes a long running encode or decode. done and total
// are input bytes for Encode and bits for Decode.
type ProgressFunc func(done, total int)

// progressInterval is how many steps pass between two progress reports.
const progressInterval = 4096

type options struct {
	progress     ProgressFunc
	outputLength int
}

// Option configures Encode, Decode, Compress and Decompress.
type Option func(*options)

// WithProgress installs a progress observer. It is called periodically
// and once more when the operation completes.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

// WithOutputLength stops decoding after n symbols. Archives do not
// record the data length, so trailing pad bits can look like codes;
// callers that know the original size pass it here.
func WithOutputLength(n int) Option {
	return func(o *options) {
		o.outputLength = n
	}
}

func buildOptions(opts []Option) options {
	o := options{outputLength: -1}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o *options) report(done, total int) {
	if o.progress != nil {
		o.progress(done, total)
	}
}
