package transcript

import (
	"context"

	"go.uber.org/zap"
)

// Source supplies a transcript for one generation run. Implementations may
// wrap slow external transcription collaborators, so Transcribe takes a
// context and is expected to honor cancellation.
type Source interface {
	// Name identifies the source in strategy attempt records
	Name() string

	// Transcribe produces the transcript. A transcript with zero segments
	// is a valid result, not an error.
	Transcribe(ctx context.Context) (*Transcript, error)
}

// FileSource reads a previously produced transcription JSON file. It is the
// default source: the transcription collaborator runs out of process and
// leaves its output on disk.
type FileSource struct {
	path    string
	decoder *Decoder
}

// NewFileSource creates a FileSource for the given transcript path
func NewFileSource(path string, logger *zap.Logger) *FileSource {
	return &FileSource{
		path:    path,
		decoder: NewDecoderWithLogger(logger),
	}
}

// Name identifies the source in strategy attempt records
func (fs *FileSource) Name() string {
	return "Whisper JSON"
}

// Transcribe decodes the transcript file
func (fs *FileSource) Transcribe(ctx context.Context) (*Transcript, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return fs.decoder.DecodeFile(fs.path)
}
