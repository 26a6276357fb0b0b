package pipeline

import "context"

// Pipeline summarizes transcript files dropped into the watched inbox.
type Pipeline interface {
	Process(ctx context.Context, transcriptPath string) error
}
