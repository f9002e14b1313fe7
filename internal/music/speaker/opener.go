package speaker

import (
	"context"
	"io"
)

// Opener produces the PCM stream of a track link.
type Opener interface {
	OpenStream(ctx context.Context, url string) (io.ReadCloser, error)
}
