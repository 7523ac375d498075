package deconv

import (
	"fmt"

	"github.com/cwbudde/algo-deblur/dsp/raster"
	"golang.org/x/sync/errgroup"
)

// RestoreFunc restores a single channel.
type RestoreFunc func(channel *raster.Image) (*raster.Image, error)

// Channels restores every channel independently and concurrently. There is
// no coupling between channels. The first error aborts the result.
func Channels(channels []*raster.Image, restore RestoreFunc) ([]*raster.Image, error) {
	if len(channels) == 0 {
		return nil, ErrEmptyInput
	}

	out := make([]*raster.Image, len(channels))
	var g errgroup.Group
	for i, ch := range channels {
		g.Go(func() error {
			restored, err := restore(ch)
			if err != nil {
				return fmt.Errorf("deconv: channel %d: %w", i, err)
			}
			out[i] = restored
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
