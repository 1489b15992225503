// Package manifest computes the play time of an HLS episode from its
// playlists, without touching any media segment.
package manifest

import (
	"bufio"
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"

	"github.com/grafov/m3u8"
	oderrors "github.com/thijzert/ondemand/internal/plumbing/errors"
)

// Margin is added to every computed duration so that a reservation does not
// end before the player has drained its cache.
const Margin = 3

// A Fetcher retrieves master and media playlists over HTTP
type Fetcher struct {
	Client *http.Client
}

// Duration returns the length in whole seconds of the episode whose master
// playlist lives at masterURL: the segment durations of the first variant
// are summed, rounded up, and Margin is added.
func (f Fetcher) Duration(ctx context.Context, masterURL string) (int, error) {
	base, err := url.Parse(masterURL)
	if err != nil {
		return 0, oderrors.Runtime(err, "manifest url")
	}

	pl, err := f.fetch(ctx, base)
	if err != nil {
		return 0, err
	}
	master, ok := pl.(*m3u8.MasterPlaylist)
	if !ok {
		return 0, oderrors.Runtimef("%s is not a master playlist", masterURL)
	}
	if len(master.Variants) == 0 || master.Variants[0] == nil {
		return 0, oderrors.Runtimef("%s lists no playlists", masterURL)
	}

	ref, err := url.Parse(master.Variants[0].URI)
	if err != nil {
		return 0, oderrors.Runtime(err, "variant url")
	}
	mediaURL := base.ResolveReference(ref)

	pl, err = f.fetch(ctx, mediaURL)
	if err != nil {
		return 0, err
	}
	media, ok := pl.(*m3u8.MediaPlaylist)
	if !ok {
		return 0, oderrors.Runtimef("%s is not a media playlist", mediaURL)
	}

	var total float64
	for _, seg := range media.Segments {
		// The segment buffer is allocated to capacity; unused slots are nil
		if seg == nil {
			continue
		}
		total += seg.Duration
	}

	return int(math.Ceil(total)) + Margin, nil
}

func (f Fetcher) fetch(ctx context.Context, u *url.URL) (m3u8.Playlist, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, oderrors.Runtime(err, "manifest request")
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, oderrors.Runtime(err, "fetching manifest")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, oderrors.Runtimef("fetching %s: HTTP %s", u, resp.Status)
	}

	pl, _, err := m3u8.DecodeFrom(bufio.NewReader(resp.Body), false)
	if err != nil {
		return nil, oderrors.Runtime(err, fmt.Sprintf("decoding %s", u))
	}
	return pl, nil
}
