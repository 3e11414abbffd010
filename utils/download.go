package utils

import (
	"context"
	"strings"

	"github.com/cavaliergopher/grab/v3"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// IsRemote reports whether path refers to a remote database rather than a
// local file
func IsRemote(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// FetchDatabase downloads a remote database into dir and returns the local
// filename. limit caps the download speed in kbytes/sec, 0 means no limit.
func FetchDatabase(ctx context.Context, url string, limit int64, dir string) (string, error) {
	req, err := grab.NewRequest(dir, url)
	if err != nil {
		return "", errors.Wrapf(err, "unable to fetch %s", url)
	}
	req = req.WithContext(ctx)

	if limit > 0 {
		req.RateLimiter = rate.NewLimiter(rate.Limit(limit*1024), int(limit*1024))
	}

	resp := grab.DefaultClient.Do(req)
	if err = resp.Err(); err != nil {
		return "", errors.Wrapf(err, "unable to fetch %s", url)
	}

	return resp.Filename, nil
}
