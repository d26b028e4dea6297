// Package imagery decides whether a satellite image should accompany a
// reply and fetches it. Image failures are always non-fatal to the caller.
package imagery

import (
	"context"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Approximate continental-US bounding box.
const (
	conusLatMin = 24.0
	conusLatMax = 53.0
	conusLonMin = -125.0
	conusLonMax = -67.0
)

// AttachmentName and AttachmentFormat describe the fetched image to the
// messaging layer.
const (
	AttachmentName   = "goes_conus_latest.jpg"
	AttachmentFormat = "jpg"
)

// InCONUS reports whether the coordinates fall inside the continental-US
// bounding box.
func InCONUS(lat, lon float64) bool {
	return lat >= conusLatMin && lat <= conusLatMax &&
		lon >= conusLonMin && lon <= conusLonMax
}

// Fetcher retrieves the latest GOES CONUS geocolor image.
type Fetcher struct {
	client *resty.Client
	log    *logrus.Logger
}

func NewFetcher(imageURL string, timeout time.Duration, log *logrus.Logger) *Fetcher {
	return &Fetcher{
		client: resty.New().SetBaseURL(imageURL).SetTimeout(timeout),
		log:    log,
	}
}

// Fetch downloads the image. The response must declare a JPEG content type;
// anything else counts as a fetch failure.
func (f *Fetcher) Fetch(ctx context.Context) ([]byte, error) {
	resp, err := f.client.R().SetContext(ctx).Get("")
	if err != nil {
		return nil, errors.Wrap(err, "satellite image request failed")
	}
	if !resp.IsSuccess() {
		return nil, errors.Errorf("satellite image server returned status %d", resp.StatusCode())
	}

	contentType := resp.Header().Get("Content-Type")
	if !strings.Contains(strings.ToLower(contentType), "image/jpeg") {
		return nil, errors.Errorf("satellite image has content type %q, not JPEG", contentType)
	}

	data := resp.Body()
	f.log.WithField("bytes", len(data)).Debug("fetched GOES CONUS image")
	return data, nil
}
