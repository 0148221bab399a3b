package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"decor_admin/internal/clients"
	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

const defaultImageDeleteTimeout = 5 * time.Second

// ImageCleaner removes hosted images on a best-effort basis. Failures are
// logged and never returned.
type ImageCleaner struct {
	host    clients.ImageHost
	timeout time.Duration
	log     *logrus.Logger
}

func NewImageCleaner(host clients.ImageHost, timeout time.Duration, logger *logrus.Logger) *ImageCleaner {
	if timeout <= 0 {
		timeout = defaultImageDeleteTimeout
	}
	return &ImageCleaner{
		host:    host,
		timeout: timeout,
		log:     logger,
	}
}

// Cleanup issues one delete per ref concurrently and returns once all of
// them have settled.
func (c *ImageCleaner) Cleanup(ctx context.Context, refs []domain.ImageRef) {
	if len(refs) == 0 {
		return
	}

	var (
		wg     sync.WaitGroup
		failed atomic.Int32
	)
	for _, ref := range refs {
		wg.Add(1)
		go func(ref domain.ImageRef) {
			defer wg.Done()

			callCtx, cancel := context.WithTimeout(ctx, c.timeout)
			defer cancel()

			if err := c.host.Delete(callCtx, ref.DeleteURL); err != nil {
				failed.Add(1)
				c.log.WithFields(logrus.Fields{
					"image_url":  ref.URL,
					"delete_url": ref.DeleteURL,
				}).Warnf("Use Case: Image cleanup failed, continuing: %v", err)
			}
		}(ref)
	}
	wg.Wait()

	if n := failed.Load(); n > 0 {
		c.log.Warnf("Use Case: Image cleanup finished with %d of %d deletions failed", n, len(refs))
		return
	}
	c.log.Infof("Use Case: Image cleanup finished, %d images removed", len(refs))
}
