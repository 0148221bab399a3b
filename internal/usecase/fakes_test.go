package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"decor_admin/internal/domain"

	"github.com/sirupsen/logrus"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fakeHost records every call. Delete URLs listed in failing return an
// error; block makes Delete wait for its context. With gate set, each Delete
// waits until gateAt calls are in flight together.
type fakeHost struct {
	mu       sync.Mutex
	deleted  []string
	uploaded []string
	failing  map[string]bool
	failAll  bool
	block    bool
	ctxErrs  []error

	gate        chan struct{}
	gateAt      int
	inFlight    int
	maxInFlight int

	uploadErr map[string]error
}

func newFakeHost() *fakeHost {
	return &fakeHost{failing: map[string]bool{}, uploadErr: map[string]error{}}
}

func (h *fakeHost) Upload(ctx context.Context, name, filename string, image io.Reader) (domain.ImageRef, error) {
	data, _ := io.ReadAll(image)
	h.mu.Lock()
	h.uploaded = append(h.uploaded, name)
	err := h.uploadErr[name]
	h.mu.Unlock()
	if err != nil {
		return domain.ImageRef{}, err
	}
	return domain.ImageRef{
		URL:       fmt.Sprintf("https://img.example/%s/%s", name, data),
		DeleteURL: fmt.Sprintf("https://img.example/delete/%s", name),
	}, nil
}

func (h *fakeHost) Delete(ctx context.Context, deleteURL string) error {
	h.mu.Lock()
	h.deleted = append(h.deleted, deleteURL)
	h.ctxErrs = append(h.ctxErrs, ctx.Err())
	fail := h.failAll || h.failing[deleteURL]
	block := h.block
	h.inFlight++
	if h.inFlight > h.maxInFlight {
		h.maxInFlight = h.inFlight
	}
	gate := h.gate
	if gate != nil && h.inFlight == h.gateAt {
		close(gate)
	}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		h.inFlight--
		h.mu.Unlock()
	}()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	if fail {
		return fmt.Errorf("host refused %s: %w", deleteURL, domain.ErrUpstream)
	}
	return nil
}

func (h *fakeHost) peakInFlight() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.maxInFlight
}

func (h *fakeHost) deletedURLs() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := append([]string(nil), h.deleted...)
	sort.Strings(out)
	return out
}

func (h *fakeHost) uploadedNames() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := append([]string(nil), h.uploaded...)
	sort.Strings(out)
	return out
}

type fakeMessenger struct {
	token, chatID, text string
	calls               int
	err                 error
}

func (m *fakeMessenger) SendMessage(ctx context.Context, botToken, chatID, text string) error {
	m.calls++
	m.token, m.chatID, m.text = botToken, chatID, text
	return m.err
}

var errBoom = errors.New("boom")
