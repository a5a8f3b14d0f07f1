package checkout

import (
	"context"
	"strings"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// LinkOpener is the platform link handler the order summary is handed to.
type LinkOpener interface {
	CanOpen(uri string) bool
	Open(ctx context.Context, uri string) error
}

// ChannelOf returns the channel a deep link targets.
func ChannelOf(uri string) (model.Channel, bool) {
	switch {
	case strings.HasPrefix(uri, "mailto:"):
		return model.ChannelEmail, true
	case strings.HasPrefix(uri, "https://wa.me/"):
		return model.ChannelChat, true
	}
	return "", false
}

// CapabilityOpener opens links of the channels a client declared it can
// handle. Opening records the link so it can be returned to the client.
type CapabilityOpener struct {
	channels map[model.Channel]bool

	mu     sync.Mutex
	opened []string
}

// NewCapabilityOpener accepts channel names. Unknown names are ignored.
func NewCapabilityOpener(channels ...model.Channel) *CapabilityOpener {
	o := &CapabilityOpener{channels: make(map[model.Channel]bool, len(channels))}
	for _, c := range channels {
		if c.Valid() {
			o.channels[c] = true
		}
	}
	return o
}

func (o *CapabilityOpener) CanOpen(uri string) bool {
	c, ok := ChannelOf(uri)
	return ok && o.channels[c]
}

func (o *CapabilityOpener) Open(_ context.Context, uri string) error {
	if !o.CanOpen(uri) {
		return errCannotOpen
	}
	o.mu.Lock()
	o.opened = append(o.opened, uri)
	o.mu.Unlock()
	return nil
}

// Opened returns the links handed off so far.
func (o *CapabilityOpener) Opened() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.opened...)
}
