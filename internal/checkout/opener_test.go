package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/polkiloo/storefront/internal/domain/model"
)

func TestChannelOf(t *testing.T) {
	cases := []struct {
		uri  string
		want model.Channel
		ok   bool
	}{
		{"mailto:info@example.com?subject=x", model.ChannelEmail, true},
		{"https://wa.me/905340301025?text=hi", model.ChannelChat, true},
		{"https://example.com", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ChannelOf(tc.uri)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("ChannelOf(%q) = %q, %v", tc.uri, got, ok)
		}
	}
}

func TestCapabilityOpener(t *testing.T) {
	opener := NewCapabilityOpener(model.ChannelChat, model.Channel("pigeon"))

	if opener.CanOpen("mailto:info@example.com") {
		t.Fatal("email was not declared")
	}
	if err := opener.Open(context.Background(), "mailto:info@example.com"); !errors.Is(err, errCannotOpen) {
		t.Fatalf("expected errCannotOpen, got %v", err)
	}

	link := "https://wa.me/905340301025?text=hi"
	if !opener.CanOpen(link) {
		t.Fatal("chat was declared")
	}
	if err := opener.Open(context.Background(), link); err != nil {
		t.Fatalf("open: %v", err)
	}

	opened := opener.Opened()
	if len(opened) != 1 || opened[0] != link {
		t.Fatalf("unexpected opened links: %v", opened)
	}
	opened[0] = "changed"
	if opener.Opened()[0] != link {
		t.Fatal("Opened must return a copy")
	}
}
