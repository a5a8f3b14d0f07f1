package message

import (
	"net/url"
	"strings"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// Destinations holds the fixed order intake addresses.
type Destinations struct {
	Email      string
	ChatNumber string
}

var componentUnescaper = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%2A", "*",
	"%27", "'",
	"%28", "(",
	"%29", ")",
)

// EncodeURIComponent percent-encodes s leaving A-Z a-z 0-9 and -_.!~*'() intact.
func EncodeURIComponent(s string) string {
	return componentUnescaper.Replace(url.QueryEscape(s))
}

// MailtoLink builds a mailto URI with an encoded subject and body.
func MailtoLink(address, subject, body string) string {
	return "mailto:" + address + "?subject=" + EncodeURIComponent(subject) + "&body=" + EncodeURIComponent(body)
}

// ChatLink builds a wa.me URI with the encoded text.
func ChatLink(number, text string) string {
	return "https://wa.me/" + number + "?text=" + EncodeURIComponent(text)
}

// Link returns the deep link of channel carrying body.
func (d Destinations) Link(channel model.Channel, body string) string {
	if channel == model.ChannelChat {
		return ChatLink(d.ChatNumber, body)
	}
	return MailtoLink(d.Email, Subject, body)
}
