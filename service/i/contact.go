package i

import (
	"context"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
)

// Forwarder delivers an accepted contact message to the site owner.
type Forwarder interface {
	Forward(ctx context.Context, msg *dmn.ContactMessage) error
}

// RateLimiter decides whether a client may act again.
type RateLimiter interface {
	// Allow records an attempt for key and reports whether it is within the limit.
	Allow(ctx context.Context, key string) (bool, error)
}

// ContactService relays contact form submissions.
type ContactService interface {
	Submit(ctx context.Context, form dmn.ContactForm, clientIP string) error
	Messages(ctx context.Context, limit, offset int) ([]*dmn.ContactMessage, error)
}
