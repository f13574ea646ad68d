package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
	"github.com/beka-birhanu/vinom-portfolio/service/i"
)

var (
	ErrRateLimited      = errors.New("too many messages, please try again later")
	ErrSubmissionFailed = errors.New("Something went wrong. Please try again later.")
)

// ContactOptions wires a Contact service. Repo and Limiter are optional.
type ContactOptions struct {
	Forwarder i.Forwarder
	Repo      i.MessageRepo
	Limiter   i.RateLimiter
	Logger    i.Logger
}

// Contact validates contact form submissions, forwards them to the site
// owner and archives them.
type Contact struct {
	forwarder i.Forwarder
	repo      i.MessageRepo
	limiter   i.RateLimiter
	logger    i.Logger
	now       func() time.Time
}

func NewContactService(opts ContactOptions) (*Contact, error) {
	if opts.Forwarder == nil {
		return nil, errors.New("forwarder is required")
	}
	if opts.Logger == nil {
		return nil, errors.New("logger is required")
	}
	return &Contact{
		forwarder: opts.Forwarder,
		repo:      opts.Repo,
		limiter:   opts.Limiter,
		logger:    opts.Logger,
		now:       time.Now,
	}, nil
}

// Submit relays one submission. It returns a *dmn.FieldError for invalid
// input, ErrRateLimited when the client sent too many messages and
// ErrSubmissionFailed when delivery failed. Honeypot submissions are dropped
// and reported as success.
func (c *Contact) Submit(ctx context.Context, form dmn.ContactForm, clientIP string) error {
	if form.Botcheck {
		c.logger.Warning(fmt.Sprintf("Dropped honeypot submission from %s", clientIP))
		return nil
	}

	msg, err := dmn.NewContactMessage(form, clientIP, c.now())
	if err != nil {
		return err
	}

	if c.limiter != nil {
		ok, err := c.limiter.Allow(ctx, clientIP)
		switch {
		case err != nil:
			c.logger.Warning(fmt.Sprintf("Rate limiter unavailable, letting message through: %v", err))
		case !ok:
			return ErrRateLimited
		}
	}

	fwdErr := c.forwarder.Forward(ctx, msg)
	msg.Forwarded = fwdErr == nil

	if c.repo != nil {
		if err := c.repo.Save(ctx, msg); err != nil {
			c.logger.Error(fmt.Sprintf("Archiving message %s: %v", msg.ID, err))
		}
	}

	if fwdErr != nil {
		c.logger.Error(fmt.Sprintf("Forwarding message %s: %v", msg.ID, fwdErr))
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, fwdErr)
	}

	c.logger.Info(fmt.Sprintf("Forwarded message %s", msg.ID))
	return nil
}

// Messages lists archived messages newest first.
func (c *Contact) Messages(ctx context.Context, limit, offset int) ([]*dmn.ContactMessage, error) {
	if c.repo == nil {
		return nil, nil
	}
	return c.repo.List(ctx, limit, offset)
}
