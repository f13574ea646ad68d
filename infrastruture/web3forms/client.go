// Package web3forms forwards contact messages to a Web3Forms compatible
// submission endpoint.
package web3forms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	dmn "github.com/beka-birhanu/vinom-portfolio/domain"
)

const (
	DefaultEndpoint = "https://api.web3forms.com/submit"
	DefaultFromName = "New Message from Portfolio Website Contact Form"
	defaultTimeout  = 10 * time.Second
	maxResponseSize = 64 << 10
)

var (
	ErrMissingAccessKey = errors.New("web3forms access key is required")
	ErrRejected         = errors.New("submission rejected")
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	Endpoint   string
	AccessKey  string
	FromName   string
	HTTPClient *http.Client
}

// Client posts messages to the submission endpoint.
type Client struct {
	endpoint  string
	accessKey string
	fromName  string
	http      *http.Client
}

type payload struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	Botcheck  bool   `json:"botcheck"`
	FromName  string `json:"from_name"`
	ReplyTo   string `json:"replyto"`
}

type response struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func New(opts Options) (*Client, error) {
	if opts.AccessKey == "" {
		return nil, ErrMissingAccessKey
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.FromName == "" {
		opts.FromName = DefaultFromName
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		endpoint:  opts.Endpoint,
		accessKey: opts.AccessKey,
		fromName:  opts.FromName,
		http:      opts.HTTPClient,
	}, nil
}

// Forward implements i.Forwarder. A reply without success=true is an error
// wrapping ErrRejected.
func (c *Client) Forward(ctx context.Context, msg *dmn.ContactMessage) error {
	body, err := json.Marshal(payload{
		AccessKey: c.accessKey,
		Name:      msg.Name,
		Email:     msg.Email,
		Phone:     msg.Phone,
		Subject:   msg.Subject,
		Message:   msg.Message,
		FromName:  c.fromName,
		ReplyTo:   msg.Email,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("post submission: %w", err)
	}
	defer res.Body.Close()

	var out response
	if err := json.NewDecoder(io.LimitReader(res.Body, maxResponseSize)).Decode(&out); err != nil {
		return fmt.Errorf("%w: status %d, unreadable reply: %v", ErrRejected, res.StatusCode, err)
	}
	if !out.Success {
		return fmt.Errorf("%w: status %d: %s", ErrRejected, res.StatusCode, out.Message)
	}
	return nil
}
