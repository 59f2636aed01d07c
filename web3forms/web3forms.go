package web3forms

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"moviedex/contact"
	"moviedex/errs"
	"net/http"
	"time"
)

const (
	DefaultURL     = "https://api.web3forms.com/submit"
	requestTimeout = 10 * time.Second
)

var (
	ErrNotConfigured = errs.Errorf(errs.ENOTIMPLEMENTED, "contact relay not configured")
	ErrUnavailable   = errs.Errorf(errs.EUNAVAILABLE, "contact relay unavailable")
)

type submission struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Message   string `json:"message"`
}

type result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Client submits contact messages to a Web3Forms access key.
type Client struct {
	accessKey string
	url       string
	client    *http.Client
}

func New(accessKey, url string, httpClient *http.Client) *Client {
	if url == "" {
		url = DefaultURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: requestTimeout}
	}
	return &Client{accessKey: accessKey, url: url, client: httpClient}
}

func (c *Client) Deliver(ctx context.Context, m contact.Message) error {
	if c.accessKey == "" {
		return ErrNotConfigured
	}

	body, err := json.Marshal(submission{
		AccessKey: c.accessKey,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return ErrUnavailable
	}
	defer resp.Body.Close()

	var res result
	decodeErr := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&res)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || decodeErr != nil || !res.Success {
		if res.Message != "" {
			return errs.Errorf(errs.EUNAVAILABLE, "%s", res.Message)
		}
		return ErrUnavailable
	}
	return nil
}
