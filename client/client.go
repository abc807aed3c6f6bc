// Package client implements the submitting side of the intake contract:
// validation and pricing before transport, strictly sequential attachment
// encoding, a single form-encoded POST, and body-level status inspection.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"cakeOrderManagement/internal/attach"
	"cakeOrderManagement/internal/pricing"
	"cakeOrderManagement/internal/submission"
	"cakeOrderManagement/internal/validate"
)

// TransportError is a network failure or a non-success response body. The
// submission was not persisted anywhere; the caller must resubmit.
type TransportError struct {
	Message string
	Err     error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *TransportError) Unwrap() error { return e.Err }

// response is the body contract shared by every endpoint.
type response struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Client submits forms to the intake endpoint.
type Client struct {
	endpoint string
	httpc    *http.Client
	now      func() time.Time
}

// New creates a client for the given endpoint URL.
func New(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		httpc:    &http.Client{Timeout: 60 * time.Second},
		now:      time.Now,
	}
}

// WithClock overrides the validation clock, for tests.
func (c *Client) WithClock(now func() time.Time) *Client {
	c.now = now
	return c
}

// Quote returns the displayed price estimate for the current selections.
// It is a display aid only and is never transmitted.
func Quote(o *submission.Order, flavorPrices, extraPrices []float64) float64 {
	return pricing.Total(o.LayerCount(), o.SizeInches(), flavorPrices, extraPrices)
}

// SubmitOrder validates the order, encodes the attachment files one at a
// time, and performs the single form POST. Nothing is transported after a
// validation or encoding failure.
func (c *Client) SubmitOrder(ctx context.Context, o *submission.Order, photoPaths []string) (string, error) {
	// Count limit first: rejecting a sixth file must not cost five encodes.
	if len(photoPaths) > validate.MaxAttachments {
		return "", &validate.Error{
			Reason:  validate.ReasonTooManyFiles,
			Message: fmt.Sprintf("Maximum %d photos allowed.", validate.MaxAttachments),
		}
	}

	atts, err := attach.EncodeAll(photoPaths)
	if err != nil {
		return "", err
	}
	o.Attachments = atts
	if len(atts) > 0 {
		o.PhotoSummary = attach.Summary(atts)
	}

	if verr := validate.Order(o, c.now()); verr != nil {
		return "", verr
	}
	return c.post(ctx, o.Form())
}

// SubmitInquiry validates and posts a contact-form submission.
func (c *Client) SubmitInquiry(ctx context.Context, q *submission.Inquiry) (string, error) {
	if verr := validate.Inquiry(q); verr != nil {
		return "", verr
	}
	return c.post(ctx, q.Form())
}

// post performs the form POST and inspects the body status; the HTTP
// status code carries no application meaning.
func (c *Client) post(ctx context.Context, values url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, strings.NewReader(values.Encode()))
	if err != nil {
		return "", &TransportError{Message: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", &TransportError{Message: "Something went wrong. Please try again.", Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &TransportError{Message: "read response", Err: err}
	}
	var r response
	if err := json.Unmarshal(raw, &r); err != nil {
		return "", &TransportError{Message: "unexpected response from server", Err: err}
	}
	if r.Status != "success" {
		return "", &TransportError{Message: r.Message}
	}
	return r.Message, nil
}
