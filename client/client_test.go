package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cakeOrderManagement/internal/submission"
	"cakeOrderManagement/internal/validate"
)

var clientToday = func() time.Time { return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC) }

func clientOrder() *submission.Order {
	return &submission.Order{
		Name:       "Odalys",
		Phone:      "555-0134",
		Layers:     "2",
		Size:       "8",
		Flavors:    []string{"Vanilla"},
		Colors:     "Pink",
		Message:    "Happy Birthday",
		Occasion:   "Birthday",
		EventDate:  "2026-09-15",
		PickupTime: "10:00 AM",
		Delivery:   "No",
		PricingAck: "on",
		TermsAck:   "on",
	}
}

func TestSubmitOrderSuccess(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Order submitted successfully!"}`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	photo := filepath.Join(dir, "cake.jpg")
	require.NoError(t, os.WriteFile(photo, []byte("jpeg bytes"), 0o644))

	c := New(srv.URL).WithClock(clientToday)
	msg, err := c.SubmitOrder(context.Background(), clientOrder(), []string{photo})
	require.NoError(t, err)
	assert.Equal(t, "Order submitted successfully!", msg)

	assert.Equal(t, "order", got.Get("formType"))
	assert.Equal(t, "1", got.Get("file_count"))
	assert.Equal(t, "cake.jpg", got.Get("file_0_name"))
	assert.NotEmpty(t, got.Get("file_0_base64"))
	assert.Contains(t, got.Get("photos"), "cake.jpg")
}

func TestSubmitOrderValidationBlocksTransport(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL).WithClock(clientToday)

	o := clientOrder()
	o.Flavors = nil
	_, err := c.SubmitOrder(context.Background(), o, nil)
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.ReasonNoFlavor, verr.Reason)

	// Sixth photo is rejected before any encoding or network work.
	o = clientOrder()
	paths := make([]string, 6)
	for i := range paths {
		paths[i] = "does-not-matter.jpg"
	}
	_, err = c.SubmitOrder(context.Background(), o, paths)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, validate.ReasonTooManyFiles, verr.Reason)

	assert.Zero(t, calls, "validation failures must never reach the network")
}

func TestSubmitOrderEncodingFailureBlocksTransport(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL).WithClock(clientToday)
	_, err := c.SubmitOrder(context.Background(), clientOrder(), []string{"/no/such/photo.jpg"})
	require.Error(t, err)
	assert.Zero(t, calls, "encoding failures must abort before transport")
}

func TestSubmitOrderErrorBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// HTTP 200 with an error body: the body is the contract.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"error","message":"We could not record your order. Please try again."}`))
	}))
	defer srv.Close()

	c := New(srv.URL).WithClock(clientToday)
	_, err := c.SubmitOrder(context.Background(), clientOrder(), nil)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Contains(t, terr.Message, "could not record")
}

func TestSubmitOrderNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := New(srv.URL).WithClock(clientToday)
	_, err := c.SubmitOrder(context.Background(), clientOrder(), nil)
	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	require.NotNil(t, terr.Err)
}

func TestSubmitInquiry(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"success","message":"Inquiry submitted successfully!"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	msg, err := c.SubmitInquiry(context.Background(), &submission.Inquiry{
		Name:        "Sam",
		Email:       "sam@example.com",
		InquiryType: "Pricing",
		Message:     "How much?",
	})
	require.NoError(t, err)
	assert.Equal(t, "Inquiry submitted successfully!", msg)

	_, err = c.SubmitInquiry(context.Background(), &submission.Inquiry{Name: "Sam"})
	var verr *validate.Error
	require.ErrorAs(t, err, &verr)
}

func TestQuote(t *testing.T) {
	o := clientOrder()
	assert.Equal(t, 85.0, Quote(o, []float64{5}, []float64{10}))
}
