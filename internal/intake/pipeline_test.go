package intake

import (
	"context"
	"encoding/base64"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"cakeOrderManagement/internal/filestore"
	"cakeOrderManagement/internal/notify"
	"cakeOrderManagement/internal/schedule"
	"cakeOrderManagement/internal/sheet"
	"cakeOrderManagement/internal/submission"
	"cakeOrderManagement/internal/testutil"
)

const (
	orderSheet   = "Form Responses 1"
	inquirySheet = "Contact Form Responses"
)

func newTestPipeline(t *testing.T, name string) (*Pipeline, *sheet.Store, *notify.Memory, string) {
	t.Helper()
	d := testutil.OpenInMemoryDB(t, name)
	sheets := sheet.New(d)
	mailer := &notify.Memory{}
	calDir := t.TempDir()
	p := New(sheets, filestore.NewLocal(t.TempDir()), mailer, schedule.NewWriter(calDir), zap.NewNop(), orderSheet, inquirySheet)
	p.WithClock(func() time.Time { return time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC) })
	return p, sheets, mailer, calDir
}

func testOrder() *submission.Order {
	return &submission.Order{
		ID:         "order-1",
		Name:       "Odalys",
		Phone:      "555-0134",
		Shape:      "Round",
		Layers:     "2",
		Size:       "8",
		Servings:   "20",
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

func b64(s string) string { return base64.StdEncoding.EncodeToString([]byte(s)) }

// filepathGlob lists the .ics files written into a calendar directory.
func filepathGlob(dir string) ([]string, error) {
	return filepath.Glob(filepath.Join(dir, "*.ics"))
}

func TestSubmitOrderEndToEnd(t *testing.T) {
	p, sheets, mailer, calDir := newTestPipeline(t, "intake_e2e")
	ctx := context.Background()

	out := p.SubmitOrder(ctx, testOrder())
	assert.Equal(t, "success", out.Status)
	assert.Equal(t, "Order submitted successfully!", out.Message)
	for _, ph := range out.Phases {
		assert.True(t, ph.OK(), "phase %s failed: %v", ph.Phase, ph.Err)
	}

	// Exactly one appended 18-column row.
	rows, err := sheets.Rows(ctx, orderSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(submission.OrderHeaders))
	assert.Equal(t, "Odalys", rows[0][1])
	assert.Equal(t, "9/15/2026", rows[0][13])
	assert.Equal(t, "10:00:00 AM", rows[0][14])

	// Destination header row was created on the fresh database.
	headers, err := sheets.Headers(ctx, orderSheet)
	require.NoError(t, err)
	assert.Equal(t, submission.OrderHeaders, headers)

	// Exactly one notification.
	require.Len(t, mailer.Sent(), 1)
	assert.Equal(t, "New Cake Order - Odalys", mailer.Sent()[0].Subject)

	// One 30-minute schedule entry at 10:00 AM on the event date.
	matches, err := filepathGlob(calDir)
	require.NoError(t, err)
	require.Len(t, matches, 1)
}

func TestSubmitOrderAttachmentFailureIsIsolated(t *testing.T) {
	p, sheets, _, _ := newTestPipeline(t, "intake_attach")
	ctx := context.Background()

	o := testOrder()
	o.Attachments = []submission.Attachment{
		{Name: "one.jpg", MimeType: "image/jpeg", SizeBytes: 3, Base64: b64("one")},
		{Name: "bad.jpg", MimeType: "image/jpeg", SizeBytes: 3, Base64: "!!broken!!"},
		{Name: "two.jpg", MimeType: "image/jpeg", SizeBytes: 3, Base64: b64("two")},
	}

	out := p.SubmitOrder(ctx, o)
	assert.Equal(t, "success", out.Status, "attachment failure must never abort the order")

	rows, err := sheets.Rows(ctx, orderSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	cell := rows[0][12]
	entries := strings.Split(cell, LinkDelimiter)
	require.Len(t, entries, 3, "two real links plus one placeholder: %q", cell)
	assert.Contains(t, entries[0], "one.jpg")
	assert.Contains(t, entries[1], "could not be processed")
	assert.Contains(t, entries[1], "re-send")
	assert.Contains(t, entries[2], "two.jpg")
}

func TestSubmitOrderServerSideLimits(t *testing.T) {
	p, sheets, _, _ := newTestPipeline(t, "intake_limits")
	ctx := context.Background()

	o := testOrder()
	for i := 0; i < 6; i++ {
		o.Attachments = append(o.Attachments, submission.Attachment{
			Name: "p.jpg", MimeType: "image/jpeg", SizeBytes: 1, Base64: b64("x"),
		})
	}

	out := p.SubmitOrder(ctx, o)
	assert.Equal(t, "success", out.Status)

	rows, err := sheets.Rows(ctx, orderSheet)
	require.NoError(t, err)
	entries := strings.Split(rows[0][12], LinkDelimiter)
	require.Len(t, entries, 6, "five archived plus one skip note")
	assert.Contains(t, entries[5], "1 additional photo(s) skipped")
}

func TestSubmitOrderMailFailureDoesNotFailOrder(t *testing.T) {
	p, sheets, mailer, calDir := newTestPipeline(t, "intake_mailfail")
	ctx := context.Background()
	mailer.Fail = errors.New("smtp down")

	out := p.SubmitOrder(ctx, testOrder())
	assert.Equal(t, "success", out.Status, "a persisted order must not fail on notification")

	var notifyPhase *PhaseResult
	for i := range out.Phases {
		if out.Phases[i].Phase == "notify" {
			notifyPhase = &out.Phases[i]
		}
	}
	require.NotNil(t, notifyPhase)
	assert.False(t, notifyPhase.OK())

	// Siblings still ran.
	rows, err := sheets.Rows(ctx, orderSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	matches, err := filepathGlob(calDir)
	require.NoError(t, err)
	assert.Len(t, matches, 1, "mail failure must not suppress the calendar phase")
}

func TestSubmitOrderSkipsCalendarWithoutTime(t *testing.T) {
	p, _, _, calDir := newTestPipeline(t, "intake_nocal")
	o := testOrder()
	o.PickupTime = ""

	out := p.SubmitOrder(context.Background(), o)
	assert.Equal(t, "success", out.Status)
	for _, ph := range out.Phases {
		assert.NotEqual(t, "calendar", ph.Phase)
	}
	matches, err := filepathGlob(calDir)
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestSubmitInquiry(t *testing.T) {
	p, sheets, mailer, _ := newTestPipeline(t, "intake_inquiry")
	ctx := context.Background()

	q := &submission.Inquiry{
		ID:          "inq-1",
		Name:        "Sam",
		Email:       "sam@example.com",
		Phone:       "555-0100",
		InquiryType: "Custom Order",
		Message:     "Do you deliver?",
	}
	out := p.SubmitInquiry(ctx, q)
	assert.Equal(t, "success", out.Status)

	// Destination was lazily created with the 8-column headers.
	headers, err := sheets.Headers(ctx, inquirySheet)
	require.NoError(t, err)
	assert.Equal(t, submission.InquiryHeaders, headers)

	rows, err := sheets.Rows(ctx, inquirySheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Len(t, rows[0], len(submission.InquiryHeaders))
	assert.Equal(t, "sam@example.com", rows[0][2])

	require.Len(t, mailer.Sent(), 1)
	assert.Equal(t, "New Inquiry - Sam", mailer.Sent()[0].Subject)
}
