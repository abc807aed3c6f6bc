// Package validate enforces the required-field and business-rule
// constraints on submissions before they are accepted. Checks run in a
// fixed order and the first failure halts with a distinct user-facing
// message; nothing is transported after a rejection.
package validate

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"cakeOrderManagement/internal/submission"
)

// Attachment limits. The client enforces these before transport and the
// server re-enforces them at the decode boundary.
const (
	MaxAttachments     = 5
	MaxAttachmentBytes = 10 << 20 // 10 MiB per file
	MinLeadDays        = 3
)

// Reason identifies which rule rejected a submission.
type Reason string

const (
	ReasonMissingField Reason = "missing_field"
	ReasonNoFlavor     Reason = "no_flavor"
	ReasonBadDate      Reason = "bad_date"
	ReasonPastDate     Reason = "past_date"
	ReasonTooSoon      Reason = "too_soon"
	ReasonTooManyFiles Reason = "too_many_files"
	ReasonFileTooBig   Reason = "file_too_big"
	ReasonBadEmail     Reason = "bad_email"
)

// Error is a user-facing rejection. Message is shown to the customer
// verbatim; Reason and Field are for callers and logs.
type Error struct {
	Reason  Reason
	Field   string
	Message string
}

func (e *Error) Error() string { return e.Message }

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// orderRequired lists the order fields that must be present and non-blank,
// checked in this order.
var orderRequired = []struct {
	name string
	get  func(*submission.Order) string
}{
	{"name", func(o *submission.Order) string { return o.Name }},
	{"phone", func(o *submission.Order) string { return o.Phone }},
	{"layers", func(o *submission.Order) string { return o.Layers }},
	{"size", func(o *submission.Order) string { return o.Size }},
	{"colors", func(o *submission.Order) string { return o.Colors }},
	{"message", func(o *submission.Order) string { return o.Message }},
	{"occasion", func(o *submission.Order) string { return o.Occasion }},
	{"eventDate", func(o *submission.Order) string { return o.EventDate }},
	{"pickupTime", func(o *submission.Order) string { return o.PickupTime }},
	{"delivery", func(o *submission.Order) string { return o.Delivery }},
	{"pricingAck", func(o *submission.Order) string { return o.PricingAck }},
	{"termsAck", func(o *submission.Order) string { return o.TermsAck }},
}

// Order validates an order submission against today's date. A nil return
// means accepted.
func Order(o *submission.Order, today time.Time) *Error {
	for _, f := range orderRequired {
		if strings.TrimSpace(f.get(o)) == "" {
			return &Error{
				Reason:  ReasonMissingField,
				Field:   f.name,
				Message: fmt.Sprintf("Please fill in all required fields (missing %s).", f.name),
			}
		}
	}

	if len(o.Flavors) == 0 {
		return &Error{Reason: ReasonNoFlavor, Message: "Please select at least one flavor."}
	}

	event, err := time.Parse("2006-01-02", strings.TrimSpace(o.EventDate))
	if err != nil {
		return &Error{Reason: ReasonBadDate, Field: "eventDate", Message: "Please enter a valid event date."}
	}
	// Date-only comparison, time-of-day ignored.
	day := dateOnly(today)
	if event.Before(day) || event.Equal(day) {
		return &Error{Reason: ReasonPastDate, Field: "eventDate", Message: "Event date must be in the future."}
	}
	if event.Before(day.AddDate(0, 0, MinLeadDays)) {
		return &Error{Reason: ReasonTooSoon, Field: "eventDate", Message: "Please allow at least 3 days for cake preparation."}
	}

	return Attachments(o.Attachments)
}

// Attachments checks the count and per-file size limits. A violation
// rejects the whole submission.
func Attachments(atts []submission.Attachment) *Error {
	if len(atts) > MaxAttachments {
		return &Error{
			Reason:  ReasonTooManyFiles,
			Message: fmt.Sprintf("Maximum %d photos allowed.", MaxAttachments),
		}
	}
	for _, a := range atts {
		if a.SizeBytes > MaxAttachmentBytes {
			return &Error{
				Reason:  ReasonFileTooBig,
				Field:   a.Name,
				Message: fmt.Sprintf("Files too large (max 10MB each): %s", a.Name),
			}
		}
	}
	return nil
}

// Inquiry validates a contact-form submission.
func Inquiry(q *submission.Inquiry) *Error {
	required := []struct{ name, val string }{
		{"name", q.Name},
		{"email", q.Email},
		{"inquiryType", q.InquiryType},
		{"message", q.Message},
	}
	for _, f := range required {
		if strings.TrimSpace(f.val) == "" {
			return &Error{
				Reason:  ReasonMissingField,
				Field:   f.name,
				Message: fmt.Sprintf("Please fill in all required fields (missing %s).", f.name),
			}
		}
	}
	if !emailRe.MatchString(strings.TrimSpace(q.Email)) {
		return &Error{Reason: ReasonBadEmail, Field: "email", Message: "Please enter a valid email address."}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
