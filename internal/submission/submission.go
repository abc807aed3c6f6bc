// Package submission defines the typed order and inquiry models and their
// mapping to the form-encoded wire format and the fixed sheet column
// layouts. Field access is typed end to end; a missing transport field
// decodes to an empty string exactly once, at this boundary.
package submission

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"cakeOrderManagement/internal/normalize"
)

// Attachment is an inspiration photo in transit: base64 payload plus
// sidecar metadata, tagged by index on the wire.
type Attachment struct {
	Name      string
	SizeBytes int64
	MimeType  string
	Base64    string
}

// Order is a single cake order submission. String fields carry the wire
// representation; flavors and extras are split from their comma-joined
// transport form.
type Order struct {
	ID    string
	Name  string
	Phone string

	Shape    string
	Layers   string
	Size     string
	Servings string
	Flavors  []string
	Extras   []string
	Colors   string
	Message  string
	Occasion string

	EventDate  string // YYYY-MM-DD as entered
	PickupTime string
	Delivery   string
	PricingAck string
	TermsAck   string

	// PhotoSummary is the human-readable attachment summary the client
	// sends alongside the encoded files ("name (12.3KB), ...").
	PhotoSummary string
	Attachments  []Attachment
}

// Inquiry is a contact-form submission.
type Inquiry struct {
	ID          string
	Name        string
	Email       string
	Phone       string
	InquiryType string
	Message     string
	CakeImage   string
	CakeTitle   string
}

// LayerCount returns the layer selection as an integer, 0 if unset or
// malformed.
func (o *Order) LayerCount() int {
	n, _ := strconv.Atoi(strings.TrimSpace(o.Layers))
	return n
}

// SizeInches returns the size selection as an integer, 0 if unset or
// malformed.
func (o *Order) SizeInches() int {
	n, _ := strconv.Atoi(strings.TrimSpace(o.Size))
	return n
}

// OrderFromForm decodes an order from form values. All fields are optional
// at this layer; required-ness is the validator's concern.
func OrderFromForm(v url.Values) *Order {
	o := &Order{
		ID:           uuid.NewString(),
		Name:         v.Get("name"),
		Phone:        v.Get("phone"),
		Shape:        v.Get("shape"),
		Layers:       v.Get("layers"),
		Size:         v.Get("size"),
		Servings:     v.Get("servings"),
		Flavors:      splitList(v.Get("flavors")),
		Extras:       splitList(v.Get("extras")),
		Colors:       v.Get("colors"),
		Message:      v.Get("message"),
		Occasion:     v.Get("occasion"),
		EventDate:    v.Get("eventDate"),
		PickupTime:   v.Get("pickupTime"),
		Delivery:     v.Get("delivery"),
		PricingAck:   v.Get("pricingAck"),
		TermsAck:     v.Get("termsAck"),
		PhotoSummary: v.Get("photos"),
	}

	count, _ := strconv.Atoi(v.Get("file_count"))
	for i := 0; i < count; i++ {
		payload := v.Get(fmt.Sprintf("file_%d_base64", i))
		if payload == "" {
			continue
		}
		size, _ := strconv.ParseInt(v.Get(fmt.Sprintf("file_%d_size", i)), 10, 64)
		o.Attachments = append(o.Attachments, Attachment{
			Name:      v.Get(fmt.Sprintf("file_%d_name", i)),
			SizeBytes: size,
			MimeType:  v.Get(fmt.Sprintf("file_%d_type", i)),
			Base64:    payload,
		})
	}
	return o
}

// Form encodes the order into its transport representation.
func (o *Order) Form() url.Values {
	v := url.Values{}
	v.Set("formType", "order")
	v.Set("name", o.Name)
	v.Set("phone", o.Phone)
	v.Set("shape", o.Shape)
	v.Set("layers", o.Layers)
	v.Set("size", o.Size)
	v.Set("servings", o.Servings)
	v.Set("flavors", strings.Join(o.Flavors, ","))
	v.Set("extras", strings.Join(o.Extras, ","))
	v.Set("colors", o.Colors)
	v.Set("message", o.Message)
	v.Set("occasion", o.Occasion)
	v.Set("eventDate", o.EventDate)
	v.Set("pickupTime", o.PickupTime)
	v.Set("delivery", o.Delivery)
	v.Set("pricingAck", o.PricingAck)
	v.Set("termsAck", o.TermsAck)
	v.Set("photos", o.PhotoSummary)
	v.Set("file_count", strconv.Itoa(len(o.Attachments)))
	for i, a := range o.Attachments {
		v.Set(fmt.Sprintf("file_%d_name", i), a.Name)
		v.Set(fmt.Sprintf("file_%d_size", i), strconv.FormatInt(a.SizeBytes, 10))
		v.Set(fmt.Sprintf("file_%d_type", i), a.MimeType)
		v.Set(fmt.Sprintf("file_%d_base64", i), a.Base64)
	}
	return v
}

// InquiryFromForm decodes a contact-form submission from form values.
func InquiryFromForm(v url.Values) *Inquiry {
	return &Inquiry{
		ID:          uuid.NewString(),
		Name:        v.Get("name"),
		Email:       v.Get("email"),
		Phone:       v.Get("phone"),
		InquiryType: v.Get("inquiryType"),
		Message:     v.Get("message"),
		CakeImage:   v.Get("cakeImage"),
		CakeTitle:   v.Get("cakeTitle"),
	}
}

// Form encodes the inquiry into its transport representation.
func (q *Inquiry) Form() url.Values {
	v := url.Values{}
	v.Set("formType", "contact")
	v.Set("name", q.Name)
	v.Set("email", q.Email)
	v.Set("phone", q.Phone)
	v.Set("inquiryType", q.InquiryType)
	v.Set("message", q.Message)
	v.Set("cakeImage", q.CakeImage)
	v.Set("cakeTitle", q.CakeTitle)
	return v
}

// OrderHeaders is the fixed 18-column order sheet layout. The column order
// is a contract with the sheet consumer; changing it requires a migration.
var OrderHeaders = []string{
	"Timestamp",
	"Name",
	"Phone Number",
	"Cake Shape",
	"How many layers?",
	"What size?",
	"Number of desired servings",
	"Flavor and Filling",
	"Enhancements",
	"Colors",
	"What would you like your cake to say?",
	"Occasion",
	"Inspiration Photos",
	"Date Needed",
	"Preferred Pick-Up Time",
	"Will you need it delivered?",
	"Pricing Acknowledgment",
	"Terms Acknowledgment",
}

// InquiryHeaders is the fixed 8-column contact sheet layout.
var InquiryHeaders = []string{
	"Timestamp",
	"Name",
	"Email",
	"Phone",
	"Inquiry Type",
	"Message",
	"Cake Image",
	"Cake Title",
}

// Row flattens the order into the 18-column layout. The date and pickup
// time are canonicalized here; photoLinks fills the inspiration-photos
// column (already joined with the fixed " | " delimiter).
func (o *Order) Row(ts time.Time, photoLinks string) []string {
	return []string{
		ts.Format("1/2/2006 15:04:05"),
		o.Name,
		o.Phone,
		o.Shape,
		o.Layers,
		o.Size,
		o.Servings,
		strings.Join(o.Flavors, ", "),
		strings.Join(o.Extras, ", "),
		o.Colors,
		o.Message,
		o.Occasion,
		photoLinks,
		normalize.Date(o.EventDate),
		normalize.Time(o.PickupTime),
		o.Delivery,
		o.PricingAck,
		o.TermsAck,
	}
}

// Row flattens the inquiry into the 8-column layout.
func (q *Inquiry) Row(ts time.Time) []string {
	return []string{
		ts.Format("1/2/2006 15:04:05"),
		q.Name,
		q.Email,
		q.Phone,
		q.InquiryType,
		q.Message,
		q.CakeImage,
		q.CakeTitle,
	}
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
