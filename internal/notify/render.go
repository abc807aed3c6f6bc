package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"cakeOrderManagement/internal/submission"
)

var orderTmpl = template.Must(template.New("order").Parse(`
<h2>NEW ORDER ALERT</h2>

<h3>CUSTOMER INFO:</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>

<h3>CAKE DETAILS:</h3>
<p><strong>Shape:</strong> {{.Shape}}</p>
<p><strong>Servings:</strong> {{.Servings}} people</p>
<p><strong>Layers:</strong> {{.Layers}} layers</p>
<p><strong>Size:</strong> {{.Size}} inches</p>
<p><strong>Flavors:</strong> {{.Flavors}}</p>
<p><strong>Extras:</strong> {{.Extras}}</p>
{{if .Quote}}<p><strong>Quoted total:</strong> ${{printf "%.0f" .Quote}} (display estimate, not price of record)</p>{{end}}

<h3>DESIGN:</h3>
<p><strong>Colors:</strong> {{.Colors}}</p>
<p><strong>Message:</strong> &quot;{{.Message}}&quot;</p>
<p><strong>Occasion:</strong> {{.Occasion}}</p>

<h3>EVENT INFO:</h3>
<p><strong>Event Date:</strong> {{.EventDate}}</p>
<p><strong>Pickup Time:</strong> {{.PickupTime}}</p>
<p><strong>Delivery:</strong> {{.Delivery}}</p>

{{if .PhotoLinks}}
<h3>INSPIRATION PHOTOS:</h3>
<p>{{.PhotoLinks}}</p>
{{range .Thumbnails}}<img src="{{.}}" alt="inspiration photo" width="160" />{{end}}
{{end}}

<hr>
<h3>TEXT CUSTOMER: <a href="tel:{{.Phone}}">{{.Phone}}</a></h3>
`))

var inquiryTmpl = template.Must(template.New("inquiry").Parse(`
<h2>NEW INQUIRY ALERT</h2>

<h3>CUSTOMER INFO:</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> <a href="mailto:{{.Email}}">{{.Email}}</a></p>
<p><strong>Phone:</strong> <a href="tel:{{.Phone}}">{{.Phone}}</a></p>

<h3>INQUIRY DETAILS:</h3>
<p><strong>Inquiry Type:</strong> {{.InquiryType}}</p>
<p><strong>Message:</strong></p>
<p>{{.Message}}</p>

{{if .CakeImage}}
<h3>REFERENCED CAKE:</h3>
<p><strong>Cake:</strong> {{.CakeTitle}}</p>
<p><strong>Image:</strong> {{.CakeImage}}</p>
{{end}}

<hr>
<h3>REPLY TO: <a href="mailto:{{.Email}}">{{.Email}}</a></h3>
<h3>CALL: <a href="tel:{{.Phone}}">{{.Phone}}</a></h3>
`))

type orderMailData struct {
	Name, Phone, Shape, Servings, Layers, Size string
	Flavors, Extras                            string
	Colors, Message, Occasion                  string
	EventDate, PickupTime, Delivery            string
	PhotoLinks                                 string
	Thumbnails                                 []string
	Quote                                      float64
}

// RenderOrder builds the subject and HTML body for an order notification.
// quote is the display estimate (0 suppresses the line); photoLinks and
// thumbnails come out of the attachment phase.
func RenderOrder(o *submission.Order, quote float64, photoLinks string, thumbnails []string) (subject, body string, err error) {
	data := orderMailData{
		Name:       o.Name,
		Phone:      o.Phone,
		Shape:      o.Shape,
		Servings:   o.Servings,
		Layers:     o.Layers,
		Size:       o.Size,
		Flavors:    strings.Join(o.Flavors, ", "),
		Extras:     strings.Join(o.Extras, ", "),
		Colors:     o.Colors,
		Message:    o.Message,
		Occasion:   o.Occasion,
		EventDate:  o.EventDate,
		PickupTime: o.PickupTime,
		Delivery:   o.Delivery,
		PhotoLinks: photoLinks,
		Thumbnails: thumbnails,
		Quote:      quote,
	}
	var buf bytes.Buffer
	if err := orderTmpl.Execute(&buf, data); err != nil {
		return "", "", fmt.Errorf("render order mail: %w", err)
	}
	return fmt.Sprintf("New Cake Order - %s", o.Name), buf.String(), nil
}

// RenderInquiry builds the subject and HTML body for an inquiry notification.
func RenderInquiry(q *submission.Inquiry) (subject, body string, err error) {
	var buf bytes.Buffer
	if err := inquiryTmpl.Execute(&buf, q); err != nil {
		return "", "", fmt.Errorf("render inquiry mail: %w", err)
	}
	return fmt.Sprintf("New Inquiry - %s", q.Name), buf.String(), nil
}
