// orderctl submits an order or an inquiry to the intake endpoint from the
// command line, running the same validation, pricing, and attachment
// encoding a browser client would before anything touches the network.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"cakeOrderManagement/client"
	"cakeOrderManagement/internal/submission"
)

func main() {
	endpoint := flag.String("endpoint", "http://localhost:8080/", "intake endpoint URL")
	formType := flag.String("type", "order", "form type: order or contact")

	name := flag.String("name", "", "customer name")
	phone := flag.String("phone", "", "customer phone")
	email := flag.String("email", "", "customer email (contact form)")

	shape := flag.String("shape", "Round", "cake shape")
	layers := flag.String("layers", "", "layer count (2, 3 or 4)")
	size := flag.String("size", "", "size in inches (6, 8 or 10)")
	servings := flag.String("servings", "", "desired servings")
	flavors := flag.String("flavors", "", "comma-separated flavors")
	extras := flag.String("extras", "", "comma-separated extras")
	colors := flag.String("colors", "", "cake colors")
	message := flag.String("message", "", "cake message / inquiry message")
	occasion := flag.String("occasion", "", "occasion")
	eventDate := flag.String("event-date", "", "event date, YYYY-MM-DD")
	pickupTime := flag.String("pickup-time", "", "pickup time, e.g. \"10:00 AM\" or \"13:30\"")
	delivery := flag.String("delivery", "No", "delivery needed? (Yes/No)")
	photos := flag.String("photos", "", "comma-separated inspiration photo paths (max 5)")
	inquiryType := flag.String("inquiry-type", "", "inquiry type (contact form)")
	flag.Parse()

	c := client.New(*endpoint)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var (
		msg string
		err error
	)
	switch *formType {
	case "contact":
		msg, err = c.SubmitInquiry(ctx, &submission.Inquiry{
			Name:        *name,
			Email:       *email,
			Phone:       *phone,
			InquiryType: *inquiryType,
			Message:     *message,
		})
	case "order":
		o := &submission.Order{
			Name:       *name,
			Phone:      *phone,
			Shape:      *shape,
			Layers:     *layers,
			Size:       *size,
			Servings:   *servings,
			Flavors:    splitFlag(*flavors),
			Extras:     splitFlag(*extras),
			Colors:     *colors,
			Message:    *message,
			Occasion:   *occasion,
			EventDate:  *eventDate,
			PickupTime: *pickupTime,
			Delivery:   *delivery,
			PricingAck: "on",
			TermsAck:   "on",
		}
		msg, err = c.SubmitOrder(ctx, o, splitFlag(*photos))
	default:
		log.Fatalf("unknown form type %q", *formType)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(msg)
}

func splitFlag(s string) []string {
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
