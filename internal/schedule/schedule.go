// Package schedule turns an accepted order into a pickup calendar entry.
// Events are written as .ics files so the owner can subscribe a calendar
// client to the directory. Failures here are the pipeline's to log; they
// never fail the submission.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"cakeOrderManagement/internal/normalize"
	"cakeOrderManagement/internal/submission"
)

// EventDuration is the fixed placeholder length of a pickup slot.
const EventDuration = 30 * time.Minute

// ErrNoSchedule is returned when the order lacks a date or time to
// schedule from.
var ErrNoSchedule = errors.New("order has no event date or pickup time")

// Writer writes pickup events into a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// NewWriter creates a Writer rooted at dir.
func NewWriter(dir string) *Writer {
	return &Writer{dir: dir, now: time.Now}
}

// CreatePickupEvent writes a 30-minute event at the pickup time on the
// event date and returns the .ics path. The location is tagged DELIVERY or
// PICKUP based on the delivery answer.
func (w *Writer) CreatePickupEvent(ctx context.Context, o *submission.Order) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start, err := pickupStart(o.EventDate, o.PickupTime)
	if err != nil {
		return "", err
	}
	end := start.Add(EventDuration)

	location := "PICKUP"
	if strings.Contains(o.Delivery, "Yes") {
		location = "DELIVERY"
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	ev := cal.AddEvent(uuid.NewString())
	ev.SetCreatedTime(w.now())
	ev.SetDtStampTime(w.now())
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(fmt.Sprintf("%s - %s Cake Pickup", o.Name, o.Occasion))
	ev.SetLocation(location)
	ev.SetDescription(eventDescription(o, w.now()))

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("%s-%s.ics", start.Format("2006-01-02-1504"), slug(o.Name))
	path := filepath.Join(w.dir, name)
	if err := os.WriteFile(path, []byte(cal.Serialize()), 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// pickupStart combines the entered date and time into a local wall-clock
// start. The date components are split as integers so the day never shifts
// with the host timezone.
func pickupStart(eventDate, pickupTime string) (time.Time, error) {
	if strings.TrimSpace(eventDate) == "" || strings.TrimSpace(pickupTime) == "" {
		return time.Time{}, ErrNoSchedule
	}
	parts := strings.Split(eventDate, "-")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("unparseable event date %q", eventDate)
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, fmt.Errorf("unparseable event date %q", eventDate)
	}

	hour, minute, ok := normalize.ClockFrom24(normalize.Time(pickupTime))
	if !ok {
		return time.Time{}, fmt.Errorf("unparseable pickup time %q", pickupTime)
	}
	return time.Date(year, time.Month(month), day, hour, minute, 0, 0, time.Local), nil
}

func eventDescription(o *submission.Order, received time.Time) string {
	lines := []string{
		fmt.Sprintf("CUSTOMER: %s", o.Name),
		fmt.Sprintf("PHONE: %s", o.Phone),
		fmt.Sprintf("OCCASION: %s", o.Occasion),
		"",
		"CAKE DETAILS:",
		fmt.Sprintf("- %s shape, %s inches", o.Shape, o.Size),
		fmt.Sprintf("- %s layers, serves %s", o.Layers, o.Servings),
		fmt.Sprintf("- Flavors: %s", strings.Join(o.Flavors, ", ")),
		fmt.Sprintf("- Extras: %s", strings.Join(o.Extras, ", ")),
		fmt.Sprintf("- Colors: %s", o.Colors),
		fmt.Sprintf("- Message: %q", o.Message),
		"",
		fmt.Sprintf("DELIVERY: %s", o.Delivery),
		fmt.Sprintf("PHOTOS: %s", o.PhotoSummary),
		"",
		fmt.Sprintf("Order received: %s", received.Format("1/2/2006 3:04:05 PM")),
	}
	return strings.Join(lines, "\n")
}

func slug(s string) string {
	out := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, strings.TrimSpace(s))
	out = strings.Trim(out, "-")
	if out == "" {
		return "order"
	}
	return out
}
