// Package intake orchestrates a validated submission through its
// downstream phases: attachment archival, row persistence, owner
// notification, and calendar scheduling. Isolation is a designed property:
// every phase reports a PhaseResult and the pipeline composes them, so a
// failure in one phase never suppresses its siblings. The row append is
// the phase of record; only its failure turns the response into an error.
package intake

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"cakeOrderManagement/internal/attach"
	"cakeOrderManagement/internal/filestore"
	"cakeOrderManagement/internal/notify"
	"cakeOrderManagement/internal/pricing"
	"cakeOrderManagement/internal/schedule"
	"cakeOrderManagement/internal/sheet"
	"cakeOrderManagement/internal/submission"
	"cakeOrderManagement/internal/validate"
)

// LinkDelimiter joins attachment links into the single sheet cell.
const LinkDelimiter = " | "

// maxThumbnails caps how many inline previews the notification carries.
const maxThumbnails = 3

// PhaseResult records the outcome of one pipeline phase.
type PhaseResult struct {
	Phase string
	Err   error
}

// OK reports whether the phase succeeded.
func (r PhaseResult) OK() bool { return r.Err == nil }

// Outcome is the structured result returned to the transport layer.
type Outcome struct {
	Status  string // "success" or "error"
	Message string
	Phases  []PhaseResult
}

// Pipeline wires the intake phases to their sinks.
type Pipeline struct {
	sheets   *sheet.Store
	files    filestore.Store
	mailer   notify.Mailer
	calendar *schedule.Writer
	logger   *zap.Logger

	orderSheet   string
	inquirySheet string

	now func() time.Time
}

// New creates a Pipeline.
func New(sheets *sheet.Store, files filestore.Store, mailer notify.Mailer, calendar *schedule.Writer, logger *zap.Logger, orderSheet, inquirySheet string) *Pipeline {
	return &Pipeline{
		sheets:       sheets,
		files:        files,
		mailer:       mailer,
		calendar:     calendar,
		logger:       logger,
		orderSheet:   orderSheet,
		inquirySheet: inquirySheet,
		now:          time.Now,
	}
}

// WithClock overrides the pipeline clock, for tests.
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// SubmitOrder runs the order intake phases in order. The attachment phase
// never aborts the pipeline; notification and calendar failures are logged
// and reported per-phase without changing the response once the row is
// persisted.
func (p *Pipeline) SubmitOrder(ctx context.Context, o *submission.Order) Outcome {
	var phases []PhaseResult
	submitted := p.now()

	// Phase: attachments. Always yields a links cell, possibly built from
	// placeholders or the client-supplied summary.
	links, thumbs, photoErr := p.archivePhotos(ctx, o, submitted)
	phases = append(phases, PhaseResult{Phase: "attachments", Err: photoErr})
	if photoErr != nil {
		p.logger.Warn("attachment archival degraded",
			zap.String("order_id", o.ID),
			zap.Error(photoErr))
	}

	// Phase of record: destination resolution and row append.
	appendErr := p.appendOrderRow(ctx, o, submitted, links)
	phases = append(phases, PhaseResult{Phase: "append", Err: appendErr})
	if appendErr != nil {
		p.logger.Error("order row append failed",
			zap.String("order_id", o.ID),
			zap.Error(appendErr))
	}

	// Phase: notification. Isolated; an email failure must not suppress
	// scheduling or fail a persisted order.
	mailErr := p.sendOrderMail(ctx, o, links, thumbs)
	phases = append(phases, PhaseResult{Phase: "notify", Err: mailErr})
	if mailErr != nil {
		p.logger.Error("order notification failed",
			zap.String("order_id", o.ID),
			zap.Error(mailErr))
	}

	// Phase: calendar. Only attempted with both a date and a time.
	if strings.TrimSpace(o.EventDate) != "" && strings.TrimSpace(o.PickupTime) != "" {
		_, calErr := p.calendar.CreatePickupEvent(ctx, o)
		phases = append(phases, PhaseResult{Phase: "calendar", Err: calErr})
		if calErr != nil {
			p.logger.Error("calendar event failed",
				zap.String("order_id", o.ID),
				zap.Error(calErr))
		}
	}

	if appendErr != nil {
		return Outcome{
			Status:  "error",
			Message: "We could not record your order. Please try again.",
			Phases:  phases,
		}
	}
	p.logger.Info("order submitted",
		zap.String("order_id", o.ID),
		zap.String("customer", o.Name),
		zap.Int("attachments", len(o.Attachments)))
	return Outcome{Status: "success", Message: "Order submitted successfully!", Phases: phases}
}

// SubmitInquiry runs the contact-form intake: lazy destination creation,
// row append, notification.
func (p *Pipeline) SubmitInquiry(ctx context.Context, q *submission.Inquiry) Outcome {
	var phases []PhaseResult

	appendErr := func() error {
		if err := p.sheets.Ensure(ctx, p.inquirySheet, submission.InquiryHeaders); err != nil {
			return fmt.Errorf("ensure inquiry sheet: %w", err)
		}
		return p.sheets.Append(ctx, p.inquirySheet, q.Row(p.now()))
	}()
	phases = append(phases, PhaseResult{Phase: "append", Err: appendErr})
	if appendErr != nil {
		p.logger.Error("inquiry row append failed",
			zap.String("inquiry_id", q.ID),
			zap.Error(appendErr))
	}

	mailErr := func() error {
		subject, body, err := notify.RenderInquiry(q)
		if err != nil {
			return err
		}
		return p.mailer.Send(ctx, subject, body)
	}()
	phases = append(phases, PhaseResult{Phase: "notify", Err: mailErr})
	if mailErr != nil {
		p.logger.Error("inquiry notification failed",
			zap.String("inquiry_id", q.ID),
			zap.Error(mailErr))
	}

	if appendErr != nil {
		return Outcome{
			Status:  "error",
			Message: "We could not record your inquiry. Please try again.",
			Phases:  phases,
		}
	}
	return Outcome{Status: "success", Message: "Inquiry submitted successfully!", Phases: phases}
}

// appendOrderRow resolves the destination and appends the 18-column row.
// A missing order sheet falls back to creating it with the fixed header
// row, so a fresh database still accepts orders.
func (p *Pipeline) appendOrderRow(ctx context.Context, o *submission.Order, submitted time.Time, links string) error {
	exists, err := p.sheets.Exists(ctx, p.orderSheet)
	if err != nil {
		return fmt.Errorf("resolve destination: %w", err)
	}
	if !exists {
		if err := p.sheets.Ensure(ctx, p.orderSheet, submission.OrderHeaders); err != nil {
			return fmt.Errorf("create destination: %w", err)
		}
	}
	return p.sheets.Append(ctx, p.orderSheet, o.Row(submitted, links))
}

func (p *Pipeline) sendOrderMail(ctx context.Context, o *submission.Order, links string, thumbs []string) error {
	quote := float64(pricing.Base(o.LayerCount(), o.SizeInches()))
	subject, body, err := notify.RenderOrder(o, quote, links, thumbs)
	if err != nil {
		return err
	}
	return p.mailer.Send(ctx, subject, body)
}

// archivePhotos decodes and persists each attachment, tolerating per-file
// failure. The error return marks the phase degraded for reporting; the
// returned cell is always usable. The server is the authoritative limit
// boundary here: files beyond the count cap are skipped with a note and
// oversized payloads become placeholders.
func (p *Pipeline) archivePhotos(ctx context.Context, o *submission.Order, submitted time.Time) (string, []string, error) {
	if len(o.Attachments) == 0 {
		return "", nil, nil
	}

	folder, err := p.files.EnsureFolder(ctx, filestore.FolderName(o.Name, submitted))
	if err != nil {
		// Folder-level failure: fall back to the client-supplied summary.
		return o.PhotoSummary, nil, fmt.Errorf("ensure order folder: %w", err)
	}

	atts := o.Attachments
	skipped := 0
	if len(atts) > validate.MaxAttachments {
		skipped = len(atts) - validate.MaxAttachments
		atts = atts[:validate.MaxAttachments]
	}

	var entries []string
	var thumbs []string
	var degraded error
	for i, a := range atts {
		entry, thumb, err := p.archiveOne(ctx, folder, a, o)
		if err != nil {
			p.logger.Warn("attachment failed, recording placeholder",
				zap.String("order_id", o.ID),
				zap.Int("index", i),
				zap.String("file", a.Name),
				zap.Error(err))
			degraded = err
		}
		entries = append(entries, entry)
		if thumb != "" && len(thumbs) < maxThumbnails {
			thumbs = append(thumbs, thumb)
		}
	}
	if skipped > 0 {
		entries = append(entries, fmt.Sprintf("%d additional photo(s) skipped (limit %d)", skipped, validate.MaxAttachments))
	}
	return strings.Join(entries, LinkDelimiter), thumbs, degraded
}

// archiveOne persists a single attachment, or yields its placeholder entry.
func (p *Pipeline) archiveOne(ctx context.Context, folder string, a submission.Attachment, o *submission.Order) (entry, thumb string, err error) {
	data, err := attach.Decode(a)
	if err != nil {
		return placeholder(a, o), "", err
	}
	if int64(len(data)) > validate.MaxAttachmentBytes {
		return placeholder(a, o), "", fmt.Errorf("attachment %s exceeds size limit", a.Name)
	}
	f, err := p.files.Save(ctx, folder, a.Name, a.MimeType, data)
	if err != nil {
		return placeholder(a, o), "", err
	}
	return f.Link, f.Thumbnail, nil
}

// placeholder is the synthetic note substituted for an attachment that
// failed to decode or store: enough cake context to follow up, plus a
// re-send request.
func placeholder(a submission.Attachment, o *submission.Order) string {
	return fmt.Sprintf("[photo %q could not be processed - %s shape, %s layers, %s inches for %s - please ask customer to re-send]",
		a.Name, o.Shape, o.Layers, o.Size, o.Occasion)
}
