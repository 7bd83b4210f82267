// Package telemetry provides OpenTelemetry integration for metrics collection.
// This file defines business-level metrics recorded by the application services.
package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
)

// BusinessMeterName is the meter name for business metrics.
const BusinessMeterName = "legallink.business"

// BusinessMetrics bundles the instruments for platform-level business events.
// All record methods are safe to call concurrently and are no-ops only when
// the instruments failed to initialize (which NewBusinessMetrics reports).
type BusinessMetrics struct {
	appointmentsRequested *Counter
	appointmentsConfirmed *Counter
	appointmentsCancelled *Counter
	appointmentsCompleted *Counter
	calendarSyncFailures  *Counter
	matchesServed         *Counter
	matchLatency          *Histogram
	advocateVerifications *Counter
	chatTurns             *Counter
	chatTurnLatency       *Histogram
	chatSessionsStarted   *Counter
	ratingsSubmitted      *Counter
	reportsFiled          *Counter
	attachmentsUploaded   *Counter
	attachmentUploadBytes *Histogram
	activeChatConnections *Gauge
}

// NewBusinessMetrics creates all business instruments on the given meter provider.
func NewBusinessMetrics(mp *MeterProvider) (*BusinessMetrics, error) {
	meter := mp.Meter(BusinessMeterName)
	bm := &BusinessMetrics{}
	var err error

	if bm.appointmentsRequested, err = NewCounter(meter,
		"legallink.appointments.requested", "Appointments requested by clients", "{appointment}"); err != nil {
		return nil, fmt.Errorf("create appointments.requested: %w", err)
	}
	if bm.appointmentsConfirmed, err = NewCounter(meter,
		"legallink.appointments.confirmed", "Appointments confirmed by advocates", "{appointment}"); err != nil {
		return nil, fmt.Errorf("create appointments.confirmed: %w", err)
	}
	if bm.appointmentsCancelled, err = NewCounter(meter,
		"legallink.appointments.cancelled", "Appointments cancelled by either party", "{appointment}"); err != nil {
		return nil, fmt.Errorf("create appointments.cancelled: %w", err)
	}
	if bm.appointmentsCompleted, err = NewCounter(meter,
		"legallink.appointments.completed", "Appointments marked completed", "{appointment}"); err != nil {
		return nil, fmt.Errorf("create appointments.completed: %w", err)
	}
	if bm.calendarSyncFailures, err = NewCounter(meter,
		"legallink.calendar.sync_failures", "Google Calendar sync attempts that failed", "{event}"); err != nil {
		return nil, fmt.Errorf("create calendar.sync_failures: %w", err)
	}
	if bm.matchesServed, err = NewCounter(meter,
		"legallink.matching.matches_served", "Advocate matches returned to clients", "{match}"); err != nil {
		return nil, fmt.Errorf("create matching.matches_served: %w", err)
	}
	if bm.matchLatency, err = NewHistogram(meter, HistogramOpts{
		Name:        "legallink.matching.duration",
		Description: "Time to rank and return advocate matches",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	}); err != nil {
		return nil, fmt.Errorf("create matching.duration: %w", err)
	}
	if bm.advocateVerifications, err = NewCounter(meter,
		"legallink.advocates.verifications", "Advocate verification decisions", "{decision}"); err != nil {
		return nil, fmt.Errorf("create advocates.verifications: %w", err)
	}
	if bm.chatTurns, err = NewCounter(meter,
		"legallink.assistant.turns", "Assistant chat turns processed", "{turn}"); err != nil {
		return nil, fmt.Errorf("create assistant.turns: %w", err)
	}
	if bm.chatTurnLatency, err = NewHistogram(meter, HistogramOpts{
		Name:        "legallink.assistant.turn_duration",
		Description: "End-to-end latency of an assistant chat turn",
		Unit:        "s",
		Boundaries:  HTTPDurationBuckets,
	}); err != nil {
		return nil, fmt.Errorf("create assistant.turn_duration: %w", err)
	}
	if bm.chatSessionsStarted, err = NewCounter(meter,
		"legallink.assistant.sessions_started", "New assistant chat sessions", "{session}"); err != nil {
		return nil, fmt.Errorf("create assistant.sessions_started: %w", err)
	}
	if bm.ratingsSubmitted, err = NewCounter(meter,
		"legallink.ratings.submitted", "Ratings submitted after appointments", "{rating}"); err != nil {
		return nil, fmt.Errorf("create ratings.submitted: %w", err)
	}
	if bm.reportsFiled, err = NewCounter(meter,
		"legallink.reports.filed", "Abuse reports filed against advocates or posts", "{report}"); err != nil {
		return nil, fmt.Errorf("create reports.filed: %w", err)
	}
	if bm.attachmentsUploaded, err = NewCounter(meter,
		"legallink.social.attachments_uploaded", "Attachments uploaded to object storage", "{attachment}"); err != nil {
		return nil, fmt.Errorf("create social.attachments_uploaded: %w", err)
	}
	if bm.attachmentUploadBytes, err = NewHistogram(meter, HistogramOpts{
		Name:        "legallink.social.attachment_size",
		Description: "Size of uploaded attachments",
		Unit:        "By",
	}); err != nil {
		return nil, fmt.Errorf("create social.attachment_size: %w", err)
	}
	if bm.activeChatConnections, err = NewGauge(meter,
		"legallink.assistant.active_connections", "Currently open assistant websocket connections", "{connection}"); err != nil {
		return nil, fmt.Errorf("create assistant.active_connections: %w", err)
	}

	return bm, nil
}

// RecordAppointmentRequested counts a new appointment request.
func (bm *BusinessMetrics) RecordAppointmentRequested(ctx context.Context, mode string) {
	bm.appointmentsRequested.Inc(ctx, AttrAppointmentMode.String(mode))
}

// RecordAppointmentConfirmed counts an advocate confirmation.
func (bm *BusinessMetrics) RecordAppointmentConfirmed(ctx context.Context, mode string) {
	bm.appointmentsConfirmed.Inc(ctx, AttrAppointmentMode.String(mode))
}

// RecordAppointmentCancelled counts a cancellation, labelled by who cancelled.
func (bm *BusinessMetrics) RecordAppointmentCancelled(ctx context.Context, cancelledBy string) {
	bm.appointmentsCancelled.Inc(ctx, attribute.String("cancelled_by", cancelledBy))
}

// RecordAppointmentCompleted counts a completed consultation.
func (bm *BusinessMetrics) RecordAppointmentCompleted(ctx context.Context, mode string) {
	bm.appointmentsCompleted.Inc(ctx, AttrAppointmentMode.String(mode))
}

// RecordCalendarSyncFailure counts a failed Google Calendar sync attempt.
func (bm *BusinessMetrics) RecordCalendarSyncFailure(ctx context.Context) {
	bm.calendarSyncFailures.Inc(ctx)
}

// RecordMatch records an advocate-matching request: how many matches were
// returned and how long ranking took.
func (bm *BusinessMetrics) RecordMatch(ctx context.Context, specialization string, matches int, elapsed time.Duration) {
	attrs := []attribute.KeyValue{AttrSpecialization.String(specialization)}
	bm.matchesServed.Add(ctx, int64(matches), attrs...)
	bm.matchLatency.RecordDuration(ctx, elapsed, attrs...)
}

// RecordAdvocateVerification counts a verification decision ("approved" or "rejected").
func (bm *BusinessMetrics) RecordAdvocateVerification(ctx context.Context, decision string) {
	bm.advocateVerifications.Inc(ctx, attribute.String("decision", decision))
}

// RecordChatTurn records one assistant turn with its classified intent and latency.
func (bm *BusinessMetrics) RecordChatTurn(ctx context.Context, intent string, elapsed time.Duration) {
	attrs := []attribute.KeyValue{AttrIntent.String(intent)}
	bm.chatTurns.Inc(ctx, attrs...)
	bm.chatTurnLatency.RecordDuration(ctx, elapsed, attrs...)
}

// RecordChatSessionStarted counts a freshly created assistant session.
func (bm *BusinessMetrics) RecordChatSessionStarted(ctx context.Context) {
	bm.chatSessionsStarted.Inc(ctx)
}

// RecordRatingSubmitted counts a submitted rating, labelled by star value.
func (bm *BusinessMetrics) RecordRatingSubmitted(ctx context.Context, stars int) {
	bm.ratingsSubmitted.Inc(ctx, attribute.Int("stars", stars))
}

// RecordReportFiled counts an abuse report, labelled by reason.
func (bm *BusinessMetrics) RecordReportFiled(ctx context.Context, reason string) {
	bm.reportsFiled.Inc(ctx, AttrReportReason.String(reason))
}

// RecordAttachmentUpload counts an attachment upload and records its size.
func (bm *BusinessMetrics) RecordAttachmentUpload(ctx context.Context, contentType string, size int64) {
	attrs := []attribute.KeyValue{attribute.String("content_type", contentType)}
	bm.attachmentsUploaded.Inc(ctx, attrs...)
	bm.attachmentUploadBytes.Record(ctx, float64(size), attrs...)
}

// RecordActiveChatConnections records the current websocket connection count.
func (bm *BusinessMetrics) RecordActiveChatConnections(ctx context.Context, count int64) {
	bm.activeChatConnections.Record(ctx, count)
}
