package engagement

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/domain/engagement"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/telemetry"
)

// CalendarGateway pushes confirmed slots to the advocate's external
// calendar. Implementations live in infrastructure; a noop gateway is
// used when calendar sync is disabled.
type CalendarGateway interface {
	CreateEvent(ctx context.Context, appointment *engagement.Appointment) (string, error)
	DeleteEvent(ctx context.Context, eventID string) error
}

// AppointmentService handles the appointment lifecycle
type AppointmentService struct {
	appointmentRepo engagement.AppointmentRepository
	advocateRepo    directory.AdvocateRepository
	calendar        CalendarGateway
	eventBus        shared.EventPublisher
	logger          *zap.Logger
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	appointmentRepo engagement.AppointmentRepository,
	advocateRepo directory.AdvocateRepository,
	calendar CalendarGateway,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		advocateRepo:    advocateRepo,
		calendar:        calendar,
		eventBus:        eventBus,
		logger:          logger,
	}
}

// Request books a slot with a listable, available advocate
func (s *AppointmentService) Request(ctx context.Context, clientID uuid.UUID, req RequestAppointmentRequest) (*AppointmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "appointment", "request",
		telemetry.WithAttribute(telemetry.SpanAttrClientID, clientID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrAdvocateID, req.AdvocateID.String()),
		telemetry.WithAttribute(telemetry.SpanAttrAppointmentMode, req.Mode))
	defer span.End()

	advocate, err := s.advocateRepo.FindByID(ctx, req.AdvocateID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !advocate.IsListable() {
		return nil, shared.ErrNotVerified
	}
	if !advocate.Available {
		return nil, shared.NewDomainError("NOT_AVAILABLE", "Advocate is not currently accepting appointments")
	}

	appointment, err := engagement.NewAppointment(clientID, advocate.UserID, req.StartAt, req.EndAt, engagement.AppointmentMode(req.Mode), req.Subject)
	if err != nil {
		return nil, err
	}
	appointment.Notes = req.Notes

	if err := s.appointmentRepo.Create(ctx, appointment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrAppointmentID, appointment.ID.String())
	s.publishEvents(ctx, appointment)

	s.logger.Info("Appointment requested",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("client_id", clientID.String()),
		zap.String("advocate_user_id", advocate.UserID.String()))

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// GetByID returns an appointment visible to the caller
func (s *AppointmentService) GetByID(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !appointment.IsParticipant(actorID) {
		return nil, shared.ErrForbidden
	}
	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// ListForClient lists the caller's appointments as a client
func (s *AppointmentService) ListForClient(ctx context.Context, clientID uuid.UUID, req ListAppointmentsRequest) (*shared.Paginated[AppointmentResponse], error) {
	filter := s.buildFilter(req)
	filter.ClientID = &clientID
	return s.list(ctx, filter)
}

// ListForAdvocate lists the caller's appointments as an advocate
func (s *AppointmentService) ListForAdvocate(ctx context.Context, advocateUserID uuid.UUID, req ListAppointmentsRequest) (*shared.Paginated[AppointmentResponse], error) {
	filter := s.buildFilter(req)
	filter.AdvocateID = &advocateUserID
	return s.list(ctx, filter)
}

// Confirm accepts a requested appointment after checking the slot is
// still free, then pushes the calendar event best-effort
func (s *AppointmentService) Confirm(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*AppointmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "appointment", "confirm",
		telemetry.WithAttribute(telemetry.SpanAttrAppointmentID, id.String()))
	defer span.End()

	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	conflicts, err := s.appointmentRepo.FindConfirmedOverlapping(ctx, appointment.AdvocateID, appointment.StartAt, appointment.EndAt, appointment.ID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if len(conflicts) > 0 {
		telemetry.RecordError(span, shared.ErrSlotConflict)
		return nil, shared.ErrSlotConflict
	}

	if err := appointment.Confirm(actorID); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	s.publishEvents(ctx, appointment)

	s.syncCalendar(ctx, appointment)

	s.logger.Info("Appointment confirmed", zap.String("appointment_id", appointment.ID.String()))

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Reject declines a requested appointment
func (s *AppointmentService) Reject(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req RejectAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := appointment.Reject(actorID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}

	s.logger.Info("Appointment rejected", zap.String("appointment_id", appointment.ID.String()))

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Cancel cancels a requested or confirmed appointment and removes any
// synced calendar event
func (s *AppointmentService) Cancel(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req CancelAppointmentRequest) (*AppointmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "appointment", "cancel",
		telemetry.WithAttribute(telemetry.SpanAttrAppointmentID, id.String()))
	defer span.End()

	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	eventID := appointment.CalendarEventID
	if err := appointment.Cancel(actorID, req.Reason); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, appointment)

	s.removeCalendarEvent(ctx, appointment, eventID)

	s.logger.Info("Appointment cancelled",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("cancelled_by", actorID.String()))

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Reschedule moves an appointment to a new slot. The appointment returns
// to requested and any synced calendar event is removed.
func (s *AppointmentService) Reschedule(ctx context.Context, actorID uuid.UUID, id uuid.UUID, req RescheduleAppointmentRequest) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	eventID := appointment.CalendarEventID
	if err := appointment.Reschedule(actorID, req.StartAt, req.EndAt); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, appointment)

	s.removeCalendarEvent(ctx, appointment, eventID)

	s.logger.Info("Appointment rescheduled", zap.String("appointment_id", appointment.ID.String()))

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// Complete marks a confirmed appointment as held
func (s *AppointmentService) Complete(ctx context.Context, actorID uuid.UUID, id uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := appointment.Complete(actorID, time.Now().UTC()); err != nil {
		return nil, err
	}
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, appointment)

	s.logger.Info("Appointment completed", zap.String("appointment_id", appointment.ID.String()))

	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// SyncPendingCalendarEvents retries calendar pushes that failed at
// confirm time. The scheduler drives this.
func (s *AppointmentService) SyncPendingCalendarEvents(ctx context.Context, limit int) (int, error) {
	appointments, err := s.appointmentRepo.FindPendingCalendarSync(ctx, limit)
	if err != nil {
		return 0, err
	}

	synced := 0
	for _, appointment := range appointments {
		if s.syncCalendar(ctx, appointment) {
			synced++
		}
	}
	return synced, nil
}

// SendReminders publishes reminder events for confirmed appointments
// starting inside the window
func (s *AppointmentService) SendReminders(ctx context.Context, from, to time.Time) (int, error) {
	appointments, err := s.appointmentRepo.FindStartingBetween(ctx, from, to)
	if err != nil {
		return 0, err
	}
	if s.eventBus == nil {
		return 0, nil
	}

	sent := 0
	for _, appointment := range appointments {
		event := engagement.NewAppointmentReminderEvent(appointment)
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish reminder",
				zap.String("appointment_id", appointment.ID.String()),
				zap.Error(err))
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *AppointmentService) buildFilter(req ListAppointmentsRequest) engagement.AppointmentFilter {
	filter := engagement.AppointmentFilter{Filter: shared.DefaultFilter(), Upcoming: req.Upcoming}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.Status != "" {
		status := engagement.AppointmentStatus(req.Status)
		filter.Status = &status
	}
	return filter
}

func (s *AppointmentService) list(ctx context.Context, filter engagement.AppointmentFilter) (*shared.Paginated[AppointmentResponse], error) {
	appointments, total, err := s.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		items[i] = ToAppointmentResponse(appointment)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

// syncCalendar pushes the confirmed slot to the external calendar. A
// failure leaves the appointment in the pending sync state for the
// scheduler to retry.
func (s *AppointmentService) syncCalendar(ctx context.Context, appointment *engagement.Appointment) bool {
	if s.calendar == nil || appointment.CalendarSync != engagement.CalendarSyncPending {
		return false
	}

	eventID, err := s.calendar.CreateEvent(ctx, appointment)
	if err != nil {
		s.logger.Warn("Calendar push failed, will retry",
			zap.String("appointment_id", appointment.ID.String()),
			zap.Error(err))
		return false
	}
	if err := appointment.MarkCalendarSynced(eventID); err != nil {
		return false
	}
	telemetry.AddEvent(telemetry.SpanFromContext(ctx), "calendar_event_created",
		telemetry.SpanAttrAppointmentID, appointment.ID.String())
	if err := s.appointmentRepo.Update(ctx, appointment); err != nil {
		s.logger.Error("Failed to persist calendar event reference",
			zap.String("appointment_id", appointment.ID.String()),
			zap.Error(err))
		return false
	}
	return true
}

// removeCalendarEvent deletes the external event best-effort after a
// cancel or reschedule
func (s *AppointmentService) removeCalendarEvent(ctx context.Context, appointment *engagement.Appointment, eventID string) {
	if s.calendar == nil || eventID == "" {
		return
	}
	if err := s.calendar.DeleteEvent(ctx, eventID); err != nil {
		s.logger.Warn("Failed to delete calendar event",
			zap.String("appointment_id", appointment.ID.String()),
			zap.String("event_id", eventID),
			zap.Error(err))
	}
}

func (s *AppointmentService) publishEvents(ctx context.Context, appointment *engagement.Appointment) {
	if s.eventBus == nil {
		return
	}
	for _, event := range appointment.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	appointment.ClearDomainEvents()
}
