// Package calendar pushes confirmed appointments to Google Calendar.
package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	engagementapp "github.com/legallink/backend/internal/application/engagement"
	"github.com/legallink/backend/internal/domain/engagement"
	infraconfig "github.com/legallink/backend/internal/infrastructure/config"
)

var _ engagementapp.CalendarGateway = (*GoogleCalendarGateway)(nil)

// GoogleCalendarGateway creates and removes calendar events for
// confirmed appointment slots using an offline-access OAuth token.
type GoogleCalendarGateway struct {
	service    *calendarapi.Service
	calendarID string
	logger     *zap.Logger
}

// NewGoogleCalendarGateway builds the gateway from configuration.
// The refresh token must have been minted with calendar.events scope.
func NewGoogleCalendarGateway(ctx context.Context, cfg *infraconfig.CalendarConfig, logger *zap.Logger) (*GoogleCalendarGateway, error) {
	if cfg == nil {
		return nil, errors.New("calendar configuration is required")
	}
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, errors.New("calendar OAuth client credentials are required")
	}
	if cfg.RefreshToken == "" {
		return nil, errors.New("calendar refresh token is required")
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendarapi.CalendarEventsScope},
	}

	tokenSource := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	service, err := calendarapi.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar service: %w", err)
	}

	calendarID := cfg.CalendarID
	if calendarID == "" {
		calendarID = "primary"
	}

	return &GoogleCalendarGateway{
		service:    service,
		calendarID: calendarID,
		logger:     logger,
	}, nil
}

// CreateEvent pushes the appointment slot as a calendar event and
// returns the provider's event ID
func (g *GoogleCalendarGateway) CreateEvent(ctx context.Context, appointment *engagement.Appointment) (string, error) {
	if appointment == nil {
		return "", errors.New("appointment is required")
	}

	event := &calendarapi.Event{
		Summary:     eventSummary(appointment),
		Description: eventDescription(appointment),
		Start: &calendarapi.EventDateTime{
			DateTime: appointment.StartAt.Format(time.RFC3339),
		},
		End: &calendarapi.EventDateTime{
			DateTime: appointment.EndAt.Format(time.RFC3339),
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create calendar event: %w", err)
	}

	g.logger.Info("Calendar event created",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("event_id", created.Id))

	return created.Id, nil
}

// DeleteEvent removes an event. A 404/410 from the provider means the
// event is already gone and is not treated as a failure.
func (g *GoogleCalendarGateway) DeleteEvent(ctx context.Context, eventID string) error {
	if eventID == "" {
		return errors.New("event ID is required")
	}

	err := g.service.Events.Delete(g.calendarID, eventID).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == 404 || apiErr.Code == 410) {
			return nil
		}
		return fmt.Errorf("failed to delete calendar event: %w", err)
	}

	g.logger.Info("Calendar event deleted", zap.String("event_id", eventID))
	return nil
}

func eventSummary(appointment *engagement.Appointment) string {
	if appointment.Subject != "" {
		return "LegalLink: " + appointment.Subject
	}
	return "LegalLink consultation"
}

func eventDescription(appointment *engagement.Appointment) string {
	return fmt.Sprintf("Consultation (%s) booked via LegalLink.\nAppointment ID: %s",
		appointment.Mode, appointment.ID)
}
