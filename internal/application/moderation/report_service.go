package moderation

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/legallink/backend/internal/domain/directory"
	"github.com/legallink/backend/internal/domain/moderation"
	"github.com/legallink/backend/internal/domain/shared"
	"github.com/legallink/backend/internal/infrastructure/telemetry"
)

// ReportService handles complaints against advocates
type ReportService struct {
	reportRepo   moderation.ReportRepository
	advocateRepo directory.AdvocateRepository
	eventBus     shared.EventPublisher
	logger       *zap.Logger
}

// NewReportService creates a new report service
func NewReportService(
	reportRepo moderation.ReportRepository,
	advocateRepo directory.AdvocateRepository,
	eventBus shared.EventPublisher,
	logger *zap.Logger,
) *ReportService {
	return &ReportService{
		reportRepo:   reportRepo,
		advocateRepo: advocateRepo,
		eventBus:     eventBus,
		logger:       logger,
	}
}

// File records a new report against an advocate
func (s *ReportService) File(ctx context.Context, reporterID uuid.UUID, req FileReportRequest) (*ReportResponse, error) {
	advocate, err := s.advocateRepo.FindByID(ctx, req.AdvocateID)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if advocate.UserID == reporterID {
		return nil, shared.NewDomainError("SELF_REPORT", "Advocates cannot report themselves")
	}

	report, err := moderation.NewReport(reporterID, advocate.ID, moderation.ReportReason(req.Reason), req.Details)
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	s.publishEvents(ctx, report)

	s.logger.Info("Report filed",
		zap.String("report_id", report.ID.String()),
		zap.String("advocate_id", advocate.ID.String()),
		zap.String("reason", req.Reason))

	response := ToReportResponse(report)
	return &response, nil
}

// GetByID returns a report visible to the caller. Reporters see their
// own; admins see all.
func (s *ReportService) GetByID(ctx context.Context, actorID uuid.UUID, isAdmin bool, id uuid.UUID) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if !isAdmin && report.ReporterID != actorID {
		return nil, shared.ErrForbidden
	}
	response := ToReportResponse(report)
	return &response, nil
}

// ListOwn lists the caller's reports
func (s *ReportService) ListOwn(ctx context.Context, reporterID uuid.UUID, req ListReportsRequest) (*shared.Paginated[ReportResponse], error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}
	filter.ReporterID = &reporterID
	return s.list(ctx, filter)
}

// ListAll lists reports for admins with optional filters
func (s *ReportService) ListAll(ctx context.Context, req ListReportsRequest) (*shared.Paginated[ReportResponse], error) {
	filter, err := s.buildFilter(req)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filter)
}

// StartReview moves an open report under review
func (s *ReportService) StartReview(ctx context.Context, reviewerID uuid.UUID, id uuid.UUID) (*ReportResponse, error) {
	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}
	if err := report.StartReview(reviewerID); err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		return nil, err
	}
	response := ToReportResponse(report)
	return &response, nil
}

// Close resolves or dismisses a report. Resolving may also suspend the
// advocate.
func (s *ReportService) Close(ctx context.Context, reviewerID uuid.UUID, id uuid.UUID, req CloseReportRequest) (*ReportResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "moderation", "close_report",
		telemetry.WithAttribute(telemetry.SpanAttrReportID, id.String()))
	defer span.End()

	report, err := s.reportRepo.FindByID(ctx, id)
	if err != nil {
		return nil, shared.ErrNotFound
	}

	if req.Dismiss {
		err = report.Dismiss(reviewerID, req.Resolution)
	} else {
		err = report.Resolve(reviewerID, req.Resolution)
	}
	if err != nil {
		return nil, err
	}
	if err := s.reportRepo.Update(ctx, report); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrReportStatus, string(report.Status))
	s.publishEvents(ctx, report)

	if !req.Dismiss && req.SuspendAdvocate {
		if err := s.suspendAdvocate(ctx, report.AdvocateID); err != nil {
			s.logger.Error("Failed to suspend advocate after resolution",
				zap.String("advocate_id", report.AdvocateID.String()),
				zap.Error(err))
		}
	}

	s.logger.Info("Report closed",
		zap.String("report_id", report.ID.String()),
		zap.String("status", string(report.Status)))

	response := ToReportResponse(report)
	return &response, nil
}

func (s *ReportService) suspendAdvocate(ctx context.Context, advocateID uuid.UUID) error {
	advocate, err := s.advocateRepo.FindByID(ctx, advocateID)
	if err != nil {
		return err
	}
	if err := advocate.Suspend(); err != nil {
		return err
	}
	return s.advocateRepo.Update(ctx, advocate)
}

func (s *ReportService) buildFilter(req ListReportsRequest) (moderation.ReportFilter, error) {
	filter := moderation.ReportFilter{Filter: shared.DefaultFilter()}
	if req.Page > 0 {
		filter.Page = req.Page
	}
	if req.PageSize > 0 && req.PageSize <= 100 {
		filter.PageSize = req.PageSize
	}
	if req.AdvocateID != "" {
		advocateID, err := uuid.Parse(req.AdvocateID)
		if err != nil {
			return filter, shared.ErrInvalidInput
		}
		filter.AdvocateID = &advocateID
	}
	if req.Status != "" {
		status := moderation.ReportStatus(req.Status)
		filter.Status = &status
	}
	if req.Reason != "" {
		reason := moderation.ReportReason(req.Reason)
		filter.Reason = &reason
	}
	return filter, nil
}

func (s *ReportService) list(ctx context.Context, filter moderation.ReportFilter) (*shared.Paginated[ReportResponse], error) {
	reports, total, err := s.reportRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]ReportResponse, len(reports))
	for i, report := range reports {
		items[i] = ToReportResponse(report)
	}
	result := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &result, nil
}

func (s *ReportService) publishEvents(ctx context.Context, report *moderation.Report) {
	if s.eventBus == nil {
		return
	}
	for _, event := range report.GetDomainEvents() {
		if err := s.eventBus.Publish(ctx, event); err != nil {
			s.logger.Error("Failed to publish domain event",
				zap.String("event_type", event.EventType()),
				zap.Error(err))
		}
	}
	report.ClearDomainEvents()
}
