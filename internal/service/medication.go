package service

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/DukeRupert/carecrm/internal/domain"
	"github.com/DukeRupert/carecrm/internal/repository"
)

// MedicationReportService defines the interface for building medication
// reports. Reports are read-only views of what the backend recorded.
type MedicationReportService interface {
	// Build assembles the report for one customer over period.
	Build(ctx context.Context, customerID string, period domain.ReportPeriod) (*domain.MedicationReport, error)
}

// medicationReportService implements MedicationReportService.
type medicationReportService struct {
	queries repository.Querier
	logger  *slog.Logger
	now     func() time.Time
}

// NewMedicationReportService creates a new MedicationReportService.
func NewMedicationReportService(queries repository.Querier, logger *slog.Logger) MedicationReportService {
	return &medicationReportService{
		queries: queries,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *medicationReportService) Build(ctx context.Context, customerID string, period domain.ReportPeriod) (*domain.MedicationReport, error) {
	const op = "MedicationReportService.Build"

	if err := period.Validate(); err != nil {
		return nil, err
	}

	id, err := parseID(op, "customer", customerID)
	if err != nil {
		return nil, err
	}

	customer, err := s.queries.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFound(op, "customer", customerID)
		}
		s.logger.Error("failed to get customer", "error", err, "op", op, "customer_id", customerID)
		return nil, domain.Unavailable(err, op, "Failed to retrieve customer")
	}

	rows, err := s.queries.ListAdministrationsByCustomer(ctx, repository.ListAdministrationsByCustomerParams{
		CustomerID: id,
		FromTime:   period.From,
		ToTime:     period.To,
	})
	if err != nil {
		s.logger.Error("failed to list administrations", "error", err, "op", op, "customer_id", customerID)
		return nil, domain.Unavailable(err, op, "Failed to retrieve medication records")
	}

	report := &domain.MedicationReport{
		Customer:        repoCustomerToDomain(customer),
		Period:          period,
		Administrations: make([]domain.Administration, 0, len(rows)),
		GeneratedAt:     s.now(),
	}
	for _, row := range rows {
		admin := repoAdministrationToDomain(row)
		if !admin.Status.IsValid() {
			s.logger.Warn("unknown administration status", "op", op, "administration_id", admin.ID, "status", row.Status)
			admin.Status = domain.AdministrationPending
		}
		report.Administrations = append(report.Administrations, admin)
	}

	return report, nil
}
