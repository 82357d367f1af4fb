package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/domain/appointment"
	"github.com/medidesk/frontdesk/internal/domain/doctor"
	"github.com/medidesk/frontdesk/internal/domain/patient"
	"github.com/medidesk/frontdesk/pkg/metrics"
)

// AppointmentService enforces referential validity of appointments and
// assigns visit token numbers at booking.
type AppointmentService struct {
	repo        appointment.Repository
	patientRepo patient.Repository
	doctorRepo  doctor.Repository
	auditSvc    *AuditService
	metrics     *metrics.Collector
	log         *zap.Logger
}

func NewAppointmentService(
	repo appointment.Repository,
	patientRepo patient.Repository,
	doctorRepo doctor.Repository,
	auditSvc *AuditService,
	m *metrics.Collector,
	log *zap.Logger,
) *AppointmentService {
	return &AppointmentService{
		repo:        repo,
		patientRepo: patientRepo,
		doctorRepo:  doctorRepo,
		auditSvc:    auditSvc,
		metrics:     m,
		log:         log,
	}
}

// Book validates that the referenced patient and doctor exist (in that
// order; the first missing reference wins), then persists the appointment
// and assigns its token number. On any failure nothing is persisted.
func (s *AppointmentService) Book(ctx context.Context, cmd *appointment.BookAppointmentCommand, caller Caller) (*appointment.Appointment, error) {
	if err := s.checkReferences(ctx, cmd.PatientID, cmd.DoctorID); err != nil {
		return nil, err
	}

	a := &appointment.Appointment{
		PatientID: cmd.PatientID,
		DoctorID:  cmd.DoctorID,
		Date:      cmd.Date,
		Time:      cmd.Time,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		s.log.Error("failed to book appointment", zap.Error(err))
		return nil, fmt.Errorf("booking appointment: %w", err)
	}

	s.metrics.AppointmentsTotal.WithLabelValues("booked").Inc()
	s.metrics.TokensAssignedTotal.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "appointment",
		ResourceID:   strconv.FormatUint(uint64(a.ID), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	s.log.Info("appointment booked",
		zap.Uint("appointment_id", a.ID),
		zap.Uint("token_number", a.TokenNumber),
		zap.Uint("patient_id", a.PatientID),
		zap.Uint("doctor_id", a.DoctorID),
	)

	return a, nil
}

// Reschedule overwrites the slot and references of an existing appointment.
// Checks run in a fixed order: appointment, then patient, then doctor. The
// token number is left untouched even when the references change.
func (s *AppointmentService) Reschedule(ctx context.Context, id uint, cmd *appointment.RescheduleAppointmentCommand, caller Caller) (*appointment.Appointment, error) {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.checkReferences(ctx, cmd.PatientID, cmd.DoctorID); err != nil {
		return nil, err
	}

	a, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return nil, err
		}
		s.log.Error("failed to reschedule appointment", zap.Uint("appointment_id", id), zap.Error(err))
		return nil, fmt.Errorf("rescheduling appointment: %w", err)
	}

	s.metrics.AppointmentsTotal.WithLabelValues("rescheduled").Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "appointment",
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
		Changes:      fmt.Sprintf(`{"date":%q,"time":%q}`, cmd.Date, cmd.Time),
	})

	return a, nil
}

// Cancel removes the appointment permanently. A second cancellation of the
// same id fails with not found; it never succeeds twice.
func (s *AppointmentService) Cancel(ctx context.Context, id uint, caller Caller) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointment.ErrAppointmentNotFound) {
			return err
		}
		s.log.Error("failed to cancel appointment", zap.Uint("appointment_id", id), zap.Error(err))
		return fmt.Errorf("cancelling appointment: %w", err)
	}

	s.metrics.AppointmentsTotal.WithLabelValues("cancelled").Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "appointment",
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return nil
}

func (s *AppointmentService) Get(ctx context.Context, id uint) (*appointment.Appointment, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *AppointmentService) List(ctx context.Context) ([]*appointment.Appointment, error) {
	return s.repo.List(ctx)
}

// checkReferences verifies the patient first and the doctor second. A
// missing patient is reported even when the doctor is missing too.
func (s *AppointmentService) checkReferences(ctx context.Context, patientID, doctorID uint) error {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			return err
		}
		return fmt.Errorf("verifying patient: %w", err)
	}

	if _, err := s.doctorRepo.GetByID(ctx, doctorID); err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			return err
		}
		return fmt.Errorf("verifying doctor: %w", err)
	}

	return nil
}
