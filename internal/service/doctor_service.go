package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/domain/doctor"
	"github.com/medidesk/frontdesk/pkg/metrics"
)

type DoctorService struct {
	repo     doctor.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewDoctorService(repo doctor.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *DoctorService {
	return &DoctorService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

func (s *DoctorService) Create(ctx context.Context, cmd *doctor.CreateDoctorCommand, caller Caller) (*doctor.Doctor, error) {
	if err := validateDoctorFields(cmd.Name, cmd.Specialty); err != nil {
		return nil, err
	}

	d := &doctor.Doctor{
		Name:      strings.TrimSpace(cmd.Name),
		Phone:     strings.TrimSpace(cmd.Phone),
		Specialty: strings.TrimSpace(cmd.Specialty),
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.log.Error("failed to create doctor", zap.Error(err))
		return nil, fmt.Errorf("creating doctor: %w", err)
	}

	s.metrics.DoctorsCreatedTotal.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "doctor",
		ResourceID:   strconv.FormatUint(uint64(d.ID), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return d, nil
}

func (s *DoctorService) Get(ctx context.Context, id uint) (*doctor.Doctor, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DoctorService) List(ctx context.Context) ([]*doctor.Doctor, error) {
	return s.repo.List(ctx)
}

func (s *DoctorService) Update(ctx context.Context, id uint, cmd *doctor.UpdateDoctorCommand, caller Caller) (*doctor.Doctor, error) {
	if err := validateDoctorFields(cmd.Name, cmd.Specialty); err != nil {
		return nil, err
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Phone = strings.TrimSpace(cmd.Phone)
	cmd.Specialty = strings.TrimSpace(cmd.Specialty)

	d, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			return nil, err
		}
		s.log.Error("failed to update doctor", zap.Uint("doctor_id", id), zap.Error(err))
		return nil, fmt.Errorf("updating doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "doctor",
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return d, nil
}

// Delete removes the doctor; the record store cascades the delete to every
// appointment referencing it.
func (s *DoctorService) Delete(ctx context.Context, id uint, caller Caller) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, doctor.ErrDoctorNotFound) {
			return err
		}
		s.log.Error("failed to delete doctor", zap.Uint("doctor_id", id), zap.Error(err))
		return fmt.Errorf("deleting doctor: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "doctor",
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return nil
}

func validateDoctorFields(name, specialty string) error {
	var fields []string
	if strings.TrimSpace(name) == "" {
		fields = append(fields, doctor.ErrNameRequired.Error())
	}
	if strings.TrimSpace(specialty) == "" {
		fields = append(fields, doctor.ErrSpecialtyRequired.Error())
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
