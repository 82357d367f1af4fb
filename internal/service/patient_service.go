package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/medidesk/frontdesk/internal/domain/patient"
	"github.com/medidesk/frontdesk/pkg/metrics"
)

type PatientService struct {
	repo     patient.Repository
	auditSvc *AuditService
	metrics  *metrics.Collector
	log      *zap.Logger
}

func NewPatientService(repo patient.Repository, auditSvc *AuditService, m *metrics.Collector, log *zap.Logger) *PatientService {
	return &PatientService{repo: repo, auditSvc: auditSvc, metrics: m, log: log}
}

func (s *PatientService) Create(ctx context.Context, cmd *patient.CreatePatientCommand, caller Caller) (*patient.Patient, error) {
	if err := validatePatientFields(cmd.Name, cmd.Age, cmd.Gender); err != nil {
		return nil, err
	}

	p := &patient.Patient{
		Name:   strings.TrimSpace(cmd.Name),
		Phone:  strings.TrimSpace(cmd.Phone),
		Age:    cmd.Age,
		Gender: cmd.Gender,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.log.Error("failed to create patient", zap.Error(err))
		return nil, fmt.Errorf("creating patient: %w", err)
	}

	s.metrics.PatientsCreatedTotal.Inc()

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "create",
		ResourceType: "patient",
		ResourceID:   strconv.FormatUint(uint64(p.ID), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return p, nil
}

func (s *PatientService) Get(ctx context.Context, id uint) (*patient.Patient, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *PatientService) List(ctx context.Context) ([]*patient.Patient, error) {
	return s.repo.List(ctx)
}

func (s *PatientService) Update(ctx context.Context, id uint, cmd *patient.UpdatePatientCommand, caller Caller) (*patient.Patient, error) {
	if err := validatePatientFields(cmd.Name, cmd.Age, cmd.Gender); err != nil {
		return nil, err
	}

	cmd.Name = strings.TrimSpace(cmd.Name)
	cmd.Phone = strings.TrimSpace(cmd.Phone)

	p, err := s.repo.Update(ctx, id, cmd)
	if err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			return nil, err
		}
		s.log.Error("failed to update patient", zap.Uint("patient_id", id), zap.Error(err))
		return nil, fmt.Errorf("updating patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "update",
		ResourceType: "patient",
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return p, nil
}

// Delete removes the patient; the record store cascades the delete to every
// appointment referencing it.
func (s *PatientService) Delete(ctx context.Context, id uint, caller Caller) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, patient.ErrPatientNotFound) {
			return err
		}
		s.log.Error("failed to delete patient", zap.Uint("patient_id", id), zap.Error(err))
		return fmt.Errorf("deleting patient: %w", err)
	}

	s.auditSvc.LogAsync(ctx, AuditEntry{
		Username:     caller.Username,
		UserRole:     caller.Role,
		Action:       "delete",
		ResourceType: "patient",
		ResourceID:   strconv.FormatUint(uint64(id), 10),
		IPAddress:    caller.IP,
		RequestID:    caller.RequestID,
	})

	return nil
}

func validatePatientFields(name string, age int, gender patient.Gender) error {
	var fields []string
	if strings.TrimSpace(name) == "" {
		fields = append(fields, patient.ErrNameRequired.Error())
	}
	if age < 0 {
		fields = append(fields, patient.ErrInvalidAge.Error())
	}
	if !gender.IsValid() {
		fields = append(fields, patient.ErrInvalidGender.Error())
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
