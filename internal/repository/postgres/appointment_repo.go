package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/medidesk/frontdesk/internal/domain/appointment"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

var _ appointment.Repository = (*AppointmentRepository)(nil)

// Create inserts the appointment and stamps its token number with the
// generated id inside one transaction. Readers outside the transaction see
// either nothing or the confirmed row; the placeholder token is never
// visible.
func (r *AppointmentRepository) Create(ctx context.Context, a *appointment.Appointment) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		a.TokenNumber = 0
		if err := tx.Create(a).Error; err != nil {
			return fmt.Errorf("inserting appointment: %w", err)
		}

		a.TokenNumber = a.ID
		if err := tx.Model(&appointment.Appointment{}).
			Where("id = ?", a.ID).
			Update("token_number", a.TokenNumber).Error; err != nil {
			return fmt.Errorf("assigning token number: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id uint) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, appointment.ErrAppointmentNotFound
		}
		return nil, fmt.Errorf("fetching appointment %d: %w", id, err)
	}
	return &a, nil
}

// Update overwrites the slot and references. TokenNumber is deliberately
// absent from the column list.
func (r *AppointmentRepository) Update(ctx context.Context, id uint, cmd *appointment.RescheduleAppointmentCommand) (*appointment.Appointment, error) {
	var a appointment.Appointment
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return appointment.ErrAppointmentNotFound
			}
			return err
		}

		a.PatientID = cmd.PatientID
		a.DoctorID = cmd.DoctorID
		a.Date = cmd.Date
		a.Time = cmd.Time

		return tx.Model(&a).Select("patient_id", "doctor_id", "date", "time").Updates(&a).Error
	})
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&appointment.Appointment{}, id)
	if res.Error != nil {
		return fmt.Errorf("deleting appointment %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return appointment.ErrAppointmentNotFound
	}
	return nil
}

func (r *AppointmentRepository) List(ctx context.Context) ([]*appointment.Appointment, error) {
	var appointments []*appointment.Appointment
	if err := r.db.WithContext(ctx).Order("id").Find(&appointments).Error; err != nil {
		return nil, fmt.Errorf("listing appointments: %w", err)
	}
	return appointments, nil
}
