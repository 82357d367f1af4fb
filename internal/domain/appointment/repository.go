package appointment

import "context"

type Repository interface {
	// Create persists a new appointment and assigns its token number in the
	// same transaction. On return a.ID and a.TokenNumber are set and equal;
	// no reader outside the transaction ever observes the row with the
	// placeholder token.
	Create(ctx context.Context, a *Appointment) error

	// GetByID retrieves an appointment by primary key. Returns
	// ErrAppointmentNotFound if not found.
	GetByID(ctx context.Context, id uint) (*Appointment, error)

	// Update overwrites patient, doctor, date and time of an existing
	// appointment. The token number is never touched.
	Update(ctx context.Context, id uint, cmd *RescheduleAppointmentCommand) (*Appointment, error)

	// Delete removes the appointment. Returns ErrAppointmentNotFound if the
	// row is already gone, so two concurrent cancellations cannot both
	// report success.
	Delete(ctx context.Context, id uint) error

	// List returns all appointments in creation order.
	List(ctx context.Context) ([]*Appointment, error)
}
