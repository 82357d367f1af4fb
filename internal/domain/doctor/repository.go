package doctor

import "context"

type Repository interface {
	// Create persists a new doctor and fills in the generated ID.
	Create(ctx context.Context, d *Doctor) error

	// GetByID retrieves a doctor by primary key. Returns ErrDoctorNotFound if not found.
	GetByID(ctx context.Context, id uint) (*Doctor, error)

	// Update overwrites the mutable fields of an existing doctor record.
	Update(ctx context.Context, id uint, cmd *UpdateDoctorCommand) (*Doctor, error)

	// Delete removes the doctor. Dependent appointments are removed by the
	// store's cascade rule. Returns ErrDoctorNotFound if not found.
	Delete(ctx context.Context, id uint) error

	// List returns all doctors in creation order.
	List(ctx context.Context) ([]*Doctor, error)
}
