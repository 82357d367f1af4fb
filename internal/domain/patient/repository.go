package patient

import "context"

type Repository interface {
	// Create persists a new patient and fills in the generated ID.
	Create(ctx context.Context, p *Patient) error

	// GetByID retrieves a patient by primary key. Returns ErrPatientNotFound if not found.
	GetByID(ctx context.Context, id uint) (*Patient, error)

	// Update overwrites the mutable fields of an existing patient record.
	Update(ctx context.Context, id uint, cmd *UpdatePatientCommand) (*Patient, error)

	// Delete removes the patient. Dependent appointments are removed by the
	// store's cascade rule. Returns ErrPatientNotFound if not found.
	Delete(ctx context.Context, id uint) error

	// List returns all patients in creation order.
	List(ctx context.Context) ([]*Patient, error)
}
