package appointment

import "time"

type Appointment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	PatientID uint `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID  uint `gorm:"column:doctor_id;not null;index" json:"doctor_id"`

	Date Date      `gorm:"column:date;not null" json:"date"`
	Time TimeOfDay `gorm:"column:time;not null" json:"time"`

	// TokenNumber is the sequential visit token handed to the patient at
	// booking. It is set once, inside the booking transaction, to the
	// appointment's own generated id and never changes afterwards. It is a
	// separate column so the sequence could later diverge from the primary
	// key (e.g. a per-day reset) without a schema change.
	TokenNumber uint `gorm:"column:token_number;not null;default:0" json:"token_number"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// Confirmed reports whether the visit token has been assigned. An
// appointment row is only ever visible outside the booking transaction in
// this state.
func (a *Appointment) Confirmed() bool {
	return a.TokenNumber == a.ID && a.ID != 0
}

type BookAppointmentCommand struct {
	PatientID uint
	DoctorID  uint
	Date      Date
	Time      TimeOfDay
}

// RescheduleAppointmentCommand overwrites the referenced patient and doctor
// along with the slot. The token number is not part of the command: it is
// immutable after booking.
type RescheduleAppointmentCommand struct {
	PatientID uint
	DoctorID  uint
	Date      Date
	Time      TimeOfDay
}
