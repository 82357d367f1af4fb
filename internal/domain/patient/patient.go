package patient

import (
	"strings"
	"time"
)

type Gender string

const (
	GenderMale    Gender = "male"
	GenderFemale  Gender = "female"
	GenderOther   Gender = "other"
	GenderUnknown Gender = "unknown"
)

func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther, GenderUnknown:
		return true
	}
	return false
}

// NormalizeGender maps free-form input like "F" or "Male" onto a Gender
// value. Unrecognized input passes through lowercased so validation can
// reject it.
func NormalizeGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male":
		return GenderMale
	case "f", "female":
		return GenderFemale
	case "other":
		return GenderOther
	case "unknown":
		return GenderUnknown
	}
	return Gender(strings.ToLower(strings.TrimSpace(raw)))
}

type Patient struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name   string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Phone  string `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Age    int    `gorm:"column:age;not null" json:"age"`
	Gender Gender `gorm:"column:gender;type:varchar(20);not null" json:"gender"`
}

func (Patient) TableName() string {
	return "patients"
}

type CreatePatientCommand struct {
	Name   string
	Phone  string
	Age    int
	Gender Gender
}

// UpdatePatientCommand overwrites every mutable field, matching the PUT
// semantics of the record endpoints.
type UpdatePatientCommand struct {
	Name   string
	Phone  string
	Age    int
	Gender Gender
}
