package doctor

import "time"

type Doctor struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	Name      string `gorm:"column:name;type:varchar(200);not null" json:"name"`
	Phone     string `gorm:"column:phone;type:varchar(20);not null" json:"phone"`
	Specialty string `gorm:"column:specialty;type:varchar(100);not null;index" json:"specialty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

type CreateDoctorCommand struct {
	Name      string
	Phone     string
	Specialty string
}

type UpdateDoctorCommand struct {
	Name      string
	Phone     string
	Specialty string
}
