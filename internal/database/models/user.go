package models

// User represents a registered account
type User struct {
	BaseModel
	Name      string  `json:"name" gorm:"size:48;not null" validate:"required,min=1,max=48"`
	FirstName *string `json:"first_name,omitempty" gorm:"size:48" validate:"omitempty,max=48"`
	LastName  *string `json:"last_name,omitempty" gorm:"size:48" validate:"omitempty,max=48"`
	Password  string  `json:"-" gorm:"size:72;not null"` // bcrypt hash
}

// TableName returns the table name for User
func (User) TableName() string {
	return "users"
}

// Admin marks a user as a platform administrator
type Admin struct {
	UserID uint `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User   User `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for Admin
func (Admin) TableName() string {
	return "admins"
}
