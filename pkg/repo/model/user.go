package model

// User is a portal account. Passwords are stored as bcrypt hashes only.
type User struct {
	BaseModel
	Username     string `gorm:"type:varchar(150);not null;uniqueIndex" json:"username"`
	Email        string `gorm:"type:varchar(254)" json:"email"`
	PasswordHash string `gorm:"type:varchar(100);not null" json:"-"`
	IsStaff      bool   `gorm:"not null;default:false" json:"is_staff"`
	IsActive     bool   `gorm:"not null;default:true" json:"is_active"`
}

func (*User) TableName() string { return "user_account" }

// UserData is the authenticated principal attached to a request.
type UserData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsStaff  bool   `json:"is_staff"`
}
