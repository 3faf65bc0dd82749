package models

import (
	"github.com/jinzhu/gorm"
)

// Profile holds per-identity flags. The authorization gate looks one up by
// the verified token subject; a missing profile means "not an administrator".
type Profile struct {
	gorm.Model
	UserID  string `gorm:"unique_index"`
	Name    string
	IsAdmin bool
}
