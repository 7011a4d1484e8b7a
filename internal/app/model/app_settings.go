package model

import "time"

// AppSettingsID is the primary key of the single settings row.
const AppSettingsID uint = 1

// AppSettings holds site-wide switches. There is exactly one row, created at startup.
type AppSettings struct {
	ID                    uint      `json:"id" gorm:"primaryKey;autoIncrement:false"`
	AcceptingSongRequests bool      `json:"acceptingSongRequests" gorm:"not null;default:false"`
	UpdatedAt             time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
