package model

import "time"

// ContactSubmission is a message sent through the homepage contact form.
type ContactSubmission struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	FirstName        string    `json:"firstName" gorm:"size:100;not null"`
	LastName         string    `json:"lastName" gorm:"size:100;not null"`
	Email            string    `json:"email" gorm:"size:255;not null"`
	PhoneNumber      string    `json:"phoneNumber" gorm:"size:50;not null"`
	EventTypeID      uint      `json:"eventTypeId" gorm:"not null;index"`
	DateOfEvent      time.Time `json:"dateOfEvent" gorm:"not null"`
	VenueLocation    string    `json:"venueLocation" gorm:"type:text;not null"`
	EventDescription string    `json:"eventDescription" gorm:"type:text;not null"`
	SubmittedAt      time.Time `json:"submittedAt" gorm:"autoCreateTime;index"`
}
