package model

import (
	"time"

	"gorm.io/datatypes"
)

// IntakeForm is the detailed planning questionnaire a booked client fills in.
type IntakeForm struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	ClientName     string    `json:"clientName" gorm:"size:200;not null"`
	Email          string    `json:"email" gorm:"size:255;not null"`
	PhoneNumber    string    `json:"phoneNumber" gorm:"size:50;not null"`
	EventDate      time.Time `json:"eventDate" gorm:"not null"`
	EventType      string    `json:"eventType" gorm:"size:100;not null"`
	VenueLocation  string    `json:"venueLocation" gorm:"type:text;not null"`
	GuestCount     int       `json:"guestCount" gorm:"not null"`
	EventDuration  string    `json:"eventDuration" gorm:"size:50;not null"`
	EventStartTime string    `json:"eventStartTime" gorm:"size:20;not null"`
	EventEndTime   string    `json:"eventEndTime" gorm:"size:20;not null"`

	// Music preferences
	MusicGenres      datatypes.JSONSlice[string] `json:"musicGenres" gorm:"not null"`
	MusicEra         string                      `json:"musicEra" gorm:"size:100;not null"`
	VolumePreference string                      `json:"volumePreference" gorm:"size:50;not null"`

	// Must play list
	MustPlaySongs         string  `json:"mustPlaySongs" gorm:"type:text;not null;default:''"`
	MustPlaySpotifyURL    *string `json:"mustPlaySpotifyUrl"`
	MustPlayAppleMusicURL *string `json:"mustPlayAppleMusicUrl"`
	MustPlayOtherURL      *string `json:"mustPlayOtherUrl"`

	// Do not play list
	DoNotPlaySongs         string  `json:"doNotPlaySongs" gorm:"type:text;not null;default:''"`
	DoNotPlaySpotifyURL    *string `json:"doNotPlaySpotifyUrl"`
	DoNotPlayAppleMusicURL *string `json:"doNotPlayAppleMusicUrl"`
	DoNotPlayOtherURL      *string `json:"doNotPlayOtherUrl"`

	// Special requests
	SpecialAnnouncements *string `json:"specialAnnouncements" gorm:"type:text"`
	FirstDanceSong       *string `json:"firstDanceSong"`
	LastDanceSong        *string `json:"lastDanceSong"`
	CeremonySongs        *string `json:"ceremonySongs" gorm:"type:text"`

	// Equipment and setup
	EquipmentRequests *string `json:"equipmentRequests" gorm:"type:text"`
	SetupRequirements *string `json:"setupRequirements" gorm:"type:text"`

	SpecialRequests *string `json:"specialRequests" gorm:"type:text"`

	SubmittedAt time.Time `json:"submittedAt" gorm:"autoCreateTime;index"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
