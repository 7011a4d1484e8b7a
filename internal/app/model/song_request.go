package model

import "time"

// PlaceholderArtworkURL is shown for candidates the search provider returned without artwork.
const PlaceholderArtworkURL = "/images/song-placeholder.png"

// SongRequest is a guest's request for a song, stored in Postgres.
//
// Archived requests drop out of the active listing but stay in the table until a
// staff member deletes them.
type SongRequest struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"type:text;not null"`
	ArtistNames string    `json:"artistNames" gorm:"type:text;not null"`
	URL         string    `json:"url" gorm:"type:text;not null"`
	ImageURL    string    `json:"imageUrl" gorm:"type:text"`
	RequestedAt time.Time `json:"requestDate" gorm:"not null;index"`
	Archived    bool      `json:"isArchived" gorm:"not null;default:false;index"`
}

// SongCandidate is a search hit that has not been persisted.
type SongCandidate struct {
	Title       string `json:"title"`
	ArtistNames string `json:"artist_names"`
	URL         string `json:"url"`
	ImageURL    string `json:"song_art_image_thumbnail_url"`
}

// ArtworkOrPlaceholder returns the thumbnail, falling back to the placeholder image.
func (c SongCandidate) ArtworkOrPlaceholder() string {
	if c.ImageURL == "" {
		return PlaceholderArtworkURL
	}
	return c.ImageURL
}
