package model

// EventType is one of the kinds of event offered on the contact form.
type EventType struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"size:100;not null;uniqueIndex"`
}

// DefaultEventTypes are seeded at startup when missing.
var DefaultEventTypes = []string{
	"Wedding",
	"Corporate Event",
	"Birthday Party",
	"School Dance",
	"Prom",
	"Graduation Party",
	"Anniversary",
	"Holiday Party",
	"Other",
}

type PricePackage struct {
	ID          uint                  `json:"id" gorm:"primaryKey"`
	Name        string                `json:"name" gorm:"size:100;not null"`
	Description string                `json:"description" gorm:"type:text"`
	Price       float64               `json:"price" gorm:"not null;index"`
	Features    []PricePackageFeature `json:"features" gorm:"constraint:OnDelete:CASCADE"`
}

type PricePackageFeature struct {
	ID             uint   `json:"id" gorm:"primaryKey"`
	Name           string `json:"name" gorm:"size:200;not null"`
	Description    string `json:"description" gorm:"type:text"`
	PricePackageID uint   `json:"pricePackageId" gorm:"not null;index"`
}

// Counter is a homepage statistic such as "events played".
type Counter struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	Name     string `json:"name" gorm:"size:100;not null"`
	Value    int    `json:"value" gorm:"not null;default:0"`
	ShowPlus bool   `json:"showPlus" gorm:"not null;default:false"`
}

type About struct {
	ID          uint   `json:"id" gorm:"primaryKey"`
	Description string `json:"description" gorm:"type:text;not null"`
	ImageURL    string `json:"imageUrl" gorm:"type:text"`
}

// All returns every model managed by AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&SongRequest{},
		&AppSettings{},
		&ContactSubmission{},
		&IntakeForm{},
		&EventType{},
		&PricePackage{},
		&PricePackageFeature{},
		&Counter{},
		&About{},
	}
}
