package models

// SiteSetting is the single-row site configuration table.
type SiteSetting struct {
	Base
	SiteTitle       string `gorm:"not null"`
	SiteDescription string `gorm:"type:text"`
}
