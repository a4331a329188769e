package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint   `gorm:"primarykey" json:"id"`
	FullName     string `gorm:"not null" json:"full_name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	MobileNumber string `gorm:"uniqueIndex;not null" json:"mobile_number"`
	Password     string `gorm:"not null" json:"-"`

	Role          string   `gorm:"type:varchar(20);default:'user'" json:"role"` // user, studio, admin, manager, accountant
	Skills        []string `gorm:"serializer:json" json:"skills,omitempty"`
	ProfilePicURL string   `gorm:"type:text" json:"profile_pic_url,omitempty"`
	City          string   `json:"city,omitempty"`

	AverageRating float64 `gorm:"default:0" json:"average_rating"`
	ReviewCount   int     `gorm:"default:0" json:"review_count"`

	// Free-tier quota counters, reset lazily on a 90-day window.
	FreePostsUsed     int        `gorm:"default:0" json:"free_posts_used"`
	LastFreePostReset *time.Time `json:"last_free_post_reset,omitempty"`
	FreeBidsUsed      int        `gorm:"default:0" json:"free_bids_used"`
	LastFreeBidReset  *time.Time `json:"last_free_bid_reset,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// BeforeCreate hook to set default role
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.Role == "" {
		u.Role = "user"
	}
	return nil
}

// IsAdmin checks if user has admin role
func (u *User) IsAdmin() bool {
	return u.Role == "admin"
}
