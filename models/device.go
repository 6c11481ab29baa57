package models

import "time"

type Device struct {
	ID        uint      `json:"id" gorm:"primary_key"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	OwnerID   string    `json:"owner_id" gorm:"index"` // Supabase / Firebase user id, shared by the owner's devices
	Secret    string    `json:"-"`
	FCMToken  string    `json:"fcm_token"`
	TimeZone  string    `json:"time_zone"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Location returns the zone rules are evaluated in. Unknown or empty zones
// fall back to the server's local zone.
func (d Device) Location() *time.Location {
	if d.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(d.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}
