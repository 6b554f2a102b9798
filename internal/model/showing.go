package model

import "time"

// Showing represents one bookable movie screening and its seat inventory.
// The JSON names mirror the field names used by the HTML forms ("Movie name",
// "Available Seats", ...), so clients that read /get-all-movies see the same
// keys they post.
//
// Fields:
//  ID             – store-assigned identity.
//  Name           – business key used for lookups; not guaranteed unique.
//  Category       – free-form genre/category used by /get-movies.
//  Description    – synopsis shown on the detail view.
//  Actors         – free-form actor list.
//  ShowTime       – show time as entered by the admin.
//  ScreenNo       – screen the showing runs on.
//  TotalSeats     – capacity; zero means "not recorded".
//  AvailableSeats – seats still bookable (never negative).
//  Version        – bumped on every seat mutation; guards conditioned writes.
type Showing struct {
	ID             uint64    `json:"_id" gorm:"primaryKey;column:id"`
	Name           string    `json:"Movie name" gorm:"column:movie_name;index;not null"`
	Category       string    `json:"Category" gorm:"column:category;index"`
	Description    string    `json:"Description" gorm:"column:description"`
	Actors         string    `json:"Actors" gorm:"column:actors"`
	ShowTime       string    `json:"Show time" gorm:"column:show_time"`
	ScreenNo       string    `json:"Screen no" gorm:"column:screen_no"`
	TotalSeats     int       `json:"Total Seats" gorm:"column:total_seats;not null;default:0"`
	AvailableSeats int       `json:"Available Seats" gorm:"column:available_seats;not null;default:0"`
	Version        uint64    `json:"version" gorm:"column:version;not null;default:0"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
	UpdatedAt      time.Time `json:"updated_at" gorm:"column:updated_at"`
}

// TableName pins the GORM table to the one created by the MySQL migration.
func (Showing) TableName() string { return "showings" }

// ShowingDetail is the reduced view returned by /get-movie-details.
type ShowingDetail struct {
	Description    string `json:"Description"`
	Actors         string `json:"Actors"`
	AvailableSeats int    `json:"AvailableSeats"`
	ShowTime       string `json:"ShowTime"`
	ScreenNo       string `json:"ScreenNo"`
}

// Detail projects a showing onto its detail view.
func (s Showing) Detail() ShowingDetail {
	return ShowingDetail{
		Description:    s.Description,
		Actors:         s.Actors,
		AvailableSeats: s.AvailableSeats,
		ShowTime:       s.ShowTime,
		ScreenNo:       s.ScreenNo,
	}
}
