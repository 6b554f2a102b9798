// Package queue defines message payloads exchanged over the message broker.
package queue

// SeatsBookedQueue is the durable queue carrying SeatsBookedEvent messages.
const SeatsBookedQueue = "seats.booked"

// SeatsBookedEvent is published after a booking has been persisted.  It
// carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the catalog.
type SeatsBookedEvent struct {
	EventID     string `json:"event_id"`
	ShowingID   uint64 `json:"showing_id"`
	ShowingName string `json:"movie_name"`
	ShowTime    string `json:"show_time"`
	ScreenNo    string `json:"screen_no"`
	Seats       int    `json:"seats"`
	Remaining   int    `json:"remaining"`
	BookedBy    string `json:"booked_by"`
	Role        string `json:"role"`
	BookedAt    string `json:"booked_at"`
}
