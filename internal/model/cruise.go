package model

import "time"

// Cruise represents a scheduled sailing.  NumSold is the
// authoritative counter of seats consumed: the number of seats still
// available on a cruise is the operating ship's capacity minus
// NumSold.
//
// Fields:
//  CNum          – unique cruise number.
//  Cost          – ticket cost (positive).
//  NumSold       – cumulative tickets sold (never decremented here).
//  NumStops      – number of intermediate stops.
//  DepartureDate – scheduled departure.
//  ArrivalDate   – scheduled arrival.
//  ArrivalPort   – arrival port code (≤5 chars).
//  DeparturePort – departure port code (≤5 chars).
type Cruise struct {
	CNum          uint64    `json:"cnum"`           // cruises.cnum
	Cost          uint32    `json:"cost"`           // cruises.cost
	NumSold       int32     `json:"num_sold"`       // cruises.num_sold
	NumStops      uint32    `json:"num_stops"`      // cruises.num_stops
	DepartureDate time.Time `json:"departure_date"` // cruises.departure_date
	ArrivalDate   time.Time `json:"arrival_date"`   // cruises.arrival_date
	ArrivalPort   string    `json:"arrival_port"`   // cruises.arrival_port
	DeparturePort string    `json:"departure_port"` // cruises.departure_port
}

// CruiseInfo associates a cruise with the ship operating it.  The
// linked ship's seat capacity bounds the cruise's availability.
type CruiseInfo struct {
	CruiseID uint64 `json:"cruise_id"` // cruise_info.cruise_id
	ShipID   uint64 `json:"ship_id"`   // cruise_info.ship_id
}
