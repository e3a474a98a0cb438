package model

// Ship represents a vessel that operates cruises.  A ship is
// registered once with a caller-supplied identifier and is not
// mutated afterwards.  Its seat capacity bounds the availability
// of every cruise it operates.
//
// Fields:
//  ID    – caller-supplied unique identifier (positive).
//  Make  – manufacturer name (1–32 chars).
//  Model – model name (1–64 chars).
//  Age   – age of the ship in years (0–500).
//  Seats – total seat capacity (0–500).
type Ship struct {
	ID    uint64 `json:"id"`    // ships.id
	Make  string `json:"make"`  // ships.make
	Model string `json:"model"` // ships.model
	Age   uint32 `json:"age"`   // ships.age
	Seats int32  `json:"seats"` // ships.seats
}

// Repair records a single maintenance event for a ship.  Repairs are
// read-only in this service and only feed the repairs-per-ship report.
type Repair struct {
	RID    uint64 `json:"rid"`     // repairs.rid
	ShipID uint64 `json:"ship_id"` // repairs.ship_id
}
