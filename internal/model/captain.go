package model

// Captain represents a registered cruise captain.  Captains are
// referenced by operational records outside this service; here they
// are only created and deleted.
//
// Fields:
//  ID          – caller-supplied unique identifier.
//  FullName    – captain's full name (1–128 chars).
//  Nationality – nationality label (1–24 chars).
type Captain struct {
	ID          uint64 `json:"id"`          // captains.id
	FullName    string `json:"full_name"`   // captains.full_name
	Nationality string `json:"nationality"` // captains.nationality
}
