package entity

// Car belongs to at most one user. LicensePlate is unique across the whole
// table, not per owner.
type Car struct {
	ID           int64
	Year         int
	LicensePlate string
	Model        string
	Color        string
	UsageAmount  int
	PhotoURL     string

	// OwnerID references the owning user; nil for an unclaimed car (e.g. one
	// dropped from a user's list during update reconciliation).
	OwnerID *int64
}
