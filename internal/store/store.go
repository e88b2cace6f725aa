// Package store persists named JSON collections for the ledgers.
//
// Each collection is a JSON array under a logical name. Save is a total
// overwrite; there are no transactions. A logical operation that touches two
// collections (a trash move) performs two independent Saves with no atomicity
// guarantee. This is an accepted limitation, not handled here.
package store

// Collection names used by the ledgers.
const (
	CollectionShipments        = "shipments"
	CollectionDeletedShipments = "deletedShipments"
	CollectionTrips            = "trips"
	CollectionDeletedTrips     = "deletedTrips"
	CollectionExpenses         = "expenses"
	CollectionUsers            = "users"
)

// Store loads and saves named JSON-serializable collections.
type Store interface {
	// Load unmarshals the named collection into v. A collection that has
	// never been written loads as empty (v is left at its zero value).
	Load(name string, v interface{}) error

	// Save overwrites the named collection with the JSON encoding of v.
	// No partial update, no merge.
	Save(name string, v interface{}) error
}
