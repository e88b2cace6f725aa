package metrics

import (
	"encoding/json"

	"freight-backend/internal/notify"
	"freight-backend/internal/store"
)

var ledgerCollections = []string{
	store.CollectionShipments,
	store.CollectionDeletedShipments,
	store.CollectionTrips,
	store.CollectionDeletedTrips,
	store.CollectionExpenses,
	store.CollectionUsers,
}

// TrackRecords keeps RecordsTotal in sync with the ledger collections.
// Every collection is counted once at startup and re-counted whenever the
// hub reports a mutation.
func TrackRecords(s store.Store, hub *notify.Hub) {
	for _, name := range ledgerCollections {
		refreshRecords(s, name)
	}
	if hub != nil {
		hub.Subscribe(func(ev notify.Event) {
			refreshRecords(s, ev.Collection)
		})
	}
}

func refreshRecords(s store.Store, name string) {
	var records []json.RawMessage
	if err := s.Load(name, &records); err != nil {
		return
	}
	RecordsTotal.WithLabelValues(name).Set(float64(len(records)))
}
