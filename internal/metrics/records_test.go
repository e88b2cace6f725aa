package metrics

import (
	"testing"
	"time"

	"freight-backend/internal/notify"
	"freight-backend/internal/store"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	ID string `json:"id"`
}

func TestTrackRecordsCountsAtStartup(t *testing.T) {
	ms := store.NewMemStore()
	require.NoError(t, ms.Save(store.CollectionShipments, []entry{{ID: "1"}, {ID: "2"}}))

	TrackRecords(ms, nil)

	gauge := RecordsTotal.WithLabelValues(store.CollectionShipments)
	assert.Equal(t, float64(2), testutil.ToFloat64(gauge))
}

func TestTrackRecordsFollowsHubEvents(t *testing.T) {
	ms := store.NewMemStore()
	hub := notify.NewHub()
	require.NoError(t, ms.Save(store.CollectionExpenses, []entry{{ID: "1"}}))

	TrackRecords(ms, hub)

	require.NoError(t, ms.Save(store.CollectionExpenses, []entry{{ID: "1"}, {ID: "2"}, {ID: "3"}}))
	hub.Publish(store.CollectionExpenses, time.Now())

	gauge := RecordsTotal.WithLabelValues(store.CollectionExpenses)
	assert.Equal(t, float64(3), testutil.ToFloat64(gauge))
}
