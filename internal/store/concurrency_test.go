package store

import (
	"sync"
	"testing"

	"TripKeeper/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ConcurrentWritersAndReaders(t *testing.T) {
	s := newTestStore(t)
	trips := make([]model.Trip, 4)
	for i := range trips {
		tr, err := s.CreateTrip("T", day(1), nil)
		require.NoError(t, err)
		trips[i] = tr
	}

	stop := make(chan struct{})
	var readers sync.WaitGroup
	violations := make(chan string, 1)
	for i := 0; i < 4; i++ {
		readers.Add(1)
		go func() {
			defer readers.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := s.Snapshot()
				for _, c := range snap.Cards {
					if _, ok := snap.Trip(c.TripID); !ok {
						select {
						case violations <- c.ID:
						default:
						}
					}
				}
			}
		}()
	}

	var writers sync.WaitGroup
	for i, tr := range trips {
		writers.Add(1)
		go func(i int, tr model.Trip) {
			defer writers.Done()
			for j := 0; j < 20; j++ {
				_, _ = s.CreateCard(tr.ID, model.CardNote, at(1, j%24), nil, "n", "")
			}
			if i%2 == 0 {
				assert.NoError(t, s.DeleteTrip(tr.ID))
			}
		}(i, tr)
	}
	writers.Wait()
	close(stop)
	readers.Wait()

	select {
	case id := <-violations:
		t.Fatalf("reader saw card %s without its trip", id)
	default:
	}

	assert.Len(t, s.Trips(), 2)
	assert.Len(t, s.Cards(), 40)
	for _, c := range s.Cards() {
		assert.True(t, c.TripID == trips[1].ID || c.TripID == trips[3].ID)
	}
}

func TestSubscription_LatestWinsAndClose(t *testing.T) {
	s := newTestStore(t)
	sub := s.Subscribe()

	for i := 0; i < 5; i++ {
		_, err := s.CreateTrip("burst", day(1), nil)
		require.NoError(t, err)
	}
	snap := <-sub.C
	assert.Equal(t, uint64(5), snap.Version, "only the newest unread snapshot is kept")
	assert.Len(t, snap.Trips, 5)

	sub.Close()
	sub.Close()
	_, ok := <-sub.C
	assert.False(t, ok)

	_, err := s.CreateTrip("after close", day(1), nil)
	assert.NoError(t, err)
}
