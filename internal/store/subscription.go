package store

// Subscription delivers committed snapshots. The channel holds at most one
// pending snapshot; a newer commit replaces an unread one.
type Subscription struct {
	C <-chan *Snapshot

	ch    chan *Snapshot
	id    uint64
	store *Store
}

// Close stops delivery and closes C. It is safe to call more than once.
func (sub *Subscription) Close() {
	s := sub.store
	s.subMu.Lock()
	defer s.subMu.Unlock()
	if _, ok := s.subs[sub.id]; !ok {
		return
	}
	delete(s.subs, sub.id)
	close(sub.ch)
}

// Subscribe registers an observer. The current snapshot is queued immediately.
func (s *Store) Subscribe() *Subscription {
	ch := make(chan *Snapshot, 1)
	s.subMu.Lock()
	defer s.subMu.Unlock()
	s.nextSub++
	sub := &Subscription{C: ch, ch: ch, id: s.nextSub, store: s}
	s.subs[sub.id] = sub
	ch <- s.current.Load()
	return sub
}

// publish is called with the write lock held, so snapshots reach every
// subscriber in commit order.
func (s *Store) publish(snap *Snapshot) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, sub := range s.subs {
		select {
		case sub.ch <- snap:
		default:
			// drop the stale unread snapshot
			select {
			case <-sub.ch:
			default:
			}
			sub.ch <- snap
		}
	}
}
