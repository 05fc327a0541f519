package service

import (
	"sync"
	"time"
)

// Collection identifies a data set that clients can watch for changes
type Collection string

const (
	CollectionMembers Collection = "members"
	CollectionParties Collection = "parties"
	CollectionEvents  Collection = "events"
)

// Valid reports whether the collection name is one clients may subscribe to
func (c Collection) Valid() bool {
	switch c {
	case CollectionMembers, CollectionParties, CollectionEvents:
		return true
	}
	return false
}

// ChangeKind distinguishes data changes from keep-alive ticks
type ChangeKind string

const (
	ChangeData      ChangeKind = "change"
	ChangeHeartbeat ChangeKind = "heartbeat"
)

// Change is a notification that a collection's contents moved. It carries
// no payload; subscribers re-read the collection and receive a consistent
// snapshot, never a partial mutation.
type Change struct {
	Kind       ChangeKind
	Collection Collection
}

// FeedSubscriber represents a connected change-feed client
type FeedSubscriber struct {
	ID         string
	Collection Collection
	Changes    chan Change
	Done       chan struct{}
}

// Feed fans collection change notifications out to subscribers. Services
// publish after every successful write; the live handler turns each
// notification into a fresh snapshot for its clients.
type Feed struct {
	mu          sync.RWMutex
	subscribers map[Collection]map[string]*FeedSubscriber
	heartbeat   *time.Ticker
	done        chan struct{}
}

// NewFeed creates a new change feed
func NewFeed() *Feed {
	feed := &Feed{
		subscribers: make(map[Collection]map[string]*FeedSubscriber),
		done:        make(chan struct{}),
	}
	feed.heartbeat = time.NewTicker(30 * time.Second)
	go feed.sendHeartbeats()
	return feed
}

// Subscribe adds a new subscriber for a collection
func (f *Feed) Subscribe(collection Collection, subscriberID string) *FeedSubscriber {
	f.mu.Lock()
	defer f.mu.Unlock()

	sub := &FeedSubscriber{
		ID:         subscriberID,
		Collection: collection,
		Changes:    make(chan Change, 16), // Buffer to prevent blocking
		Done:       make(chan struct{}),
	}

	if f.subscribers[collection] == nil {
		f.subscribers[collection] = make(map[string]*FeedSubscriber)
	}
	f.subscribers[collection][subscriberID] = sub

	return sub
}

// Unsubscribe removes a subscriber
func (f *Feed) Unsubscribe(collection Collection, subscriberID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if subs, ok := f.subscribers[collection]; ok {
		if sub, ok := subs[subscriberID]; ok {
			close(sub.Done)
			close(sub.Changes)
			delete(subs, subscriberID)
		}
		if len(subs) == 0 {
			delete(f.subscribers, collection)
		}
	}
}

// Publish notifies all subscribers of a collection that its contents
// changed. Safe to call on a nil feed, which services treat as "no feed
// wired" (tests mostly run without one).
func (f *Feed) Publish(collection Collection) {
	if f == nil {
		return
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	subs, ok := f.subscribers[collection]
	if !ok {
		return
	}

	change := Change{Kind: ChangeData, Collection: collection}
	for _, sub := range subs {
		select {
		case sub.Changes <- change:
		default:
			// Buffer full, skip this subscriber
		}
	}
}

// sendHeartbeats sends periodic keep-alives to all subscribers
func (f *Feed) sendHeartbeats() {
	for {
		select {
		case <-f.heartbeat.C:
			f.mu.RLock()
			for collection, subs := range f.subscribers {
				change := Change{Kind: ChangeHeartbeat, Collection: collection}
				for _, sub := range subs {
					select {
					case sub.Changes <- change:
					default:
					}
				}
			}
			f.mu.RUnlock()
		case <-f.done:
			return
		}
	}
}

// Close stops the feed and disconnects all subscribers
func (f *Feed) Close() {
	close(f.done)
	f.heartbeat.Stop()

	f.mu.Lock()
	defer f.mu.Unlock()

	for collection, subs := range f.subscribers {
		for _, sub := range subs {
			close(sub.Done)
			close(sub.Changes)
		}
		delete(f.subscribers, collection)
	}
}

// SubscriberCount returns the number of subscribers for a collection
func (f *Feed) SubscriberCount(collection Collection) int {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if subs, ok := f.subscribers[collection]; ok {
		return len(subs)
	}
	return 0
}
