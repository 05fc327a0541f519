package service

import (
	"testing"
	"time"
)

func TestFeed_PublishReachesSubscribers(t *testing.T) {
	t.Parallel()
	feed := NewFeed()
	defer feed.Close()

	sub := feed.Subscribe(CollectionParties, "sub-1")
	feed.Publish(CollectionParties)

	select {
	case change := <-sub.Changes:
		if change.Kind != ChangeData {
			t.Errorf("expected a data change, got %q", change.Kind)
		}
		if change.Collection != CollectionParties {
			t.Errorf("expected parties collection, got %q", change.Collection)
		}
	case <-time.After(time.Second):
		t.Fatal("expected a change notification")
	}
}

func TestFeed_PublishScopedToCollection(t *testing.T) {
	t.Parallel()
	feed := NewFeed()
	defer feed.Close()

	sub := feed.Subscribe(CollectionEvents, "sub-1")
	feed.Publish(CollectionMembers)

	select {
	case change := <-sub.Changes:
		t.Errorf("expected no notification for another collection, got %+v", change)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestFeed_UnsubscribeClosesChannels(t *testing.T) {
	t.Parallel()
	feed := NewFeed()
	defer feed.Close()

	sub := feed.Subscribe(CollectionMembers, "sub-1")
	feed.Unsubscribe(CollectionMembers, "sub-1")

	select {
	case <-sub.Done:
	default:
		t.Error("expected Done to be closed after unsubscribe")
	}
	if feed.SubscriberCount(CollectionMembers) != 0 {
		t.Error("expected no remaining subscribers")
	}
}

func TestFeed_PublishOnNilFeed_IsNoOp(t *testing.T) {
	t.Parallel()
	var feed *Feed
	feed.Publish(CollectionMembers) // must not panic
}

func TestFeed_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	t.Parallel()
	feed := NewFeed()
	defer feed.Close()

	feed.Subscribe(CollectionMembers, "sub-1")
	for i := 0; i < 100; i++ {
		feed.Publish(CollectionMembers)
	}
	// Reaching here without deadlock is the assertion.
}

func TestCollection_Valid(t *testing.T) {
	t.Parallel()
	for _, c := range []Collection{CollectionMembers, CollectionParties, CollectionEvents} {
		if !c.Valid() {
			t.Errorf("expected %q to be valid", c)
		}
	}
	if Collection("loot").Valid() {
		t.Error("expected unknown collection to be invalid")
	}
}
