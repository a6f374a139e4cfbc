// ABOUTME: One full poll cycle: fetch, diff, notify, persist
// ABOUTME: Coordinates the classroom source, snapshot store, and dispatcher
package watch

import (
	"context"
	"log"
	"time"

	"github.com/harperreed/classwatch/models"
)

// Source is the classroom surface one cycle reads from.
type Source interface {
	ListAnnouncements(ctx context.Context) ([]models.Item, error)
	ListCourseWork(ctx context.Context) ([]models.Item, error)
	CourseByID(id string) (models.Course, bool)
}

// Checker runs poll cycles against one source, snapshot store, and
// dispatcher.
type Checker struct {
	source         Source
	store          *SnapshotStore
	dispatcher     *Dispatcher
	loc            *time.Location
	withCourseWork bool
}

func NewChecker(source Source, store *SnapshotStore, dispatcher *Dispatcher, loc *time.Location, withCourseWork bool) *Checker {
	return &Checker{
		source:         source,
		store:          store,
		dispatcher:     dispatcher,
		loc:            loc,
		withCourseWork: withCourseWork,
	}
}

// Run executes one cycle. A fetch failure aborts with nothing persisted, so
// the next tick retries wholesale. Dispatch failures are logged per item and
// never block the items after them. The snapshot is replaced with the full
// fetched set after a cycle that produced new items, and immediately on
// first run to seed future diffs.
func (c *Checker) Run(ctx context.Context) error {
	announcements, err := c.source.ListAnnouncements(ctx)
	if err != nil {
		return err
	}

	var courseWork []models.Item
	if c.withCourseWork {
		courseWork, err = c.source.ListCourseWork(ctx)
		if err != nil {
			return err
		}
	}

	previous, existed := c.store.Load()

	newAnnouncements := NewItems(announcements, previous.Announcements)
	newCourseWork := NewItems(courseWork, previous.CourseWork)

	c.notify(ctx, newAnnouncements)
	c.notify(ctx, newCourseWork)

	if !existed || len(newAnnouncements) > 0 || len(newCourseWork) > 0 {
		snap := &models.Snapshot{Announcements: announcements, CourseWork: courseWork}
		if err := c.store.Save(snap); err != nil {
			return err
		}
	}

	if n := len(newAnnouncements) + len(newCourseWork); n > 0 {
		log.Printf("check: notified %d new item(s)", n)
	}

	return nil
}

// notify dispatches new items oldest first, sequentially, to keep the
// channel in chronological reading order.
func (c *Checker) notify(ctx context.Context, items []models.Item) {
	for _, item := range items {
		n := BuildNotification(item, c.source.CourseByID, c.loc)
		if err := c.dispatcher.Send(ctx, n); err != nil {
			log.Printf("check: failed to send notification for %s %s: %v", item.Kind, item.ID, err)
		}
	}
}
