// ABOUTME: Change detection between a fresh fetch and the persisted snapshot
// ABOUTME: Order-preserving set difference keyed by item id
package watch

import "github.com/harperreed/classwatch/models"

// NewItems returns the items of fetched whose id does not appear in previous,
// in fetched's original order. Items with an empty id are always reported as
// new: re-notifying is the safe failure direction, a missed notification is
// silent.
func NewItems(fetched, previous []models.Item) []models.Item {
	seen := make(map[string]struct{}, len(previous))
	for _, item := range previous {
		if item.ID != "" {
			seen[item.ID] = struct{}{}
		}
	}

	var fresh []models.Item
	for _, item := range fetched {
		if item.ID == "" {
			fresh = append(fresh, item)
			continue
		}
		if _, ok := seen[item.ID]; !ok {
			fresh = append(fresh, item)
		}
	}
	return fresh
}
