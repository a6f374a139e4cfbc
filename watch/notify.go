// ABOUTME: Notification construction from classroom items
// ABOUTME: Builds title, truncated description, ordered fields, and material buckets
package watch

import (
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/classwatch/models"
)

// CourseLookup resolves a course id to its course record. The second return
// is false when the course is unknown; the notification then degrades to a
// generic title instead of failing.
type CourseLookup func(id string) (models.Course, bool)

// Field is one name/value pair of a notification, in display order.
type Field struct {
	Name  string
	Value string
}

// Notification is the ephemeral payload built per new item. It is dispatched
// and discarded, never persisted.
type Notification struct {
	Header      string
	Title       string
	Description string
	URL         string
	Fields      []Field
	Files       []models.Material
	Videos      []models.Material
	Links       []models.Material
	Forms       []models.Material
}

// BuildNotification maps one new item into a notification payload. Field
// order is fixed: created-at, due-date, work-type, max-points, drive files,
// videos, links, forms. Empty buckets emit no field.
func BuildNotification(item models.Item, lookup CourseLookup, loc *time.Location) Notification {
	isCourseWork := item.Kind == models.KindCourseWork

	kind := "post"
	if isCourseWork {
		kind = "classwork"
	}

	title := fmt.Sprintf("New %s in classroom", kind)
	if lookup != nil {
		if course, ok := lookup(item.CourseID); ok {
			title = fmt.Sprintf("New %s in %q", kind, course.Name)
		}
	}

	description := item.Text
	if description == "" {
		if isCourseWork {
			description = "[classwork has no instructions]"
		} else {
			description = "[post has no text]"
		}
	} else {
		description = Truncate(description, maxDescriptionLen)
	}

	header := "*New update in your classes on Google Classroom!*"
	if isCourseWork {
		header = "*New classwork on Google Classroom!*"
	}

	n := Notification{
		Header:      header,
		Title:       title,
		Description: description,
		URL:         item.AlternateLink,
	}

	for _, m := range item.Materials {
		switch m.Kind {
		case models.MaterialDriveFile:
			n.Files = append(n.Files, m)
		case models.MaterialVideo:
			n.Videos = append(n.Videos, m)
		case models.MaterialLink:
			n.Links = append(n.Links, m)
		case models.MaterialForm:
			n.Forms = append(n.Forms, m)
		}
	}

	n.Fields = append(n.Fields, Field{
		Name:  "Created at:",
		Value: FormatTime(item.CreationTime, loc),
	})

	if item.DueDate != nil && item.DueTime != nil {
		n.Fields = append(n.Fields, Field{
			Name:  "Assignment due date:",
			Value: FormatTime(BuildDueDate(item.DueDate, item.DueTime), loc),
		})
	}

	if item.WorkType != "" {
		n.Fields = append(n.Fields, Field{
			Name:  "Classwork type:",
			Value: item.WorkType,
		})
	}

	if item.MaxPoints > 0 {
		n.Fields = append(n.Fields, Field{
			Name:  "Max points:",
			Value: fmt.Sprintf("%g", item.MaxPoints),
		})
	}

	appendBucket := func(name string, bucket []models.Material) {
		if len(bucket) == 0 {
			return
		}
		display := make([]string, len(bucket))
		for i, m := range bucket {
			display[i] = m.DisplayText()
		}
		n.Fields = append(n.Fields, Field{Name: name, Value: strings.Join(display, ", ")})
	}

	appendBucket("Attached Google Drive documents:", n.Files)
	appendBucket("Attached videos:", n.Videos)
	appendBucket("Attached links:", n.Links)
	appendBucket("Attached forms:", n.Forms)

	return n
}
