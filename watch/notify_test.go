package watch

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/classwatch/models"
)

func testLookup(id string) (models.Course, bool) {
	if id == "c1" {
		return models.Course{ID: "c1", Name: "Algorithms"}, true
	}
	return models.Course{}, false
}

func TestBuildNotificationTitle(t *testing.T) {
	tests := []struct {
		name     string
		item     models.Item
		expected string
	}{
		{
			name:     "announcement with known course",
			item:     models.Item{CourseID: "c1", Kind: models.KindAnnouncement},
			expected: `New post in "Algorithms"`,
		},
		{
			name:     "coursework with known course",
			item:     models.Item{CourseID: "c1", Kind: models.KindCourseWork},
			expected: `New classwork in "Algorithms"`,
		},
		{
			name:     "unknown course degrades to generic title",
			item:     models.Item{CourseID: "nope", Kind: models.KindAnnouncement},
			expected: "New post in classroom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := BuildNotification(tt.item, testLookup, time.UTC)
			assert.Equal(t, tt.expected, n.Title)
		})
	}
}

func TestBuildNotificationDescription(t *testing.T) {
	t.Run("announcement without text gets placeholder", func(t *testing.T) {
		n := BuildNotification(models.Item{Kind: models.KindAnnouncement}, testLookup, time.UTC)
		assert.Equal(t, "[post has no text]", n.Description)
	})

	t.Run("coursework without text gets placeholder", func(t *testing.T) {
		n := BuildNotification(models.Item{Kind: models.KindCourseWork}, testLookup, time.UTC)
		assert.Equal(t, "[classwork has no instructions]", n.Description)
	})

	t.Run("long text is truncated to limit", func(t *testing.T) {
		item := models.Item{Kind: models.KindAnnouncement, Text: strings.Repeat("a", 3000)}
		n := BuildNotification(item, testLookup, time.UTC)
		assert.Len(t, n.Description, 2048)
		assert.True(t, strings.HasSuffix(n.Description, "..."))
	})

	t.Run("short text passes through", func(t *testing.T) {
		item := models.Item{Kind: models.KindAnnouncement, Text: "hello class"}
		n := BuildNotification(item, testLookup, time.UTC)
		assert.Equal(t, "hello class", n.Description)
	})
}

func TestBuildNotificationFieldOrder(t *testing.T) {
	item := models.Item{
		ID:           "cw1",
		CourseID:     "c1",
		Kind:         models.KindCourseWork,
		Text:         "read chapter 4",
		CreationTime: time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC),
		DueDate:      &models.DueDate{Year: 2026, Month: 9, Day: 10},
		DueTime:      &models.DueTime{Hours: 23, Minutes: 59},
		WorkType:     "ASSIGNMENT",
		MaxPoints:    100,
		Materials: []models.Material{
			models.DriveFileMaterial("f1", "Notes", "https://drive.example/f1"),
			models.VideoMaterial("Lecture", "https://youtube.example/v1"),
			models.LinkMaterial("Wiki", "https://example.com/wiki"),
			models.FormMaterial("Quiz", "https://forms.example/q1"),
		},
	}

	n := BuildNotification(item, testLookup, time.UTC)

	names := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		names[i] = f.Name
	}

	require.Equal(t, []string{
		"Created at:",
		"Assignment due date:",
		"Classwork type:",
		"Max points:",
		"Attached Google Drive documents:",
		"Attached videos:",
		"Attached links:",
		"Attached forms:",
	}, names)

	assert.Len(t, n.Files, 1)
	assert.Len(t, n.Videos, 1)
	assert.Len(t, n.Links, 1)
	assert.Len(t, n.Forms, 1)
	assert.Equal(t, "[Notes](https://drive.example/f1)", n.Fields[4].Value)
	assert.Equal(t, "100", n.Fields[3].Value)
}

func TestBuildNotificationOptionalFields(t *testing.T) {
	t.Run("coursework without due date has only created-at", func(t *testing.T) {
		item := models.Item{
			Kind:         models.KindCourseWork,
			CourseID:     "c1",
			CreationTime: time.Now(),
		}
		n := BuildNotification(item, testLookup, time.UTC)
		require.Len(t, n.Fields, 1)
		assert.Equal(t, "Created at:", n.Fields[0].Name)
	})

	t.Run("due date needs both date and time", func(t *testing.T) {
		item := models.Item{
			Kind:     models.KindCourseWork,
			DueDate:  &models.DueDate{Year: 2026, Month: 9, Day: 10},
			CourseID: "c1",
		}
		n := BuildNotification(item, testLookup, time.UTC)
		for _, f := range n.Fields {
			assert.NotEqual(t, "Assignment due date:", f.Name)
		}
	})

	t.Run("empty buckets emit no field", func(t *testing.T) {
		item := models.Item{
			Kind: models.KindAnnouncement,
			Materials: []models.Material{
				models.LinkMaterial("Wiki", "https://example.com/wiki"),
			},
		}
		n := BuildNotification(item, testLookup, time.UTC)
		require.Len(t, n.Fields, 2)
		assert.Equal(t, "Created at:", n.Fields[0].Name)
		assert.Equal(t, "Attached links:", n.Fields[1].Name)
	})

	t.Run("multiple materials of one kind are comma joined", func(t *testing.T) {
		item := models.Item{
			Kind: models.KindAnnouncement,
			Materials: []models.Material{
				models.LinkMaterial("One", "https://example.com/1"),
				models.LinkMaterial("Two", "https://example.com/2"),
			},
		}
		n := BuildNotification(item, testLookup, time.UTC)
		require.Len(t, n.Fields, 2)
		assert.Equal(t, "[One](https://example.com/1), [Two](https://example.com/2)", n.Fields[1].Value)
	})
}

func TestBuildNotificationHeader(t *testing.T) {
	post := BuildNotification(models.Item{Kind: models.KindAnnouncement}, nil, time.UTC)
	work := BuildNotification(models.Item{Kind: models.KindCourseWork}, nil, time.UTC)

	assert.Equal(t, "*New update in your classes on Google Classroom!*", post.Header)
	assert.Equal(t, "*New classwork on Google Classroom!*", work.Header)
}
