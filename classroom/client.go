// ABOUTME: Google Classroom API client for course, announcement, and coursework retrieval
// ABOUTME: Filters watched courses and maps API schemas onto internal models
package classroom

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/sync/errgroup"
	classroomapi "google.golang.org/api/classroom/v1"
	driveapi "google.golang.org/api/drive/v2"
	"google.golang.org/api/option"

	"github.com/harperreed/classwatch/config"
	"github.com/harperreed/classwatch/models"
)

// Client wraps the Classroom and Drive services for the watched courses.
type Client struct {
	cfg       *config.Config
	classroom *classroomapi.Service
	drive     *driveapi.Service

	mu      sync.RWMutex
	courses []models.Course
}

// NewClient creates an authenticated client from a token source.
func NewClient(ctx context.Context, cfg *config.Config, ts oauth2.TokenSource) (*Client, error) {
	httpClient := oauth2.NewClient(ctx, ts)

	cs, err := classroomapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create classroom service: %w", err)
	}

	ds, err := driveapi.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{cfg: cfg, classroom: cs, drive: ds}, nil
}

// LoadCourses fetches the course list once and keeps only courses selected by
// the configured enrollment codes or invite-link IDs. With no filters
// configured, every course is watched.
func (c *Client) LoadCourses(ctx context.Context) error {
	resp, err := c.classroom.Courses.List().Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to list courses: %w", err)
	}

	codes := c.cfg.Google.EnrollmentCodes
	linkIDs := c.cfg.Google.LinkIDs

	var courses []models.Course
	for _, course := range resp.Courses {
		m := models.Course{
			ID:             course.Id,
			Name:           course.Name,
			EnrollmentCode: course.EnrollmentCode,
			AlternateLink:  course.AlternateLink,
		}

		if watched(m, codes, linkIDs) {
			courses = append(courses, m)
		}
	}

	c.mu.Lock()
	c.courses = courses
	c.mu.Unlock()

	return nil
}

// watched reports whether a course is selected by the configured enrollment
// codes or invite-link IDs. With no filters configured every course matches.
func watched(course models.Course, codes, linkIDs []string) bool {
	if len(codes) == 0 && len(linkIDs) == 0 {
		return true
	}
	if course.EnrollmentCode != "" && contains(codes, course.EnrollmentCode) {
		return true
	}
	if id := linkID(course.AlternateLink); id != "" && contains(linkIDs, id) {
		return true
	}
	return false
}

// linkID extracts the trailing path segment of a course invite link.
func linkID(alternateLink string) string {
	if alternateLink == "" {
		return ""
	}
	parts := strings.Split(strings.TrimRight(alternateLink, "/"), "/")
	return parts[len(parts)-1]
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// Courses returns the watched course set loaded by LoadCourses.
func (c *Client) Courses() []models.Course {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Course, len(c.courses))
	copy(out, c.courses)
	return out
}

// CourseByID looks up a watched course. The second return is false when the
// id is not among the watched courses.
func (c *Client) CourseByID(id string) (models.Course, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, course := range c.courses {
		if course.ID == id {
			return course, true
		}
	}
	return models.Course{}, false
}

// ListAnnouncements fetches announcements for every watched course. Courses
// are fetched concurrently and the merged result is sorted by update time
// ascending so the oldest new item is dispatched first.
func (c *Client) ListAnnouncements(ctx context.Context) ([]models.Item, error) {
	return c.listItems(ctx, func(ctx context.Context, courseID string) ([]models.Item, error) {
		resp, err := c.classroom.Courses.Announcements.List(courseID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list announcements for course %s: %w", courseID, err)
		}

		items := make([]models.Item, 0, len(resp.Announcements))
		for _, a := range resp.Announcements {
			items = append(items, models.Item{
				ID:            a.Id,
				CourseID:      a.CourseId,
				Kind:          models.KindAnnouncement,
				Text:          a.Text,
				AlternateLink: a.AlternateLink,
				CreationTime:  parseTime(a.CreationTime),
				UpdateTime:    parseTime(a.UpdateTime),
				Materials:     mapMaterials(a.Materials),
			})
		}
		return items, nil
	})
}

// ListCourseWork fetches coursework for every watched course, concurrently,
// merged and sorted by update time ascending.
func (c *Client) ListCourseWork(ctx context.Context) ([]models.Item, error) {
	return c.listItems(ctx, func(ctx context.Context, courseID string) ([]models.Item, error) {
		resp, err := c.classroom.Courses.CourseWork.List(courseID).Context(ctx).Do()
		if err != nil {
			return nil, fmt.Errorf("failed to list coursework for course %s: %w", courseID, err)
		}

		items := make([]models.Item, 0, len(resp.CourseWork))
		for _, cw := range resp.CourseWork {
			item := models.Item{
				ID:            cw.Id,
				CourseID:      cw.CourseId,
				Kind:          models.KindCourseWork,
				Text:          cw.Description,
				AlternateLink: cw.AlternateLink,
				CreationTime:  parseTime(cw.CreationTime),
				UpdateTime:    parseTime(cw.UpdateTime),
				Materials:     mapMaterials(cw.Materials),
				MaxPoints:     cw.MaxPoints,
				WorkType:      cw.WorkType,
			}
			if cw.DueDate != nil {
				item.DueDate = &models.DueDate{
					Year:  cw.DueDate.Year,
					Month: cw.DueDate.Month,
					Day:   cw.DueDate.Day,
				}
			}
			if cw.DueTime != nil {
				item.DueTime = &models.DueTime{
					Hours:   cw.DueTime.Hours,
					Minutes: cw.DueTime.Minutes,
				}
			}
			items = append(items, item)
		}
		return items, nil
	})
}

// listItems fans one list call out per watched course and merges the results.
// Any course failing fails the whole fetch; the cycle retries wholesale on
// the next tick.
func (c *Client) listItems(ctx context.Context, list func(ctx context.Context, courseID string) ([]models.Item, error)) ([]models.Item, error) {
	courses := c.Courses()

	var mu sync.Mutex
	var all []models.Item

	g, gctx := errgroup.WithContext(ctx)
	for _, course := range courses {
		course := course
		g.Go(func() error {
			items, err := list(gctx, course.ID)
			if err != nil {
				return err
			}
			mu.Lock()
			all = append(all, items...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].UpdateTime.Before(all[j].UpdateTime)
	})

	return all, nil
}

// mapMaterials classifies API materials into the four tagged variants.
// Entries with no recognizable variant are skipped, not an error.
func mapMaterials(in []*classroomapi.Material) []models.Material {
	var out []models.Material
	for _, m := range in {
		if m == nil {
			continue
		}
		switch {
		case m.DriveFile != nil && m.DriveFile.DriveFile != nil:
			df := m.DriveFile.DriveFile
			out = append(out, models.DriveFileMaterial(df.Id, df.Title, df.AlternateLink))
		case m.YoutubeVideo != nil:
			out = append(out, models.VideoMaterial(m.YoutubeVideo.Title, m.YoutubeVideo.AlternateLink))
		case m.Link != nil:
			out = append(out, models.LinkMaterial(m.Link.Title, m.Link.Url))
		case m.Form != nil:
			out = append(out, models.FormMaterial(m.Form.Title, m.Form.FormUrl))
		}
	}
	return out
}

// parseTime parses the RFC3339 timestamps the API returns. A malformed or
// empty value maps to the zero time, which sorts first.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
