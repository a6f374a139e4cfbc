// ABOUTME: Data models for classroom content and persisted snapshots
// ABOUTME: Defines Course, Item, tagged Material variants, and Snapshot structs
package models

import "time"

// ItemKind distinguishes the two stream types Classroom publishes.
type ItemKind string

const (
	KindAnnouncement ItemKind = "announcement"
	KindCourseWork   ItemKind = "courseWork"
)

type Course struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	EnrollmentCode string `json:"enrollment_code,omitempty"`
	AlternateLink  string `json:"alternate_link,omitempty"`
}

// DueDate holds the calendar portion of a coursework deadline as the API
// reports it: separate numeric components, no timezone.
type DueDate struct {
	Year  int64 `json:"year"`
	Month int64 `json:"month"`
	Day   int64 `json:"day"`
}

// DueTime holds the clock portion of a coursework deadline, UTC.
type DueTime struct {
	Hours   int64 `json:"hours"`
	Minutes int64 `json:"minutes"`
}

// Item is one published entry in a course stream. Announcements carry Text;
// coursework additionally carries the optional grading fields.
type Item struct {
	ID            string     `json:"id"`
	CourseID      string     `json:"course_id"`
	Kind          ItemKind   `json:"kind"`
	Text          string     `json:"text,omitempty"`
	AlternateLink string     `json:"alternate_link,omitempty"`
	CreationTime  time.Time  `json:"creation_time"`
	UpdateTime    time.Time  `json:"update_time"`
	Materials     []Material `json:"materials,omitempty"`
	DueDate       *DueDate   `json:"due_date,omitempty"`
	DueTime       *DueTime   `json:"due_time,omitempty"`
	MaxPoints     float64    `json:"max_points,omitempty"`
	WorkType      string     `json:"work_type,omitempty"`
}

// MaterialKind tags the variant carried by a Material.
type MaterialKind string

const (
	MaterialDriveFile MaterialKind = "driveFile"
	MaterialVideo     MaterialKind = "video"
	MaterialLink      MaterialKind = "link"
	MaterialForm      MaterialKind = "form"
)

// Material is a tagged union over the four attachment variants. Drive files
// carry a FileID needing a follow-up fetch; the other three carry a URL.
type Material struct {
	Kind   MaterialKind `json:"kind"`
	Title  string       `json:"title"`
	FileID string       `json:"file_id,omitempty"`
	URL    string       `json:"url,omitempty"`
}

func DriveFileMaterial(fileID, title, link string) Material {
	return Material{Kind: MaterialDriveFile, Title: title, FileID: fileID, URL: link}
}

func VideoMaterial(title, url string) Material {
	return Material{Kind: MaterialVideo, Title: title, URL: url}
}

func LinkMaterial(title, url string) Material {
	return Material{Kind: MaterialLink, Title: title, URL: url}
}

func FormMaterial(title, url string) Material {
	return Material{Kind: MaterialForm, Title: title, URL: url}
}

// DisplayText renders the material as a markdown-style [title](url) label.
func (m Material) DisplayText() string {
	return "[" + m.Title + "](" + m.URL + ")"
}

// Snapshot is the last fully-processed state, persisted as one JSON document.
// It is replaced wholesale after a productive cycle, never merged.
type Snapshot struct {
	Announcements []Item `json:"announcements"`
	CourseWork    []Item `json:"courseWork"`
}

// DriveFile is the decoded content of a drive-file material.
type DriveFile struct {
	Title string
	Data  []byte
}
