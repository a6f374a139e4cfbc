// ABOUTME: Slack delivery of notification payloads and their attachments
// ABOUTME: Sends the primary message, then drive files, videos, links, and forms in order
package watch

import (
	"bytes"
	"context"
	"log"

	"github.com/slack-go/slack"

	"github.com/harperreed/classwatch/models"
)

// ChatClient is the Slack surface the dispatcher needs. *slack.Client
// satisfies it; tests substitute a fake.
type ChatClient interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
	UploadFileV2Context(ctx context.Context, params slack.UploadFileV2Parameters) (*slack.FileSummary, error)
}

// FileFetcher resolves a drive-file material to its binary content.
// A nil result with nil error means the file was skipped (oversized).
type FileFetcher interface {
	GetFile(ctx context.Context, fileID string) (*models.DriveFile, error)
}

// Dispatcher delivers notifications to one Slack channel. The chat client is
// an explicit dependency, never ambient state.
type Dispatcher struct {
	chat       ChatClient
	files      FileFetcher
	channel    string
	ping       bool
	fetchFiles bool
}

func NewDispatcher(chat ChatClient, files FileFetcher, channel string, ping, fetchFiles bool) *Dispatcher {
	return &Dispatcher{
		chat:       chat,
		files:      files,
		channel:    channel,
		ping:       ping,
		fetchFiles: fetchFiles,
	}
}

// Send delivers the primary message and then the attachments, strictly in
// order. A missing channel is a configuration problem, logged and skipped
// rather than fatal. Attachment failures never retract the primary message
// or block later notifications.
func (d *Dispatcher) Send(ctx context.Context, n Notification) error {
	if d.channel == "" {
		log.Printf("dispatch: no channel configured, skipping %q", n.Title)
		return nil
	}

	content := n.Header
	if d.ping {
		content = "<!channel> " + content
	}

	fields := make([]slack.AttachmentField, len(n.Fields))
	for i, f := range n.Fields {
		fields[i] = slack.AttachmentField{Title: f.Name, Value: f.Value}
	}

	attachment := slack.Attachment{
		Title:     n.Title,
		TitleLink: n.URL,
		Text:      n.Description,
		Fields:    fields,
	}

	if _, _, err := d.chat.PostMessage(d.channel,
		slack.MsgOptionText(content, false),
		slack.MsgOptionAttachments(attachment),
	); err != nil {
		return err
	}

	d.sendAttachments(ctx, n)
	return nil
}

// sendAttachments sends the classified materials as follow-up messages:
// drive files first (only when the drive scope was granted), then videos,
// links, and forms as plain URL messages. Failures are logged per material.
func (d *Dispatcher) sendAttachments(ctx context.Context, n Notification) {
	if d.fetchFiles && d.files != nil {
		for _, f := range n.Files {
			file, err := d.files.GetFile(ctx, f.FileID)
			if err != nil {
				log.Printf("dispatch: failed to fetch drive file %s: %v", f.FileID, err)
				continue
			}
			if file == nil {
				log.Printf("dispatch: drive file %s too large, skipping upload", f.FileID)
				continue
			}

			_, err = d.chat.UploadFileV2Context(ctx, slack.UploadFileV2Parameters{
				Channel:  d.channel,
				Filename: file.Title,
				Title:    file.Title,
				FileSize: len(file.Data),
				Reader:   bytes.NewReader(file.Data),
			})
			if err != nil {
				log.Printf("dispatch: failed to upload %s: %v", file.Title, err)
			}
		}
	}

	for _, bucket := range [][]models.Material{n.Videos, n.Links, n.Forms} {
		for _, m := range bucket {
			if _, _, err := d.chat.PostMessage(d.channel, slack.MsgOptionText(m.URL, false)); err != nil {
				log.Printf("dispatch: failed to send %s link %s: %v", m.Kind, m.URL, err)
			}
		}
	}
}
