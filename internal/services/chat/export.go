// File: internal/services/chat/export.go
package chat

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// markdown renders message bodies. Raw HTML in content is omitted, not passed through.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

var exportTemplate = template.Must(template.New("export").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">Model: {{.Model}} &middot; Started {{.Started}}</p>
{{range .Messages}}<section class="message {{.Role}}">
<h2>{{.Role}} <time>{{.At}}</time></h2>
{{.Body}}</section>
{{end}}</body>
</html>
`))

type exportMessage struct {
	Role string
	At   string
	Body template.HTML
}

// ExportConversation renders the conversation as a standalone HTML transcript,
// oldest message first, with message content treated as Markdown.
func (s *Service) ExportConversation(ctx context.Context, ownerID, id uuid.UUID) ([]byte, error) {
	conv, err := s.GetConversation(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	title := "Untitled conversation"
	if conv.Title != nil {
		title = *conv.Title
	}

	msgs := make([]exportMessage, 0, len(conv.Messages))
	for i := len(conv.Messages) - 1; i >= 0; i-- {
		m := conv.Messages[i]
		var body bytes.Buffer
		if err := markdown.Convert([]byte(m.Content), &body); err != nil {
			return nil, fmt.Errorf("render message %s: %w", m.ID, err)
		}
		msgs = append(msgs, exportMessage{
			Role: string(m.Role),
			At:   m.CreatedAt.UTC().Format("2006-01-02 15:04:05 UTC"),
			Body: template.HTML(body.String()),
		})
	}

	var out bytes.Buffer
	err = exportTemplate.Execute(&out, map[string]interface{}{
		"Title":    title,
		"Model":    conv.Model,
		"Started":  conv.CreatedAt.UTC().Format("2006-01-02 15:04 UTC"),
		"Messages": msgs,
	})
	if err != nil {
		return nil, fmt.Errorf("render export: %w", err)
	}

	s.logger.Info("conversation exported", "conversation_id", conv.ID, "messages", len(msgs))
	return out.Bytes(), nil
}
