package mailer

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/bagdasarian/docspace-access/internal/config"
	"github.com/bagdasarian/docspace-access/internal/domain"
	"github.com/microcosm-cc/bluemonday"
)

const excerptLimit = 200

const baseLayout = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.AppName}}</title>
</head>
<body style="font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; color: #333; max-width: 600px; margin: 0 auto; padding: 20px; background-color: #f9fafb;">
  <div style="background-color: #ffffff; border-radius: 8px; padding: 32px;">
    <div style="border-bottom: 2px solid #e5e7eb; padding-bottom: 20px; margin-bottom: 24px;">
      <div style="font-size: 24px; font-weight: bold; color: #2563eb;">{{.AppName}}</div>
    </div>
    {{template "content" .}}
    <div style="border-top: 1px solid #e5e7eb; margin-top: 32px; padding-top: 20px; font-size: 14px; color: #6b7280;">
      <p>This email was sent by <a href="{{.AppURL}}">{{.AppName}}</a>.</p>
    </div>
  </div>
</body>
</html>`

var contentTemplates = map[string]string{
	"team_invitation": `
    <h2>You've been added to a team!</h2>
    <p>Hi,</p>
    <p><strong>{{.ActorName}}</strong> ({{.ActorEmail}}) has added you to the team <strong>{{.ScopeName}}</strong>.</p>
    <p>You can now collaborate with your team members on projects and documents.</p>
    <p><a href="{{.URL}}">View Team</a></p>`,
	"project_invitation": `
    <h2>You've been added to a project!</h2>
    <p>Hi,</p>
    <p><strong>{{.ActorName}}</strong> ({{.ActorEmail}}) has added you to the project <strong>{{.ScopeName}}</strong> in the <strong>{{.TeamName}}</strong> team.</p>
    <p>You can now collaborate on documents and track progress together.</p>
    <p><a href="{{.URL}}">View Project</a></p>`,
	"mention": `
    <h2>You were mentioned in a comment</h2>
    <p>Hi,</p>
    <p><strong>{{.ActorName}}</strong> ({{.ActorEmail}}) mentioned you in a comment on <strong>{{.FileName}}</strong>.</p>
    <p><strong>Project:</strong> {{.ScopeName}}</p>
    <div style="background-color: #f3f4f6; padding: 16px; border-radius: 6px; margin: 16px 0;">
      <p style="margin: 0; color: #4b5563;">"{{.Excerpt}}"</p>
    </div>
    <p><a href="{{.URL}}">View Comment</a></p>`,
	"file_update": `
    <h2>A file has been updated</h2>
    <p>Hi,</p>
    <p><strong>{{.ActorName}}</strong> ({{.ActorEmail}}) has updated the file <strong>{{.FileName}}</strong> in the project <strong>{{.ScopeName}}</strong>.</p>
    <p><a href="{{.URL}}">View File</a></p>`,
	"scope_update": `
    <h2>{{.ScopeKind}} information has been updated</h2>
    <p>Hi,</p>
    <p><strong>{{.ActorName}}</strong> ({{.ActorEmail}}) has updated the {{.ScopeLabel}} <strong>{{.ScopeName}}</strong>.</p>
    <p>Check the {{.ScopeLabel}} page to see what's changed.</p>
    <p><a href="{{.URL}}">View {{.ScopeKind}}</a></p>`,
}

// MessageData - данные, подставляемые в шаблоны писем
type MessageData struct {
	AppName    string
	AppURL     string
	ActorName  string
	ActorEmail string
	ScopeName  string
	TeamName   string
	ScopeKind  string
	ScopeLabel string
	FileName   string
	Excerpt    string
	URL        string
}

// Templates рендерит письма уведомлений. Безопасен для конкурентного использования.
type Templates struct {
	appName   string
	appURL    string
	templates map[string]*template.Template
	strip     *bluemonday.Policy
}

func NewTemplates(cfg config.AppConfig) *Templates {
	t := &Templates{
		appName:   cfg.Name,
		appURL:    strings.TrimRight(cfg.URL, "/"),
		templates: make(map[string]*template.Template, len(contentTemplates)),
		strip:     bluemonday.StrictPolicy(),
	}
	for name, content := range contentTemplates {
		tpl := template.Must(template.New(name).Parse(baseLayout))
		template.Must(tpl.New("content").Parse(content))
		t.templates[name] = tpl
	}
	return t
}

// URL строит абсолютную ссылку на страницу приложения.
func (t *Templates) URL(path string) string {
	return t.appURL + path
}

func (t *Templates) TeamInvitation(to string, actor domain.Principal, scope domain.ScopeInfo) (domain.Email, error) {
	return t.render("team_invitation", to, fmt.Sprintf("You've been added to %s", scope.Name), MessageData{
		ActorName:  actor.DisplayName(),
		ActorEmail: actor.Email,
		ScopeName:  scope.Name,
		TeamName:   scope.TeamName,
		URL:        t.URL(ScopePath(scope.Scope, scope.ID)),
	})
}

func (t *Templates) ProjectInvitation(to string, actor domain.Principal, scope domain.ScopeInfo) (domain.Email, error) {
	return t.render("project_invitation", to, fmt.Sprintf("You've been added to %s", scope.Name), MessageData{
		ActorName:  actor.DisplayName(),
		ActorEmail: actor.Email,
		ScopeName:  scope.Name,
		TeamName:   scope.TeamName,
		URL:        t.URL(ScopePath(scope.Scope, scope.ID)),
	})
}

func (t *Templates) Mention(to string, actor domain.Principal, projectName, fileName, fileID, comment string) (domain.Email, error) {
	return t.render("mention", to, fmt.Sprintf("%s mentioned you in a comment", actor.DisplayName()), MessageData{
		ActorName:  actor.DisplayName(),
		ActorEmail: actor.Email,
		ScopeName:  projectName,
		FileName:   fileName,
		Excerpt:    t.Excerpt(comment),
		URL:        t.URL(FilePath(fileID)),
	})
}

func (t *Templates) FileUpdate(to string, actor domain.Principal, projectName, fileName, fileID string) (domain.Email, error) {
	return t.render("file_update", to, fmt.Sprintf("%s has been updated", fileName), MessageData{
		ActorName:  actor.DisplayName(),
		ActorEmail: actor.Email,
		ScopeName:  projectName,
		FileName:   fileName,
		URL:        t.URL(FilePath(fileID)),
	})
}

func (t *Templates) ScopeUpdate(to string, actor domain.Principal, scope domain.ScopeInfo) (domain.Email, error) {
	label := string(scope.Scope)
	return t.render("scope_update", to, fmt.Sprintf("%s has been updated", scope.Name), MessageData{
		ActorName:  actor.DisplayName(),
		ActorEmail: actor.Email,
		ScopeName:  scope.Name,
		ScopeKind:  strings.ToUpper(label[:1]) + label[1:],
		ScopeLabel: label,
		URL:        t.URL(ScopePath(scope.Scope, scope.ID)),
	})
}

// Excerpt превращает текст комментария в короткую строку без разметки.
func (t *Templates) Excerpt(content string) string {
	text := t.PlainText(content)
	if utf8.RuneCountInString(text) <= excerptLimit {
		return text
	}
	runes := []rune(text)
	return string(runes[:excerptLimit]) + "..."
}

// PlainText убирает HTML-теги и схлопывает пробелы.
func (t *Templates) PlainText(markup string) string {
	stripped := html.UnescapeString(t.strip.Sanitize(markup))
	return strings.Join(strings.Fields(stripped), " ")
}

func (t *Templates) render(name, to, subject string, data MessageData) (domain.Email, error) {
	tpl, ok := t.templates[name]
	if !ok {
		return domain.Email{}, fmt.Errorf("unknown email template %q", name)
	}

	data.AppName = t.appName
	data.AppURL = t.appURL

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return domain.Email{}, fmt.Errorf("failed to render %s email: %w", name, err)
	}

	body := buf.String()
	return domain.Email{
		To:      to,
		Subject: subject,
		HTML:    body,
		Text:    t.PlainText(body),
	}, nil
}

// ScopePath - относительная ссылка на команду или проект
func ScopePath(scope domain.Scope, id string) string {
	return fmt.Sprintf("/%ss/%s", scope, id)
}

// FilePath - относительная ссылка на файл в редакторе
func FilePath(fileID string) string {
	return "/editor/" + fileID
}
