package email

import (
	"context"
	"embed"
	"html"

	"github.com/sigap/sigap-server/models/userdata"
	"github.com/sigap/sigap-server/utils-go"
)

//go:embed templates/*.html
var templates embed.FS

const (
	resetPasswordTemplate = "templates/reset-password.html"
	welcomeTemplate       = "templates/welcome.html"

	resetPasswordSubject = "Reset your password"
	welcomeSubject       = "Your team account is ready"
)

type Mailer struct {
	sender Sender
}

func NewMailer(sender Sender) *Mailer {
	return &Mailer{sender: sender}
}

func render(name string, vars map[string]string) (string, error) {
	raw, err := templates.ReadFile(name)
	if err != nil {
		return "", err
	}

	escaped := make(map[string]string, len(vars))
	for k, v := range vars {
		escaped[k] = html.EscapeString(v)
	}
	return utils.Format(string(raw), escaped), nil
}

func (m *Mailer) SendPasswordReset(ctx context.Context, member *userdata.Member, link string) error {
	vars := member.ToMap()
	vars["{{reset.link}}"] = link

	body, err := render(resetPasswordTemplate, vars)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, member.Email, resetPasswordSubject, body)
}

// SendWelcome delivers the temporary password of a freshly created team manager.
func (m *Mailer) SendWelcome(ctx context.Context, team *userdata.Team, manager *userdata.Member, password string) error {
	vars := manager.ToMap()
	vars["{{team.name}}"] = team.TeamName
	vars["{{member.password}}"] = password

	body, err := render(welcomeTemplate, vars)
	if err != nil {
		return err
	}
	return m.sender.Send(ctx, manager.Email, welcomeSubject, body)
}
