package email

import (
	"bytes"
	htmltemplate "html/template"
	"text/template"
)

type templatePair struct {
	subject *template.Template
	text    *template.Template
	html    *htmltemplate.Template
}

func mustPair(subject, text, html string) templatePair {
	return templatePair{
		subject: template.Must(template.New("subject").Parse(subject)),
		text:    template.Must(template.New("text").Parse(text)),
		html:    htmltemplate.Must(htmltemplate.New("html").Parse(html)),
	}
}

func (p templatePair) render(to string, data any) (Message, error) {
	var subj, text, html bytes.Buffer
	if err := p.subject.Execute(&subj, data); err != nil {
		return Message{}, err
	}
	if err := p.text.Execute(&text, data); err != nil {
		return Message{}, err
	}
	if err := p.html.Execute(&html, data); err != nil {
		return Message{}, err
	}
	return Message{To: []string{to}, Subject: subj.String(), Text: text.String(), HTML: html.String()}, nil
}

var teamMemberAdded = mustPair(
	`You were added to {{.Team}}`,
	`Hi {{.Name}},

You are now a {{.Role}} of the team "{{.Team}}".
`,
	`<p>Hi {{.Name}},</p><p>You are now a <strong>{{.Role}}</strong> of the team &ldquo;{{.Team}}&rdquo;.</p>`,
)

var ticketReplied = mustPair(
	`[Support] Re: {{.Subject}}`,
	`Our support team replied to your ticket "{{.Subject}}":

{{.Body}}
`,
	`<p>Our support team replied to your ticket &ldquo;{{.Subject}}&rdquo;:</p><blockquote>{{.Body}}</blockquote>`,
)

// TeamMemberAdded renders the notification sent when a user joins a team.
func TeamMemberAdded(to, name, team, role string) (Message, error) {
	return teamMemberAdded.render(to, map[string]string{"Name": name, "Team": team, "Role": role})
}

// TicketReplied renders the notification sent when staff answer a ticket.
func TicketReplied(to, subject, body string) (Message, error) {
	return ticketReplied.render(to, map[string]string{"Subject": subject, "Body": body})
}
