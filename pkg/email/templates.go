package email

import (
	"fmt"
	"html/template"
	"time"
)

const layoutStyle = `
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .label { font-weight: bold; color: #555; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }`

var contactTemplate = template.Must(template.New("contact").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><style>` + layoutStyle + `</style></head>
<body>
    <div class="container">
        <div class="header"><h1>New Contact Form Submission</h1></div>
        <div class="content">
            <p><span class="label">From:</span> {{.SenderName}} ({{.SenderEmail}})</p>
            <p><span class="label">Subject:</span> {{.Subject}}</p>
            <div class="message-box">{{.Message}}</div>
        </div>
        <div class="footer"><p>To reply, send an email to: {{.SenderEmail}}</p></div>
    </div>
</body>
</html>`))

var jobMatchTemplate = template.Must(template.New("job_match").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><style>` + layoutStyle + `</style></head>
<body>
    <div class="container">
        <div class="header"><h1>A new {{.Category}} job was posted</h1></div>
        <div class="content">
            <p><span class="label">{{.JobTitle}}</span>{{if .Location}} in {{.Location}}{{end}}</p>
            <p>You applied to similar roles before, so we thought you might be interested.</p>
            <p><a href="{{.JobURL}}">View the job</a></p>
        </div>
        <div class="footer"><p>You can manage notifications from your dashboard.</p></div>
    </div>
</body>
</html>`))

var planExpiringTemplate = template.Must(template.New("plan_expiring").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><style>` + layoutStyle + `</style></head>
<body>
    <div class="container">
        <div class="header"><h1>Your {{.PlanName}} plan ends soon</h1></div>
        <div class="content">
            <p>Your subscription ends on <span class="label">{{.EndDate}}</span>.</p>
            <p>After that your CV access falls back to the Free tier.</p>
            <p><a href="{{.RenewURL}}">Renew now</a></p>
        </div>
    </div>
</body>
</html>`))

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	SenderName  string
	SenderEmail string
	Subject     string
	Message     string
}

type JobMatchEmailData struct {
	JobTitle string
	Category string
	Location string
	JobURL   string
}

type PlanExpiringEmailData struct {
	PlanName string
	EndDate  time.Time
	RenewURL string
}

// ContactMessage renders a contact form submission addressed to inbox.
func ContactMessage(inbox string, data ContactEmailData) (Message, error) {
	html, err := render(contactTemplate, data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{inbox},
		ReplyTo: data.SenderEmail,
		Subject: fmt.Sprintf("Contact Form: %s", data.Subject),
		HTML:    html,
	}, nil
}

func JobMatchMessage(to string, data JobMatchEmailData) (Message, error) {
	html, err := render(jobMatchTemplate, data)
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("New %s job: %s", data.Category, data.JobTitle),
		HTML:    html,
	}, nil
}

func PlanExpiringMessage(to string, data PlanExpiringEmailData) (Message, error) {
	html, err := render(planExpiringTemplate, struct {
		PlanName string
		EndDate  string
		RenewURL string
	}{data.PlanName, data.EndDate.Format("2 Jan 2006"), data.RenewURL})
	if err != nil {
		return Message{}, err
	}
	return Message{
		To:      []string{to},
		Subject: fmt.Sprintf("Your %s plan expires on %s", data.PlanName, data.EndDate.Format("2 Jan 2006")),
		HTML:    html,
	}, nil
}
