// internal/workers/communication/notify-report/templates.go
package notifyreport

import (
	"fmt"
	"strings"
	"text/template"

	"career-compass/internal/models"
)

type templateData struct {
	Name      string
	ReportID  int64
	TopCareer string
}

var reportTemplates = map[models.ReportEvent]models.NotificationTemplate{
	models.EventReportGenerated: {
		Subject: "Your career report is ready",
		Body: `Hi {{.Name}},

Your career report #{{.ReportID}} has been generated.{{if .TopCareer}} Your top match is {{.TopCareer}}.{{end}}
Log in to Career Compass to see your full recommendations, strengths and areas to improve.

Career Compass`,
	},
	models.EventReportReviewed: {
		Subject: "A counsellor has reviewed your career report",
		Body: `Hi {{.Name}},

A counsellor has reviewed your career report #{{.ReportID}}. Log in to Career Compass to read their feedback and book a follow-up session.

Career Compass`,
		SMS: `Career Compass: your report #{{.ReportID}} has been reviewed by a counsellor. Log in to see the feedback.`,
	},
}

var compiled = mustCompile(reportTemplates)

type compiledTemplate struct {
	subject, body, sms *template.Template
}

func mustCompile(src map[models.ReportEvent]models.NotificationTemplate) map[models.ReportEvent]compiledTemplate {
	out := make(map[models.ReportEvent]compiledTemplate, len(src))
	for event, t := range src {
		name := string(event)
		out[event] = compiledTemplate{
			subject: template.Must(template.New(name + ".subject").Parse(t.Subject)),
			body:    template.Must(template.New(name + ".body").Parse(t.Body)),
			sms:     template.Must(template.New(name + ".sms").Parse(t.SMS)),
		}
	}
	return out
}

// render produces the subject, body and SMS text for event.
func render(event models.ReportEvent, data templateData) (models.NotificationTemplate, error) {
	t, ok := compiled[event]
	if !ok {
		return models.NotificationTemplate{}, fmt.Errorf("no template for event %q", event)
	}

	var out models.NotificationTemplate
	for _, part := range []struct {
		tmpl *template.Template
		dst  *string
	}{
		{t.subject, &out.Subject},
		{t.body, &out.Body},
		{t.sms, &out.SMS},
	} {
		var sb strings.Builder
		if err := part.tmpl.Execute(&sb, data); err != nil {
			return models.NotificationTemplate{}, fmt.Errorf("render %s: %w", part.tmpl.Name(), err)
		}
		*part.dst = sb.String()
	}
	return out, nil
}
