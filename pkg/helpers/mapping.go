package helpers

import (
	"fmt"
	"strings"

	"github.com/oksasatya/creatorlink/pkg/mailer"
	mailtpl "github.com/oksasatya/creatorlink/pkg/mailer/templates"
)

// SubjectFor returns a fallback subject when a job carries neither subject nor template.
func SubjectFor(template string) string {
	switch strings.ToLower(template) {
	case mailtpl.VerificationCode:
		return "Your CreatorLink verification code"
	case mailtpl.Welcome:
		return "Welcome aboard, your profile is live"
	case mailtpl.ContactInquiry:
		return "New contact enquiry"
	default:
		return "Notification"
	}
}

// EnsureRecipient fills the recipient fields templates expect.
func EnsureRecipient(job *mailer.EmailJob) {
	if job.Data == nil {
		job.Data = map[string]any{}
	}
	if v, ok := job.Data["RecipientEmail"]; !ok || fmt.Sprintf("%v", v) == "" {
		job.Data["RecipientEmail"] = job.To
	}
	if job.Subject == "" && job.Template == "" {
		job.Subject = SubjectFor(job.Template)
	}
}
