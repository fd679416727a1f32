package templates

import (
	"time"

	"github.com/oksasatya/creatorlink/config"
)

// Option pattern
type Option func(*EmailData)

func WithExpiresIn(dur time.Duration) Option {
	return func(d *EmailData) {
		utc := time.Now().Add(dur).UTC()
		d.ExpiresAt = utc
		d.ExpiresAtText = utc.Format("02 January 2006, 15:04 MST")
	}
}

func WithDashboard(path string) Option {
	return func(d *EmailData) { d.DashboardURL = d.AppURL + path }
}

// NewBaseEmailData fills the common fields from config, then applies options.
func NewBaseEmailData(cfg *config.Config, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,
		CompanyName:    cfg.CompanyName,
		AppName:        cfg.AppName,
		AppURL:         cfg.AppURL,
		SupportURL:     cfg.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func NewVerificationCodeData(cfg *config.Config, name, email, code string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, VerificationCode, name, email, opts...)
	d.Code = code
	d.VerifyURL = cfg.VerifyOTPURL + "?email=" + email
	return ToMap(d)
}

func NewWelcomeData(cfg *config.Config, name, email, role string, opts ...Option) map[string]any {
	d := NewBaseEmailData(cfg, Welcome, name, email, opts...)
	d.Role = role
	return ToMap(d)
}

func NewContactInquiryData(cfg *config.Config, name, email, company, topic, message string) map[string]any {
	d := NewBaseEmailData(cfg, ContactInquiry, name, email)
	d.RecipientEmail = cfg.SalesInbox
	d.Company = company
	d.Topic = topic
	d.Message = message
	return ToMap(d)
}
