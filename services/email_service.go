package services

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/resend/resend-go/v2"

	"github.com/tahseel-app/tahseel-backend/config"
	"github.com/tahseel-app/tahseel-backend/logger"
)

// EmailSender sends transactional mail. The auth service depends on this
// interface so tests can swap in a recorder.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, name, token string) error
	SendPasswordResetEmail(ctx context.Context, to, name, token string) error
}

type EmailMetrics struct {
	sendLatency prometheus.Histogram
	errorCount  prometheus.Counter
	sentCount   prometheus.Counter
}

// EmailService sends verification and password-reset mail through Resend.
type EmailService struct {
	config      *config.EmailConfig
	client      *resend.Client
	frontendURL string
	metrics     *EmailMetrics
}

func NewEmailService(cfg *config.EmailConfig, frontendURL string) *EmailService {
	return NewEmailServiceWithRegistry(cfg, frontendURL, prometheus.DefaultRegisterer)
}

func NewEmailServiceWithRegistry(cfg *config.EmailConfig, frontendURL string, reg prometheus.Registerer) *EmailService {
	logger.GetLogger().Infow("Initializing email service", "from", cfg.FromAddress)
	client := resend.NewClient(cfg.ResendAPIKey)
	metrics := &EmailMetrics{
		sendLatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "tahseel_email_send_duration_seconds",
			Help:    "Time taken to send emails",
			Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10},
		}),
		errorCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tahseel_email_errors_total",
			Help: "Total number of email sending errors",
		}),
		sentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tahseel_emails_sent_total",
			Help: "Total number of emails sent",
		}),
	}

	reg.MustRegister(metrics.sendLatency)
	reg.MustRegister(metrics.errorCount)
	reg.MustRegister(metrics.sentCount)

	return &EmailService{
		config:      cfg,
		client:      client,
		frontendURL: frontendURL,
		metrics:     metrics,
	}
}

// SendVerificationEmail mails the account-activation link for a fresh signup.
func (s *EmailService) SendVerificationEmail(ctx context.Context, to, name, token string) error {
	return s.send(ctx, to, "Verify your Tahseel account", verificationEmailTemplate, map[string]string{
		"Name": name,
		"URL":  fmt.Sprintf("%s/verify-email?token=%s", s.frontendURL, token),
	})
}

// SendPasswordResetEmail mails a time-limited password reset link.
func (s *EmailService) SendPasswordResetEmail(ctx context.Context, to, name, token string) error {
	return s.send(ctx, to, "Reset your Tahseel password", resetEmailTemplate, map[string]string{
		"Name": name,
		"URL":  fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token),
	})
}

func (s *EmailService) send(_ context.Context, to, subject, tmplText string, data map[string]string) error {
	startTime := time.Now()
	log := logger.GetLogger()
	defer func() {
		s.metrics.sendLatency.Observe(time.Since(startTime).Seconds())
	}()

	tmpl, err := template.New("email").Parse(tmplText)
	if err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to parse email template", "error", err)
		return fmt.Errorf("failed to parse template: %w", err)
	}

	var htmlContent bytes.Buffer
	if err := tmpl.Execute(&htmlContent, data); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to execute email template", "error", err)
		return fmt.Errorf("failed to execute template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromAddress),
		To:      []string{to},
		Subject: subject,
		Html:    htmlContent.String(),
	}

	if _, err := s.client.Emails.Send(params); err != nil {
		s.metrics.errorCount.Inc()
		log.Errorw("Failed to send email",
			"error", err,
			"to", logger.MaskEmail(to),
			"subject", subject)
		return fmt.Errorf("email send failed: %w", err)
	}

	s.metrics.sentCount.Inc()
	log.Infow("Email sent", "to", logger.MaskEmail(to), "subject", subject)
	return nil
}

// Template constants
const verificationEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Verify your Tahseel account</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
            text-align: center;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #0F7A4D;
            font-size: 28px;
            margin-bottom: 20px;
        }
        p {
            font-size: 16px;
            line-height: 1.6;
            margin-bottom: 25px;
        }
        .button {
            display: inline-block;
            padding: 12px 24px;
            font-size: 16px;
            font-weight: bold;
            text-decoration: none;
            background-color: #0F7A4D;
            color: #ffffff;
            border-radius: 8px;
        }
        .link {
            margin-top: 20px;
            font-size: 14px;
            color: #777777;
            word-break: break-all;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Welcome to Tahseel!</h1>
        <p>Hi {{.Name}},</p>
        <p>Confirm your email address to activate your account. The link expires in 24 hours.</p>
        <p>
            <a href="{{.URL}}" class="button">
                Verify Email
            </a>
        </p>
        <p class="link">
            Or copy this link:<br/>
            {{.URL}}
        </p>
    </div>
</body>
</html>`

const resetEmailTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Reset your Tahseel password</title>
    <style>
        body {
            font-family: 'sans-serif';
            background-color: #f7f7f7;
            color: #333333;
            margin: 0;
            padding: 20px;
            text-align: center;
        }
        .container {
            max-width: 600px;
            margin: 20px auto;
            background-color: #ffffff;
            padding: 30px;
            border-radius: 12px;
            box-shadow: 0 4px 8px rgba(0, 0, 0, 0.05);
        }
        h1 {
            color: #0F7A4D;
            font-size: 28px;
            margin-bottom: 20px;
        }
        p {
            font-size: 16px;
            line-height: 1.6;
            margin-bottom: 25px;
        }
        .button {
            display: inline-block;
            padding: 12px 24px;
            font-size: 16px;
            font-weight: bold;
            text-decoration: none;
            background-color: #0F7A4D;
            color: #ffffff;
            border-radius: 8px;
        }
        .link {
            margin-top: 20px;
            font-size: 14px;
            color: #777777;
            word-break: break-all;
        }
    </style>
</head>
<body>
    <div class="container">
        <h1>Password Reset</h1>
        <p>Hi {{.Name}},</p>
        <p>We received a request to reset your password. The link expires in 1 hour. If you did not ask for this, ignore this email.</p>
        <p>
            <a href="{{.URL}}" class="button">
                Reset Password
            </a>
        </p>
        <p class="link">
            Or copy this link:<br/>
            {{.URL}}
        </p>
    </div>
</body>
</html>`
