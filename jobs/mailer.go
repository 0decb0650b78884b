package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/smtp"

	"github.com/hibiken/asynq"
)

// Mailer delivers transactional email over SMTP. With no host configured it
// logs the message instead, which keeps development environments working
// without a relay.
type Mailer struct {
	host   string
	port   int
	from   string
	logger *slog.Logger
}

func NewMailer(host string, port int, from string, logger *slog.Logger) *Mailer {
	return &Mailer{host: host, port: port, from: from, logger: logger}
}

// Send delivers one message.
func (m *Mailer) Send(ctx context.Context, to, subject, body string) error {
	if m.host == "" {
		m.logger.Info("mail delivery skipped, no smtp host",
			slog.String("to", to), slog.String("subject", subject))
		return nil
	}
	msg := []byte("From: " + m.from + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")
	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	if err := smtp.SendMail(addr, nil, m.from, []string{to}, msg); err != nil {
		return fmt.Errorf("jobs: send mail: %w", err)
	}
	return nil
}

// EmailJob processes TaskTypeSendEmail tasks.
type EmailJob struct {
	mailer *Mailer
	logger *slog.Logger
}

func NewEmailJob(mailer *Mailer, logger *slog.Logger) *EmailJob {
	return &EmailJob{mailer: mailer, logger: logger}
}

func (j *EmailJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendEmailPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if err := j.mailer.Send(ctx, payload.To, payload.Subject, payload.Body); err != nil {
		j.logger.Error("send email failed", slog.Any("error", err), slog.String("to", payload.To))
		return err
	}
	return nil
}

// SMSJob processes TaskTypeSendOTPSMS tasks. Delivery goes to the log until
// an SMS provider is wired in.
type SMSJob struct {
	logger *slog.Logger
}

func NewSMSJob(logger *slog.Logger) *SMSJob {
	return &SMSJob{logger: logger}
}

func (j *SMSJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SendOTPSMSPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	j.logger.Info("sending otp sms",
		slog.String("mobile_number", payload.MobileNumber), slog.String("otp", payload.OTP))
	return nil
}
