package jobs

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeSendOTPSMS is the task type for OTP text messages.
	TaskTypeSendOTPSMS = "sms:send_otp"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendOTPSMSPayload carries an OTP code for SMS delivery.
type SendOTPSMSPayload struct {
	MobileNumber string `json:"mobile_number"`
	OTP          string `json:"otp"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewWelcomeEmailTask builds the post-registration welcome email.
func NewWelcomeEmailTask(email, firstName, lastName string) (*asynq.Task, error) {
	title := cases.Title(language.English)
	name := strings.TrimSpace(title.String(firstName) + " " + title.String(lastName))
	body := fmt.Sprintf("Hello %s,\n\nWelcome to Leadforge! We're excited to have you on board.\n\nBest regards,\nThe Team", name)
	return NewSendEmailTask(SendEmailPayload{
		To:      email,
		Subject: "Welcome to Leadforge",
		Body:    body,
	})
}

// NewOTPSMSTask builds the registration OTP text message.
func NewOTPSMSTask(mobileNumber, otp string) (*asynq.Task, error) {
	data, err := json.Marshal(SendOTPSMSPayload{MobileNumber: mobileNumber, OTP: otp})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendOTPSMS, data), nil
}
