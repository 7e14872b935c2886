// File: /services/email_service.go
package services

import (
	"fmt"
	"gopkg.in/gomail.v2"
	"motorestore-api/config"
)

type EmailService struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailService(cfg *config.Config) *EmailService {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailService{
		config: cfg,
		dialer: dialer,
	}
}

// SendAccessRequestEmail notifies the administrator that a new profile
// signed in for the first time and is waiting to be verified. Verification
// itself stays an out-of-band administrative action.
func (es *EmailService) SendAccessRequestEmail(userEmail, displayName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", es.config.AdminEmail)
	m.SetHeader("Subject", "86 Garage - New access request")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>New Access Request</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #1f2937; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
        .detail { background: #e9ecef; padding: 16px; border-radius: 8px; margin: 16px 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>86 Garage</h1>
            <p>Access Request</p>
        </div>
        <div class="content">
            <p>A new account signed in and is waiting for verification:</p>
            <div class="detail">
                <p><strong>%s</strong></p>
                <p>%s</p>
            </div>
            <p>Flip the profile's verified flag to grant access.</p>
        </div>
    </div>
</body>
</html>`, displayName, userEmail)

	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send access request email: %w", err)
	}

	fmt.Printf("📧 Access request email sent for %s\n", userEmail)
	return nil
}

// SendWelcomeEmail greets a user once the admin verified their profile
func (es *EmailService) SendWelcomeEmail(userEmail, displayName string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", es.config.FromName, es.config.FromEmail))
	m.SetHeader("To", userEmail)
	m.SetHeader("Subject", "86 Garage - Access granted")

	htmlBody := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Access Granted</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { text-align: center; background: #1f2937; color: white; padding: 20px; border-radius: 10px 10px 0 0; }
        .content { background: #f8f9fa; padding: 30px; border-radius: 0 0 10px 10px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>86 Garage</h1>
        </div>
        <div class="content">
            <h2>Hello %s!</h2>
            <p>Your account has been verified. You can now sign in and manage the garage.</p>
        </div>
    </div>
</body>
</html>`, displayName)

	m.SetBody("text/html", htmlBody)

	if err := es.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send welcome email: %w", err)
	}

	return nil
}
