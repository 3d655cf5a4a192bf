package notification

// EmailMessage carries a rendered email ready for a provider.
type EmailMessage struct {
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// SMSMessage carries a short text message.
type SMSMessage struct {
	To   string
	Body string
}
