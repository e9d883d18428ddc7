package models

type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
}
