package models

// SiteConfig is the optional site.yml that sits next to the content files.
type SiteConfig struct {
	Title      string   `yaml:"title"`
	Categories []string `yaml:"categories"`
}

// ContactMessage is a submission from the contact form.
type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ContactReceipt acknowledges a simulated contact submission.
type ContactReceipt struct {
	ID         string `json:"id"`
	ReceivedAt string `json:"receivedAt"`
}
