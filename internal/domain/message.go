package domain

// Field is a single title/value pair of a notification attachment.
type Field struct {
	Title string
	Value string
	Short bool
}

// Attachment is the structured body of a notification.
type Attachment struct {
	Fallback   string
	Color      string
	AuthorName string
	AuthorLink string
	AuthorIcon string
	Title      string
	Text       string
	Fields     []Field
	Footer     string
	FooterIcon string
	Ts         int64
}

// Message is what a Notifier delivers to a channel.
type Message struct {
	Channel     string
	AsUser      bool
	Attachments []Attachment
}
