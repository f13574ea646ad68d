package dmn

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRegex = regexp.MustCompile(`^\(?\d{3}\)?[-.\s]?\d{3}[-.\s]?\d{4}$`)
)

// Contact form fields reported in a FieldError.
const (
	FieldName    = "name"
	FieldEmail   = "email"
	FieldPhone   = "phone"
	FieldMessage = "message"
)

// FieldError reports the first contact form field that failed validation.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ContactForm is a submission as it arrives from the site.
type ContactForm struct {
	Name     string
	Email    string
	Phone    string
	Subject  string
	Message  string
	Botcheck bool // honeypot, only bots tick it
}

// Validate checks fields in form order and returns the first failure as a
// *FieldError. Phone is optional.
func (f ContactForm) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return &FieldError{Field: FieldName, Message: "Please enter your name"}
	}
	if !emailRegex.MatchString(f.Email) {
		return &FieldError{Field: FieldEmail, Message: "Please enter a valid email address"}
	}
	if f.Phone != "" && !phoneRegex.MatchString(f.Phone) {
		return &FieldError{Field: FieldPhone, Message: "Please enter a valid phone number"}
	}
	if strings.TrimSpace(f.Message) == "" {
		return &FieldError{Field: FieldMessage, Message: "Please enter a message"}
	}
	return nil
}

// ContactMessage is an accepted submission as archived.
type ContactMessage struct {
	ID        uuid.UUID `bson:"_id" json:"id"`
	Name      string    `bson:"name" json:"name"`
	Email     string    `bson:"email" json:"email"`
	Phone     string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Subject   string    `bson:"subject,omitempty" json:"subject,omitempty"`
	Message   string    `bson:"message" json:"message"`
	ClientIP  string    `bson:"clientIP" json:"clientIP"`
	Forwarded bool      `bson:"forwarded" json:"forwarded"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// NewContactMessage validates form and wraps it in a new message.
func NewContactMessage(form ContactForm, clientIP string, now time.Time) (*ContactMessage, error) {
	if err := form.Validate(); err != nil {
		return nil, err
	}
	return &ContactMessage{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(form.Name),
		Email:     form.Email,
		Phone:     form.Phone,
		Subject:   form.Subject,
		Message:   form.Message,
		ClientIP:  clientIP,
		CreatedAt: now.UTC(),
	}, nil
}
