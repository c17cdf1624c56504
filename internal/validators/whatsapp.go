package validators

import (
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/nyaruka/phonenumbers"
)

var whatsappPattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// IsWhatsApp accepts "+<country><number>" with 7 to 15 digits in total.
func IsWhatsApp(v string) bool {
	return whatsappPattern.MatchString(v)
}

// FormatWhatsApp renders the number in international notation. Numbers
// libphonenumber cannot parse are returned unchanged.
func FormatWhatsApp(v string) string {
	num, err := phonenumbers.Parse(v, "")
	if err != nil {
		return v
	}
	return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
}

// WhatsAppLink returns the click-to-chat URL for the number.
func WhatsAppLink(v string) string {
	digits := strings.TrimPrefix(v, "+")
	if num, err := phonenumbers.Parse(v, ""); err == nil {
		digits = strings.TrimPrefix(phonenumbers.Format(num, phonenumbers.E164), "+")
	}
	return "https://wa.me/" + digits
}

// Register installs the custom binding tags on gin's validator.
func Register() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("whatsapp", func(fl validator.FieldLevel) bool {
		return IsWhatsApp(fl.Field().String())
	})
}
