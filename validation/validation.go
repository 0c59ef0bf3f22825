// validation/validation.go - Request input schemas
//
// Every untrusted payload is checked here before it reaches a service. On
// failure the caller gets a field-attributed error list it can hand straight
// back to the client, never a generic exception.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"hackreg/models"

	"github.com/go-playground/validator/v10"
)

var phonePattern = regexp.MustCompile(`^\d{10,15}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report the json field name, not the Go one, so clients can attach
	// messages to form inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})

	return v
}

// FieldError attributes one validation failure to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the structured rejection for a malformed payload.
type Errors []FieldError

func (e Errors) Error() string {
	parts := make([]string, len(e))
	for i, fe := range e {
		parts[i] = fe.Field + ": " + fe.Message
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// RegisterTeamInput is the flat registration form the client submits.
// Participant 1 is the team leader. Additional participants are optional but
// name and e-mail must be supplied together.
type RegisterTeamInput struct {
	TeamName          string `json:"teamName" validate:"required,max=100"`
	CollegeName       string `json:"collegeName" validate:"required,max=200"`
	TeamSize          string `json:"teamSize" validate:"required,oneof=1 2 3 4"`
	Participant1Name  string `json:"participant1Name" validate:"required,max=100"`
	Participant1Email string `json:"participant1Email" validate:"required,email"`
	LeaderPhone       string `json:"leaderPhone" validate:"required,phone"`
	Participant2Name  string `json:"participant2Name" validate:"required_with=Participant2Email,omitempty,max=100"`
	Participant2Email string `json:"participant2Email" validate:"required_with=Participant2Name,omitempty,email"`
	Participant3Name  string `json:"participant3Name" validate:"required_with=Participant3Email,omitempty,max=100"`
	Participant3Email string `json:"participant3Email" validate:"required_with=Participant3Name,omitempty,email"`
	Participant4Name  string `json:"participant4Name" validate:"required_with=Participant4Email,omitempty,max=100"`
	Participant4Email string `json:"participant4Email" validate:"required_with=Participant4Name,omitempty,email"`
	UTRID             string `json:"utrId" validate:"required,max=100"`
	PaymentScreenshot string `json:"paymentScreenshot" validate:"required,url,max=500"`
	Confirmation      bool   `json:"confirmation" validate:"eq=true"`
}

// Validate checks the registration payload and returns Errors on failure.
func (in *RegisterTeamInput) Validate() error {
	return toErrors(validate.Struct(in))
}

// TeamSizeInt returns the declared size selector as an integer. Only valid
// after Validate has accepted the input.
func (in *RegisterTeamInput) TeamSizeInt() int {
	n, _ := strconv.Atoi(in.TeamSize)
	return n
}

// LeaderEmail is participant 1's e-mail, normalized for lookups.
func (in *RegisterTeamInput) LeaderEmail() string {
	return strings.ToLower(strings.TrimSpace(in.Participant1Email))
}

// Participants collects the supplied members in order, leader first, skipping
// empty optional slots.
func (in *RegisterTeamInput) Participants() []models.Participant {
	out := []models.Participant{{
		FullName: strings.TrimSpace(in.Participant1Name),
		Email:    in.LeaderEmail(),
	}}
	extras := [][2]string{
		{in.Participant2Name, in.Participant2Email},
		{in.Participant3Name, in.Participant3Email},
		{in.Participant4Name, in.Participant4Email},
	}
	for _, p := range extras {
		name := strings.TrimSpace(p[0])
		email := strings.ToLower(strings.TrimSpace(p[1]))
		if name == "" && email == "" {
			continue
		}
		out = append(out, models.Participant{FullName: name, Email: email})
	}
	return out
}

// LoginInput is the admin login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

func (in *LoginInput) Validate() error {
	return toErrors(validate.Struct(in))
}

// PaymentConfirmInput is the mock payment confirmation payload. The
// transaction ref is assigned server-side at registration, so clients may
// omit it.
type PaymentConfirmInput struct {
	RegistrationID string `json:"registrationId" validate:"required"`
	TransactionRef string `json:"transactionRef" validate:"omitempty,max=100"`
}

func (in *PaymentConfirmInput) Validate() error {
	return toErrors(validate.Struct(in))
}

func toErrors(err error) error {
	if err == nil {
		return nil
	}
	ves, ok := err.(validator.ValidationErrors)
	if !ok {
		return Errors{{Field: "", Message: err.Error()}}
	}
	out := make(Errors, 0, len(ves))
	for _, fe := range ves {
		out = append(out, FieldError{Field: fe.Field(), Message: messageFor(fe)})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "required_with":
		return "name and email must be provided together"
	case "email":
		return "Invalid email address"
	case "phone":
		return "Phone must be 10-15 digits"
	case "url":
		return "Must be a valid URL"
	case "oneof":
		return "Invalid team size"
	case "eq":
		return "You must confirm the details are accurate"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
