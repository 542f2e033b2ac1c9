package service

import (
	"errors"
	"log/slog"

	"github.com/go-playground/validator/v10"
)

var ErrInvalidPayload = errors.New("invalid payload")

// IntakePayload is the generic data-endpoint payload: an email plus free-form
// feedback. Both fields are required and the email must parse.
type IntakePayload struct {
	Email    string `json:"email" validate:"required,email"`
	Feedback string `json:"feedback" validate:"required"`
}

// IntakeResult acknowledges receipt by echoing the accepted email.
type IntakeResult struct {
	Message       string `json:"message"`
	ReceivedEmail string `json:"received_email"`
}

// IntakeService accepts generic JSON payloads from the application. It only
// validates and acknowledges; persistence belongs to SubmissionService.
type IntakeService struct {
	Logger   *slog.Logger
	validate *validator.Validate
}

func NewIntakeService(logger *slog.Logger) *IntakeService {
	return &IntakeService{
		Logger:   logger,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Accept validates the payload and returns the acknowledgement.
func (s *IntakeService) Accept(payload IntakePayload) (IntakeResult, error) {
	if err := s.validate.Struct(payload); err != nil {
		return IntakeResult{}, errors.Join(ErrInvalidPayload, err)
	}

	s.Logger.Info("payload accepted", "email", payload.Email)

	return IntakeResult{
		Message:       "Data received successfully by backend!",
		ReceivedEmail: payload.Email,
	}, nil
}
