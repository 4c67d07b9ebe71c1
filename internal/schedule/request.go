package schedule

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"dayflow/internal/datetime"
)

// Request is the create payload for a schedule.
type Request struct {
	Title       string                 `json:"title" validate:"required,max=120"`
	Description string                 `json:"description" validate:"max=2000"`
	Date        datetime.ZonedDateTime `json:"date"`
	Deadline    datetime.ZonedDateTime `json:"deadline"`
	Importance  int                    `json:"importance" validate:"min=1,max=9"`
	Urgency     int                    `json:"urgency" validate:"min=1,max=9"`
	TaskType    TaskType               `json:"taskType,omitempty" validate:"omitempty,oneof=DEEP_WORK QUICK_TASK ADMIN_TASK"`
}

// Patch is the partial update payload; nil fields are left untouched by the
// service.
type Patch struct {
	Title       *string                 `json:"title,omitempty" validate:"omitempty,max=120"`
	Description *string                 `json:"description,omitempty" validate:"omitempty,max=2000"`
	Date        *datetime.ZonedDateTime `json:"date,omitempty"`
	Deadline    *datetime.ZonedDateTime `json:"deadline,omitempty"`
	Importance  *int                    `json:"importance,omitempty" validate:"omitempty,min=1,max=9"`
	Urgency     *int                    `json:"urgency,omitempty" validate:"omitempty,min=1,max=9"`
	TaskType    *TaskType               `json:"taskType,omitempty" validate:"omitempty,oneof=DEEP_WORK QUICK_TASK ADMIN_TASK"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(validateRequest, Request{})
	return v
}

// validateRequest enforces the cross-field rules tags cannot express: both
// instants must be present and parseable, and the deadline must not precede
// the date.
func validateRequest(sl validator.StructLevel) {
	req := sl.Current().Interface().(Request)

	if req.Date.IsZero() {
		sl.ReportError(req.Date, "Date", "date", "required", "")
		return
	}
	if req.Deadline.IsZero() {
		sl.ReportError(req.Deadline, "Deadline", "deadline", "required", "")
		return
	}

	date, errDate := req.Date.Resolve(datetime.Zone{})
	if errDate != nil {
		sl.ReportError(req.Date, "Date", "date", "datetime", "")
		return
	}
	deadline, errDeadline := req.Deadline.Resolve(datetime.Zone{})
	if errDeadline != nil {
		sl.ReportError(req.Deadline, "Deadline", "deadline", "datetime", "")
		return
	}
	if deadline.Before(date) {
		sl.ReportError(req.Deadline, "Deadline", "deadline", "gtefield", "Date")
	}
}

// Validate checks the payload before it is transmitted so that malformed
// requests never reach the service.
func (r Request) Validate() error {
	return describeValidation(validate.Struct(r))
}

// Validate checks the patch payload before transmission.
func (p Patch) Validate() error {
	return describeValidation(validate.Struct(p))
}

func describeValidation(err error) error {
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, e := range verrs {
		parts = append(parts, fmt.Sprintf("%s fails %q", e.Field(), e.Tag()))
	}
	return fmt.Errorf("invalid schedule payload: %s", strings.Join(parts, "; "))
}
