package transport

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// OptionalString distinguishes an absent JSON field from an explicit null.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

// Patch converts the field to the services' convention: nil keeps the
// current value, a pointer to "" clears it.
func (o OptionalString) Patch() *string {
	if !o.Set {
		return nil
	}
	if o.Value == nil {
		empty := ""
		return &empty
	}
	return o.Value
}

type createProjectRequest struct {
	Name        string  `json:"name" validate:"required,max=100"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
}

type updateProjectRequest struct {
	Name        *string        `json:"name" validate:"omitempty,max=100"`
	Description OptionalString `json:"description"`
	Color       *string        `json:"color" validate:"omitempty,hexcolor"`
	IsActive    *bool          `json:"isActive"`
}

type startEntryRequest struct {
	ProjectID   string  `json:"projectId" validate:"required"`
	Description *string `json:"description" validate:"omitempty,max=500"`
}

type stopEntryRequest struct {
	EndTime     *time.Time     `json:"endTime"`
	Description OptionalString `json:"description"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// decode reads a JSON body into dst and validates it. An empty body is
// accepted when allowEmpty is set; beacon requests may send no body or an
// unexpected content type, so the Content-Type header is not checked.
func decode(r *http.Request, dst any, allowEmpty bool) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%w: reading body: %v", errBadRequest, err)
	}
	if len(bytes.TrimSpace(body)) == 0 {
		if !allowEmpty {
			return fmt.Errorf("%w: request body is required", errBadRequest)
		}
	} else {
		dec := json.NewDecoder(bytes.NewReader(body))
		dec.DisallowUnknownFields()
		if err := dec.Decode(dst); err != nil {
			return fmt.Errorf("%w: invalid JSON: %v", errBadRequest, err)
		}
	}

	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("%w: %s", errBadRequest, validationMessage(err))
	}
	return nil
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param()))
		case "hexcolor":
			msgs = append(msgs, fe.Field()+" must be a valid hex color code")
		default:
			msgs = append(msgs, fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag()))
		}
	}
	return strings.Join(msgs, "; ")
}
