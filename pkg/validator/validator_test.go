package validator

import "testing"

type clockPayload struct {
	StartTime string `validate:"required,hhmm"`
}

func TestValidateHHMM(t *testing.T) {
	cv := NewValidator()

	valid := []string{"00:00", "09:30", "13:05", "23:59"}
	for _, v := range valid {
		if err := cv.Validate(clockPayload{StartTime: v}); err != nil {
			t.Errorf("Validate(%q) = %v, want nil", v, err)
		}
	}

	invalid := []string{"9:30", "24:00", "12:60", "12:5", "1230", "ab:cd", ""}
	for _, v := range invalid {
		if err := cv.Validate(clockPayload{StartTime: v}); err == nil {
			t.Errorf("Validate(%q) = nil, want error", v)
		}
	}
}

func TestFormatValidationErrors(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(clockPayload{StartTime: "25:00"})
	if err == nil {
		t.Fatal("expected validation error")
	}

	msgs := cv.FormatValidationErrors(err)
	if msgs["StartTime"] != "StartTime must be a zero-padded HH:MM time" {
		t.Errorf("unexpected message: %q", msgs["StartTime"])
	}
}
