package application

import (
	"errors"
	"testing"
)

func TestValidateRequired(t *testing.T) {
	tests := []struct {
		name      string
		fieldName string
		value     string
		wantErr   bool
	}{
		{
			name:      "valid value",
			fieldName: "sequenceName",
			value:     "m13mp18",
			wantErr:   false,
		},
		{
			name:      "empty string",
			fieldName: "sequenceName",
			value:     "",
			wantErr:   true,
		},
		{
			name:      "whitespace only",
			fieldName: "sequenceName",
			value:     "   ",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRequired(tt.fieldName, tt.value)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRequired() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Errorf("expected ValidationError, got %T", err)
				}
				if valErr.Field != tt.fieldName {
					t.Errorf("expected field %s, got %s", tt.fieldName, valErr.Field)
				}
			}
		})
	}
}

func TestValidateOneOf(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{name: "empty passes", value: "", wantErr: false},
		{name: "scaffold", value: "scaffold", wantErr: false},
		{name: "staple", value: "staple", wantErr: false},
		{name: "unknown role", value: "helper", wantErr: true},
		{name: "case sensitive", value: "Staple", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOneOf("role", tt.value, "scaffold", "staple")
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOneOf() error = %v, wantErr %v", err, tt.wantErr)
			}

			if err != nil {
				var valErr *ValidationError
				if !errors.As(err, &valErr) {
					t.Fatalf("expected ValidationError, got %T", err)
				}
				if want := "role: expected scaffold or staple, got: " + tt.value; err.Error() != want {
					t.Errorf("expected %q, got %q", want, err.Error())
				}
			}
		})
	}
}

func TestValidateRequired_FieldNames(t *testing.T) {
	err := ValidateRequired("designPath", "")
	if err == nil || err.Error() != "designPath: design path is required" {
		t.Errorf("unexpected error: %v", err)
	}
}
