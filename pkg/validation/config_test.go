package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigValidator_Checks(t *testing.T) {
	tests := []struct {
		name    string
		apply   func(cv *ConfigValidator)
		wantErr bool
	}{
		{"required empty", func(cv *ConfigValidator) { cv.Required("variant", "") }, true},
		{"required set", func(cv *ConfigValidator) { cv.Required("variant", "mask") }, false},
		{"min below", func(cv *ConfigValidator) { cv.MinInt("iterations", 0, 1) }, true},
		{"min ok", func(cv *ConfigValidator) { cv.MinInt("iterations", 1, 1) }, false},
		{"max above", func(cv *ConfigValidator) { cv.MaxInt("graphs", 9, 8) }, true},
		{"max ok", func(cv *ConfigValidator) { cv.MaxInt("graphs", 8, 8) }, false},
		{"range below", func(cv *ConfigValidator) { cv.RangeInt("width", 0, 1, 1024) }, true},
		{"range above", func(cv *ConfigValidator) { cv.RangeInt("width", 2048, 1, 1024) }, true},
		{"range ok", func(cv *ConfigValidator) { cv.RangeInt("width", 32, 1, 1024) }, false},
		{"each bad", func(cv *ConfigValidator) { cv.EachInRange("widths", []int{8, 0}, 1, 1024) }, true},
		{"each ok", func(cv *ConfigValidator) { cv.EachInRange("widths", []int{8, 16, 32}, 1, 1024) }, false},
		{"float bad", func(cv *ConfigValidator) { cv.RangeFloat("p", 1.5, 0, 1) }, true},
		{"float ok", func(cv *ConfigValidator) { cv.RangeFloat("p", 0.25, 0, 1) }, false},
		{"positive zero", func(cv *ConfigValidator) { cv.Positive("units", 0) }, true},
		{"positive ok", func(cv *ConfigValidator) { cv.Positive("units", 4) }, false},
		{"non-negative bad", func(cv *ConfigValidator) { cv.NonNegative("capacity", -1) }, true},
		{"non-negative zero", func(cv *ConfigValidator) { cv.NonNegative("capacity", 0) }, false},
		{"oneof bad", func(cv *ConfigValidator) { cv.OneOf("layout", "tiled", []string{"compressed", "vectorized"}) }, true},
		{"oneof ok", func(cv *ConfigValidator) { cv.OneOf("layout", "vectorized", []string{"compressed", "vectorized"}) }, false},
		{"custom bad", func(cv *ConfigValidator) { cv.Custom("sources", func() error { return errors.New("negative") }) }, true},
		{"custom ok", func(cv *ConfigValidator) { cv.Custom("sources", func() error { return nil }) }, false},
		{"when false", func(cv *ConfigValidator) {
			cv.When(false, func(cv *ConfigValidator) { cv.Positive("x", 0) })
		}, false},
		{"when true", func(cv *ConfigValidator) {
			cv.When(true, func(cv *ConfigValidator) { cv.Positive("x", 0) })
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cv := NewConfigValidator("RunConfig")
			tt.apply(cv)
			if cv.HasErrors() != tt.wantErr {
				t.Errorf("HasErrors() = %v, want %v (errors: %v)", cv.HasErrors(), tt.wantErr, cv.Errors())
			}
			if err := cv.Validate(); tt.wantErr && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, want ErrInvalidConfig", err)
			}
		})
	}
}

func TestConfigValidator_MultipleErrors(t *testing.T) {
	cv := NewConfigValidator("RunConfig").
		Positive("iterations", 0).
		EachInRange("group_widths", []int{0, 4096}, 1, 1024).
		Required("variant", "")

	if got := len(cv.Errors()); got != 4 {
		t.Fatalf("Errors() has %d entries, want 4", got)
	}

	msg := cv.Validate().Error()
	for _, want := range []string{"RunConfig.iterations", "RunConfig.group_widths[0]", "RunConfig.group_widths[1]", "RunConfig.variant"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Validate() message %q is missing %q", msg, want)
		}
	}
}

func TestConfigValidator_ValidateNil(t *testing.T) {
	if err := NewConfigValidator("RunConfig").Positive("iterations", 3).Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDefaultOrInt(t *testing.T) {
	tests := []struct {
		value, def, want int
	}{
		{0, 8, 8},
		{-1, 8, 8},
		{16, 8, 16},
	}
	for _, tt := range tests {
		if got := DefaultOrInt(tt.value, tt.def); got != tt.want {
			t.Errorf("DefaultOrInt(%d, %d) = %d, want %d", tt.value, tt.def, got, tt.want)
		}
	}
}
