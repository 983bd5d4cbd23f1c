package render

import (
	"errors"
	"fmt"
	"testing"
)

func TestParamLimitError_Error(t *testing.T) {
	err := ParamLimitError{Dialect: "mssql", Count: 2101, Limit: 2100}
	expected := "mssql: 2101 bound parameters exceed the limit of 2100; split the IN list or filter in several statements"
	if got := err.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestCapabilities_CheckParams(t *testing.T) {
	tests := []struct {
		name    string
		caps    Capabilities
		count   int
		wantErr bool
	}{
		{name: "unlimited", caps: Capabilities{}, count: 100000},
		{name: "below limit", caps: Capabilities{MaxParams: 2}, count: 1},
		{name: "at limit", caps: Capabilities{MaxParams: 2}, count: 2},
		{name: "over limit", caps: Capabilities{MaxParams: 2}, count: 3, wantErr: true},
		{name: "no params", caps: Capabilities{MaxParams: 2}, count: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.caps.CheckParams("mssql", tt.count)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CheckParams(%d) error = %v, wantErr %v", tt.count, err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var limitErr ParamLimitError
			if !errors.As(err, &limitErr) {
				t.Fatalf("expected ParamLimitError, got %T", err)
			}
			if limitErr.Dialect != "mssql" || limitErr.Count != tt.count || limitErr.Limit != tt.caps.MaxParams {
				t.Errorf("unexpected error: %+v", limitErr)
			}
		})
	}
}

func TestParamLimitError_Wrapped(t *testing.T) {
	err := fmt.Errorf("compile: %w", Capabilities{MaxParams: 1}.CheckParams("sqlite", 5))
	var limitErr ParamLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected ParamLimitError through wrapping, got %v", err)
	}
	if limitErr.Count != 5 {
		t.Errorf("Count = %d, want 5", limitErr.Count)
	}
}
