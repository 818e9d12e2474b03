package shifts

import "testing"

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"morning window", "09:00", "13:00", false},
		{"evening window", "17:00", "22:00", false},
		{"end before start", "13:00", "09:00", true},
		{"zero-length", "09:00", "09:00", true},
		{"garbage start", "9am", "13:00", true},
		{"garbage end", "09:00", "later", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateWindow(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateWindow(%q, %q) = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}
