package domain_test

import (
	"testing"
	"time"

	"github.com/campusbook/appointments/internal/domain"
)

func TestRegisterRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     domain.RegisterRequest
		wantErr bool
	}{
		{
			name: "valid student",
			req:  domain.RegisterRequest{Name: "Student A1", Email: "a1@example.com", Password: "password123", Role: "STUDENT"},
		},
		{
			name: "valid professor without name",
			req:  domain.RegisterRequest{Email: "p1@example.com", Password: "password123", Role: "PROFESSOR"},
		},
		{
			name:    "missing email",
			req:     domain.RegisterRequest{Password: "password123", Role: "STUDENT"},
			wantErr: true,
		},
		{
			name:    "malformed email",
			req:     domain.RegisterRequest{Email: "not-an-email", Password: "password123", Role: "STUDENT"},
			wantErr: true,
		},
		{
			name:    "short password",
			req:     domain.RegisterRequest{Email: "a1@example.com", Password: "12345", Role: "STUDENT"},
			wantErr: true,
		},
		{
			name:    "unknown role",
			req:     domain.RegisterRequest{Email: "a1@example.com", Password: "password123", Role: "ADMIN"},
			wantErr: true,
		},
		{
			name:    "missing role",
			req:     domain.RegisterRequest{Email: "a1@example.com", Password: "password123"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.Normalize()
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegisterRequestNormalize(t *testing.T) {
	req := domain.RegisterRequest{
		Name:     "  Student A1  ",
		Email:    "  A1@Example.COM ",
		Password: "password123",
		Role:     "student",
	}
	req.Normalize()

	if req.Email != "a1@example.com" {
		t.Errorf("email = %q, want lower-cased and trimmed", req.Email)
	}
	if req.Role != "STUDENT" {
		t.Errorf("role = %q, want STUDENT", req.Role)
	}
	if req.Name != "Student A1" {
		t.Errorf("name = %q, want trimmed", req.Name)
	}
	if err := req.Validate(); err != nil {
		t.Errorf("normalized request should validate, got %v", err)
	}
}

func TestCreateSlotRequestParse(t *testing.T) {
	req := domain.CreateSlotRequest{Time: "2024-02-01T10:00:00Z", Duration: 30}
	start, dur, err := req.Parse()
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if start.Hour() != 10 || dur != 30*time.Minute {
		t.Errorf("unexpected start %v duration %v", start, dur)
	}

	for _, bad := range []domain.CreateSlotRequest{
		{Time: "", Duration: 30},
		{Time: "yesterday", Duration: 30},
		{Time: "2024-02-01T10:00:00Z", Duration: 0},
		{Time: "2024-02-01T10:00:00Z", Duration: -15},
	} {
		if _, _, err := bad.Parse(); err == nil {
			t.Errorf("Parse(%+v) expected error", bad)
		}
	}
}
