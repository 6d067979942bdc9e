package models

import (
	"testing"
	"time"

	"hospital-meals/internal/catalog"
)

func TestUpdateQuantityRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		wantErr  bool
	}{
		{name: "zero removes the line", quantity: 0, wantErr: false},
		{name: "positive quantity", quantity: 3, wantErr: false},
		{name: "negative quantity", quantity: -1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &UpdateQuantityRequest{Quantity: tt.quantity}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetDateRequest_Validate(t *testing.T) {
	now := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		date    string
		wantErr bool
	}{
		{name: "tomorrow", date: "2025-04-16", wantErr: false},
		{name: "today is allowed", date: "2025-04-15", wantErr: false},
		{name: "yesterday", date: "2025-04-14", wantErr: true},
		{name: "malformed", date: "15/04/2025", wantErr: true},
		{name: "empty", date: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &SetDateRequest{Date: tt.date}
			err := req.Validate(now)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSetHospitalRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		hospital string
		wantErr  bool
	}{
		{name: "known hospital", hospital: catalog.DefaultHospital, wantErr: false},
		{name: "unknown hospital", hospital: "ST ELSEWHERE", wantErr: true},
		{name: "empty", hospital: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &SetHospitalRequest{Hospital: tt.hospital}
			err := req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
