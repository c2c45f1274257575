package handler

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"loadboard/internal/model"
)

func TestParsePickupDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{"rfc3339", "2026-09-15T08:00:00Z", time.Date(2026, 9, 15, 8, 0, 0, 0, time.UTC), false},
		{"date only", "2026-09-15", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), false},
		{"empty", "", time.Time{}, true},
		{"american format", "09/15/2026", time.Time{}, true},
		{"garbage", "tomorrow", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parsePickupDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parsePickupDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err == nil && !got.Equal(tt.want) {
				t.Errorf("parsePickupDate(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestToJobRespJSON(t *testing.T) {
	j := model.Job{
		ID:               7,
		BrokerID:         2,
		Title:            "Memphis to Dallas flatbed",
		OriginCity:       "Memphis",
		OriginState:      "TN",
		DestinationCity:  "Dallas",
		DestinationState: "TX",
		Price:            180000,
		CargoType:        "steel coils",
		LoadType:         "full",
		Status:           model.JobStatusActive,
	}
	b, err := json.Marshal(toJobResp(j))
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	body := string(b)
	for _, key := range []string{`"id":7`, `"broker_id":2`, `"origin_city"`, `"destination_state"`, `"cargo_type"`, `"pickup_date"`, `"status":"active"`} {
		if !strings.Contains(body, key) {
			t.Errorf("marshaled job missing %s in %s", key, body)
		}
	}
	if strings.Contains(body, "BrokerID") || strings.Contains(body, "OriginCity") {
		t.Errorf("marshaled job leaks PascalCase field names: %s", body)
	}
	// omitted optional fields stay out of the payload
	if strings.Contains(body, "distance") || strings.Contains(body, "weight") {
		t.Errorf("nil distance/weight should be omitted: %s", body)
	}
}

func TestCreateJobReqValidate(t *testing.T) {
	valid := createJobReq{
		Title:            "Memphis to Dallas flatbed",
		OriginCity:       "Memphis",
		OriginState:      "TN",
		DestinationCity:  "Dallas",
		DestinationState: "TX",
		Price:            180000,
		CargoType:        "steel coils",
		LoadType:         "full",
		PickupDate:       "2026-09-15",
	}

	tests := []struct {
		name      string
		mutate    func(*createJobReq)
		wantField string
	}{
		{"valid", func(r *createJobReq) {}, ""},
		{"missing title", func(r *createJobReq) { r.Title = "" }, "title"},
		{"missing origin city", func(r *createJobReq) { r.OriginCity = "" }, "origin_city"},
		{"missing destination state", func(r *createJobReq) { r.DestinationState = "" }, "destination_state"},
		{"zero price", func(r *createJobReq) { r.Price = 0 }, "price"},
		{"missing cargo type", func(r *createJobReq) { r.CargoType = "" }, "cargo_type"},
		{"missing load type", func(r *createJobReq) { r.LoadType = "" }, "load_type"},
		{"bad pickup date", func(r *createJobReq) { r.PickupDate = "next week" }, "pickup_date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			fields := req.validate()
			if tt.wantField == "" {
				if len(fields) != 0 {
					t.Errorf("validate() = %v, want no errors", fields)
				}
				return
			}
			if _, ok := fields[tt.wantField]; !ok {
				t.Errorf("validate() = %v, want error for field %q", fields, tt.wantField)
			}
		})
	}
}
