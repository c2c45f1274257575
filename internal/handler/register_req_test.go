package handler

import "testing"

func validTruckerReq() registerReq {
	return registerReq{
		Username:  "hauler1",
		Password:  "longenough",
		Email:     "hauler@example.com",
		FirstName: "Pat",
		LastName:  "Miller",
		UserType:  "trucker",
		TruckerProfile: &truckerProfileReq{
			LicenseNumber: "CDL-1234",
			TruckType:     "flatbed",
		},
	}
}

func validBrokerReq() registerReq {
	return registerReq{
		Username:  "freightco",
		Password:  "longenough",
		Email:     "ops@freightco.com",
		FirstName: "Sam",
		LastName:  "Reed",
		UserType:  "broker",
		BrokerProfile: &brokerProfileReq{
			CompanyName:    "FreightCo",
			CompanyAddress: "1 Dock St",
			CompanyCity:    "Memphis",
			CompanyState:   "TN",
			CompanyZip:     "38103",
		},
	}
}

func TestRegisterReqValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*registerReq)
		wantField string
	}{
		{"valid trucker", func(r *registerReq) {}, ""},
		{"missing username", func(r *registerReq) { r.Username = "  " }, "username"},
		{"username with at sign", func(r *registerReq) { r.Username = "hauler@1" }, "username"},
		{"short password", func(r *registerReq) { r.Password = "short" }, "password"},
		{"email without at sign", func(r *registerReq) { r.Email = "nope" }, "email"},
		{"missing first name", func(r *registerReq) { r.FirstName = "" }, "first_name"},
		{"missing last name", func(r *registerReq) { r.LastName = "" }, "last_name"},
		{"unknown role", func(r *registerReq) { r.UserType = "dispatcher" }, "user_type"},
		{"admin self-registration", func(r *registerReq) { r.UserType = "admin" }, "user_type"},
		{"trucker without profile", func(r *registerReq) { r.TruckerProfile = nil }, "trucker_profile"},
		{"trucker with broker profile", func(r *registerReq) {
			r.BrokerProfile = &brokerProfileReq{CompanyName: "x"}
		}, "broker_profile"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validTruckerReq()
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

func TestRegisterReqValidate_Broker(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*registerReq)
		wantField string
	}{
		{"valid broker", func(r *registerReq) {}, ""},
		{"broker without profile", func(r *registerReq) { r.BrokerProfile = nil }, "broker_profile"},
		{"broker with trucker profile", func(r *registerReq) {
			r.TruckerProfile = &truckerProfileReq{}
		}, "trucker_profile"},
		{"missing company name", func(r *registerReq) {
			r.BrokerProfile.CompanyName = ""
		}, "broker_profile.company_name"},
		{"missing company state", func(r *registerReq) {
			r.BrokerProfile.CompanyState = ""
		}, "broker_profile.company_state"},
		{"missing company zip", func(r *registerReq) {
			r.BrokerProfile.CompanyZip = ""
		}, "broker_profile.company_zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBrokerReq()
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

func TestRegisterReqValidate_Normalizes(t *testing.T) {
	req := validTruckerReq()
	req.Email = "  Hauler@Example.COM "
	req.UserType = " Trucker "
	if fields := req.validate(); len(fields) != 0 {
		t.Fatalf("validate() = %v, want no errors", fields)
	}
	if req.Email != "hauler@example.com" {
		t.Errorf("email = %q, want lowercased and trimmed", req.Email)
	}
	if req.UserType != "trucker" {
		t.Errorf("user_type = %q, want normalized", req.UserType)
	}
}
