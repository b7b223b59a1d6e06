package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"coolrentals/utils/phone"
)

// FieldDecodeError is returned by custom JSON decoders that reject a field's shape.
type FieldDecodeError struct {
	Field   string
	Message string
}

func (e *FieldDecodeError) Error() string {
	return e.Field + ": " + e.Message
}

// PriceInput is the price as supplied by an admin: a single monthly amount
// or an object with any of the three tiers.
type PriceInput struct {
	Flat      *float64
	Monthly   *float64
	Quarterly *float64
	Yearly    *float64
}

// IsFlat reports whether the price was sent as a bare number.
func (p PriceInput) IsFlat() bool {
	return p.Flat != nil
}

func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil
	}
	switch data[0] {
	case '{':
		var raw map[string]json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return &FieldDecodeError{Field: "price", Message: "Price must be a number or an object"}
		}
		p.Monthly = tierValue(raw["monthly"])
		p.Quarterly = tierValue(raw["quarterly"])
		p.Yearly = tierValue(raw["yearly"])
		return nil
	case '"', '[', 't', 'f':
		return &FieldDecodeError{Field: "price", Message: "Price must be a number or an object"}
	}
	var amount float64
	if err := json.Unmarshal(data, &amount); err != nil {
		return &FieldDecodeError{Field: "price", Message: "Price must be a number or an object"}
	}
	p.Flat = &amount
	return nil
}

// tierValue reads a numeric or numeric-string tier. Unparseable values become NaN
// so normalization can reject them with a field-specific message.
func tierValue(raw json.RawMessage) *float64 {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return &n
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return &v
		}
	}
	nan := math.NaN()
	return &nan
}

// CreateUnitRequest is the body of an admin unit creation.
type CreateUnitRequest struct {
	Brand       string      `json:"brand" validate:"required" msg:"required=Brand is required"`
	Model       string      `json:"model" validate:"required" msg:"required=Model is required"`
	Capacity    string      `json:"capacity" validate:"required" msg:"required=Capacity is required"`
	Type        UnitType    `json:"type" validate:"required,unit_type" msg:"required=Type is required;unit_type=Type must be Split or Window;type=Type must be Split or Window"`
	Description string      `json:"description"`
	Location    string      `json:"location" validate:"required" msg:"required=Location is required"`
	Price       *PriceInput `json:"price" validate:"required" msg:"required=Price is required;type=Price must be a number or an object"`
	Images      []string    `json:"images" validate:"omitempty,dive,url" msg:"url=Each image must be a valid URL;type=Images must be an array"`
	Status      UnitStatus  `json:"status" validate:"omitempty,unit_status" msg:"*=Status must be Available, Rented Out, or Under Maintenance"`
}

func (r *CreateUnitRequest) Normalize() {
	r.Brand = strings.TrimSpace(r.Brand)
	r.Model = strings.TrimSpace(r.Model)
	r.Capacity = strings.TrimSpace(r.Capacity)
	r.Type = UnitType(strings.TrimSpace(string(r.Type)))
	r.Description = strings.TrimSpace(r.Description)
	r.Location = strings.TrimSpace(r.Location)
}

// UpdateUnitRequest is a partial unit update; nil fields are left untouched.
type UpdateUnitRequest struct {
	Brand       *string     `json:"brand"`
	Model       *string     `json:"model"`
	Capacity    *string     `json:"capacity"`
	Type        *UnitType   `json:"type" validate:"omitempty,unit_type" msg:"*=Type must be Split or Window"`
	Description *string     `json:"description"`
	Location    *string     `json:"location"`
	Price       *PriceInput `json:"price" msg:"type=Price must be a number or an object"`
	Images      *[]string   `json:"images" validate:"omitempty,dive,url" msg:"url=Each image must be a valid URL;type=Images must be an array"`
	Status      *UnitStatus `json:"status" validate:"omitempty,unit_status" msg:"*=Status must be Available, Rented Out, or Under Maintenance"`
}

func (r *UpdateUnitRequest) Normalize() {
	trimPtr(r.Brand)
	trimPtr(r.Model)
	trimPtr(r.Capacity)
	trimPtr(r.Description)
	trimPtr(r.Location)
	// Blank strings mean "not supplied" for the required descriptive fields.
	r.Brand = nilIfBlank(r.Brand)
	r.Model = nilIfBlank(r.Model)
	r.Capacity = nilIfBlank(r.Capacity)
	r.Location = nilIfBlank(r.Location)
	if r.Type != nil && *r.Type == "" {
		r.Type = nil
	}
	if r.Status != nil && *r.Status == "" {
		r.Status = nil
	}
}

// RentalInquiryRequest is the body of POST /units/:id/inquiry.
type RentalInquiryRequest struct {
	UnitID      string         `json:"unitId"`
	UnitDetails *UnitSnapshot  `json:"unitDetails"`
	Name        string         `json:"name" validate:"required" msg:"required=Name is required"`
	Email       string         `json:"email" validate:"required,email" msg:"*=Please provide a valid email"`
	Phone       string         `json:"phone" validate:"required,phone" msg:"required=Phone is required;phone=Please provide a valid E.164 phone number (e.g., +919999999999)"`
	Duration    RentalDuration `json:"duration" validate:"required,duration" msg:"required=Duration is required;duration=Duration must be Monthly, Quarterly, or Yearly"`
	Message     string         `json:"message"`
}

func (r *RentalInquiryRequest) Normalize() {
	r.UnitID = strings.TrimSpace(r.UnitID)
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = phone.NormalizeE164(phone.Compact(r.Phone))
	r.Duration = RentalDuration(strings.TrimSpace(string(r.Duration)))
	r.Message = strings.TrimSpace(r.Message)
}

// ServiceRequestBody is the body of POST /service-requests.
type ServiceRequestBody struct {
	Name          string   `json:"name" validate:"required" msg:"required=Name is required"`
	ACType        ACType   `json:"acType" validate:"required,ac_type" msg:"required=AC type is required;ac_type=AC type must be Split, Window, or Central"`
	Brand         string   `json:"brand" validate:"required" msg:"required=Brand is required"`
	Model         string   `json:"model"`
	Description   string   `json:"description" validate:"required" msg:"required=Description is required"`
	Address       string   `json:"address" validate:"required" msg:"required=Address is required"`
	ContactNumber string   `json:"contactNumber" validate:"required,inphone" msg:"required=Contact number is required;inphone=Please provide a valid Indian phone number (+91 XXXXXXXXXX)"`
	Images        []string `json:"images" validate:"omitempty,dive,url" msg:"url=Each image must be a valid URL;type=Images must be an array"`
}

func (r *ServiceRequestBody) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.ACType = ACType(strings.TrimSpace(string(r.ACType)))
	r.Brand = strings.TrimSpace(r.Brand)
	r.Model = strings.TrimSpace(r.Model)
	r.Description = strings.TrimSpace(r.Description)
	r.Address = strings.TrimSpace(r.Address)
	r.ContactNumber = strings.TrimSpace(r.ContactNumber)
}

// ServiceBookingRequest is the body of POST /service-bookings. The legacy keys
// "date" and "time" are accepted when the preferred forms are absent.
type ServiceBookingRequest struct {
	ServiceID     string `json:"serviceId" validate:"required,objectid" msg:"required=Service ID is required;objectid=Service ID must be a valid ObjectId"`
	Name          string `json:"name" validate:"required" msg:"required=Name is required"`
	Phone         string `json:"phone" validate:"required,phone" msg:"required=Phone is required;phone=Please provide a valid E.164 phone number (e.g., +919999999999)"`
	PreferredDate string `json:"preferredDate" validate:"required,datetime=2006-01-02" msg:"required=Preferred date is required;datetime=Date must be in YYYY-MM-DD format"`
	PreferredTime string `json:"preferredTime" validate:"required,clock" msg:"required=Preferred time is required;clock=Time must be in HH:mm 24-hour format"`
	Address       string `json:"address" validate:"required,min=10" msg:"required=Address is required;min=Address must be at least 10 characters long"`
	Notes         string `json:"notes"`

	Date string `json:"date" validate:"-"`
	Time string `json:"time" validate:"-"`
}

func (r *ServiceBookingRequest) Normalize() {
	r.ServiceID = strings.TrimSpace(r.ServiceID)
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = phone.NormalizeE164(phone.CompactLoose(r.Phone))
	if strings.TrimSpace(r.PreferredDate) == "" {
		r.PreferredDate = r.Date
	}
	if strings.TrimSpace(r.PreferredTime) == "" {
		r.PreferredTime = r.Time
	}
	r.PreferredDate = strings.TrimSpace(r.PreferredDate)
	r.PreferredTime = strings.TrimSpace(r.PreferredTime)
	r.Address = strings.TrimSpace(r.Address)
	r.Notes = strings.TrimSpace(r.Notes)
}

// ServiceInput is the body of an admin service creation.
type ServiceInput struct {
	Title                string        `json:"title" validate:"required" msg:"required=Title is required"`
	Description          string        `json:"description" validate:"required" msg:"required=Description is required"`
	Price                *float64      `json:"price" validate:"required,min=0" msg:"required=Price is required;*=Price must be a positive number"`
	OriginalPrice        *float64      `json:"originalPrice" validate:"omitempty,min=0" msg:"*=Original price must be a positive number"`
	Badge                *ServiceBadge `json:"badge" validate:"omitempty,badge" msg:"*=Badge must be one of: Visit Within 1 Hour, Most Booked, Power Saver"`
	Image                string        `json:"image" validate:"omitempty,url" msg:"*=Image must be a valid URL"`
	Process              []string      `json:"process" msg:"*=Process must be an array of strings"`
	Benefits             []string      `json:"benefits" msg:"*=Benefits must be an array of strings"`
	KeyFeatures          []string      `json:"keyFeatures" msg:"*=Key features must be an array of strings"`
	RecommendedFrequency string        `json:"recommendedFrequency"`
}

func (r *ServiceInput) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	r.Image = strings.TrimSpace(r.Image)
	if r.Badge != nil && *r.Badge == "" {
		r.Badge = nil
	}
}

// ServiceUpdate is a partial service update. A present but empty badge clears it.
type ServiceUpdate struct {
	Title                *string       `json:"title"`
	Description          *string       `json:"description"`
	Price                *float64      `json:"price" validate:"omitempty,min=0" msg:"*=Price must be a positive number"`
	OriginalPrice        *float64      `json:"originalPrice" validate:"omitempty,min=0" msg:"*=Original price must be a positive number"`
	Badge                *ServiceBadge `json:"badge" validate:"omitempty,badge" msg:"*=Badge must be one of: Visit Within 1 Hour, Most Booked, Power Saver"`
	Image                *string       `json:"image" validate:"omitempty,url" msg:"*=Image must be a valid URL"`
	Process              *[]string     `json:"process" msg:"*=Process must be an array of strings"`
	Benefits             *[]string     `json:"benefits" msg:"*=Benefits must be an array of strings"`
	KeyFeatures          *[]string     `json:"keyFeatures" msg:"*=Key features must be an array of strings"`
	RecommendedFrequency *string       `json:"recommendedFrequency"`

	// ClearBadge is set when the body carried "badge": null or "".
	ClearBadge bool `json:"-"`
}

func (r *ServiceUpdate) UnmarshalJSON(data []byte) error {
	type plain ServiceUpdate
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	if b, ok := raw["badge"]; ok {
		s := strings.TrimSpace(string(b))
		if s == "null" || s == `""` {
			out.Badge = nil
			out.ClearBadge = true
		}
	}
	*r = ServiceUpdate(out)
	return nil
}

func (r *ServiceUpdate) Normalize() {
	trimPtr(r.Title)
	trimPtr(r.Description)
	trimPtr(r.Image)
}

// VendorListingRequest is the body of POST /vendor-listing-request.
type VendorListingRequest struct {
	Name         string `json:"name" validate:"required" msg:"required=Name is required"`
	Phone        string `json:"phone" validate:"required,phone" msg:"required=Phone is required;phone=Please provide a valid E.164 phone number (e.g., +919999999999)"`
	BusinessName string `json:"businessName" validate:"required" msg:"required=Business name is required"`
	Message      string `json:"message"`
}

func (r *VendorListingRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = phone.NormalizeE164(phone.Compact(r.Phone))
	r.BusinessName = strings.TrimSpace(r.BusinessName)
	r.Message = strings.TrimSpace(r.Message)
}

// LeadRequest is the body of POST /leads.
type LeadRequest struct {
	Name    string `json:"name" validate:"required" msg:"required=Name is required"`
	Phone   string `json:"phone" validate:"required,phone" msg:"required=Phone is required;phone=Please provide a valid E.164 phone number (e.g., +919999999999)"`
	Message string `json:"message"`
}

func (r *LeadRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = phone.NormalizeE164(phone.Compact(r.Phone))
	r.Message = strings.TrimSpace(r.Message)
}

// ContactRequest is the body of POST /contact.
type ContactRequest struct {
	Name    string `json:"name" validate:"required" msg:"required=Name is required"`
	Email   string `json:"email" validate:"required,email" msg:"*=Please provide a valid email"`
	Phone   string `json:"phone" validate:"required,phone" msg:"required=Phone is required;phone=Please provide a valid E.164 phone number (e.g., +919999999999)"`
	Message string `json:"message" validate:"required" msg:"required=Message is required"`
}

func (r *ContactRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Phone = phone.NormalizeE164(phone.Compact(r.Phone))
	r.Message = strings.TrimSpace(r.Message)
}

// AdminLoginRequest is the body of POST /admin/login.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"*=Please provide a valid email"`
	Password string `json:"password" validate:"required" msg:"required=Password is required"`
}

func (r *AdminLoginRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

// StatusUpdateRequest is the body of every admin status transition.
type StatusUpdateRequest struct {
	Status string `json:"status"`
}

func (r *StatusUpdateRequest) Normalize() {
	r.Status = strings.TrimSpace(r.Status)
}

func trimPtr(s *string) {
	if s != nil {
		*s = strings.TrimSpace(*s)
	}
}

func nilIfBlank(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
