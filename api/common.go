// Package api contains the request and response types of the HTTP interface.
package api

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionConflictResponse is returned on a duplicate session creation
// attempt. ExistingSessionId points the caller at the session to update
// instead.
type SessionConflictResponse struct {
	Message           string    `json:"message"`
	ExistingSessionId int       `json:"existingSessionId"`
	RequestId         string    `json:"requestId,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	ValidationErrors []ValidationError `json:"validationErrors"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

// Date is a calendar date serialized as "2006-01-02".
type Date struct {
	time.Time
}

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format("2006-01-02"))
}

func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string in YYYY-MM-DD format")
	}

	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}

	d.Time = t

	return nil
}

// FlexInt accepts a JSON number or a numeric string. Non-numeric input is an
// unmarshalling error, which handlers map to a 400.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case float64:
		if v != float64(int(v)) {
			return fmt.Errorf("identifier must be an integer, got %v", v)
		}
		*f = FlexInt(int(v))
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("identifier must be numeric, got %q", v)
		}
		*f = FlexInt(n)
	default:
		return fmt.Errorf("identifier must be numeric")
	}

	return nil
}

func (f FlexInt) Int() int {
	return int(f)
}
