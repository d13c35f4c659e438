package service

import (
	"regexp"
	"strings"

	"crmdesk/internal/model"
)

const (
	maxNameLen    = 100
	maxEmailLen   = 255
	maxPhoneLen   = 30
	maxAddressLen = 200
	maxCityLen    = 100
	maxCountryLen = 100
	maxNumberLen  = 50
	maxStatusLen  = 30
	maxNotesLen   = 500
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9+\-() ]+$`)
)

// ValidateCustomer checks field rules only; uniqueness needs storage and
// is the service's job. An empty map means the record is well formed.
func ValidateCustomer(c *model.Customer) map[string]string {
	fields := map[string]string{}

	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		fields["name"] = "name is required"
	case len(name) > maxNameLen:
		fields["name"] = "name must be at most 100 characters"
	}

	email := strings.TrimSpace(c.Email)
	switch {
	case email == "":
		fields["email"] = "email is required"
	case len(email) > maxEmailLen:
		fields["email"] = "email must be at most 255 characters"
	case !emailPattern.MatchString(email):
		fields["email"] = "email format is invalid"
	}

	if c.Phone != nil {
		switch {
		case len(*c.Phone) > maxPhoneLen:
			fields["phone"] = "phone must be at most 30 characters"
		case !phonePattern.MatchString(*c.Phone):
			fields["phone"] = "phone may only contain digits, spaces and + - ( )"
		}
	}
	if c.Address != nil && len(*c.Address) > maxAddressLen {
		fields["address"] = "address must be at most 200 characters"
	}
	if c.City != nil && len(*c.City) > maxCityLen {
		fields["city"] = "city must be at most 100 characters"
	}
	if c.Country != nil && len(*c.Country) > maxCountryLen {
		fields["country"] = "country must be at most 100 characters"
	}

	return fields
}

// ValidateOrder checks field rules only; number uniqueness and customer
// existence need storage and are the service's job.
func ValidateOrder(o *model.Order) map[string]string {
	fields := map[string]string{}

	number := strings.TrimSpace(o.Number)
	switch {
	case number == "":
		fields["number"] = "order number is required"
	case len(number) > maxNumberLen:
		fields["number"] = "order number must be at most 50 characters"
	}

	if o.CustomerID <= 0 {
		fields["customer"] = "customer is required"
	}
	if o.OrderDate.IsZero() {
		fields["date"] = "order date is required"
	}
	if !o.Total.IsPositive() {
		fields["total"] = "total must be greater than zero"
	}
	if len(o.Status) > maxStatusLen {
		fields["status"] = "status must be at most 30 characters"
	}
	if o.Notes != nil && len(*o.Notes) > maxNotesLen {
		fields["notes"] = "notes must be at most 500 characters"
	}

	return fields
}
