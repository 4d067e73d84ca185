package kernel

import (
	"errors"
	"strings"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

// ErrShippingInfoIsNotConstructed is returned when a zero-value ShippingInfo is used.
var ErrShippingInfoIsNotConstructed = errs.NewValueIsRequiredError(
	"shipping info must be created via NewShippingInfo constructor")

// ShippingInfo is the delivery destination of an order. It is captured once at order
// creation and never changes afterwards.
//
// Region is the routing key used to match couriers. When it is not supplied it is
// derived from the last non-empty comma separated segment of the address.
//
// Example:
//
//	info, err := kernel.NewShippingInfo("Ann Lee", "+1 555 0100", "12 Main St, Springfield", "")
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(info.Region()) // springfield
type ShippingInfo struct { //nolint:recvcheck //using for validation
	receiverName  string
	receiverPhone string
	address       string
	region        string
	guard         guard.ConstructorGuard
}

// NewShippingInfo validates and creates a ShippingInfo. receiverName, receiverPhone and
// address are required; region is optional.
func NewShippingInfo(receiverName, receiverPhone, address, region string) (ShippingInfo, error) {
	info := ShippingInfo{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		info.setReceiverName(receiverName),
		info.setReceiverPhone(receiverPhone),
		info.setAddress(address),
	); err != nil {
		return ShippingInfo{}, err
	}

	info.setRegion(region)

	return info, nil
}

// ReceiverName returns the name of the person receiving the parcel.
func (s ShippingInfo) ReceiverName() string {
	return s.receiverName
}

// ReceiverPhone returns the contact phone of the receiver.
func (s ShippingInfo) ReceiverPhone() string {
	return s.receiverPhone
}

// Address returns the free-form delivery address.
func (s ShippingInfo) Address() string {
	return s.address
}

// Region returns the normalized (trimmed, lower-cased) delivery region. It may be empty
// when neither an explicit region nor a comma separated address was given.
func (s ShippingInfo) Region() string {
	return s.region
}

// InRegion reports whether region matches this destination, ignoring case and
// surrounding whitespace. An empty region never matches.
func (s ShippingInfo) InRegion(region string) bool {
	normalized := NormalizeRegion(region)
	return s.region != "" && normalized != "" && s.region == normalized
}

// IsEqual compares all fields.
func (s ShippingInfo) IsEqual(other ShippingInfo) bool {
	return s.receiverName == other.receiverName &&
		s.receiverPhone == other.receiverPhone &&
		s.address == other.address &&
		s.region == other.region
}

// Validate returns ErrShippingInfoIsNotConstructed for the zero value.
func (s ShippingInfo) Validate() error {
	return s.guard.Validate(ErrShippingInfoIsNotConstructed)
}

// NormalizeRegion trims and lower-cases a region name.
func NormalizeRegion(region string) string {
	return strings.ToLower(strings.TrimSpace(region))
}

func (s *ShippingInfo) setReceiverName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("receiverName")
	}
	s.receiverName = name
	return nil
}

func (s *ShippingInfo) setReceiverPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("receiverPhone")
	}
	s.receiverPhone = phone
	return nil
}

func (s *ShippingInfo) setAddress(address string) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errs.NewValueIsRequiredError("address")
	}
	s.address = address
	return nil
}

func (s *ShippingInfo) setRegion(region string) {
	if normalized := NormalizeRegion(region); normalized != "" {
		s.region = normalized
		return
	}

	segments := strings.Split(s.address, ",")
	for i := len(segments) - 1; i >= 0; i-- {
		if normalized := NormalizeRegion(segments[i]); normalized != "" {
			s.region = normalized
			return
		}
	}
}
