package models

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Size is the pizza size. Stored lower-case, serialised upper-case.
type Size string

const (
	SizeSmall      Size = "small"
	SizeMedium     Size = "medium"
	SizeLarge      Size = "large"
	SizeExtraLarge Size = "extra_large"
)

// Sizes lists every accepted size.
var Sizes = []Size{SizeSmall, SizeMedium, SizeLarge, SizeExtraLarge}

// IsValid reports whether s is one of Sizes.
func (s Size) IsValid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

func (s Size) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(string(s)))
}

// UnmarshalJSON accepts any casing. Values outside Sizes are kept so the
// `enum` validation rule can report them as a field error.
func (s *Size) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "size")
	if err != nil {
		return err
	}
	*s = Size(v)
	return nil
}

// OrderStatus is the delivery state of an order.
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusInTransit OrderStatus = "in_transit"
	StatusDelivered OrderStatus = "delivered"
)

// OrderStatuses lists every accepted status.
var OrderStatuses = []OrderStatus{StatusPending, StatusInTransit, StatusDelivered}

// IsValid reports whether s is one of OrderStatuses.
func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func (s OrderStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.ToUpper(string(s)))
}

func (s *OrderStatus) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, "order_status")
	if err != nil {
		return err
	}
	*s = OrderStatus(v)
	return nil
}

func unmarshalEnum(b []byte, field string) (string, error) {
	if string(b) == "null" {
		return "", nil
	}
	var raw string
	if err := json.Unmarshal(b, &raw); err != nil {
		return "", fmt.Errorf("%s must be a string", field)
	}
	return strings.ToLower(strings.TrimSpace(raw)), nil
}

// Order is a pizza order placed by a customer.
type Order struct {
	ID          uint        `gorm:"primaryKey"                        json:"id"`
	Size        Size        `gorm:"size:20;not null;default:small"    json:"size"`
	OrderStatus OrderStatus `gorm:"size:20;not null;default:pending"  json:"order_status"`
	Flavour     string      `gorm:"size:45;not null"                  json:"flavour"`
	Quantity    int         `gorm:"not null"                          json:"quantity"`
	CreatedAt   time.Time   `json:"created_at"`
	Customer    *uint       `gorm:"index"                             json:"customer"`
	User        *User       `gorm:"foreignKey:Customer;constraint:OnDelete:SET NULL" json:"-"`
}
