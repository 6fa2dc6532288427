// Package contact resolves the single contact action offered for a vendor,
// driver, or support target on the order panel. Precedence is fixed: a phone
// number wins, then an email, then no action at all (the control is omitted,
// never disabled).
package contact

import (
	"fmt"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

// SupportEmail is the storefront support mailbox.
const SupportEmail = "customercontact@bhopalbazaar.com"

// Role identifies who the customer wants to reach.
type Role string

const (
	RoleVendor  Role = "vendor"
	RoleDriver  Role = "driver"
	RoleSupport Role = "support"
)

// Kind tags the action variant.
type Kind string

const (
	KindCall    Kind = "call"
	KindMessage Kind = "message"
)

// Action is one resolved contact action. Number is set for calls; Address,
// Subject and Body for messages.
type Action struct {
	Kind    Kind   `json:"kind"`
	Number  string `json:"number,omitempty"`
	Address string `json:"address,omitempty"`
	Subject string `json:"subject,omitempty"`
	Body    string `json:"body,omitempty"`
}

// Resolve picks the contact action for the given role, or ok=false when the
// order carries nothing to contact that role with.
func Resolve(role Role, o *model.OrderRecord) (Action, bool) {
	switch role {
	case RoleVendor:
		if o.VendorPhone != "" {
			return Action{Kind: KindCall, Number: FormatPhone(o.VendorPhone)}, true
		}
		if o.VendorEmail != "" {
			return Action{
				Kind:    KindMessage,
				Address: o.VendorEmail,
				Subject: fmt.Sprintf("Question about Order %s", o.ID),
			}, true
		}
	case RoleDriver:
		if o.DriverPhone != "" {
			return Action{Kind: KindCall, Number: FormatPhone(o.DriverPhone)}, true
		}
	case RoleSupport:
		return Action{
			Kind:    KindMessage,
			Address: SupportEmail,
			Subject: fmt.Sprintf("Support Request for Order %s", o.ID),
			Body:    fmt.Sprintf("Hello, I need assistance with my order (ID: %s). Please provide support.", o.ID),
		}, true
	}
	return Action{}, false
}

// FormatPhone normalizes a phone number for display, best effort:
//
//	"1234567890"      -> "(123) 456-7890"
//	"11234567890"     -> "+1 (123) 456-7890"
//	"+44 20 7946 0958" -> unchanged (already international)
//	"(123) 456-7890"  -> unchanged (already formatted)
//
// Anything else passes through untouched; malformed input never errors.
func FormatPhone(phone string) string {
	if phone == "" {
		return ""
	}

	// Already formatted or already international.
	for _, r := range phone {
		if r == '-' || r == '(' {
			return phone
		}
	}
	if phone[0] == '+' {
		return phone
	}

	if len(phone) == 10 {
		return fmt.Sprintf("(%s) %s-%s", phone[0:3], phone[3:6], phone[6:])
	}
	if len(phone) == 11 && phone[0] == '1' {
		return fmt.Sprintf("+1 (%s) %s-%s", phone[1:4], phone[4:7], phone[7:])
	}

	return phone
}
