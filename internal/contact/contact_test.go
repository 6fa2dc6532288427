package contact

import (
	"testing"

	"github.com/killua200817/Bhopal-Bazaar/internal/model"
)

func TestFormatPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{"1234567890", "(123) 456-7890"},
		{"11234567890", "+1 (123) 456-7890"},
		{"+44 20 7946 0958", "+44 20 7946 0958"}, // international passes through
		{"(123) 456-7890", "(123) 456-7890"},     // already formatted
		{"123-4567", "123-4567"},
		{"", ""},
		{"12345", "12345"},             // odd length passes through
		{"21234567890", "21234567890"}, // 11 digits without trunk 1
	}

	for _, tt := range tests {
		if got := FormatPhone(tt.in); got != tt.want {
			t.Errorf("FormatPhone(%q): expected %q, got %q", tt.in, tt.want, got)
		}
	}
}

func TestResolveVendorPrecedence(t *testing.T) {
	t.Parallel()

	o := &model.OrderRecord{
		ID:          "ord-9",
		VendorPhone: "1234567890",
		VendorEmail: "veg@newmarket.example",
	}

	// Phone wins over email.
	a, ok := Resolve(RoleVendor, o)
	if !ok {
		t.Fatal("expected a vendor action")
	}
	if a.Kind != KindCall {
		t.Fatalf("expected call, got %s", a.Kind)
	}
	if a.Number != "(123) 456-7890" {
		t.Errorf("expected normalized number, got %q", a.Number)
	}

	// Without a phone the email message is offered, with the order
	// reference in the subject.
	o.VendorPhone = ""
	a, ok = Resolve(RoleVendor, o)
	if !ok {
		t.Fatal("expected a vendor action")
	}
	if a.Kind != KindMessage {
		t.Fatalf("expected message, got %s", a.Kind)
	}
	if a.Address != "veg@newmarket.example" {
		t.Errorf("unexpected address %q", a.Address)
	}
	if a.Subject != "Question about Order ord-9" {
		t.Errorf("unexpected subject %q", a.Subject)
	}

	// Nothing to contact with: no action, not a disabled one.
	o.VendorEmail = ""
	if _, ok := Resolve(RoleVendor, o); ok {
		t.Error("expected no action for vendor without phone or email")
	}
}

func TestResolveDriver(t *testing.T) {
	t.Parallel()

	o := &model.OrderRecord{ID: "ord-9"}
	if _, ok := Resolve(RoleDriver, o); ok {
		t.Error("expected no driver action before a driver is assigned")
	}

	o.DriverPhone = "11234567890"
	a, ok := Resolve(RoleDriver, o)
	if !ok {
		t.Fatal("expected a driver action")
	}
	if a.Kind != KindCall || a.Number != "+1 (123) 456-7890" {
		t.Errorf("unexpected driver action %+v", a)
	}
}

func TestResolveSupport(t *testing.T) {
	t.Parallel()

	o := &model.OrderRecord{ID: "ord-9"}
	a, ok := Resolve(RoleSupport, o)
	if !ok {
		t.Fatal("expected a support action")
	}
	if a.Kind != KindMessage {
		t.Fatalf("expected message, got %s", a.Kind)
	}
	if a.Address != SupportEmail {
		t.Errorf("unexpected address %q", a.Address)
	}
	if a.Subject != "Support Request for Order ord-9" {
		t.Errorf("unexpected subject %q", a.Subject)
	}
	if a.Body == "" {
		t.Error("expected a prefilled body")
	}
}

func TestResolveUnknownRole(t *testing.T) {
	t.Parallel()

	if _, ok := Resolve(Role("mayor"), &model.OrderRecord{ID: "ord-9"}); ok {
		t.Error("expected no action for an unknown role")
	}
}
