// Package status models the closed set of order fulfillment states and the
// presentation facts derived from them. Every function is total: a status
// value the backend invented after this build still renders, it just falls
// back to neutral defaults instead of crashing the viewer.
package status

// Status is an order fulfillment state. Values outside the canonical
// constants are carried verbatim (the unrecognized variant), so fail-open
// behavior is explicit rather than a lookup-table miss.
type Status string

const (
	Pending        Status = "PENDING"
	Preparing      Status = "PREPARING"
	AwaitingDriver Status = "AWAITING_DRIVER"
	PickingUp      Status = "PICKING_UP"
	Delivering     Status = "DELIVERING"
	Delivered      Status = "DELIVERED"
	Cancelled      Status = "CANCELLED"
)

// Wire strings used by the fulfillment backend.
var wireStatus = map[string]Status{
	"pending_payment":                     Pending,
	"preparing":                           Preparing,
	"waiting for a driver to be assigned": AwaitingDriver,
	"driver coming to pickup":             PickingUp,
	"driver delivering":                   Delivering,
	"delivered":                           Delivered,
	"cancelled":                           Cancelled,
}

var statusWire = map[Status]string{
	Pending:        "pending_payment",
	Preparing:      "preparing",
	AwaitingDriver: "waiting for a driver to be assigned",
	PickingUp:      "driver coming to pickup",
	Delivering:     "driver delivering",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// Parse maps a backend wire string to a Status. Canonical constant names are
// accepted too. Anything else is preserved verbatim so re-serialization never
// loses what the backend sent.
func Parse(raw string) Status {
	if s, ok := wireStatus[raw]; ok {
		return s
	}
	return Status(raw)
}

// Wire returns the backend wire string for s, or the raw value for an
// unrecognized status.
func (s Status) Wire() string {
	if w, ok := statusWire[s]; ok {
		return w
	}
	return string(s)
}

// forwardRank orders the canonical delivery path. Cancelled sits outside the
// path and is handled separately.
var forwardRank = map[Status]int{
	Pending:        0,
	Preparing:      1,
	AwaitingDriver: 2,
	PickingUp:      3,
	Delivering:     4,
	Delivered:      5,
	Cancelled:      -1,
}

// Known reports whether s belongs to the closed set.
func (s Status) Known() bool {
	_, ok := forwardRank[s]
	return ok
}

// Terminal reports whether s is absorbing. No transition is ever requested
// out of a terminal state.
func (s Status) Terminal() bool {
	return s == Delivered || s == Cancelled
}

// Active reports whether the order is still in flight. Unrecognized statuses
// count as active: the safe default is to keep showing progress chrome.
func (s Status) Active() bool {
	return !s.Terminal()
}

// CanTransition reports whether moving from one state to another is legal:
// monotonically forward along the canonical path, or to Cancelled from any
// non-terminal state. Unrecognized values are rejected on either side.
func CanTransition(from, to Status) bool {
	if !from.Known() || !to.Known() {
		return false
	}
	if from.Terminal() {
		return false
	}
	if to == Cancelled {
		return true
	}
	return forwardRank[to] > forwardRank[from]
}

var labels = map[Status]string{
	Pending:        "Pending Payment",
	Preparing:      "Preparing",
	AwaitingDriver: "Awaiting Driver",
	PickingUp:      "Driver Headed to Store",
	Delivering:     "Out for Delivery",
	Delivered:      "Delivered",
	Cancelled:      "Cancelled",
}

var progress = map[Status]int{
	Pending:        10,
	Preparing:      30,
	AwaitingDriver: 50,
	PickingUp:      65,
	Delivering:     80,
	Delivered:      100,
	Cancelled:      0,
}

var colors = map[Status]string{
	Pending:        "bg-yellow-100 text-yellow-800",
	Preparing:      "bg-yellow-100 text-yellow-800",
	AwaitingDriver: "bg-purple-100 text-purple-800",
	PickingUp:      "bg-indigo-100 text-indigo-800",
	Delivering:     "bg-teal-100 text-teal-800",
	Delivered:      "bg-green-100 text-green-800",
	Cancelled:      "bg-red-100 text-red-800",
}

// Per-status progress caption shown under the progress bar.
var captions = map[Status]string{
	Pending:        "Waiting for payment confirmation...",
	Preparing:      "The vendor is preparing your order...",
	AwaitingDriver: "Looking for a driver to pick up your order...",
	PickingUp:      "Driver is headed to pick up your order...",
	Delivering:     "Your order is on the way to you!",
}

// Label returns the human-readable status name. Unrecognized statuses label
// as their raw value.
func (s Status) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return string(s)
}

// Progress returns the progress-bar percentage for s, 0 when unrecognized.
func (s Status) Progress() int {
	return progress[s]
}

// Color returns the badge color classes for s, neutral gray when unrecognized.
func (s Status) Color() string {
	if c, ok := colors[s]; ok {
		return c
	}
	return "bg-gray-100 text-gray-800"
}

// Caption returns the progress caption for s, empty when none applies.
func (s Status) Caption() string {
	return captions[s]
}
