// Package feed is the live refresh channel: a push notification fan-out that
// tells every open admin session "something changed" whenever orders or cake
// inquiries are written. Notifications carry no payload diff; subscribers
// re-fetch.
package feed

// Tables the feed is scoped to. Events for anything else are never published.
const (
	TableOrders    = "orders"
	TableInquiries = "cake_inquiries"
)

// Actions mirror the data-store change kinds.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Event says that records of interest were modified.
type Event struct {
	Table  string `json:"table"`
	Action string `json:"action"`
}

// Publisher is the write-side seam: services publish, the hub fans out.
type Publisher interface {
	Publish(event Event)
}
