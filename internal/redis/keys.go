package redisx

import "fmt"

const ns = "festgo:v1"

func KeyCatalog() string {
	return ns + ":catalog:all"
}

func KeyCatalogItem(itemID int64) string {
	return fmt.Sprintf("%s:catalog:%d", ns, itemID)
}

func KeyOrder(orderID string) string {
	return fmt.Sprintf("%s:order:%s", ns, orderID)
}

func KeyTicket(ticketID string) string {
	return fmt.Sprintf("%s:ticket:%s", ns, ticketID)
}

// KeyRateLimit is the limiter prefix for one scope; the limiter appends the
// per-caller suffix itself.
func KeyRateLimit(scope string) string {
	return fmt.Sprintf("%s:rl:%s", ns, scope)
}

func ChannelEntityChanged() string {
	return ns + ":entities:changed"
}
