package tracker

import "fmt"

// Domain parameterizes a tracker instance for one service area. Billing and
// international share the same submit-then-poll mechanics and differ only in
// endpoints and user-facing failure messages.
type Domain struct {
	// Name identifies the domain ("billing", "international").
	Name string
	// RequestsPath is the endpoint requests are submitted to.
	RequestsPath string
	// CatalogPath is the domain-wide catalog endpoint.
	CatalogPath string
	// SnapshotPath builds the customer-scoped snapshot endpoint.
	SnapshotPath func(customerID string) string
	// SubmitError, SnapshotError and CatalogError are the fixed user-facing
	// messages recorded when the corresponding action fails.
	SubmitError   string
	SnapshotError string
	CatalogError  string
}

// Billing returns the billing domain configuration: request submission,
// per-customer bill history, and the plan catalog.
func Billing() Domain {
	return Domain{
		Name:         "billing",
		RequestsPath: "/billing/requests",
		CatalogPath:  "/billing/plans",
		SnapshotPath: func(customerID string) string {
			return fmt.Sprintf("/customers/%s/bills", customerID)
		},
		SubmitError:   "Failed to submit billing request",
		SnapshotError: "Failed to get billing history",
		CatalogError:  "Failed to get available plans",
	}
}

// International returns the international domain configuration: request
// submission, per-customer usage, and the package catalog.
func International() Domain {
	return Domain{
		Name:         "international",
		RequestsPath: "/international/requests",
		CatalogPath:  "/international/packages",
		SnapshotPath: func(customerID string) string {
			return fmt.Sprintf("/customers/%s/international-usage", customerID)
		},
		SubmitError:   "Failed to submit international request",
		SnapshotError: "Failed to get international usage",
		CatalogError:  "Failed to get international packages",
	}
}
