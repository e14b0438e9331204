package constants

// Session / context keys
const (
	SessionCookieName = "contract_session"
	ContextKeyUserID  = "user_id"

	// Context keys populated by the membership middleware
	ContextKeyPrincipal = "principal"
)

// Authentication
const (
	MinPasswordLength = 8
)

// Pagination
const (
	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Vendors
const (
	// MaxVendorDocuments caps the number of documents attached to a single vendor.
	MaxVendorDocuments = 3
)

// Invites
const (
	// InviteTokenBytes is the number of random bytes behind an invite token.
	// The token is a bearer credential, so it has to be unguessable.
	InviteTokenBytes = 32
)
