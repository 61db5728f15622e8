// Package natschannel implements the channel adapter contract over NATS.
// Each (namespace, action) key maps to the subject "namespace.action"; one
// subscription per key, replaced wholesale on re-registration so a key can
// never deliver to two handlers.
package natschannel
