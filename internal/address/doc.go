// Package address validates and canonicalizes the page addresses users
// submit for auditing.
//
// Addresses without a scheme default to https, scheme and host are
// lowercased, default ports and fragments are removed, and the hostname
// must be a dotted domain name ending in an alphabetic TLD:
//
//	res := address.Normalize("Example.com.br/produtos#topo")
//	// res.Normalized == "https://example.com.br/produtos"
package address
