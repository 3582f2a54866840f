// Package domain contains the core model of nch: the fixed cargo class
// catalog, the cargo labels scraped from the wiki, the label/class registry,
// the refit compatibility rulebook and the three-way selection state.
//
// The domain is transport- and persistence-agnostic: it does not depend on HTML
// parsing, net/http, or the filesystem. Infra/adapters map into/from these types.
package domain
