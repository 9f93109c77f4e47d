// Package store defines the persistence interfaces for the marketplace
// entities, the shared list-refinement machinery (search, ordering,
// filters), and the sentinel errors implementations must return.
//
// Ownership scoping is part of each interface contract: owner-scoped
// methods take the requesting user's ID and must never return rows owned
// by anyone else. Rows outside the caller's scope are reported as not
// found, not as forbidden.
package store
