// Package service implements the marketplace use cases on top of the
// store interfaces: catalog reads, booking lifecycle, reviews, and
// saved-service bookmarks. Cross-entity rules that span more than one
// store (subscription end dates, booking-scoped review creation) live
// here rather than in the domain entities.
package service
