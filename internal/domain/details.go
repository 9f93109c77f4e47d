package domain

// Read models combining an entity with the related rows its wire
// representation embeds. These are produced by joined store queries and
// are never written back.

// ServiceDetail is a Service together with its provider and, when set,
// its category.
type ServiceDetail struct {
	Service
	Provider ServiceProvider
	Category *ServiceCategory
}

// BookingDetail is a ServiceBooking together with the booked service's
// detail view.
type BookingDetail struct {
	ServiceBooking
	Service ServiceDetail
}

// ReviewDetail is a ServiceReview together with the reviewer's email and
// the reviewed service's name, joined through the booking.
type ReviewDetail struct {
	ServiceReview
	ReviewerEmail string
	ServiceName   string
}

// SavedServiceDetail is a SavedService together with the bookmarked
// service's detail view.
type SavedServiceDetail struct {
	SavedService
	Service ServiceDetail
}
