package domain

// Role represents user role in the system
type Role string

const (
	RoleUser   Role = "USER"
	RoleAgency Role = "AGENCY"
	RoleAdmin  Role = "ADMIN"
)

// AgencyStatus is the operational gate controlling whether an agency may publish tours
type AgencyStatus string

const (
	AgencyPending   AgencyStatus = "PENDING"
	AgencyActive    AgencyStatus = "ACTIVE"
	AgencyPaused    AgencyStatus = "PAUSED"
	AgencySuspended AgencyStatus = "SUSPENDED"
)

// AgencyTier is the subscription level of an agency
type AgencyTier string

const (
	TierFree AgencyTier = "FREE"
	TierPro  AgencyTier = "PRO"
)

// TourStatus is the publish status of a tour listing
type TourStatus string

const (
	TourPublished TourStatus = "PUBLISHED"
	TourPaused    TourStatus = "PAUSED"
	TourArchived  TourStatus = "ARCHIVED"
)

// BookingStatus is the reservation lifecycle (agency-controlled)
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingConfirmed BookingStatus = "CONFIRMED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingCompleted BookingStatus = "COMPLETED"
)

// PaymentStatus is the money lifecycle, independent from BookingStatus
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "PENDING"
	PaymentPaid     PaymentStatus = "PAID"
	PaymentRefunded PaymentStatus = "REFUNDED"
)

// PaymentType classifies an external payment confirmation
type PaymentType string

const (
	PaymentMembershipPro PaymentType = "MEMBERSHIP_PRO"
	PaymentAdPromotion   PaymentType = "AD_PROMOTION"
)

// PlanKind separates promotion plans from membership plans
type PlanKind string

const (
	PlanKindAd         PlanKind = "AD"
	PlanKindMembership PlanKind = "MEMBERSHIP"
)

// ModerationAction is an admin action on a tour
type ModerationAction string

const (
	ModerateDelete  ModerationAction = "DELETE"
	ModeratePause   ModerationAction = "PAUSE"
	ModeratePublish ModerationAction = "PUBLISH"
)

// ValidRole reports whether role is a known account role
func ValidRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleAgency, RoleAdmin:
		return true
	}
	return false
}

// ValidSignupRole reports whether role may be chosen at registration.
// ADMIN accounts are seeded or promoted, never self-registered.
func ValidSignupRole(role string) bool {
	switch Role(role) {
	case RoleUser, RoleAgency:
		return true
	}
	return false
}

// ValidAgencyStatus reports whether status is a known operational gate
func ValidAgencyStatus(status string) bool {
	switch AgencyStatus(status) {
	case AgencyPending, AgencyActive, AgencyPaused, AgencySuspended:
		return true
	}
	return false
}

// ValidBookingStatus reports whether status is a known reservation state
func ValidBookingStatus(status string) bool {
	switch BookingStatus(status) {
	case BookingPending, BookingConfirmed, BookingCancelled, BookingCompleted:
		return true
	}
	return false
}
