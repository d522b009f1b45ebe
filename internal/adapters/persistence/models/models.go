package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Auth & User Tables
// ============================================================

// User represents users table
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Email     string         `gorm:"uniqueIndex;size:100;not null" json:"email"`
	Password  string         `gorm:"size:255;not null" json:"-"`
	Name      string         `gorm:"size:100" json:"name"`
	Phone     string         `gorm:"size:30" json:"phone"`
	Role      string         `gorm:"size:20;default:'USER'" json:"role"`
	IsActive  bool           `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Phone:     u.Phone,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

// RefreshToken represents refresh_tokens table
type RefreshToken struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	TokenHash string     `gorm:"size:255;not null;index" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	RevokedAt *time.Time `gorm:"index" json:"revoked_at"`
	User      User       `gorm:"foreignKey:UserID" json:"-"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

func (rt *RefreshToken) IsRevoked() bool {
	return rt.RevokedAt != nil
}

func (rt *RefreshToken) IsExpired() bool {
	return time.Now().After(rt.ExpiresAt)
}

// ============================================================
// Agency Tables
// ============================================================

/// AgencyProfile represents agency_profiles table (1:1 with an AGENCY user)
type AgencyProfile struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	UserID         uint           `gorm:"uniqueIndex;not null" json:"user_id"`
	Name           string         `gorm:"size:150;not null" json:"name"`
	Description    string         `gorm:"type:text" json:"description"`
	Status         string         `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	IsVerified     bool           `gorm:"default:false" json:"is_verified"` // legacy display flag, status is authoritative
	Tier           string         `gorm:"size:20;not null;default:'FREE'" json:"tier"`
	TierExpiresAt  *time.Time     `json:"tier_expires_at"`
	PayoutAccount  string         `gorm:"size:150" json:"payout_account"`
	CommissionRate float64        `gorm:"type:decimal(5,2);default:10.00" json:"commission_rate"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User         *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	BankAccounts []BankAccount `gorm:"foreignKey:AgencyID" json:"bank_accounts,omitempty"`
}

func (AgencyProfile) TableName() string {
	return "agency_profiles"
}

// IsPro reports whether PRO benefits apply at the given instant.
// There is no downgrade job; expiry is evaluated lazily at read time.
func (a *AgencyProfile) IsPro(now time.Time) bool {
	if a.Tier != "PRO" {
		return false
	}
	if a.TierExpiresAt == nil {
		return true
	}
	return a.TierExpiresAt.After(now)
}

// AgencyResponse DTO
type AgencyResponse struct {
	ID             uint       `json:"id"`
	UserID         uint       `json:"user_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Status         string     `json:"status"`
	IsVerified     bool       `json:"is_verified"`
	Tier           string     `json:"tier"`
	TierExpiresAt  *time.Time `json:"tier_expires_at,omitempty"`
	CommissionRate float64    `json:"commission_rate"`
	CreatedAt      time.Time  `json:"created_at"`
}

func (a *AgencyProfile) ToResponse() *AgencyResponse {
	return &AgencyResponse{
		ID:             a.ID,
		UserID:         a.UserID,
		Name:           a.Name,
		Description:    a.Description,
		Status:         a.Status,
		IsVerified:     a.IsVerified,
		Tier:           a.Tier,
		TierExpiresAt:  a.TierExpiresAt,
		CommissionRate: a.CommissionRate,
		CreatedAt:      a.CreatedAt,
	}
}

// BankAccount represents bank_accounts table
type BankAccount struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AgencyID      uint      `gorm:"index;not null" json:"agency_id"`
	BankName      string    `gorm:"size:100;not null" json:"bank_name"`
	AccountName   string    `gorm:"size:150;not null" json:"account_name"`
	AccountNumber string    `gorm:"size:50;not null" json:"account_number"`
	Currency      string    `gorm:"size:3;default:'DOP'" json:"currency"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (BankAccount) TableName() string {
	return "bank_accounts"
}

// ============================================================
// Tour Tables
// ============================================================

// Tour represents tours table
type Tour struct {
	ID                uint           `gorm:"primaryKey" json:"id"`
	AgencyID          uint           `gorm:"index;not null" json:"agency_id"`
	Title             string         `gorm:"size:200;not null" json:"title"`
	Description       string         `gorm:"type:text" json:"description"`
	Location          string         `gorm:"size:150;index" json:"location"`
	Latitude          *float64       `gorm:"type:decimal(10,7)" json:"latitude"`
	Longitude         *float64       `gorm:"type:decimal(10,7)" json:"longitude"`
	Price             float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency          string         `gorm:"size:3;default:'USD'" json:"currency"`
	Status            string         `gorm:"size:20;not null;default:'PUBLISHED'" json:"status"`
	FeaturedPlan      *string        `gorm:"size:50" json:"featured_plan"`
	FeaturedExpiresAt *time.Time     `gorm:"index" json:"featured_expires_at"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Agency *AgencyProfile     `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Images []TourImage        `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Dates  []TourAvailability `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"dates,omitempty"`
}

func (Tour) TableName() string {
	return "tours"
}

// IsFeatured reports whether the paid promotion is still in effect.
// Consumers must filter on this at read time; nothing sweeps expired plans.
func (t *Tour) IsFeatured(now time.Time) bool {
	return t.FeaturedExpiresAt != nil && t.FeaturedExpiresAt.After(now)
}

// TourImage represents tour_images table (URLs only, hosting is external)
type TourImage struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	TourID   uint   `gorm:"index;not null" json:"tour_id"`
	URL      string `gorm:"size:500;not null" json:"url"`
	Position int    `gorm:"default:0" json:"position"`
}

func (TourImage) TableName() string {
	return "tour_images"
}

// TourAvailability represents tour_dates table
type TourAvailability struct {
	ID     uint      `gorm:"primaryKey" json:"id"`
	TourID uint      `gorm:"index;not null" json:"tour_id"`
	Date   time.Time `gorm:"type:date;not null" json:"date"`
	Seats  int       `gorm:"default:0" json:"seats"`
}

func (TourAvailability) TableName() string {
	return "tour_dates"
}

// ============================================================
// Booking & Payment Tables
// ============================================================

// Booking represents bookings table.
/// status and payment_status are independent axes: a booking can be
// CONFIRMED while payment_status is still PENDING (cash/manual).
type Booking struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        uint       `gorm:"index;not null" json:"user_id"`
	TourID        uint       `gorm:"index;not null" json:"tour_id"`
	Date          time.Time  `gorm:"type:date;not null" json:"date"`
	People        int        `gorm:"not null" json:"people"`
	TotalPrice    float64    `gorm:"type:decimal(10,2);not null" json:"total_price"`
	Currency      string     `gorm:"size:3;default:'USD'" json:"currency"`
	Status        string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	PaymentStatus string     `gorm:"size:20;not null;default:'PENDING'" json:"payment_status"`
	PaymentMethod string     `gorm:"size:30" json:"payment_method"`
	ReceiptURL    *string    `gorm:"size:500" json:"receipt_url"`
	Phone         string     `gorm:"size:30" json:"phone"`
	CreatedAt     time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Tour *Tour `gorm:"foreignKey:TourID;constraint:OnDelete:CASCADE" json:"tour,omitempty"`
}

func (Booking) TableName() string {
	return "bookings"
}

// BookingResponse DTO
type BookingResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	TourID        uint      `json:"tour_id"`
	TourTitle     string    `json:"tour_title,omitempty"`
	Date          time.Time `json:"date"`
	People        int       `json:"people"`
	TotalPrice    float64   `json:"total_price"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	PaymentMethod string    `json:"payment_method,omitempty"`
	ReceiptURL    *string   `json:"receipt_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Booking) ToResponse() *BookingResponse {
	resp := &BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		TourID:        b.TourID,
		Date:          b.Date,
		People:        b.People,
		TotalPrice:    b.TotalPrice,
		Currency:      b.Currency,
		Status:        b.Status,
		PaymentStatus: b.PaymentStatus,
		PaymentMethod: b.PaymentMethod,
		ReceiptURL:    b.ReceiptURL,
		CreatedAt:     b.CreatedAt,
	}
	if b.Tour != nil {
		resp.TourTitle = b.Tour.Title
	}
	return resp
}

// AgencyTransaction represents agency_transactions table.
// Append-only record of a completed external payment, linked to a booking
// or directly to an agency for tier/promotion purchases.
type AgencyTransaction struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	AgencyID      uint      `gorm:"index;not null" json:"agency_id"`
	BookingID     *uint     `gorm:"index" json:"booking_id"`
	PaypalOrderID string    `gorm:"size:100;not null;index" json:"paypal_order_id"`
	Amount        float64   `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency      string    `gorm:"size:3;default:'USD'" json:"currency"`
	Method        string    `gorm:"size:30" json:"method"`
	Type          string    `gorm:"size:30" json:"type"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relations
	Agency  *AgencyProfile `gorm:"foreignKey:AgencyID" json:"agency,omitempty"`
	Booking *Booking       `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"booking,omitempty"`
}

func (AgencyTransaction) TableName() string {
	return "agency_transactions"
}

// Transaction types
const (
	TxTypeBooking       = "BOOKING"
	TxTypeMembershipPro = "MEMBERSHIP_PRO"
	TxTypeAdPromotion   = "AD_PROMOTION"
)

// ============================================================
// Plan Catalog (Master)
// ============================================================

// Plan represents plans table (static catalog, seeded once if empty)
type Plan struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	Slug         string         `gorm:"size:50;uniqueIndex;not null" json:"slug"`
	Kind         string         `gorm:"size:20;not null" json:"kind"` // AD or MEMBERSHIP
	Name         string         `gorm:"size:100;not null" json:"name"`
	Description  string         `gorm:"type:text" json:"description"`
	Price        float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Currency     string         `gorm:"size:3;default:'USD'" json:"currency"`
	DurationDays int            `gorm:"not null" json:"duration_days"`
	Features     string         `gorm:"type:text" json:"features"` // comma-separated feature list
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	CreatedAt    time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Plan) TableName() string {
	return "plans"
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Auth
		&User{},
		&RefreshToken{},
		// Agency
		&AgencyProfile{},
		&BankAccount{},
		// Catalog
		&Tour{},
		&TourImage{},
		&TourAvailability{},
		// Booking & Payment
		&Booking{},
		&AgencyTransaction{},
		// Master
		&Plan{},
	)
}
