package models

import "time"

// Client represents a customer of the agency. Clients are company-wide
// records, visible to every authenticated user.
type Client struct {
	ID           int64        `json:"id" db:"id"`
	Name         string       `json:"name" db:"name"`
	Company      string       `json:"company" db:"company"`
	ContactName  string       `json:"contact_name" db:"contact_name"`
	ContactEmail string       `json:"contact_email" db:"contact_email"`
	ContactPhone string       `json:"contact_phone" db:"contact_phone"`
	Notes        string       `json:"notes" db:"notes"`
	Status       ClientStatus `json:"status" db:"status"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

type ClientStatus string

const (
	ClientStatusActive   ClientStatus = "active"
	ClientStatusArchived ClientStatus = "archived"
)

// Project is a piece of work carried out for a client.
type Project struct {
	ID          int64         `json:"id" db:"id"`
	ClientID    int64         `json:"client_id" db:"client_id"`
	Name        string        `json:"name" db:"name"`
	Description string        `json:"description" db:"description"`
	Status      ProjectStatus `json:"status" db:"status"`
	DueDate     *time.Time    `json:"due_date,omitempty" db:"due_date"`
	Budget      *float64      `json:"budget,omitempty" db:"budget"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

type ProjectStatus string

const (
	ProjectStatusPlanned ProjectStatus = "planned"
	ProjectStatusActive  ProjectStatus = "active"
	ProjectStatusOnHold  ProjectStatus = "on_hold"
	ProjectStatusDone    ProjectStatus = "done"
)

// ServiceItem is a recurring service billed to a client.
type ServiceItem struct {
	ID           int64        `json:"id" db:"id"`
	ClientID     int64        `json:"client_id" db:"client_id"`
	Name         string       `json:"name" db:"name"`
	Rate         float64      `json:"rate" db:"rate"`
	BillingCycle BillingCycle `json:"billing_cycle" db:"billing_cycle"`
	Active       bool         `json:"active" db:"active"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at" db:"updated_at"`
}

type BillingCycle string

const (
	BillingMonthly   BillingCycle = "monthly"
	BillingQuarterly BillingCycle = "quarterly"
	BillingYearly    BillingCycle = "yearly"
)

// HostingAccount tracks a hosting plan managed for a client.
type HostingAccount struct {
	ID          int64         `json:"id" db:"id"`
	ClientID    int64         `json:"client_id" db:"client_id"`
	Domain      string        `json:"domain" db:"domain"`
	Provider    string        `json:"provider" db:"provider"`
	Plan        string        `json:"plan" db:"plan"`
	RenewalDate *time.Time    `json:"renewal_date,omitempty" db:"renewal_date"`
	Status      HostingStatus `json:"status" db:"status"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

type HostingStatus string

const (
	HostingStatusActive    HostingStatus = "active"
	HostingStatusSuspended HostingStatus = "suspended"
	HostingStatusCancelled HostingStatus = "cancelled"
)

// Document is the bookkeeping record for an uploaded file in a client's
// document folder. The bytes live in the storage backend under StorageKey.
type Document struct {
	ID          int64     `json:"id" db:"id"`
	ClientID    int64     `json:"client_id" db:"client_id"`
	FileName    string    `json:"file_name" db:"file_name"`
	StorageKey  string    `json:"-" db:"storage_key"`
	Size        int64     `json:"size" db:"size"`
	ContentType string    `json:"content_type" db:"content_type"`
	UploadedBy  int64     `json:"uploaded_by" db:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
