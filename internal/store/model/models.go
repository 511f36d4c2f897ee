package model

import (
	"database/sql"
	"time"
)

// Vendor is a registered material supplier.
type Vendor struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	ContactPerson string    `db:"contact_person" json:"contact_person"`
	Phone         string    `db:"phone" json:"phone"`
	Email         string    `db:"email" json:"email"`
	GSTIN         string    `db:"gstin" json:"gstin"`
	Address       string    `db:"address" json:"address"`
	City          string    `db:"city" json:"city"`
	State         string    `db:"state" json:"state"`
	Status        string    `db:"status" json:"status"` // 'active', 'inactive'
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

// DMREntry is a daily material receipt recorded at a project site against a
// vendor delivery.
type DMREntry struct {
	ID          string         `db:"id" json:"id"`
	ProjectID   string         `db:"project_id" json:"project_id"`
	VendorID    string         `db:"vendor_id" json:"vendor_id"`
	OrderID     sql.NullString `db:"order_id" json:"order_id,omitempty"`
	Material    string         `db:"material" json:"material"`
	Quantity    float64        `db:"quantity" json:"quantity"`
	Unit        string         `db:"unit" json:"unit"`
	RatePaise   int64          `db:"rate_paise" json:"rate_paise"`
	ChallanNo   string         `db:"challan_no" json:"challan_no"`
	ReceiptDate time.Time      `db:"receipt_date" json:"receipt_date"`
	Status      string         `db:"status" json:"status"` // 'pending', 'approved', 'rejected'
	Remarks     string         `db:"remarks" json:"remarks"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// ImprestDMR is a material receipt paid directly from the site imprest
// rather than against a purchase order.
type ImprestDMR struct {
	ID          string    `db:"id" json:"id"`
	ProjectID   string    `db:"project_id" json:"project_id"`
	PaidBy      string    `db:"paid_by" json:"paid_by"`
	Material    string    `db:"material" json:"material"`
	Quantity    float64   `db:"quantity" json:"quantity"`
	Unit        string    `db:"unit" json:"unit"`
	AmountPaise int64     `db:"amount_paise" json:"amount_paise"`
	ReceiptDate time.Time `db:"receipt_date" json:"receipt_date"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// PurchaseOrder is an order issued to a vendor for a project.
type PurchaseOrder struct {
	ID         string       `db:"id" json:"id"`
	ProjectID  string       `db:"project_id" json:"project_id"`
	VendorID   string       `db:"vendor_id" json:"vendor_id"`
	OrderNo    string       `db:"order_no" json:"order_no"`
	Status     string       `db:"status" json:"status"` // 'draft', 'issued', 'received', 'cancelled'
	TotalPaise int64        `db:"total_paise" json:"total_paise"`
	IssuedAt   sql.NullTime `db:"issued_at" json:"issued_at,omitempty"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// State is a reference row for geo lookups.
type State struct {
	Code string `db:"code" json:"code"`
	Name string `db:"name" json:"name"`
}

// City is a reference row for geo lookups, grouped by state code.
type City struct {
	ID        int    `db:"id" json:"id"`
	StateCode string `db:"state_code" json:"state_code"`
	Name      string `db:"name" json:"name"`
}

// DashboardCounts aggregates the record counts shown on the back-office
// landing page.
type DashboardCounts struct {
	Vendors        int `json:"vendors"`
	DMREntries     int `json:"dmr_entries"`
	ImprestDMRs    int `json:"imprest_dmrs"`
	PurchaseOrders int `json:"purchase_orders"`
}
