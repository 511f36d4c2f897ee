package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nirmaan-tech/procure-api/internal/store/model"
	"github.com/nirmaan-tech/procure-api/internal/store/sqlite"
)

var states = []model.State{
	{Code: "MH", Name: "Maharashtra"},
	{Code: "KA", Name: "Karnataka"},
	{Code: "DL", Name: "Delhi"},
	{Code: "TN", Name: "Tamil Nadu"},
	{Code: "GJ", Name: "Gujarat"},
}

var cities = map[string][]string{
	"MH": {"Mumbai", "Pune", "Nagpur"},
	"KA": {"Bengaluru", "Mysuru", "Hubballi"},
	"DL": {"New Delhi"},
	"TN": {"Chennai", "Coimbatore"},
	"GJ": {"Ahmedabad", "Surat"},
}

func main() {
	repo, err := sqlite.NewSQLiteStorage("file:procure.db?_journal_mode=WAL&_busy_timeout=5000", zap.NewNop())
	if err != nil {
		log.Fatal(err)
	}
	defer repo.Close()

	ctx := context.Background()

	if err := repo.Geo().SeedStates(ctx, states); err != nil {
		log.Printf("states might already exist: %v", err)
	}
	for code, names := range cities {
		if err := repo.Geo().SeedCities(ctx, code, names); err != nil {
			log.Printf("cities for %s might already exist: %v", code, err)
		}
	}

	vendor := &model.Vendor{
		ID:            uuid.NewString(),
		Name:          "Shree Balaji Cement Traders",
		ContactPerson: "R. Patil",
		Phone:         "+91-9820012345",
		Email:         "sales@sbcement.example",
		GSTIN:         "27AAAPL1234C1ZV",
		Address:       "Plot 14, MIDC",
		City:          "Pune",
		State:         "MH",
		Status:        "active",
	}
	if err := repo.Vendors().Create(ctx, vendor); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created vendor: %s\n", vendor.ID)

	order := &model.PurchaseOrder{
		ID:         uuid.NewString(),
		ProjectID:  "proj-hinjewadi-a",
		VendorID:   vendor.ID,
		OrderNo:    "PO-2026-0001",
		Status:     "draft",
		TotalPaise: 41_50_000,
	}
	if err := repo.Orders().Create(ctx, order); err != nil {
		log.Fatal(err)
	}
	if err := repo.Orders().UpdateStatus(ctx, order.ID, "issued"); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created purchase order: %s\n", order.OrderNo)

	dmr := &model.DMREntry{
		ID:          uuid.NewString(),
		ProjectID:   "proj-hinjewadi-a",
		VendorID:    vendor.ID,
		OrderID:     sql.NullString{String: order.ID, Valid: true},
		Material:    "OPC 53 cement",
		Quantity:    100,
		Unit:        "bag",
		RatePaise:   41_500,
		ChallanNo:   "CH-7731",
		ReceiptDate: time.Now().UTC(),
		Status:      "pending",
	}
	if err := repo.DMREntries().Create(ctx, dmr); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created dmr entry: %s\n", dmr.ID)

	imprest := &model.ImprestDMR{
		ID:          uuid.NewString(),
		ProjectID:   "proj-hinjewadi-a",
		PaidBy:      "site-engineer-01",
		Material:    "binding wire",
		Quantity:    25,
		Unit:        "kg",
		AmountPaise: 2_125_00,
		ReceiptDate: time.Now().UTC(),
	}
	if err := repo.ImprestDMRs().Create(ctx, imprest); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Created imprest receipt: %s\n", imprest.ID)

	fmt.Println("\nSuccessfully seeded database!")
}
