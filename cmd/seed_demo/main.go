package main

import (
	"fmt"
	"log"

	"github.com/xelth-com/eckrecongo/internal/config"
	"github.com/xelth-com/eckrecongo/internal/database"
	"github.com/xelth-com/eckrecongo/internal/models"
)

func main() {
	fmt.Println("🌱 eckRecon Demo Data Seeder")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatalf("❌ Failed to connect to database: %v", err)
	}
	defer db.Close()

	fmt.Println("✅ Connected to database")

	fmt.Println("🔨 Running database migrations...")
	err = db.AutoMigrate(
		&models.Product{},
		&models.Warehouse{},
		&models.Store{},
		&models.Session{},
		&models.SessionItem{},
		&models.ScanEvent{},
		&models.StockItem{},
		&models.Asset{},
		&models.AssetHistory{},
		&models.Shipment{},
		&models.ShipmentLine{},
		&models.Delivery{},
	)
	if err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	fmt.Println("✅ Migrations complete")

	var productCount int64
	db.Model(&models.Product{}).Count(&productCount)
	if productCount > 0 {
		fmt.Printf("⚠️  Database already has %d products. Clear it first? (y/N): ", productCount)
		var answer string
		fmt.Scanln(&answer)
		if answer != "y" && answer != "Y" {
			fmt.Println("❌ Aborted. Database not modified.")
			return
		}

		fmt.Println("🗑️  Clearing existing data...")
		db.Exec("TRUNCATE TABLE scan_events CASCADE")
		db.Exec("TRUNCATE TABLE session_items CASCADE")
		db.Exec("TRUNCATE TABLE sessions CASCADE")
		db.Exec("TRUNCATE TABLE shipment_lines CASCADE")
		db.Exec("TRUNCATE TABLE deliveries CASCADE")
		db.Exec("TRUNCATE TABLE shipments CASCADE")
		db.Exec("TRUNCATE TABLE asset_history CASCADE")
		db.Exec("TRUNCATE TABLE assets CASCADE")
		db.Exec("TRUNCATE TABLE stock_items CASCADE")
		db.Exec("TRUNCATE TABLE products CASCADE")
		db.Exec("TRUNCATE TABLE stores CASCADE")
		db.Exec("TRUNCATE TABLE warehouses CASCADE")
		fmt.Println("✅ Data cleared")
	}

	fmt.Println("📦 Creating demo data...")

	// 1. Directory
	warehouse := models.Warehouse{Name: "Central Warehouse", Location: "Berlin"}
	db.Create(&warehouse)

	store := models.Store{Name: "Store Mitte", Address: "Alexanderplatz 1, Berlin"}
	db.Create(&store)

	products := []models.Product{
		{SKU: "CBL-CAT6-5M", Name: "Cat6 Patch Cable 5m", Category: "cables"},
		{SKU: "TERM-POS-12", Name: "POS Terminal 12\"", Category: "equipment", IsSerial: true},
		{SKU: "PAPER-80MM", Name: "Receipt Paper Roll 80mm", Category: "consumables"},
	}
	for i := range products {
		db.Create(&products[i])
	}
	fmt.Printf("✅ %d products, 1 warehouse, 1 store\n", len(products))

	// 2. Serialized assets in the warehouse
	for i := 1; i <= 3; i++ {
		asset := models.Asset{
			SerialNumber:  fmt.Sprintf("POS12-%06d", i),
			ProductID:     products[1].ID,
			ProcessStatus: models.ProcessStatusAvailable,
			WarehouseID:   &warehouse.ID,
			BinCode:       fmt.Sprintf("A1-%02d", i),
		}
		db.Create(&asset)
	}
	fmt.Println("✅ 3 serialized assets")

	// 3. A demo receiving session awaiting scans
	session := models.Session{
		WarehouseID: warehouse.ID,
		Counterpart: "ACME Supplies GmbH",
		Kind:        models.SessionKindReceiving,
		Source:      models.SessionSourceManual,
		Status:      models.SessionStatusDraft,
		Items: []models.SessionItem{
			{Name: products[0].Name, SKU: products[0].SKU, ProductID: &products[0].ID, ExpectedQuantity: 50},
			{Name: products[2].Name, SKU: products[2].SKU, ProductID: &products[2].ID, ExpectedQuantity: 200},
			{Name: "Unknown line from invoice", ExpectedQuantity: 10},
		},
	}
	db.Create(&session)
	fmt.Printf("✅ Demo receiving session %s\n", session.Number)

	fmt.Println("🎉 Done")
}
