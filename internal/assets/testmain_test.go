package assets

import (
	"flag"
	"fmt"
	"log"
	"os"
	"testing"

	embeddedpostgres "github.com/fergusstrange/embedded-postgres"
	"github.com/xelth-com/eckrecongo/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Separate port from the reconcile package so both test binaries can run
// their embedded instances side by side
const testPgPort = 9552

var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	dataDir, err := os.MkdirTemp("", "assets_pg_data")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dataDir)

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(dataDir).
		Port(testPgPort).
		Database("eckrecon_assets_test").
		Username("postgres").
		Password("postgres"))

	if err := pg.Start(); err != nil {
		log.Printf("⚠️  Could not start embedded postgres, skipping DB tests: %v", err)
		os.Exit(m.Run())
	}
	defer pg.Stop()

	dsn := fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=eckrecon_assets_test sslmode=disable", testPgPort)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		pg.Stop()
		log.Fatalf("Failed to connect to embedded postgres: %v", err)
	}

	err = db.AutoMigrate(
		&models.Product{},
		&models.Warehouse{},
		&models.Store{},
		&models.StockItem{},
		&models.Asset{},
		&models.AssetHistory{},
		&models.Shipment{},
		&models.ShipmentLine{},
		&models.Delivery{},
	)
	if err != nil {
		pg.Stop()
		log.Fatalf("Failed to migrate test schema: %v", err)
	}

	testDB = db
	code := m.Run()
	pg.Stop()
	os.Exit(code)
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	if testDB == nil {
		t.Skip("embedded postgres not available")
	}
	return NewService(testDB, nil)
}

var fixtureSeq int

type fixtures struct {
	warehouse *models.Warehouse
	store     *models.Store
	product   *models.Product
}

// newFixtures creates a warehouse, a store and a serialized product
func newFixtures(t *testing.T) fixtures {
	t.Helper()
	fixtureSeq++
	warehouse := models.Warehouse{Name: fmt.Sprintf("Asset Warehouse %d", fixtureSeq)}
	if err := testDB.Create(&warehouse).Error; err != nil {
		t.Fatalf("Failed to create warehouse: %v", err)
	}
	store := models.Store{Name: fmt.Sprintf("Asset Store %d", fixtureSeq)}
	if err := testDB.Create(&store).Error; err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	product := models.Product{
		SKU:      fmt.Sprintf("POS-TERM-%04d", fixtureSeq),
		Name:     fmt.Sprintf("POS Terminal %d", fixtureSeq),
		IsSerial: true,
	}
	if err := testDB.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return fixtures{warehouse: &warehouse, store: &store, product: &product}
}

var assetSeq int

func createTestAsset(t *testing.T, f fixtures) *models.Asset {
	t.Helper()
	assetSeq++
	asset := models.Asset{
		SerialNumber:  fmt.Sprintf("SN-%06d", assetSeq),
		ProductID:     f.product.ID,
		ProcessStatus: models.ProcessStatusAvailable,
		WarehouseID:   &f.warehouse.ID,
		BinCode:       "A1-03",
	}
	if err := testDB.Create(&asset).Error; err != nil {
		t.Fatalf("Failed to create asset: %v", err)
	}
	return &asset
}

func historyCount(t *testing.T, assetID uint) int64 {
	t.Helper()
	var count int64
	if err := testDB.Model(&models.AssetHistory{}).Where("asset_id = ?", assetID).Count(&count).Error; err != nil {
		t.Fatalf("Failed to count history: %v", err)
	}
	return count
}
