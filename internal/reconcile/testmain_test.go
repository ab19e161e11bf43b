package reconcile

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

const testPgPort = 9551

// testDB is shared by all transactional tests in this package; nil when
// the embedded instance could not be started (short mode)
var testDB *gorm.DB

func TestMain(m *testing.M) {
	flag.Parse()
	if testing.Short() {
		os.Exit(m.Run())
	}

	dataDir, err := os.MkdirTemp("", "reconcile_pg_data")
	if err != nil {
		log.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(dataDir)

	pg := embeddedpostgres.NewDatabase(embeddedpostgres.DefaultConfig().
		DataPath(dataDir).
		Port(testPgPort).
		Database("eckrecon_test").
		Username("postgres").
		Password("postgres"))

	if err := pg.Start(); err != nil {
		log.Printf("⚠️  Could not start embedded postgres, skipping DB tests: %v", err)
		os.Exit(m.Run())
	}
	defer pg.Stop()

	dsn := fmt.Sprintf("host=localhost port=%d user=postgres password=postgres dbname=eckrecon_test sslmode=disable", testPgPort)
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
		pg.Stop()
		log.Fatalf("Failed to migrate test schema: %v", err)
	}

	testDB = db
	code := m.Run()
	pg.Stop()
	os.Exit(code)
}

// newTestService skips the test when no database is available
func newTestService(t *testing.T) *Service {
	t.Helper()
	if testDB == nil {
		t.Skip("embedded postgres not available")
	}
	return NewService(testDB, nil)
}

var warehouseSeq int

func createTestWarehouse(t *testing.T) *models.Warehouse {
	t.Helper()
	warehouseSeq++
	warehouse := models.Warehouse{Name: fmt.Sprintf("Test Warehouse %d", warehouseSeq)}
	if err := testDB.Create(&warehouse).Error; err != nil {
		t.Fatalf("Failed to create warehouse: %v", err)
	}
	return &warehouse
}

var productSeq int

func createTestProduct(t *testing.T) *models.Product {
	t.Helper()
	productSeq++
	product := models.Product{
		SKU:  fmt.Sprintf("TEST-SKU-%04d", productSeq),
		Name: fmt.Sprintf("Test Product %d", productSeq),
	}
	if err := testDB.Create(&product).Error; err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return &product
}

func stockQuantity(t *testing.T, productID, warehouseID uint) int {
	t.Helper()
	var stock models.StockItem
	err := testDB.Where("product_id = ? AND warehouse_id = ?", productID, warehouseID).First(&stock).Error
	if err != nil {
		t.Fatalf("Failed to load stock item: %v", err)
	}
	return stock.Quantity
}
