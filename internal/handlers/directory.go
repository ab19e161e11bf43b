package handlers

import (
	"net/http"

	"github.com/xelth-com/eckrecongo/internal/models"
)

// Directory endpoints are thin read wrappers; the engine has no opinion
// on how this data is maintained.

// listWarehouses returns all warehouses
func (r *Router) listWarehouses(w http.ResponseWriter, req *http.Request) {
	var warehouses []models.Warehouse
	if err := r.db.Find(&warehouses).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch warehouses")
		return
	}
	respondJSON(w, http.StatusOK, warehouses)
}

// listStores returns all stores
func (r *Router) listStores(w http.ResponseWriter, req *http.Request) {
	var stores []models.Store
	if err := r.db.Find(&stores).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stores")
		return
	}
	respondJSON(w, http.StatusOK, stores)
}

// listProducts returns all catalog products
func (r *Router) listProducts(w http.ResponseWriter, req *http.Request) {
	var products []models.Product
	if err := r.db.Find(&products).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch products")
		return
	}
	respondJSON(w, http.StatusOK, products)
}

// listStock returns stock levels, optionally filtered by warehouse
func (r *Router) listStock(w http.ResponseWriter, req *http.Request) {
	q := r.db.Preload("Product").Preload("Warehouse")
	if warehouseID := req.URL.Query().Get("warehouseId"); warehouseID != "" {
		q = q.Where("warehouse_id = ?", warehouseID)
	}

	var stock []models.StockItem
	if err := q.Find(&stock).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch stock")
		return
	}
	respondJSON(w, http.StatusOK, stock)
}

// listAssets returns assets, optionally filtered by status or location
func (r *Router) listAssets(w http.ResponseWriter, req *http.Request) {
	q := r.db.Preload("Product")
	if status := req.URL.Query().Get("status"); status != "" {
		q = q.Where("process_status = ?", status)
	}
	if warehouseID := req.URL.Query().Get("warehouseId"); warehouseID != "" {
		q = q.Where("warehouse_id = ?", warehouseID)
	}
	if storeID := req.URL.Query().Get("storeId"); storeID != "" {
		q = q.Where("store_id = ?", storeID)
	}

	var result []models.Asset
	if err := q.Find(&result).Error; err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch assets")
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// getAsset returns one asset with its audit history
func (r *Router) getAsset(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var asset models.Asset
	if err := r.db.Preload("Product").Preload("History").First(&asset, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}
	respondJSON(w, http.StatusOK, asset)
}
