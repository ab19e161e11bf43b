package handlers

import (
	"encoding/json"
	"net/http"
)

// CreateShipmentRequest opens a draft shipment
type CreateShipmentRequest struct {
	WarehouseID uint  `json:"warehouseId"`
	StoreID     *uint `json:"storeId,omitempty"`
}

// AddAssetRequest reserves one asset for a shipment
type AddAssetRequest struct {
	AssetID uint `json:"assetId"`
}

// createShipment opens a draft shipment
func (r *Router) createShipment(w http.ResponseWriter, req *http.Request) {
	var body CreateShipmentRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	shipment, err := r.assetSvc.CreateShipment(req.Context(), body.WarehouseID, body.StoreID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, shipment)
}

// addAssetToShipment reserves an available asset for a shipment
func (r *Router) addAssetToShipment(w http.ResponseWriter, req *http.Request) {
	shipmentID, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var body AddAssetRequest
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	asset, err := r.assetSvc.AddAssetToShipment(req.Context(), shipmentID, body.AssetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// markShipmentShipped ships a shipment and moves its assets to IN_TRANSIT
func (r *Router) markShipmentShipped(w http.ResponseWriter, req *http.Request) {
	shipmentID, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	shipment, err := r.assetSvc.MarkShipmentShipped(req.Context(), shipmentID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, shipment)
}

// markDeliveryDelivered confirms a delivery and relocates its assets
func (r *Router) markDeliveryDelivered(w http.ResponseWriter, req *http.Request) {
	deliveryID, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	delivery, err := r.assetSvc.MarkDeliveryDelivered(req.Context(), deliveryID, requestUser(req))
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, delivery)
}

// confirmInstalled records on-site installation of an asset
func (r *Router) confirmInstalled(w http.ResponseWriter, req *http.Request) {
	assetID, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	asset, err := r.assetSvc.ConfirmInstalled(req.Context(), assetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}

// writeOffAsset decommissions an asset
func (r *Router) writeOffAsset(w http.ResponseWriter, req *http.Request) {
	assetID, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	asset, err := r.assetSvc.WriteOff(req.Context(), assetID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, asset)
}
