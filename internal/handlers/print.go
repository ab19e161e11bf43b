package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/xelth-com/eckrecongo/internal/models"
	"github.com/xelth-com/eckrecongo/internal/services/printer"
	"github.com/xelth-com/eckrecongo/internal/utils"
)

// printSessionSheet streams the printable counting sheet for a session
func (r *Router) printSessionSheet(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	session, err := r.recon.GetSession(req.Context(), id)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	pdfBytes, err := printer.GenerateSessionSheetPDF(session)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"session_%s.pdf\"", session.Number))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}

// printAssetLabel streams a QR label for one asset
func (r *Router) printAssetLabel(w http.ResponseWriter, req *http.Request) {
	id, ok := pathID(w, req, "id")
	if !ok {
		return
	}

	var asset models.Asset
	if err := r.db.Preload("Product").First(&asset, id).Error; err != nil {
		respondError(w, http.StatusNotFound, "Asset not found")
		return
	}

	sku := ""
	if asset.Product != nil {
		sku = asset.Product.SKU
	}
	code, err := utils.EncodeSerialCode(asset.SerialNumber, sku)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	pdfBytes, err := printer.GenerateAssetLabelPDF(&asset, code)
	if err != nil {
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate PDF: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"asset_%s.pdf\"", asset.SerialNumber))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.Write(pdfBytes)
}
