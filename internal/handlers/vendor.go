package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apierrors "github.com/contractdesk/contract-management-api/internal/errors"
	"github.com/contractdesk/contract-management-api/internal/middleware"
	"github.com/contractdesk/contract-management-api/internal/scope"
	"github.com/contractdesk/contract-management-api/internal/services"
)

// vendor document uploads are capped per file; the per-vendor count cap
// lives in the service layer.
const maxDocumentSize = 10 << 20

// VendorHandler coordinates vendor HTTP handlers.
type VendorHandler struct {
	vendorService *services.VendorService
}

// NewVendorHandler creates a new VendorHandler.
func NewVendorHandler(vendorService *services.VendorService) *VendorHandler {
	return &VendorHandler{
		vendorService: vendorService,
	}
}

// ListVendors lists vendors visible to the caller, newest first.
func (h *VendorHandler) ListVendors(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	requested := scope.ResourceScope(c.Query("scope"))
	if !requested.Valid() {
		apierrors.BadRequest(c, "Unknown scope")
		return
	}
	targetBranchID, ok := parseOptionalBranchID(c)
	if !ok {
		apierrors.BadRequest(c, "Invalid branch office ID")
		return
	}

	vendors, err := h.vendorService.ListVendors(principal, requested, targetBranchID)
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vendors": vendors,
	})
}

// CreateVendor creates a vendor.
func (h *VendorHandler) CreateVendor(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	type CreateVendorRequest struct {
		Name           string  `json:"name" binding:"required"`
		Category       string  `json:"category"`
		ContactEmail   string  `json:"contact_email"`
		BranchOfficeID *uint64 `json:"branch_office_id"`
	}

	var req CreateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.CreateVendor(principal, services.CreateVendorInput{
		Name:           req.Name,
		Category:       req.Category,
		ContactEmail:   req.ContactEmail,
		BranchOfficeID: req.BranchOfficeID,
	})
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusCreated, vendor)
}

// GetVendor returns a single vendor if the caller can see it.
func (h *VendorHandler) GetVendor(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vendor ID")
		return
	}

	vendor, err := h.vendorService.GetVendor(principal, vendorID)
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusOK, vendor)
}

// UpdateVendor updates a vendor's contact fields.
func (h *VendorHandler) UpdateVendor(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vendor ID")
		return
	}

	type UpdateVendorRequest struct {
		Name         *string `json:"name"`
		Category     *string `json:"category"`
		ContactEmail *string `json:"contact_email"`
	}

	var req UpdateVendorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	vendor, err := h.vendorService.UpdateVendor(principal, vendorID, services.UpdateVendorInput{
		Name:         req.Name,
		Category:     req.Category,
		ContactEmail: req.ContactEmail,
	})
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusOK, vendor)
}

// AttachDocuments accepts a multipart upload of one or more files under the
// "documents" field and attaches them to the vendor. The whole batch is
// rejected when it would push the vendor past its document cap.
func (h *VendorHandler) AttachDocuments(c *gin.Context) {
	principal, ok := middleware.GetPrincipal(c)
	if !ok {
		apierrors.Forbidden(c, "")
		return
	}

	vendorID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		apierrors.BadRequest(c, "Invalid vendor ID")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		apierrors.BadRequest(c, "Invalid multipart form")
		return
	}

	files := form.File["documents"]
	uploads := make([]services.DocumentUpload, 0, len(files))
	for _, fileHeader := range files {
		if fileHeader.Size > maxDocumentSize {
			apierrors.BadRequest(c, "Document too large")
			return
		}
		file, err := fileHeader.Open()
		if err != nil {
			apierrors.BadRequest(c, "Failed to read uploaded document")
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			apierrors.BadRequest(c, "Failed to read uploaded document")
			return
		}
		uploads = append(uploads, services.DocumentUpload{
			Name: fileHeader.Filename,
			Data: data,
		})
	}

	vendor, err := h.vendorService.AttachDocuments(principal, vendorID, uploads)
	if err != nil {
		respondVendorError(c, err)
		return
	}

	c.JSON(http.StatusOK, vendor)
}

func respondVendorError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrVendorNotFound),
		errors.Is(err, services.ErrBranchNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrVendorNameRequired),
		errors.Is(err, services.ErrVendorDocumentsLimit),
		errors.Is(err, services.ErrNoDocumentsProvided),
		errors.Is(err, services.ErrBranchWrongOrg),
		errors.Is(err, scope.ErrBranchRequired):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
