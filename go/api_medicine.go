package pharmatrackserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	medicinehttpmapper "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/adapters/http/mapper"
	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
)

// LabelRenderer draws the QR label of a batch.
type LabelRenderer interface {
	PNG(medicineID string) ([]byte, error)
}

// MedicineAPI wires HTTP transport with the inventory service.
type MedicineAPI struct {
	service inventoryports.Service
	labels  LabelRenderer
}

// NewMedicineAPI creates a MedicineAPI. A nil label renderer disables the QR endpoint.
func NewMedicineAPI(service inventoryports.Service, labels LabelRenderer) MedicineAPI {
	return MedicineAPI{service: service, labels: labels}
}

// Get /v1/medicines
// Lists the catalog, optionally filtered by listing status
func (api *MedicineAPI) ListMedicines(c *gin.Context) {
	statuses := c.QueryArray("listingStatus")
	var (
		result []*inventorytypes.MedicineProjection
		err    error
	)
	if len(statuses) > 0 {
		result, err = api.service.FindByListingStatus(c.Request.Context(), inventorytypes.FindByListingStatusInput{Statuses: statuses})
	} else {
		result, err = api.service.List(c.Request.Context())
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, medicinehttpmapper.FromProjectionList(result))
}

// Get /v1/medicines/:medicineId
func (api *MedicineAPI) GetMedicine(c *gin.Context) {
	medicine, err := api.service.Get(c.Request.Context(), inventorytypes.MedicineIdentifier{ID: c.Param("medicineId")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, medicinehttpmapper.FromProjection(medicine))
}

// Post /v1/medicines
// Registers a new batch
func (api *MedicineAPI) CreateMedicine(c *gin.Context) {
	var payload medicinehttpmapper.CreateMedicine
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input, err := medicinehttpmapper.ToCreateInput(payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	created, err := api.service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, medicinehttpmapper.FromProjection(created))
}

// Patch /v1/medicines/:medicineId
// Applies a partial edit
func (api *MedicineAPI) UpdateMedicine(c *gin.Context) {
	var payload medicinehttpmapper.UpdateMedicine
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBindError(c, err)
		return
	}
	input, err := medicinehttpmapper.ToUpdateInput(c.Param("medicineId"), payload)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	updated, err := api.service.Update(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, medicinehttpmapper.FromProjection(updated))
}

// Post /v1/medicines/:medicineId/approve
func (api *MedicineAPI) ApproveMedicine(c *gin.Context) {
	approved, err := api.service.Approve(c.Request.Context(), inventorytypes.MedicineIdentifier{ID: c.Param("medicineId")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, medicinehttpmapper.FromProjection(approved))
}

// Delete /v1/medicines/:medicineId
func (api *MedicineAPI) DeleteMedicine(c *gin.Context) {
	if err := api.service.Delete(c.Request.Context(), inventorytypes.MedicineIdentifier{ID: c.Param("medicineId")}); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Get /v1/medicines/:medicineId/qrcode
// Renders the verification QR label as PNG
func (api *MedicineAPI) Label(c *gin.Context) {
	if api.labels == nil {
		respondProblem(c, unavailable("labels are not configured"))
		return
	}
	medicine, err := api.service.Get(c.Request.Context(), inventorytypes.MedicineIdentifier{ID: c.Param("medicineId")})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	png, err := api.labels.PNG(medicine.Entity.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

// Get /v1/ledger/health
// Probes the ledger RPC endpoint
func (api *MedicineAPI) LedgerHealth(c *gin.Context) {
	handshake, err := api.service.LedgerHealth(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, medicinehttpmapper.FromHandshake(handshake))
}
