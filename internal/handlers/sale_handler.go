package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/thecae/wilpower/internal/models"
	"github.com/thecae/wilpower/internal/repository"
)

// SaleLedger is the slice of the sale repository the admin sale routes
// use.
type SaleLedger interface {
	FindAll(ctx context.Context, archived *bool) ([]models.Sale, error)
	SetArchived(ctx context.Context, id string, archived bool) error
}

type SaleHandler struct {
	repo SaleLedger
}

func NewSaleHandler(repo SaleLedger) *SaleHandler {
	return &SaleHandler{
		repo: repo,
	}
}

// ListSales returns sales newest first. ?archived=true or =false
// filters on the soft-delete flag.
func (h *SaleHandler) ListSales(c *gin.Context) {
	var archived *bool
	switch c.Query("archived") {
	case "true":
		v := true
		archived = &v
	case "false":
		v := false
		archived = &v
	}

	sales, err := h.repo.FindAll(c.Request.Context(), archived)
	if err != nil {
		log.Println("listing sales:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list sales"})
		return
	}

	c.JSON(http.StatusOK, sales)
}

// ArchiveSale flips the archived flag on a sale, the only mutation a
// sale record permits.
func (h *SaleHandler) ArchiveSale(c *gin.Context) {
	var req struct {
		Archived *bool `json:"archived" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	if err := h.repo.SetArchived(c.Request.Context(), c.Param("id"), *req.Archived); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "sale not found"})
			return
		}
		log.Println("archiving sale:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to archive sale"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "sale updated"})
}
