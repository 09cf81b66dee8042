package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thecae/wilpower/internal/cache"
	"github.com/thecae/wilpower/internal/models"
	"github.com/thecae/wilpower/internal/repository"
)

const (
	storeListPrefix = "store:"
	storeListKey    = storeListPrefix + "list"
)

// ItemStore is the slice of the item repository the store routes use.
type ItemStore interface {
	Create(ctx context.Context, item *models.Item) error
	FindByInv(ctx context.Context, inv string) (*models.Item, error)
	FindAll(ctx context.Context) ([]models.Item, error)
	UpdateByID(ctx context.Context, id string, input *models.ItemInput) error
	UpdateByInv(ctx context.Context, inv string, input *models.ItemInput) error
	DeleteByName(ctx context.Context, name string) (int64, error)
	DeleteByID(ctx context.Context, id string) (int64, error)
}

type StoreHandler struct {
	repo  ItemStore
	cache *cache.Cache
}

func NewStoreHandler(repo ItemStore) *StoreHandler {
	return &StoreHandler{
		repo:  repo,
		cache: cache.Get(),
	}
}

// ListItems returns the full catalog. The admin panel calls this on
// load, so the result is cached until the next write.
func (h *StoreHandler) ListItems(c *gin.Context) {
	if cached, found := h.cache.GetValue(storeListKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	items, err := h.repo.FindAll(c.Request.Context())
	if err != nil {
		log.Println("listing items:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list items"})
		return
	}

	h.cache.Set(storeListKey, items, 2*time.Minute)
	c.JSON(http.StatusOK, items)
}

// CreateItem inserts a new catalog entry from a validated form
// payload.
func (h *StoreHandler) CreateItem(c *gin.Context) {
	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	item := models.Item{
		Name:     input.Name,
		Inv:      input.Inv,
		Price:    input.Price,
		Desc:     input.Desc,
		Quantity: input.Quantity,
		Images:   input.Images,
	}
	if err := h.repo.Create(c.Request.Context(), &item); err != nil {
		log.Println("creating item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create item"})
		return
	}

	h.cache.DeleteByPrefix(storeListPrefix)
	c.JSON(http.StatusCreated, item)
}

// UpdateItemRequest is the admin edit form payload: the target
// document id plus the full set of editable fields.
type UpdateItemRequest struct {
	ID string `json:"id" binding:"required"`
	models.ItemInput
}

// UpdateItem applies an edit-form submission to the item named by the
// body id.
func (h *StoreHandler) UpdateItem(c *gin.Context) {
	var req UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	if err := h.repo.UpdateByID(c.Request.Context(), req.ID, &req.ItemInput); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		log.Println("updating item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}

	h.cache.DeleteByPrefix(storeListPrefix)
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

// GetItemByInv fetches one item by its inventory code. A miss is an
// explicit 404, never an empty 200.
func (h *StoreHandler) GetItemByInv(c *gin.Context) {
	inv := c.Param("item")
	if inv == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing inventory code"})
		return
	}

	item, err := h.repo.FindByInv(c.Request.Context(), inv)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		log.Println("fetching item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get item"})
		return
	}

	c.JSON(http.StatusOK, item)
}

// UpdateItemByInv applies a validated form payload to the item whose
// inventory code is in the path.
func (h *StoreHandler) UpdateItemByInv(c *gin.Context) {
	inv := c.Param("item")

	var input models.ItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	if err := h.repo.UpdateByInv(c.Request.Context(), inv, &input); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "item not found"})
			return
		}
		log.Println("updating item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update item"})
		return
	}

	h.cache.DeleteByPrefix(storeListPrefix)
	c.JSON(http.StatusOK, gin.H{"message": "item updated"})
}

// DeleteItemByName deletes the one document whose name matches the
// body. Deleting a name that matches nothing reports a zero count.
func (h *StoreHandler) DeleteItemByName(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	count, err := h.repo.DeleteByName(c.Request.Context(), req.Name)
	if err != nil {
		log.Println("deleting item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	h.cache.DeleteByPrefix(storeListPrefix)
	c.JSON(http.StatusOK, gin.H{"deleted_count": count})
}

// DeleteItem deletes an item by document id. This is the route the
// admin delete dialog calls.
func (h *StoreHandler) DeleteItem(c *gin.Context) {
	var req struct {
		ID string `json:"id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	count, err := h.repo.DeleteByID(c.Request.Context(), req.ID)
	if err != nil {
		log.Println("deleting item:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete item"})
		return
	}

	h.cache.DeleteByPrefix(storeListPrefix)
	c.JSON(http.StatusOK, gin.H{"deleted_count": count})
}
