package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/thecae/wilpower/internal/models"
	"github.com/thecae/wilpower/internal/payment"
	"github.com/thecae/wilpower/internal/pricing"
	"github.com/thecae/wilpower/internal/repository"
)

// PaymentGateway is the slice of the Square client the checkout flow
// needs.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req payment.CreatePaymentRequest) (*payment.Payment, error)
}

// ItemCatalog resolves cart lines back to live items for the stock
// check.
type ItemCatalog interface {
	FindByID(ctx context.Context, id string) (*models.Item, error)
}

// SaleStore persists finalized transactions.
type SaleStore interface {
	Create(ctx context.Context, sale *models.Sale) error
}

type CheckoutHandler struct {
	gateway PaymentGateway
	rater   pricing.TaxRater
	items   ItemCatalog
	sales   SaleStore
}

func NewCheckoutHandler(gateway PaymentGateway, rater pricing.TaxRater, items ItemCatalog, sales SaleStore) *CheckoutHandler {
	return &CheckoutHandler{
		gateway: gateway,
		rater:   rater,
		items:   items,
		sales:   sales,
	}
}

// CheckoutRequest carries the payment-source token from the card form
// alongside the cart being purchased.
type CheckoutRequest struct {
	SourceID  string            `json:"sourceId" binding:"required"`
	Cart      []models.CartItem `json:"cart" binding:"required,min=1,dive"`
	BuyerInfo models.Profile    `json:"buyerInfo"`
}

// CartRequest is the compute-only body for quoting a cart before
// checkout.
type CartRequest struct {
	Cart      []models.CartItem `json:"cart" binding:"dive"`
	BuyerInfo models.Profile    `json:"buyerInfo"`
}

// ComputeCart quotes a cart without charging anything. The storefront
// cart page calls this whenever the cart or zip changes.
func (h *CheckoutHandler) ComputeCart(c *gin.Context) {
	var req CartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	totals, err := pricing.ComputeCart(c.Request.Context(), req.Cart, req.BuyerInfo, h.rater)
	if err != nil {
		log.Println("computing cart:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "tax lookup failed"})
		return
	}

	c.JSON(http.StatusOK, totals)
}

// Checkout prices the cart, charges the computed total through the
// gateway under a fresh idempotency key, and records the Sale. Every
// failure path returns an explicit status; nothing is swallowed.
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, bindError(err))
		return
	}

	if !h.checkStock(c, req.Cart) {
		return
	}

	totals, err := pricing.ComputeCart(c.Request.Context(), req.Cart, req.BuyerInfo, h.rater)
	if err != nil {
		log.Println("computing cart:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "tax lookup failed"})
		return
	}

	// A new key per submission: a retried HTTP request under the same
	// key cannot double-charge, while a new user action charges anew.
	result, err := h.gateway.CreatePayment(c.Request.Context(), payment.CreatePaymentRequest{
		IdempotencyKey: uuid.NewString(),
		SourceID:       req.SourceID,
		AmountMoney: payment.Money{
			Amount:   payment.AmountFromDollars(totals.Total),
			Currency: "USD",
		},
		Note: orderNote(req.Cart),
	})
	if err != nil {
		log.Println("creating payment:", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "payment failed"})
		return
	}

	sale := models.Sale{
		Payment:   *result,
		Cart:      req.Cart,
		BuyerInfo: req.BuyerInfo,
		Archived:  false,
	}
	if err := h.sales.Create(c.Request.Context(), &sale); err != nil {
		// The charge went through; keep the payment id in the log so
		// the sale can be reconstructed.
		log.Println("recording sale for payment", result.ID, ":", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record sale"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sale":   sale,
		"totals": totals,
	})
}

// checkStock verifies, before anything is charged, that every sized
// cart line is still in stock. A read-only check: concurrent checkouts
// can still race to the last unit, which the store accepts (no
// reservation or decrement here). On failure it writes the response
// and returns false.
func (h *CheckoutHandler) checkStock(c *gin.Context, cart []models.CartItem) bool {
	for _, line := range cart {
		if line.ItemID == "" || line.Size == "" {
			continue
		}

		item, err := h.items.FindByID(c.Request.Context(), line.ItemID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusConflict, gin.H{"error": "no longer available: " + line.Name})
				return false
			}
			log.Println("checking stock:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check stock"})
			return false
		}

		if item.Quantity.Of(line.Size) < line.Quantity {
			c.JSON(http.StatusConflict, gin.H{"error": "insufficient stock: " + line.Name})
			return false
		}
	}
	return true
}

// orderNote summarizes the cart for the gateway's payment note, shown
// on the Square dashboard next to the charge.
func orderNote(cart []models.CartItem) string {
	parts := make([]string, 0, len(cart))
	for _, line := range cart {
		part := line.Name
		if line.Size != "" {
			part += " (" + string(line.Size) + ")"
		}
		parts = append(parts, fmt.Sprintf("%s x%d", part, line.Quantity))
	}

	// Square caps the note field at 500 characters.
	note := strings.Join(parts, ", ")
	if len(note) > 500 {
		note = note[:497] + "..."
	}
	return note
}
