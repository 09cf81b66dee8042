package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/thecae/wilpower/internal/payment"
)

// Sale records a completed transaction. It is written once at checkout
// and never mutated afterwards except for the Archived soft-delete
// flag; sales are never hard-deleted.
type Sale struct {
	ID        primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Payment   payment.Payment    `json:"payment" bson:"payment"`
	Cart      []CartItem         `json:"cart" bson:"cart"`
	BuyerInfo Profile            `json:"buyerInfo" bson:"buyerInfo"`
	Archived  bool               `json:"archived" bson:"archived"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}
