package models

// CartItem is one line of an in-progress purchase. Price is a snapshot
// taken when the line was added, so a later catalog edit cannot change
// what an open cart is quoted.
type CartItem struct {
	ItemID   string  `json:"itemId" bson:"itemId"`
	Name     string  `json:"name" bson:"name"`
	Size     Size    `json:"size,omitempty" bson:"size,omitempty" binding:"omitempty,oneof=XS S M L XL 2XL"`
	Quantity int     `json:"quantity" bson:"quantity" binding:"required,gt=0"`
	Price    float64 `json:"price" bson:"price" binding:"required,gt=0"`
}

// Profile is the buyer information collected at checkout. Zip drives
// the sales-tax lookup; the rest is contact detail.
type Profile struct {
	Name  string `json:"name,omitempty" bson:"name,omitempty"`
	Email string `json:"email,omitempty" bson:"email,omitempty" binding:"omitempty,email"`
	Zip   string `json:"zip,omitempty" bson:"zip,omitempty"`
}
