package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Size is one of the six stocked clothing sizes. Keeping the set
// closed means an unknown label cannot be stored or ordered.
type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	Size2XL Size = "2XL"
)

// Quantity tracks stock per size. A struct rather than a map so the
// key set is fixed at compile time. A size missing from a payload
// decodes to zero and fails the gt=0 rule, so the form path rejects
// both absent and non-positive counts.
type Quantity struct {
	XS  int `json:"XS" bson:"XS" binding:"gt=0"`
	S   int `json:"S" bson:"S" binding:"gt=0"`
	M   int `json:"M" bson:"M" binding:"gt=0"`
	L   int `json:"L" bson:"L" binding:"gt=0"`
	XL  int `json:"XL" bson:"XL" binding:"gt=0"`
	XXL int `json:"2XL" bson:"2XL" binding:"gt=0"`
}

// Of returns the stocked count for a size.
func (q Quantity) Of(s Size) int {
	switch s {
	case SizeXS:
		return q.XS
	case SizeS:
		return q.S
	case SizeM:
		return q.M
	case SizeL:
		return q.L
	case SizeXL:
		return q.XL
	case Size2XL:
		return q.XXL
	}
	return 0
}

// Desc is the free-text description shown on a product page.
type Desc struct {
	Material string `json:"material" bson:"material"`
	Fit      string `json:"fit" bson:"fit"`
}

// Item is a sellable catalog entry in the store collection. Inv is the
// internal inventory code used as the public lookup key, distinct from
// the document id.
type Item struct {
	ID       primitive.ObjectID `json:"_id,omitempty" bson:"_id,omitempty"`
	Name     string             `json:"name" bson:"name" binding:"required,min=2"`
	Inv      string             `json:"inv" bson:"inv"`
	Price    float64            `json:"price" bson:"price" binding:"required,gt=0"`
	Desc     Desc               `json:"desc" bson:"desc"`
	Quantity Quantity           `json:"quantity" bson:"quantity"`
	Images   []string           `json:"images" bson:"images"`
}

// ItemInput is the validated create/edit form payload: everything on
// an Item except the identifiers the server assigns.
type ItemInput struct {
	Name     string   `json:"name" binding:"required,min=2"`
	Inv      string   `json:"inv"`
	Price    float64  `json:"price" binding:"required,gt=0"`
	Desc     Desc     `json:"desc"`
	Quantity Quantity `json:"quantity"`
	Images   []string `json:"images"`
}
