package models

import "time"

// Product is a catalog entry. Names are bilingual; NameAr is the
// primary storefront label, Name the Latin fallback.
type Product struct {
	ProductID     string    `json:"productId" bson:"productId"`
	Name          string    `json:"name" bson:"name"`
	NameAr        string    `json:"nameAr,omitempty" bson:"nameAr,omitempty"`
	Description   string    `json:"description,omitempty" bson:"description,omitempty"`
	Category      string    `json:"category,omitempty" bson:"category,omitempty"`
	SupplierID    string    `json:"supplierId,omitempty" bson:"supplierId,omitempty"`
	Price         float64   `json:"price" bson:"price"` // unit price
	Unit          string    `json:"unit,omitempty" bson:"unit,omitempty"`
	ImageURL      string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ImagePublicID string    `json:"imagePublicId,omitempty" bson:"imagePublicId,omitempty"`
	Published     bool      `json:"published" bson:"published"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ProductSnapshot is the immutable slice of a product embedded in cart
// lines and order lines. Catalog edits never reach back into it.
type ProductSnapshot struct {
	ProductID string  `json:"productId" bson:"productId"`
	Name      string  `json:"name" bson:"name"`
	Price     float64 `json:"price" bson:"price"`
	ImageURL  string  `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
}

// Snapshot captures the fields the cart carries.
func (p Product) Snapshot() ProductSnapshot {
	name := p.NameAr
	if name == "" {
		name = p.Name
	}
	return ProductSnapshot{
		ProductID: p.ProductID,
		Name:      name,
		Price:     p.Price,
		ImageURL:  p.ImageURL,
	}
}

type Supplier struct {
	SupplierID    string    `json:"supplierId" bson:"supplierId"`
	Name          string    `json:"name" bson:"name"`
	NameAr        string    `json:"nameAr,omitempty" bson:"nameAr,omitempty"`
	Phone         string    `json:"phone,omitempty" bson:"phone,omitempty"`
	Address       string    `json:"address,omitempty" bson:"address,omitempty"`
	LogoURL       string    `json:"logoUrl,omitempty" bson:"logoUrl,omitempty"`
	LogoPublicID  string    `json:"logoPublicId,omitempty" bson:"logoPublicId,omitempty"`
	Active        bool      `json:"active" bson:"active"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Promotion is a time-boxed storefront banner tied to zero or more products.
type Promotion struct {
	PromotionID string    `json:"promotionId" bson:"promotionId"`
	Title       string    `json:"title" bson:"title"`
	TitleAr     string    `json:"titleAr,omitempty" bson:"titleAr,omitempty"`
	ProductIDs  []string  `json:"productIds,omitempty" bson:"productIds,omitempty"`
	Discount    float64   `json:"discount,omitempty" bson:"discount,omitempty"` // fraction, e.g. 0.10
	ImageURL    string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	StartsAt    time.Time `json:"startsAt" bson:"startsAt"`
	EndsAt      time.Time `json:"endsAt" bson:"endsAt"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
}
