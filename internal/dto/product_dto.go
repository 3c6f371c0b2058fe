package dto

import (
	"time"

	"github.com/google/uuid"
)

type IngestProductRequest struct {
	Title       string   `json:"title" validate:"required,max=300"`
	Description string   `json:"description,omitempty"`
	Brand       string   `json:"brand,omitempty"`
	Category    string   `json:"category,omitempty"`
	Price       float64  `json:"price,omitempty" validate:"gte=0"`
	ImageUrl    string   `json:"image_url,omitempty"`
	ProductUrl  string   `json:"product_url,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

type IngestProductResponse struct {
	Id        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`
}

// PublishProductIngestedMessage is the payload on the ingestion topic.
type PublishProductIngestedMessage struct {
	ProductId uuid.UUID `json:"product_id"`
}

type SegmentProductResponse struct {
	ProductId  uuid.UUID `json:"product_id"`
	Segments   []string  `json:"segments"`
	Gender     string    `json:"gender"`
	Confidence float64   `json:"confidence"`
	Reasoning  string    `json:"reasoning,omitempty"`
}
