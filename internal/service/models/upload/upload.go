package upload

import (
	"errors"
	"time"
)

var (
	ErrInvalidImage  = errors.New("file is not a decodable image")
	ErrUnknownEntity = errors.New("unknown upload entity")
)

// Entity names what an uploaded image is attached to.
type Entity string

const (
	EntityOrder    Entity = "order"
	EntityCustomer Entity = "customer"
	EntityProduct  Entity = "product"
)

// ParseEntity validates s against the attachable entity kinds.
func ParseEntity(s string) (Entity, error) {
	switch Entity(s) {
	case EntityOrder, EntityCustomer, EntityProduct:
		return Entity(s), nil
	default:
		return "", ErrUnknownEntity
	}
}

// Image is a stored, re-encoded upload.
type Image struct {
	ID           string    `json:"id"`
	Entity       Entity    `json:"entity"`
	EntityID     string    `json:"entityId"`
	FileName     string    `json:"fileName"`
	OriginalName string    `json:"originalName"`
	SizeBytes    int64     `json:"sizeBytes"`
	Width        int       `json:"width"`
	Height       int       `json:"height"`
	CreatedAt    time.Time `json:"createdAt"`
}
