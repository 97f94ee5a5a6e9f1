// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Category classifies the kind of business that donated an item.
type Category string

const (
	CategoryRestaurant  Category = "Restaurant"
	CategoryGrocer      Category = "Grocer"
	CategorySupermarket Category = "Supermarket"
)

// Categories lists every accepted [Category] value.
var Categories = []Category{
	CategoryRestaurant,
	CategoryGrocer,
	CategorySupermarket,
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// InventoryItem is a donated batch of food registered by a donor.
type InventoryItem struct {
	ItemID     int64     `json:"item_id"`
	DonorID    int64     `json:"donor_id"`
	Name       string    `json:"name"`
	Quantity   int       `json:"quantity"`
	ExpiryDate Date      `json:"expiry_date"`
	Location   string    `json:"location"`
	Category   Category  `json:"category"`
	CreatedAt  time.Time `json:"created_at"`

	// Claimed is derived on read: true while an open claim references the item.
	Claimed bool `json:"claimed"`
}

// TableName returns the name of the database table
// associated with the InventoryItem model.
func (i InventoryItem) TableName() string {
	return "items"
}

// AddItemRequest is the donor-supplied payload for a new inventory item.
// ExpiryDate is kept as a raw string so that it can be validated as a
// calendar date before anything is persisted.
type AddItemRequest struct {
	Name       string   `json:"name" validate:"notblank,max=100"`
	Quantity   int      `json:"quantity" validate:"gt=0,lte=2147483647"`
	ExpiryDate string   `json:"expiry_date" validate:"required,calendar_date"`
	Location   string   `json:"location" validate:"notblank,max=100"`
	Category   Category `json:"category" validate:"required,category"`
}

// ItemFilter narrows item listings.
type ItemFilter struct {
	// OnlyAvailable excludes items that currently have an open claim.
	OnlyAvailable bool
}
