package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	CategoryNameMinLength        = 3
	CategoryNameMaxLength        = 255
	CategoryDescriptionMaxLength = 10000
)

type Category struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

func NewCategory(name, description string, isActive bool) (*Category, error) {
	c := &Category{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		IsActive:    isActive,
		CreatedAt:   Now(),
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Update changes the name and, when given, the description.
func (c *Category) Update(name string, description *string) error {
	candidate := *c
	candidate.Name = name
	if description != nil {
		candidate.Description = *description
	}
	if err := candidate.Validate(); err != nil {
		return err
	}
	*c = candidate
	return nil
}

func (c *Category) Activate() {
	c.IsActive = true
}

func (c *Category) Deactivate() {
	c.IsActive = false
}

func (c *Category) Validate() error {
	var n Notification
	name := strings.TrimSpace(c.Name)
	switch {
	case name == "":
		n.Add("name", "should not be empty")
	case len([]rune(c.Name)) < CategoryNameMinLength:
		n.Add("name", fmt.Sprintf("should be at least %d characters long", CategoryNameMinLength))
	case len([]rune(c.Name)) > CategoryNameMaxLength:
		n.Add("name", fmt.Sprintf("should be less or equal %d characters long", CategoryNameMaxLength))
	}
	if len([]rune(c.Description)) > CategoryDescriptionMaxLength {
		n.Add("description", fmt.Sprintf("should be less or equal %d characters long", CategoryDescriptionMaxLength))
	}
	return n.Err()
}
