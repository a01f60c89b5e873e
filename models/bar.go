package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Bar is the aggregate root and the consistency boundary of the whole
// domain: it owns its customers, catalog and session history, and is the
// only entry point for mutating any of them. The invariants that span
// collections (unique customer and category names, at most one open
// session) are enforced here, before anything is mutated.
type Bar struct {
	ID         uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	Name       string     `gorm:"type:varchar(255);not null" json:"name"`
	OwnerID    uuid.UUID  `gorm:"type:char(36);not null;index" json:"owner_id"`
	People     []Person   `gorm:"foreignKey:BarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"people"`
	Categories []Category `gorm:"foreignKey:BarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"categories"`
	Products   []Product  `gorm:"foreignKey:BarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"products"`
	Sessions   []Session  `gorm:"foreignKey:BarID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"sessions"`
	CreatedAt  time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"not null" json:"updated_at"`
}

// NewBar creates a bar owned by the given user, seeded with its sentinel
// "Uncategorized" category. The sentinel is per bar, never shared.
func NewBar(name string, ownerID uuid.UUID) Bar {
	now := time.Now()
	id := uuid.New()
	return Bar{
		ID:         id,
		Name:       name,
		OwnerID:    ownerID,
		People:     []Person{},
		Categories: []Category{newSentinelCategory(id)},
		Products:   []Product{},
		Sessions:   []Session{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// CreateCustomer adds a person to the bar. Customer names are unique per bar.
func (b *Bar) CreateCustomer(name, phoneNumber string) (*Person, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("customer name is required: %w", ErrInvalidArgument)
	}
	for i := range b.People {
		if sameName(b.People[i].Name, name) {
			return nil, fmt.Errorf("bar already has a customer named %q: %w", name, ErrDuplicate)
		}
	}
	b.People = append(b.People, NewPerson(b.ID, name, phoneNumber))
	b.UpdatedAt = time.Now()
	return &b.People[len(b.People)-1], nil
}

// Customer returns the person with the given id.
func (b *Bar) Customer(personID uuid.UUID) (*Person, error) {
	for i := range b.People {
		if b.People[i].ID == personID {
			return &b.People[i], nil
		}
	}
	return nil, fmt.Errorf("bar has no customer with id %s: %w", personID, ErrNotFound)
}

// RenameCustomer changes a customer's name, keeping names unique per bar.
func (b *Bar) RenameCustomer(personID uuid.UUID, name string) (*Person, error) {
	person, err := b.Customer(personID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("customer name is required: %w", ErrInvalidArgument)
	}
	for i := range b.People {
		if b.People[i].ID != personID && sameName(b.People[i].Name, name) {
			return nil, fmt.Errorf("bar already has a customer named %q: %w", name, ErrDuplicate)
		}
	}
	person.Name = name
	person.UpdatedAt = time.Now()
	return person, nil
}

// RemoveCustomer detaches the person from the bar.
func (b *Bar) RemoveCustomer(personID uuid.UUID) error {
	for i := range b.People {
		if b.People[i].ID == personID {
			b.People = append(b.People[:i], b.People[i+1:]...)
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("bar has no customer with id %s: %w", personID, ErrNotFound)
}

// CreateCategory adds a category. Category names are unique per bar, the
// sentinel's name included.
func (b *Bar) CreateCategory(name string) (*Category, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrInvalidArgument)
	}
	for i := range b.Categories {
		if sameName(b.Categories[i].Name, name) {
			return nil, fmt.Errorf("bar already has a category named %q: %w", name, ErrDuplicate)
		}
	}
	b.Categories = append(b.Categories, NewCategory(b.ID, name))
	b.UpdatedAt = time.Now()
	return &b.Categories[len(b.Categories)-1], nil
}

// Category returns the category with the given id.
func (b *Bar) Category(categoryID uuid.UUID) (*Category, error) {
	for i := range b.Categories {
		if b.Categories[i].ID == categoryID {
			return &b.Categories[i], nil
		}
	}
	return nil, fmt.Errorf("bar has no category with id %s: %w", categoryID, ErrNotFound)
}

// RenameCategory renames a category, keeping names unique. The sentinel
// category cannot be renamed.
func (b *Bar) RenameCategory(categoryID uuid.UUID, name string) (*Category, error) {
	category, err := b.Category(categoryID)
	if err != nil {
		return nil, err
	}
	if category.Sentinel {
		return nil, fmt.Errorf("the %s category cannot be renamed: %w", UncategorizedName, ErrInvalidArgument)
	}
	for i := range b.Categories {
		if b.Categories[i].ID != categoryID && sameName(b.Categories[i].Name, name) {
			return nil, fmt.Errorf("bar already has a category named %q: %w", name, ErrDuplicate)
		}
	}
	category.Name = name
	category.UpdatedAt = time.Now()
	return category, nil
}

// Uncategorized returns the bar's sentinel category.
func (b *Bar) Uncategorized() *Category {
	for i := range b.Categories {
		if b.Categories[i].Sentinel {
			return &b.Categories[i]
		}
	}
	return nil
}

// RemoveCategory removes a category. Products referencing it are re-linked
// to the bar's sentinel category instead of being left dangling. The
// sentinel itself cannot be removed.
func (b *Bar) RemoveCategory(categoryID uuid.UUID) error {
	category, err := b.Category(categoryID)
	if err != nil {
		return err
	}
	if category.Sentinel {
		return fmt.Errorf("the %s category cannot be removed: %w", UncategorizedName, ErrInvalidArgument)
	}
	fallback := b.Uncategorized()
	for i := range b.Products {
		if b.Products[i].CategoryID == categoryID {
			b.Products[i].CategoryID = fallback.ID
			b.Products[i].UpdatedAt = time.Now()
		}
	}
	for i := range b.Categories {
		if b.Categories[i].ID == categoryID {
			b.Categories = append(b.Categories[:i], b.Categories[i+1:]...)
			break
		}
	}
	b.UpdatedAt = time.Now()
	return nil
}

// CreateProduct adds a product to the catalog. Product names are unique per
// bar; the category must belong to this bar.
func (b *Bar) CreateProduct(spec ProductSpec) (*Product, error) {
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("product name is required: %w", ErrInvalidArgument)
	}
	for i := range b.Products {
		if sameName(b.Products[i].Name, spec.Name) {
			return nil, fmt.Errorf("bar already has a product named %q: %w", spec.Name, ErrDuplicate)
		}
	}
	if _, err := b.Category(spec.CategoryID); err != nil {
		return nil, err
	}
	b.Products = append(b.Products, NewProduct(b.ID, spec))
	b.UpdatedAt = time.Now()
	return &b.Products[len(b.Products)-1], nil
}

// Product returns the product with the given id.
func (b *Bar) Product(productID uuid.UUID) (*Product, error) {
	for i := range b.Products {
		if b.Products[i].ID == productID {
			return &b.Products[i], nil
		}
	}
	return nil, fmt.Errorf("bar has no product with id %s: %w", productID, ErrNotFound)
}

// UpdateProduct overwrites a product's fields from spec. The target category
// must belong to this bar; identity is stable across updates.
func (b *Bar) UpdateProduct(productID uuid.UUID, spec ProductSpec) (*Product, error) {
	product, err := b.Product(productID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(spec.Name) == "" {
		return nil, fmt.Errorf("product name is required: %w", ErrInvalidArgument)
	}
	for i := range b.Products {
		if b.Products[i].ID != productID && sameName(b.Products[i].Name, spec.Name) {
			return nil, fmt.Errorf("bar already has a product named %q: %w", spec.Name, ErrDuplicate)
		}
	}
	if _, err := b.Category(spec.CategoryID); err != nil {
		return nil, err
	}
	product.Apply(spec)
	return product, nil
}

// RemoveProduct detaches the product from the catalog.
func (b *Bar) RemoveProduct(productID uuid.UUID) error {
	for i := range b.Products {
		if b.Products[i].ID == productID {
			b.Products = append(b.Products[:i], b.Products[i+1:]...)
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("bar has no product with id %s: %w", productID, ErrNotFound)
}

// OpenSession returns the currently open session, if any.
func (b *Bar) OpenSession() *Session {
	for i := range b.Sessions {
		if b.Sessions[i].Status == SessionOpen {
			return &b.Sessions[i]
		}
	}
	return nil
}

// NewSession opens a new serving window. A bar runs at most one open
// session at a time; this is checked against the whole session history
// here, not left to a storage constraint.
func (b *Bar) NewSession(name string) (*Session, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("session name is required: %w", ErrInvalidArgument)
	}
	if open := b.OpenSession(); open != nil {
		return nil, fmt.Errorf("bar already has open session %s: %w", open.ID, ErrConflict)
	}
	b.Sessions = append(b.Sessions, newSession(b.ID, name))
	b.UpdatedAt = time.Now()
	return &b.Sessions[len(b.Sessions)-1], nil
}

// Session returns the session with the given id.
func (b *Bar) Session(sessionID uuid.UUID) (*Session, error) {
	for i := range b.Sessions {
		if b.Sessions[i].ID == sessionID {
			return &b.Sessions[i], nil
		}
	}
	return nil, fmt.Errorf("bar has no session with id %s: %w", sessionID, ErrNotFound)
}

// RemoveSession detaches the session; its bills and their orders are
// discarded with it.
func (b *Bar) RemoveSession(sessionID uuid.UUID) error {
	for i := range b.Sessions {
		if b.Sessions[i].ID == sessionID {
			b.Sessions = append(b.Sessions[:i], b.Sessions[i+1:]...)
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("bar has no session with id %s: %w", sessionID, ErrNotFound)
}
