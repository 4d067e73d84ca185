// Package catalog exposes the parts of a catalog book that pricing and ordering need.
package catalog

import (
	"errors"
	"strings"

	"bookstore/internal/core/domain/model/kernel"
	"bookstore/internal/pkg/errs"
)

// ErrBookIsNotConstructed is returned when using an improperly initialized Book.
var ErrBookIsNotConstructed = errors.New("Book must be created via NewBook constructor")

// Book is a read-only catalog entry. Inactive books cannot be ordered.
type Book struct {
	isbn       kernel.ISBN
	title      string
	categoryID int64

	active        bool
	isConstructed bool
}

// NewBook validates and creates a Book.
func NewBook(isbn kernel.ISBN, title string, categoryID int64, active bool) (*Book, error) {
	title = strings.TrimSpace(title)

	var titleErr error
	if title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if err := errors.Join(isbn.Validate(), titleErr); err != nil {
		return nil, err
	}

	return &Book{
		isbn:          isbn,
		title:         title,
		categoryID:    categoryID,
		active:        active,
		isConstructed: true,
	}, nil
}

// Validate ensures the Book was built through NewBook.
func (b *Book) Validate() error {
	if b == nil || !b.isConstructed {
		return ErrBookIsNotConstructed
	}
	return nil
}

// ISBN returns the book identifier.
func (b *Book) ISBN() kernel.ISBN { return b.isbn }

// Title returns the display title.
func (b *Book) Title() string { return b.title }

// CategoryID returns the category used by category-scoped promotions.
func (b *Book) CategoryID() int64 { return b.categoryID }

// IsActive reports whether the book is on sale.
func (b *Book) IsActive() bool { return b.active }
