package services

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"canteen/entity"
	"canteen/pkg/apperr"
	"canteen/pkg/locker"
	"canteen/repository"
)

// CartService owns per-user cart contents. Every mutation takes the user's
// lock and runs in one transaction, so concurrent read-modify-write calls
// for the same user cannot interleave.
type CartService struct {
	DB      *gorm.DB
	Cart    *repository.CartRepository
	Menu    *repository.MenuRepository
	Locks   *locker.KeyedMutex
	Timeout time.Duration
}

func NewCartService(db *gorm.DB, cart *repository.CartRepository, menu *repository.MenuRepository, locks *locker.KeyedMutex, timeout time.Duration) *CartService {
	return &CartService{DB: db, Cart: cart, Menu: menu, Locks: locks, Timeout: timeout}
}

type AddToCartIn struct {
	MenuItemID uint `json:"menuId" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required,gt=0"`
}

// Add creates a line or merges quantity into an existing one. The unit price
// comes from the menu catalog, and an existing line keeps its stored price.
// The second return reports whether a merge happened.
func (s *CartService) Add(ctx context.Context, userID uint, in *AddToCartIn) (*entity.CartItem, bool, error) {
	if in.Quantity < 1 {
		return nil, false, apperr.ErrInvalidQuantity
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	m, err := s.Menu.FindAvailable(ctx, in.MenuItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, apperr.ErrMenuNotFound
		}
		return nil, false, persistence(err)
	}

	s.Locks.Lock(userID)
	defer s.Locks.Unlock(userID)

	var (
		line   *entity.CartItem
		merged bool
	)
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		line, merged, err = s.Cart.UpsertLine(tx, userID, m.ID, in.Quantity, m.Price)
		return err
	})
	if err != nil {
		return nil, false, persistence(err)
	}
	return line, merged, nil
}

// List returns the user's cart lines; an empty cart is an empty slice, the
// caller decides whether that is an error.
func (s *CartService) List(ctx context.Context, userID uint) ([]entity.CartItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	lines, err := s.Cart.ListForUser(ctx, userID)
	if err != nil {
		return nil, persistence(err)
	}
	return lines, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, menuItemID uint, qty int) (*entity.CartItem, error) {
	if qty < 1 {
		return nil, apperr.ErrInvalidQuantity
	}

	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	s.Locks.Lock(userID)
	defer s.Locks.Unlock(userID)

	var line *entity.CartItem
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		line, err = s.Cart.SetQuantity(tx, userID, menuItemID, qty)
		return err
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrLineNotFound
		}
		return nil, persistence(err)
	}
	return line, nil
}

func (s *CartService) Remove(ctx context.Context, userID, lineID uint) error {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	s.Locks.Lock(userID)
	defer s.Locks.Unlock(userID)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.Cart.RemoveLine(tx, userID, lineID)
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.ErrLineNotFound
		}
		return persistence(err)
	}
	return nil
}
