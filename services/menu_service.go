package services

import (
	"context"
	"time"

	"canteen/entity"
	"canteen/repository"
)

type MenuService struct {
	Menu    *repository.MenuRepository
	Timeout time.Duration
}

func NewMenuService(menu *repository.MenuRepository, timeout time.Duration) *MenuService {
	return &MenuService{Menu: menu, Timeout: timeout}
}

func (s *MenuService) List(ctx context.Context) ([]entity.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	items, err := s.Menu.List(ctx)
	if err != nil {
		return nil, persistence(err)
	}
	return items, nil
}
