package service

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallharvest/herbport/internal/business/domain"
	"github.com/smallharvest/herbport/internal/ownerctx"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("business.service"),
		repo: p.Repo,
	}
}

func (s *Service) ResolveActive(ctx context.Context, id int64) (*domain.Business, error) {
	business, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrNotFound
	}
	if !business.Active() {
		return nil, domain.ErrSuspended
	}
	return business, nil
}

func (s *Service) Me(ctx context.Context) (*domain.Response, error) {
	ownerID, ok := ownerctx.OwnerIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrOwnerRequired
	}

	business, err := s.ResolveActive(ctx, ownerID.Int64())
	if err != nil {
		return nil, err
	}

	return &domain.Response{
		ID:           snowflake.ID(business.ID).String(),
		Name:         business.Name,
		Email:        business.Email,
		ContactName:  business.ContactName,
		Phone:        business.Phone,
		Address:      business.Address,
		BusinessType: business.BusinessType,
		Status:       business.Status,
		CreatedAt:    business.CreatedAt,
	}, nil
}
