package service

import (
	"alcyxob/gym-system/internal/apperr"
	"alcyxob/gym-system/internal/cache"
	"alcyxob/gym-system/internal/domain"
	"alcyxob/gym-system/internal/events"
	"alcyxob/gym-system/internal/repository"
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrOfferNotFound      = apperr.New(apperr.KindNotFound, "offer.notFound")
	ErrOfferTitleTaken    = apperr.New(apperr.KindConflict, "offer.titleTaken")
	ErrGymPassNotFound    = apperr.New(apperr.KindNotFound, "gympass.notFound")
	ErrRetroDate          = apperr.New(apperr.KindBadRequest, "gympass.retroDate")
	ErrGymPassExpired     = apperr.New(apperr.KindBadRequest, "gympass.expired")
	ErrAlreadySuspended   = apperr.New(apperr.KindBadRequest, "gympass.alreadySuspended")
	ErrSuspensionAfterEnd = apperr.New(apperr.KindBadRequest, "gympass.suspensionAfterEnd")
	ErrGymPassNotValid    = apperr.New(apperr.KindBadRequest, "gympass.notValid")
)

const (
	offerListCacheKey = "offers:all"
	offerCacheKey     = "offers:"
)

// OfferInput is the writable part of an offer.
type OfferInput struct {
	Title        string
	Subheader    string
	Price        domain.Price
	Description  domain.OfferDescription
	Premium      bool
	ValidityDays int
	Entries      int
}

// GymPassStatus summarizes whether a pass can be used today.
type GymPassStatus struct {
	ID             primitive.ObjectID `json:"id"`
	Valid          bool               `json:"valid"`
	Suspended      bool               `json:"suspended"`
	StartDate      string             `json:"startDate"`
	EndDate        string             `json:"endDate"`
	Entries        int                `json:"entries"`
	Unlimited      bool               `json:"unlimited"`
	SuspensionDate string             `json:"suspensionDate,omitempty"`
}

type GymPassService interface {
	ListOffers(ctx context.Context) ([]domain.GymPassOffer, error)
	GetOffer(ctx context.Context, id primitive.ObjectID) (*domain.GymPassOffer, error)
	CreateOffer(ctx context.Context, in OfferInput) (*domain.GymPassOffer, error)
	UpdateOffer(ctx context.Context, id primitive.ObjectID, in OfferInput) (*domain.GymPassOffer, error)
	DeleteOffer(ctx context.Context, id primitive.ObjectID) error

	Purchase(ctx context.Context, caller Principal, offerID primitive.ObjectID, startDate string) (*domain.PurchasedGymPass, error)
	Status(ctx context.Context, caller Principal, id primitive.ObjectID) (*GymPassStatus, error)
	Suspend(ctx context.Context, caller Principal, id primitive.ObjectID, date string) (*domain.PurchasedGymPass, error)
	ListUserPasses(ctx context.Context, caller Principal, userID primitive.ObjectID) ([]domain.PurchasedGymPass, error)
	RegisterEntry(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error)
}

type gymPassService struct {
	offerRepo    repository.OfferRepository
	purchaseRepo repository.PurchaseRepository
	cache        cache.Cache
	events       events.Publisher
	now          Clock
}

func NewGymPassService(offerRepo repository.OfferRepository, purchaseRepo repository.PurchaseRepository, c cache.Cache, p events.Publisher) GymPassService {
	return &gymPassService{
		offerRepo:    offerRepo,
		purchaseRepo: purchaseRepo,
		cache:        c,
		events:       p,
		now:          systemClock,
	}
}

// ListOffers serves from the cache when possible. Cache failures fall back to the database.
func (s *gymPassService) ListOffers(ctx context.Context) ([]domain.GymPassOffer, error) {
	var offers []domain.GymPassOffer
	found, err := s.cache.Get(ctx, offerListCacheKey, &offers)
	if err != nil {
		log.Warn().Err(err).Msg("offer cache read failed")
	}
	if found {
		return offers, nil
	}

	offers, err = s.offerRepo.List(ctx)
	if err != nil {
		return nil, internal("gymPassService.ListOffers", err)
	}
	if err = s.cache.Set(ctx, offerListCacheKey, offers); err != nil {
		log.Warn().Err(err).Msg("offer cache write failed")
	}
	return offers, nil
}

func (s *gymPassService) GetOffer(ctx context.Context, id primitive.ObjectID) (*domain.GymPassOffer, error) {
	key := offerCacheKey + id.Hex()
	var offer domain.GymPassOffer
	found, err := s.cache.Get(ctx, key, &offer)
	if err != nil {
		log.Warn().Err(err).Msg("offer cache read failed")
	}
	if found {
		return &offer, nil
	}

	stored, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr("gymPassService.GetOffer", err, ErrOfferNotFound)
	}
	if err = s.cache.Set(ctx, key, stored); err != nil {
		log.Warn().Err(err).Msg("offer cache write failed")
	}
	return stored, nil
}

func (s *gymPassService) CreateOffer(ctx context.Context, in OfferInput) (*domain.GymPassOffer, error) {
	offer := &domain.GymPassOffer{}
	in.apply(offer)

	id, err := s.offerRepo.Create(ctx, offer)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrOfferTitleTaken.With(in.Title)
		}
		return nil, internal("gymPassService.CreateOffer", err)
	}
	offer.ID = id
	s.invalidate(ctx)
	return offer, nil
}

func (s *gymPassService) UpdateOffer(ctx context.Context, id primitive.ObjectID, in OfferInput) (*domain.GymPassOffer, error) {
	const op = "gymPassService.UpdateOffer"
	offer, err := s.offerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrOfferNotFound)
	}
	in.apply(offer)

	if err = s.offerRepo.Update(ctx, offer); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicate):
			return nil, ErrOfferTitleTaken.With(in.Title)
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOfferNotFound
		}
		return nil, internal(op, err)
	}
	s.invalidate(ctx, id)
	return offer, nil
}

// DeleteOffer removes the offer. Passes already bought keep their snapshot.
func (s *gymPassService) DeleteOffer(ctx context.Context, id primitive.ObjectID) error {
	if err := s.offerRepo.Delete(ctx, id); err != nil {
		return notFoundOr("gymPassService.DeleteOffer", err, ErrOfferNotFound)
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *gymPassService) invalidate(ctx context.Context, ids ...primitive.ObjectID) {
	keys := []string{offerListCacheKey}
	for _, id := range ids {
		keys = append(keys, offerCacheKey+id.Hex())
	}
	if err := s.cache.Invalidate(ctx, keys...); err != nil {
		log.Error().Err(err).Strs("keys", keys).Msg("offer cache invalidation failed")
	}
}

func (in OfferInput) apply(o *domain.GymPassOffer) {
	o.Title = in.Title
	o.Subheader = in.Subheader
	o.Price = in.Price
	o.Description = in.Description
	o.Premium = in.Premium
	o.ValidityDays = in.ValidityDays
	o.Entries = in.Entries
}

// Purchase buys an offer for the caller. An empty startDate means today.
func (s *gymPassService) Purchase(ctx context.Context, caller Principal, offerID primitive.ObjectID, startDate string) (*domain.PurchasedGymPass, error) {
	const op = "gymPassService.Purchase"
	now := s.now()
	today := domain.Day(now)

	start := today
	if startDate != "" {
		d, err := domain.ParseDate(startDate)
		if err != nil {
			return nil, apperr.ErrInvalidDate
		}
		start = d
	}
	if start.Before(today) {
		return nil, ErrRetroDate
	}

	offer, err := s.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		return nil, notFoundOr(op, err, ErrOfferNotFound)
	}

	pass := &domain.PurchasedGymPass{
		Offer:            domain.OfferSnapshot{ID: offer.ID, Title: offer.Title, Price: offer.Price},
		UserID:           caller.UserID,
		PurchaseDateTime: now,
		StartDate:        start,
		EndDate:          start.AddDate(0, 0, offer.ValidityDays),
		Entries:          offer.Entries,
		Unlimited:        offer.Entries == 0,
	}
	id, err := s.purchaseRepo.Create(ctx, pass)
	if err != nil {
		return nil, internal(op, err)
	}
	pass.ID = id

	events.PublishAsync(s.events, events.GymPassPurchased, pass)
	return pass, nil
}

func (s *gymPassService) loadOwned(ctx context.Context, op string, caller Principal, id primitive.ObjectID, allowed func(domain.Role) bool) (*domain.PurchasedGymPass, error) {
	pass, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrGymPassNotFound)
	}
	if pass.UserID != caller.UserID && !allowed(caller.Role) {
		return nil, apperr.ErrAccessDenied
	}
	return pass, nil
}

func isAdmin(r domain.Role) bool {
	return r == domain.RoleAdmin
}

func (s *gymPassService) Status(ctx context.Context, caller Principal, id primitive.ObjectID) (*GymPassStatus, error) {
	pass, err := s.loadOwned(ctx, "gymPassService.Status", caller, id, domain.Role.IsStaff)
	if err != nil {
		return nil, err
	}

	today := s.now()
	status := &GymPassStatus{
		ID:        pass.ID,
		Valid:     pass.IsValid(today),
		Suspended: pass.IsSuspended(today),
		StartDate: pass.StartDate.Format(domain.DateLayout),
		EndDate:   pass.EndDate.Format(domain.DateLayout),
		Entries:   pass.Entries,
		Unlimited: pass.Unlimited,
	}
	if pass.SuspensionDate != nil {
		status.SuspensionDate = pass.SuspensionDate.Format(domain.DateLayout)
	}
	return status, nil
}

// Suspend freezes the pass up to and including date and pushes its end date
// back by the number of usable days lost.
func (s *gymPassService) Suspend(ctx context.Context, caller Principal, id primitive.ObjectID, date string) (*domain.PurchasedGymPass, error) {
	const op = "gymPassService.Suspend"
	suspendUntil, err := domain.ParseDate(date)
	if err != nil {
		return nil, apperr.ErrInvalidDate
	}

	pass, err := s.loadOwned(ctx, op, caller, id, isAdmin)
	if err != nil {
		return nil, err
	}

	today := domain.Day(s.now())
	switch {
	case suspendUntil.Before(today):
		return nil, ErrRetroDate
	case pass.IsExpired(today):
		return nil, ErrGymPassExpired
	case pass.IsSuspended(today):
		return nil, ErrAlreadySuspended
	case suspendUntil.After(pass.EndDate):
		return nil, ErrSuspensionAfterEnd
	}

	// The suspension date itself is blocked too, and days before the pass
	// starts were never usable.
	from := today
	if pass.StartDate.After(from) {
		from = pass.StartDate
	}
	pass.SuspensionDate = &suspendUntil
	if blocked := domain.DaysBetween(from, suspendUntil) + 1; blocked > 0 {
		pass.EndDate = pass.EndDate.AddDate(0, 0, blocked)
	}
	if err = s.purchaseRepo.Update(ctx, pass); err != nil {
		return nil, notFoundOr(op, err, ErrGymPassNotFound)
	}

	events.PublishAsync(s.events, events.GymPassSuspended, pass)
	return pass, nil
}

func (s *gymPassService) ListUserPasses(ctx context.Context, caller Principal, userID primitive.ObjectID) ([]domain.PurchasedGymPass, error) {
	if caller.UserID != userID && !caller.Role.IsStaff() {
		return nil, apperr.ErrAccessDenied
	}
	passes, err := s.purchaseRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, internal("gymPassService.ListUserPasses", err)
	}
	return passes, nil
}

// RegisterEntry lets the owner in once, using up one entry of an entry-based pass.
func (s *gymPassService) RegisterEntry(ctx context.Context, id primitive.ObjectID) (*domain.PurchasedGymPass, error) {
	const op = "gymPassService.RegisterEntry"
	pass, err := s.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(op, err, ErrGymPassNotFound)
	}
	if !pass.IsValid(s.now()) {
		return nil, ErrGymPassNotValid
	}
	if !pass.Unlimited {
		pass, err = s.purchaseRepo.UseEntry(ctx, id)
		if err != nil {
			// Another entry took the last one since the read.
			return nil, notFoundOr(op, err, ErrGymPassNotValid)
		}
	}

	events.PublishAsync(s.events, events.GymPassEntry, pass)
	return pass, nil
}
