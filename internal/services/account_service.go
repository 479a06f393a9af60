package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"showroom/internal/core"
	"showroom/internal/finance"
	"showroom/internal/inventory"
	"showroom/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrEmptyPassword    = errors.New("password is required")
	ErrPasswordMismatch = errors.New("passwords do not match")
)

// RegisterRequest is the sign-up form. Passwords are checked and dropped.
type RegisterRequest struct {
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// ProfileUpdate replaces the editable profile fields.
type ProfileUpdate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Dashboard is everything the account page shows. Profile is nil until the
// visitor registers.
type Dashboard struct {
	Profile      *core.Profile              `json:"profile"`
	SavedCars    []core.SavedCar            `json:"savedCars"`
	Bookings     []core.Booking             `json:"testDrives"`
	Calculations []finance.SavedCalculation `json:"calculations"`
	ChatMessages int                        `json:"chatMessages"`
}

type AccountService struct {
	repos     *repository.Repositories
	catalog   *inventory.Service
	publisher LeadPublisher
	clock     Clock
}

func NewAccountService(repos *repository.Repositories, catalog *inventory.Service, publisher LeadPublisher, clock Clock) *AccountService {
	return &AccountService{repos: repos, catalog: catalog, publisher: publisher, clock: clock}
}

func (s *AccountService) Register(ctx context.Context, visitor string, req RegisterRequest) (core.Profile, error) {
	if req.Password == "" {
		return core.Profile{}, invalid(ErrEmptyPassword)
	}
	if req.Password != req.ConfirmPassword {
		return core.Profile{}, invalid(ErrPasswordMismatch)
	}

	now := s.clock.now()
	p := core.Profile{
		ID:        uuid.NewString(),
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		Phone:     strings.TrimSpace(req.Phone),
		CreatedAt: now.UTC(),
	}
	if err := p.Validate(); err != nil {
		return core.Profile{}, invalid(err)
	}
	if err := s.repos.Profiles.Save(ctx, visitor, p); err != nil {
		return core.Profile{}, fmt.Errorf("save profile: %w", err)
	}

	lead := core.NewLead(core.LeadRegistration, visitor, now)
	lead.Name = p.FullName()
	lead.Email = p.Email
	lead.Phone = p.Phone
	publishLead(ctx, s.publisher, lead)

	return p, nil
}

func (s *AccountService) Profile(ctx context.Context, visitor string) (core.Profile, error) {
	p, err := s.repos.Profiles.Get(ctx, visitor)
	if errors.Is(err, repository.ErrProfileNotFound) {
		return core.Profile{}, notFound(err)
	}
	return p, err
}

func (s *AccountService) UpdateProfile(ctx context.Context, visitor string, u ProfileUpdate) (core.Profile, error) {
	p, err := s.repos.Profiles.Update(ctx, visitor, func(p *core.Profile) error {
		next := *p
		next.FirstName = strings.TrimSpace(u.FirstName)
		next.LastName = strings.TrimSpace(u.LastName)
		next.Email = strings.TrimSpace(u.Email)
		next.Phone = strings.TrimSpace(u.Phone)
		if err := next.Validate(); err != nil {
			return invalid(err)
		}
		*p = next
		return nil
	})
	if errors.Is(err, repository.ErrProfileNotFound) {
		return core.Profile{}, notFound(err)
	}
	return p, err
}

func (s *AccountService) Dashboard(ctx context.Context, visitor string) (Dashboard, error) {
	var d Dashboard
	p, err := s.repos.Profiles.Get(ctx, visitor)
	switch {
	case err == nil:
		d.Profile = &p
	case !errors.Is(err, repository.ErrProfileNotFound):
		return Dashboard{}, err
	}

	if d.SavedCars, err = s.repos.SavedCars.List(ctx, visitor); err != nil {
		return Dashboard{}, err
	}
	if d.Bookings, err = s.repos.Bookings.List(ctx, visitor); err != nil {
		return Dashboard{}, err
	}
	if d.Calculations, err = s.repos.Calculations.List(ctx, visitor); err != nil {
		return Dashboard{}, err
	}
	chat, err := s.repos.ChatHistory.List(ctx, visitor)
	if err != nil {
		return Dashboard{}, err
	}
	d.ChatMessages = len(chat)
	return d, nil
}

// SaveCar adds a catalog vehicle to the visitor's favourites. added is false
// when it was already saved.
func (s *AccountService) SaveCar(ctx context.Context, visitor string, vehicleID int) (car core.SavedCar, added bool, err error) {
	v, err := s.catalog.Get(vehicleID)
	if err != nil {
		return core.SavedCar{}, false, notFound(err)
	}
	car = core.SavedCar{
		VehicleID: v.ID,
		Name:      v.Name,
		Price:     v.Price,
		SavedAt:   s.clock.now().UTC(),
	}
	added, err = s.repos.SavedCars.Add(ctx, visitor, car)
	if err != nil {
		return core.SavedCar{}, false, fmt.Errorf("save car: %w", err)
	}
	return car, added, nil
}

var ErrCarNotSaved = errors.New("vehicle is not in saved cars")

func (s *AccountService) RemoveSavedCar(ctx context.Context, visitor string, vehicleID int) error {
	removed, err := s.repos.SavedCars.Remove(ctx, visitor, vehicleID)
	if err != nil {
		return err
	}
	if !removed {
		return notFound(ErrCarNotSaved)
	}
	return nil
}

// Contact forwards the contact form to sales. Nothing is stored for the
// visitor.
func (s *AccountService) Contact(ctx context.Context, visitor string, msg core.ContactMessage) (core.Lead, error) {
	if err := msg.Validate(); err != nil {
		return core.Lead{}, invalid(err)
	}
	lead := core.NewLead(core.LeadContact, visitor, s.clock.now())
	lead.Name = strings.TrimSpace(msg.Name)
	lead.Email = strings.TrimSpace(msg.Email)
	lead.Phone = strings.TrimSpace(msg.Phone)
	lead.Detail = strings.TrimSpace(msg.Message)
	if subj := strings.TrimSpace(msg.Subject); subj != "" {
		lead.Detail = subj + ": " + lead.Detail
	}
	if msg.PreferredContact != "" {
		lead.Detail += " (prefers " + string(msg.PreferredContact) + ")"
	}
	publishLead(ctx, s.publisher, lead)
	return lead, nil
}
