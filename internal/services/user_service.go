package services

import (
	"errors"
	"fmt"

	"auction-api/internal/models"
	"auction-api/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	store  repository.Store
	logger zerolog.Logger
}

func NewUserService(store repository.Store, logger zerolog.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
	}
}

func (s *UserService) Register(req *models.RegisterRequest) (*models.User, error) {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return nil, errors.New("username, email, and password are required")
	}

	exists, err := s.store.UserExists(req.Email, req.Username)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error checking existing user")
		return nil, fmt.Errorf("database error: %w", err)
	}
	if exists {
		return nil, errors.New("user with this email or username already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error().Err(err).Msg("Error hashing password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           newID(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: string(hashedPassword),
	}
	if err := s.store.CreateUser(user); err != nil {
		s.logger.Error().Err(err).Msg("Error creating user")
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User registered successfully")
	return user, nil
}

func (s *UserService) Authenticate(req *models.LoginRequest) (*models.User, error) {
	if req.Email == "" || req.Password == "" {
		return nil, errors.New("email and password are required")
	}

	user, err := s.store.GetUserByEmail(req.Email)
	if err != nil {
		return nil, errors.New("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn().Str("email", req.Email).Msg("Failed authentication attempt")
		return nil, errors.New("invalid email or password")
	}

	s.logger.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("User authenticated successfully")
	return user, nil
}

func (s *UserService) GetUserByID(userID string) (*models.User, error) {
	return s.store.GetUserByID(userID)
}

// GetProfile returns a user together with the products they sell and the
// bids they placed, each bid joined with its product.
func (s *UserService) GetProfile(userID string) (*models.UserProfile, error) {
	user, err := s.store.GetUserByID(userID)
	if err != nil {
		return nil, err
	}

	products, err := s.store.ListProductsBySeller(userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Error fetching user products")
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	bids, err := s.store.ListBidsByBidder(userID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Error fetching user bids")
		return nil, fmt.Errorf("failed to fetch bids: %w", err)
	}

	return &models.UserProfile{
		User:     user,
		Products: products,
		Bids:     bids,
	}, nil
}
