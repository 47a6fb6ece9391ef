package service

import (
	"errors"
	"regexp"

	"github.com/laujml/la-cuponera/internal/domain/user/model"
	"github.com/laujml/la-cuponera/internal/domain/user/repository"
	"github.com/laujml/la-cuponera/pkg/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidDUI         = errors.New("invalid DUI format, expected 00000000-0")
)

// duiPattern matches the national ID format: eight digits, dash, check digit.
var duiPattern = regexp.MustCompile(`^\d{8}-\d$`)

// RegisterInput carries the profile fields collected at sign-up.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	DUI       string
	Phone     string
}

type UserService interface {
	Register(input RegisterInput) (string, error)
	Login(email, password string) (string, error)
	GetUser(id string) (*model.User, error)
	UpdateProfile(id, firstName, lastName, phone string) (*model.User, error)
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

// Register creates a client account and returns a session token.
func (s *userService) Register(input RegisterInput) (string, error) {
	if input.DUI != "" && !duiPattern.MatchString(input.DUI) {
		return "", ErrInvalidDUI
	}

	if _, err := s.repo.GetByEmail(input.Email); err == nil {
		return "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Email:        input.Email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		DUI:          input.DUI,
		Phone:        input.Phone,
		Role:         model.RoleCliente,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	return token, err
}

// Login verifies credentials and returns a session token.
func (s *userService) Login(email, password string) (string, error) {
	user, err := s.repo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	token, _, err := utils.GenerateToken(user.ID, user.Role)
	return token, err
}

func (s *userService) GetUser(id string) (*model.User, error) {
	return s.repo.GetByID(id)
}

// UpdateProfile changes the editable profile fields. Email, DUI and role are
// immutable after registration.
func (s *userService) UpdateProfile(id, firstName, lastName, phone string) (*model.User, error) {
	user, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if phone != "" {
		user.Phone = phone
	}

	if err := s.repo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}
