package services

import (
	"errors"
	"time"

	"github.com/ArchePal/ArchePal-Backend/src/apperrors"
	"github.com/ArchePal/ArchePal-Backend/src/middleware"
	"github.com/ArchePal/ArchePal-Backend/src/models"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	db *gorm.DB
}

// NewUserService creates a new instance of UserService
func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetUserByID retrieves a User by ID. Missing users are (nil, nil).
func (s *UserService) GetUserByID(id int) (*models.UserModel, error) {
	if s.db == nil {
		return nil, nil
	}
	var user models.UserModel
	err := s.db.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.FromStore(err, "could not load user")
	}
	return &user, nil
}

// CreateUser creates a new User record in the database
func (s *UserService) CreateUser(user *models.UserModel) (*models.UserModel, error) {
	if s.db == nil {
		return nil, apperrors.Unavailable("store is not available", nil)
	}

	// Hash the password before saving
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user.Password = string(hashedPassword)

	if err := s.db.Create(user).Error; err != nil {
		return nil, apperrors.FromStore(err, "could not create user")
	}
	return user, nil
}

// DeleteUser deletes a User record by ID
func (s *UserService) DeleteUser(id int) error {
	if s.db == nil {
		return apperrors.Unavailable("store is not available", nil)
	}
	result := s.db.Delete(&models.UserModel{}, id)
	return result.Error
}

// AuthenticateUser checks user credentials and returns a JWT token if valid
func (s *UserService) AuthenticateUser(username, password string) (string, error) {
	if s.db == nil {
		return "", apperrors.Unavailable("store is not available", nil)
	}

	var user models.UserModel
	result := s.db.Where("username = ?", username).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return "", errors.New("invalid username or password")
		}
		return "", result.Error
	}

	// Compare the provided password with the hashed password in the database
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", errors.New("invalid username or password")
	}

	claims := jwt.MapClaims{
		"id":  user.Id,
		"exp": time.Now().Add(time.Hour * 12).Unix(), // Token expires in 12 hours
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(middleware.GetSecretKey()))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}
