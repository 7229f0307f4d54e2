package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"rental-ledger/models"

	mysql "github.com/go-sql-driver/mysql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AccountService is the authentication collaborator: it registers principal
// accounts and resolves bearer tokens back to a principal. The ledger core
// never touches it; controllers do.
type AccountService struct {
	DB *gorm.DB
}

func NewAccountService(db *gorm.DB) *AccountService {
	return &AccountService{DB: db}
}

func generateTokenHex(length int) (string, error) {
	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func isDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return true
	}
	// sqlite driver reports the constraint by message only.
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "Duplicate entry")
}

// Register creates a principal account with a bcrypt-hashed password.
func (s *AccountService) Register(fullName, username, password string) (models.Account, error) {
	fullName = strings.TrimSpace(fullName)
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Account{}, ErrInvalidArgument
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.Account{
		FullName: fullName,
		Username: username,
		Password: string(hash),
	}
	if err := s.DB.Create(&account).Error; err != nil {
		if isDuplicateEntry(err) {
			return models.Account{}, ErrUsernameTaken
		}
		return models.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// Login checks the password and issues a fresh opaque API token.
func (s *AccountService) Login(username, password string) (models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.Account{}, ErrInvalidCredentials
	}

	var account models.Account
	if err := s.DB.Where("username = ?", username).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, ErrInvalidCredentials
		}
		return models.Account{}, fmt.Errorf("failed to load account: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)) != nil {
		return models.Account{}, ErrInvalidCredentials
	}

	token, err := generateTokenHex(32)
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to generate token: %w", err)
	}
	if err := s.DB.Model(&account).Update("token", token).Error; err != nil {
		return models.Account{}, fmt.Errorf("failed to store token: %w", err)
	}
	account.Token = token
	return account, nil
}

// ByToken resolves a bearer token to its account.
func (s *AccountService) ByToken(token string) (models.Account, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Account{}, ErrInvalidToken
	}

	var account models.Account
	if err := s.DB.Where("token = ?", token).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, ErrInvalidToken
		}
		return models.Account{}, fmt.Errorf("failed to resolve token: %w", err)
	}
	return account, nil
}
