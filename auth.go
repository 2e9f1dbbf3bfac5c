package main

import (
	"fmt"
	"log"
	"strings"

	"nexafin/models"

	"golang.org/x/crypto/bcrypt"
)

// RegisterUser creates an account and its empty financial profile. The
// pre-check is optimistic; the unique index on email catches the race.
func RegisterUser(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, fmt.Errorf("email required")
	}
	if len(password) < 6 { // basic password policy
		return nil, fmt.Errorf("password too short (min 6)")
	}
	var existing models.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("email already registered")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{Email: email, PasswordHash: hashed}
	if err := db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) { // race after the initial check
			return nil, fmt.Errorf("email already registered")
		}
		return nil, err
	}
	// Initialize the empty profile now; lazy creation still guards every path.
	if _, err := getOrCreateProfile(db, user.ID); err != nil {
		log.Printf("failed to create profile for %s: %v", user.Email, err)
	}
	return &user, nil
}

func Authenticate(email, password string) (models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var user models.User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return models.User{}, fmt.Errorf("incorrect email or password")
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return models.User{}, fmt.Errorf("incorrect email or password")
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}
