package services

import (
	"context"
	"errors"
	"log"

	"techstore/internal/domain"
	"techstore/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var starterCategories = []string{"Electronics", "Clothing", "Home", "Sports"}

// Seed bootstraps the admin account and starter categories. It is
// idempotent: rows that already exist are left alone.
func Seed(ctx context.Context, admins repository.AdminRepository, categories repository.CategoryRepository, email, password, name string) error {
	if password == "" {
		return errors.New("seed admin password is required")
	}

	existing, err := admins.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing == nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		if err := admins.Create(ctx, &domain.Admin{
			Email:    email,
			Password: string(hash),
			Name:     name,
		}); err != nil {
			return err
		}
		log.Printf("seeded admin %s", email)
	}

	for _, catName := range starterCategories {
		slug := domain.Slugify(catName)
		taken, err := categories.NameOrSlugExists(ctx, catName, slug, "")
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		if err := categories.Create(ctx, &domain.Category{Name: catName, Slug: slug}); err != nil {
			return err
		}
	}

	return nil
}
