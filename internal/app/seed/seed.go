// Package seed loads fixture medicines and accounts from a YAML file.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	inventorytypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/application/types"
	inventoryports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/inventory/ports"
	usersapp "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application"
	userstypes "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/application/types"
	usersports "github.com/Sanjaykumaar123/pharmatrack-lite/internal/domains/users/ports"
)

// File is the on-disk fixture layout.
type File struct {
	Users     []User     `yaml:"users"`
	Medicines []Medicine `yaml:"medicines"`
}

type User struct {
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"firstName"`
	LastName  string `yaml:"lastName"`
	Role      string `yaml:"role"`
}

type Medicine struct {
	Name              string  `yaml:"name"`
	Manufacturer      string  `yaml:"manufacturer"`
	BatchNo           string  `yaml:"batchNo"`
	Description       string  `yaml:"description"`
	MfgDate           string  `yaml:"mfgDate"`
	ExpDate           string  `yaml:"expDate"`
	Quantity          int     `yaml:"quantity"`
	Price             float64 `yaml:"price"`
	SupplyChainStatus string  `yaml:"supplyChainStatus"`
	Approved          bool    `yaml:"approved"`
}

// Report counts what Apply wrote and what it found already present.
type Report struct {
	UsersCreated     int
	UsersSkipped     int
	MedicinesCreated int
	MedicinesSkipped int
}

// Parse decodes a fixture file, rejecting unknown keys.
func Parse(r io.Reader) (File, error) {
	var file File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil {
		if errors.Is(err, io.EOF) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("decode seed file: %w", err)
	}
	return file, nil
}

// Seeder writes fixtures through the application services so every domain rule applies.
type Seeder struct {
	inventory inventoryports.Service
	users     usersports.Service
}

func NewSeeder(inventory inventoryports.Service, users usersports.Service) *Seeder {
	return &Seeder{inventory: inventory, users: users}
}

// Apply is idempotent: accounts are matched by email, batches by name and batch number.
func (s *Seeder) Apply(ctx context.Context, file File) (Report, error) {
	var report Report
	for _, u := range file.Users {
		created, err := s.applyUser(ctx, u)
		if err != nil {
			return report, fmt.Errorf("seed user %q: %w", u.Email, err)
		}
		if created {
			report.UsersCreated++
		} else {
			report.UsersSkipped++
		}
	}

	existing, err := s.inventory.List(ctx)
	if err != nil {
		return report, fmt.Errorf("list medicines: %w", err)
	}
	known := make(map[string]struct{}, len(existing))
	for _, p := range existing {
		known[medicineKey(p.Entity.Name, p.Entity.BatchNo)] = struct{}{}
	}
	for _, m := range file.Medicines {
		key := medicineKey(m.Name, m.BatchNo)
		if _, ok := known[key]; ok {
			report.MedicinesSkipped++
			continue
		}
		if err := s.applyMedicine(ctx, m); err != nil {
			return report, fmt.Errorf("seed medicine %q: %w", m.Name, err)
		}
		known[key] = struct{}{}
		report.MedicinesCreated++
	}
	return report, nil
}

func (s *Seeder) applyUser(ctx context.Context, u User) (bool, error) {
	user, err := s.users.SignUp(ctx, userstypes.SignUpInput{
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
	if errors.Is(err, usersapp.ErrConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if u.Role != "" && !strings.EqualFold(u.Role, string(user.Role)) {
		if _, err := s.users.UpdateRole(ctx, userstypes.UpdateRoleInput{UserID: user.ID, Role: u.Role}); err != nil {
			return true, err
		}
	}
	return true, nil
}

func (s *Seeder) applyMedicine(ctx context.Context, m Medicine) error {
	mfg, err := time.Parse(time.DateOnly, m.MfgDate)
	if err != nil {
		return fmt.Errorf("mfgDate: %w", err)
	}
	exp, err := time.Parse(time.DateOnly, m.ExpDate)
	if err != nil {
		return fmt.Errorf("expDate: %w", err)
	}
	created, err := s.inventory.Create(ctx, inventorytypes.CreateMedicineInput{
		Name:              m.Name,
		Manufacturer:      m.Manufacturer,
		BatchNo:           m.BatchNo,
		Description:       m.Description,
		MfgDate:           mfg,
		ExpDate:           exp,
		Quantity:          m.Quantity,
		Price:             m.Price,
		SupplyChainStatus: m.SupplyChainStatus,
	})
	if err != nil {
		return err
	}
	if m.Approved {
		_, err = s.inventory.Approve(ctx, inventorytypes.MedicineIdentifier{ID: created.Entity.ID})
	}
	return err
}

func medicineKey(name, batch string) string {
	return strings.ToLower(strings.TrimSpace(name)) + "\x00" + strings.ToLower(strings.TrimSpace(batch))
}
