// seed puebla la base de datos con datos de arranque del taller: el usuario
// administrador inicial, funcionarios, máquinas y artículos de inventario de
// ejemplo con un producto y su receta.
//
// Uso: go run ./cmd/seed
// El administrador se crea con SEED_ADMIN_EMAIL y SEED_ADMIN_PASSWORD; si la
// contraseña no está definida el comando aborta (no hay credencial por
// defecto).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/pukassein/teysa/internal/domain/entity"
	"github.com/pukassein/teysa/internal/infrastructure/postgres"
	"github.com/pukassein/teysa/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fail("cargar configuración: %v", err)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fail("conexión a PostgreSQL: %v", err)
	}
	defer pool.Close()

	if err := seedAdmin(pool); err != nil {
		fail("usuario administrador: %v", err)
	}
	if err := seedWorkers(pool); err != nil {
		fail("funcionarios: %v", err)
	}
	if err := seedMachines(pool); err != nil {
		fail("máquinas: %v", err)
	}
	if err := seedInventory(pool); err != nil {
		fail("inventario: %v", err)
	}

	fmt.Println("datos de arranque cargados")
}

func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func seedAdmin(q postgres.Querier) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	if email == "" {
		email = "admin@teysa.local"
	}
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if password == "" {
		return fmt.Errorf("SEED_ADMIN_PASSWORD no definido")
	}
	if len(password) < 8 {
		return fmt.Errorf("SEED_ADMIN_PASSWORD debe tener al menos 8 caracteres")
	}

	repo := postgres.NewUserRepository(q)
	existing, err := repo.FindByEmail(email)
	if err != nil {
		return err
	}
	if existing != nil {
		fmt.Printf("administrador %s ya existe, se omite\n", email)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	return repo.Create(&entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         "Administrador",
		Role:         entity.RoleAdmin,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
}

func seedWorkers(q postgres.Querier) error {
	repo := postgres.NewWorkerRepository(q)
	existing, err := repo.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("funcionarios ya cargados, se omiten")
		return nil
	}

	workers := []struct{ name, shift string }{
		{"Ana García", entity.ShiftManana},
		{"Luis Fernández", entity.ShiftManana},
		{"Carlos Martínez", entity.ShiftTarde},
		{"Sofía Rodríguez", entity.ShiftTarde},
		{"Javier Pérez", entity.ShiftNoche},
		{"María López", entity.ShiftNoche},
	}
	for _, w := range workers {
		err := repo.Create(&entity.Worker{
			ID:        uuid.New().String(),
			Name:      w.name,
			Shift:     w.shift,
			CreatedAt: time.Now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func seedMachines(q postgres.Querier) error {
	repo := postgres.NewMachineRepository(q)
	existing, err := repo.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("máquinas ya cargadas, se omiten")
		return nil
	}

	day := func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	machines := []struct {
		name, status string
		maintenance  time.Time
	}{
		{"Torno CNC", entity.MachineDisponible, day("2023-10-15")},
		{"Torno Horizontal #1", entity.MachineDisponible, day("2023-09-20")},
		{"Torno Horizontal #2", entity.MachineMantenimiento, day("2023-10-25")},
		{"Insertadora de Filamentos", entity.MachineDisponible, day("2023-10-05")},
		{"Inyectora 120 Toneladas", entity.MachineDisponible, day("2023-09-30")},
		{"Inyectora 130 Toneladas", entity.MachineInactivo, day("2023-08-10")},
		{"Inyectora 300 Toneladas", entity.MachineDisponible, day("2023-10-18")},
		{"Aglutinador", entity.MachineDisponible, day("2023-10-01")},
		{"Rectificadora de Gomas", entity.MachineMantenimiento, day("2023-10-22")},
		{"Máquina de Mopas", entity.MachineDisponible, day("2023-09-12")},
		{"Soldador MIG", entity.MachineDisponible, day("2023-10-20")},
		{"Prensa Hidráulica", entity.MachineDisponible, day("2023-10-02")},
		{"Molino 600mm", entity.MachineInactivo, day("2023-07-15")},
		{"Molino 300mm", entity.MachineDisponible, day("2023-10-11")},
	}
	for _, m := range machines {
		err := repo.Create(&entity.Machine{
			ID:              uuid.New().String(),
			Name:            m.name,
			Status:          m.status,
			LastMaintenance: m.maintenance,
			CreatedAt:       time.Now(),
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// seedInventory carga materias primas, un producto terminado de ejemplo y su
// receta: 1 Escoba Modelo A = 0.5 kg de cerdas + 1 mango de madera.
func seedInventory(q postgres.Querier) error {
	itemRepo := postgres.NewInventoryItemRepository(q)
	existing, err := itemRepo.List()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		fmt.Println("inventario ya cargado, se omite")
		return nil
	}

	now := time.Now()
	newItem := func(name, category, unit, brand string, qty, threshold int64) *entity.InventoryItem {
		return &entity.InventoryItem{
			ID:                uuid.New().String(),
			Name:              name,
			Category:          category,
			Quantity:          decimal.NewFromInt(qty),
			LowStockThreshold: decimal.NewFromInt(threshold),
			Unit:              unit,
			Brand:             brand,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	cerdas := newItem("Cerdas PET", entity.CategoryRawMaterial, "kg", entity.BrandGenerica, 500, 50)
	mangos := newItem("Mango de Madera 1.2m", entity.CategoryRawMaterial, "unidades", entity.BrandGenerica, 1000, 100)
	escoba := newItem("Escoba Modelo A", entity.CategoryFinishedGood, "unidades", entity.BrandDuramaxi, 0, 20)
	for _, it := range []*entity.InventoryItem{cerdas, mangos, escoba} {
		if err := itemRepo.Create(it); err != nil {
			return err
		}
	}

	productRepo := postgres.NewProductRepository(q)
	recipeRepo := postgres.NewProductRecipeRepository(q)
	product := &entity.Product{
		ID:                         uuid.New().String(),
		Name:                       "Escoba Modelo A",
		FinishedProductInventoryID: escoba.ID,
		CreatedAt:                  now,
	}
	if err := productRepo.Create(product); err != nil {
		return err
	}
	lines := []entity.ProductRecipe{
		{ID: uuid.New().String(), ProductID: product.ID, RawMaterialInventoryID: cerdas.ID, QuantityRequired: decimal.RequireFromString("0.5")},
		{ID: uuid.New().String(), ProductID: product.ID, RawMaterialInventoryID: mangos.ID, QuantityRequired: decimal.NewFromInt(1)},
	}
	for i := range lines {
		if err := recipeRepo.Create(&lines[i]); err != nil {
			return err
		}
	}
	return nil
}
