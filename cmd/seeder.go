package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var clearData bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"attendance", "users", "locations"} {
				if err := gormDB.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		password := "password123"
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)

		seedUser(gormDB, "ADMIN001", "Alice Admin", "admin@company.com", string(hash), "admin", nil)
		managerID := seedUser(gormDB, "MGR001", "Mandy Manager", "manager@company.com", string(hash), "manager", nil)
		seedUser(gormDB, "E001", "John Doe", "john.doe@company.com", string(hash), "employee", &managerID)

		seedLocation(gormDB, "Main Lobby", "T-LOBBY", "Ground floor entrance kiosk")
		seedLocation(gormDB, "Warehouse", "T-WAREHOUSE", "Warehouse gate kiosk")

		fmt.Println("Seeding complete. Default password:", password)
	},
}

func init() {
	seedCmd.Flags().BoolVar(&clearData, "clear", false, "Clear existing data before seeding")
}

func seedUser(db *gorm.DB, employeeID, name, email, hash, role string, managerID *int64) int64 {
	var id int64
	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err == nil {
		fmt.Println("user already exists:", email)
		return id
	}

	err := db.Exec(
		"INSERT INTO users (employee_id, name, email, password_hash, role, reporting_manager_id, totp_enabled, is_active, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, false, true, now(), now())",
		employeeID, name, email, hash, role, managerID,
	).Error
	if err != nil {
		log.Fatalf("failed to insert user %s: %v", email, err)
	}

	if err := db.Raw("SELECT id FROM users WHERE email = ?", email).Row().Scan(&id); err != nil {
		log.Fatalf("failed to lookup user id for %s: %v", email, err)
	}
	fmt.Println("Seeded user:", email, "role:", role)
	return id
}

func seedLocation(db *gorm.DB, name, terminalID, description string) {
	var exists int
	if err := db.Raw("SELECT 1 FROM locations WHERE terminal_id = ?", terminalID).Row().Scan(&exists); err == nil {
		fmt.Println("location already exists:", terminalID)
		return
	}

	err := db.Exec(
		"INSERT INTO locations (name, terminal_id, description, is_active, created_at, updated_at) VALUES (?, ?, ?, true, now(), now())",
		name, terminalID, description,
	).Error
	if err != nil {
		log.Fatalf("failed to insert location %s: %v", terminalID, err)
	}
	fmt.Println("Seeded location:", terminalID)
}
