package postgres

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/frahmantamala/attendance-tracker/internal/user"
)

func TestUserRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Repository Suite")
}

var _ = Describe("UserRepository", func() {
	var (
		db   *gorm.DB
		repo user.Repository
	)

	newUser := func(employeeID, name, email, role string, active bool) *user.User {
		u := &user.User{
			EmployeeID:   employeeID,
			Name:         name,
			Email:        email,
			PasswordHash: "hash",
			Role:         role,
			IsActive:     active,
		}
		Expect(repo.Create(u)).To(Succeed())
		return u
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewUserRepository(db)
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		Expect(sqlDB.Close()).To(Succeed())
	})

	Describe("GetByID", func() {
		It("should load the user with the manager preloaded", func() {
			manager := newUser("MGR001", "Mandy Manager", "manager@company.com", user.RoleManager, true)
			employee := &user.User{
				EmployeeID:         "E001",
				Name:               "John Doe",
				Email:              "john.doe@company.com",
				PasswordHash:       "hash",
				Role:               user.RoleEmployee,
				ReportingManagerID: &manager.ID,
				IsActive:           true,
			}
			Expect(repo.Create(employee)).To(Succeed())

			loaded, err := repo.GetByID(employee.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Manager).NotTo(BeNil())
			Expect(loaded.Manager.Name).To(Equal("Mandy Manager"))
		})

		It("should return not found for unknown IDs", func() {
			_, err := repo.GetByID(999)

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})

	Describe("FindActiveByEmployeeID", func() {
		It("should find an active employee", func() {
			newUser("E001", "John Doe", "john.doe@company.com", user.RoleEmployee, true)

			found, err := repo.FindActiveByEmployeeID("E001")

			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("John Doe"))
		})

		It("should not find a deactivated employee", func() {
			newUser("E002", "Gone Employee", "gone@company.com", user.RoleEmployee, false)

			_, err := repo.FindActiveByEmployeeID("E002")

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})

	Describe("FindByEmployeeID", func() {
		It("should find a deactivated employee", func() {
			newUser("E002", "Gone Employee", "gone@company.com", user.RoleEmployee, false)

			found, err := repo.FindByEmployeeID("E002")

			Expect(err).NotTo(HaveOccurred())
			Expect(found.Name).To(Equal("Gone Employee"))
			Expect(found.IsActive).To(BeFalse())
		})

		It("should return not found for unknown IDs", func() {
			_, err := repo.FindByEmployeeID("E999")

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})

	Describe("ListManagers", func() {
		It("should return active admins and managers ordered by name", func() {
			newUser("E001", "John Doe", "john.doe@company.com", user.RoleEmployee, true)
			newUser("MGR001", "Zoe Manager", "zoe@company.com", user.RoleManager, true)
			newUser("ADMIN001", "Alice Admin", "alice@company.com", user.RoleAdmin, true)
			newUser("MGR002", "Bob Retired", "bob@company.com", user.RoleManager, false)

			managers, err := repo.ListManagers()

			Expect(err).NotTo(HaveOccurred())
			Expect(managers).To(HaveLen(2))
			Expect(managers[0].Name).To(Equal("Alice Admin"))
			Expect(managers[1].Name).To(Equal("Zoe Manager"))
		})
	})

	Describe("ListTeam", func() {
		It("should return only active direct reports", func() {
			manager := newUser("MGR001", "Mandy Manager", "manager@company.com", user.RoleManager, true)
			for _, spec := range []struct {
				employeeID string
				name       string
				active     bool
			}{
				{"E001", "John Doe", true},
				{"E002", "Jane Roe", true},
				{"E003", "Gone Employee", false},
			} {
				u := &user.User{
					EmployeeID:         spec.employeeID,
					Name:               spec.name,
					Email:              spec.employeeID + "@company.com",
					PasswordHash:       "hash",
					Role:               user.RoleEmployee,
					ReportingManagerID: &manager.ID,
					IsActive:           spec.active,
				}
				Expect(repo.Create(u)).To(Succeed())
			}

			team, err := repo.ListTeam(manager.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(team).To(HaveLen(2))
		})
	})

	Describe("TOTP enrollment", func() {
		It("should store the secret without enabling, then flip the flag", func() {
			u := newUser("E001", "John Doe", "john.doe@company.com", user.RoleEmployee, true)

			Expect(repo.SetTOTPSecret(u.ID, "JBSWY3DPEHPK3PXP")).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.TOTPSecret).To(Equal("JBSWY3DPEHPK3PXP"))
			Expect(loaded.TOTPEnabled).To(BeFalse())

			Expect(repo.EnableTOTP(u.ID)).To(Succeed())

			loaded, err = repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.TOTPEnabled).To(BeTrue())
		})
	})

	Describe("Update", func() {
		It("should persist role and activity changes", func() {
			u := newUser("E001", "John Doe", "john.doe@company.com", user.RoleEmployee, true)

			u.Role = user.RoleManager
			u.IsActive = false
			Expect(repo.Update(u)).To(Succeed())

			loaded, err := repo.GetByID(u.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Role).To(Equal(user.RoleManager))
			Expect(loaded.IsActive).To(BeFalse())
		})
	})
})
