package user_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"

	"github.com/frahmantamala/attendance-tracker/internal/user"
)

func TestUserService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "User Service Suite")
}

// Mock repository for testing
type mockUserRepository struct {
	byID         map[int64]*user.User
	byEmail      map[string]*user.User
	byEmployeeID map[string]*user.User
	nextID       int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		byID:         make(map[int64]*user.User),
		byEmail:      make(map[string]*user.User),
		byEmployeeID: make(map[string]*user.User),
		nextID:       1,
	}
}

func (m *mockUserRepository) GetByID(id int64) (*user.User, error) {
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) GetByEmail(email string) (*user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) FindByEmployeeID(employeeID string) (*user.User, error) {
	u, ok := m.byEmployeeID[employeeID]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) FindActiveByEmployeeID(employeeID string) (*user.User, error) {
	u, ok := m.byEmployeeID[employeeID]
	if !ok || !u.IsActive {
		return nil, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepository) List() ([]*user.User, error) {
	out := make([]*user.User, 0, len(m.byID))
	for _, u := range m.byID {
		out = append(out, u)
	}
	return out, nil
}

func (m *mockUserRepository) ListManagers() ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.byID {
		if u.IsActive && (u.Role == user.RoleManager || u.Role == user.RoleAdmin) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) ListTeam(managerID int64) ([]*user.User, error) {
	var out []*user.User
	for _, u := range m.byID {
		if u.IsActive && u.ReportingManagerID != nil && *u.ReportingManagerID == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepository) Create(u *user.User) error {
	u.ID = m.nextID
	m.nextID++
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	m.byEmployeeID[u.EmployeeID] = u
	return nil
}

func (m *mockUserRepository) Update(u *user.User) error {
	m.byID[u.ID] = u
	m.byEmail[u.Email] = u
	m.byEmployeeID[u.EmployeeID] = u
	return nil
}

func (m *mockUserRepository) SetTOTPSecret(userID int64, secret string) error {
	if u, ok := m.byID[userID]; ok {
		u.TOTPSecret = secret
	}
	return nil
}

func (m *mockUserRepository) EnableTOTP(userID int64) error {
	if u, ok := m.byID[userID]; ok {
		u.TOTPEnabled = true
	}
	return nil
}

var _ = Describe("UserService", func() {
	var (
		service  *user.Service
		mockRepo *mockUserRepository
	)

	createDTO := func() user.CreateUserDTO {
		return user.CreateUserDTO{
			EmployeeID: "E001",
			Name:       "John Doe",
			Email:      "john.doe@company.com",
			Password:   "password123",
		}
	}

	BeforeEach(func() {
		mockRepo = newMockUserRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(mockRepo, bcrypt.MinCost, logger)
	})

	Describe("CreateUser", func() {
		It("should create an active employee with a hashed password", func() {
			u, err := service.CreateUser(createDTO())

			Expect(err).ToNot(HaveOccurred())
			Expect(u.ID).To(BeNumerically(">", 0))
			Expect(u.Role).To(Equal(user.RoleEmployee))
			Expect(u.IsActive).To(BeTrue())
			Expect(u.PasswordHash).ToNot(Equal("password123"))
			Expect(bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("password123"))).To(Succeed())
		})

		It("should reject a duplicate email", func() {
			_, err := service.CreateUser(createDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := createDTO()
			dto.EmployeeID = "E002"
			_, err = service.CreateUser(dto)

			Expect(err).To(Equal(user.ErrAlreadyExists))
		})

		It("should reject a duplicate employee ID", func() {
			_, err := service.CreateUser(createDTO())
			Expect(err).ToNot(HaveOccurred())

			dto := createDTO()
			dto.Email = "other@company.com"
			_, err = service.CreateUser(dto)

			Expect(err).To(Equal(user.ErrAlreadyExists))
		})

		It("should reject the employee ID of a deactivated user", func() {
			created, err := service.CreateUser(createDTO())
			Expect(err).ToNot(HaveOccurred())

			inactive := false
			_, err = service.UpdateUser(created.ID, user.UpdateUserDTO{IsActive: &inactive})
			Expect(err).ToNot(HaveOccurred())

			dto := createDTO()
			dto.Email = "other@company.com"
			_, err = service.CreateUser(dto)

			Expect(err).To(Equal(user.ErrAlreadyExists))
		})

		It("should reject an invalid role", func() {
			dto := createDTO()
			dto.Role = "superuser"

			_, err := service.CreateUser(dto)

			Expect(err).To(HaveOccurred())
		})

		It("should reject a short password", func() {
			dto := createDTO()
			dto.Password = "short"

			_, err := service.CreateUser(dto)

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateUser", func() {
		It("should apply only the provided fields", func() {
			created, err := service.CreateUser(createDTO())
			Expect(err).ToNot(HaveOccurred())

			role := user.RoleManager
			updated, err := service.UpdateUser(created.ID, user.UpdateUserDTO{Role: &role})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.Role).To(Equal(user.RoleManager))
			Expect(updated.Name).To(Equal("John Doe"))
			Expect(updated.Email).To(Equal("john.doe@company.com"))
		})

		It("should deactivate a user", func() {
			created, err := service.CreateUser(createDTO())
			Expect(err).ToNot(HaveOccurred())

			inactive := false
			updated, err := service.UpdateUser(created.ID, user.UpdateUserDTO{IsActive: &inactive})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.IsActive).To(BeFalse())
		})

		It("should return not found for unknown IDs", func() {
			name := "Nobody"
			_, err := service.UpdateUser(42, user.UpdateUserDTO{Name: &name})

			Expect(err).To(Equal(user.ErrNotFound))
		})
	})
})
