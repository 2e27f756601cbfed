package location_test

import (
	"log/slog"
	"os"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/attendance-tracker/internal/location"
)

func TestLocationService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Location Service Suite")
}

// Mock repository for testing
type mockLocationRepository struct {
	locations  map[int64]*location.Location
	byTerminal map[string]*location.Location
	nextID     int64
	createErr  error
	updateErr  error
}

func newMockLocationRepository() *mockLocationRepository {
	return &mockLocationRepository{
		locations:  make(map[int64]*location.Location),
		byTerminal: make(map[string]*location.Location),
		nextID:     1,
	}
}

func (m *mockLocationRepository) GetByID(id int64) (*location.Location, error) {
	loc, ok := m.locations[id]
	if !ok {
		return nil, location.ErrNotFound
	}
	return loc, nil
}

func (m *mockLocationRepository) FindActiveByTerminalID(terminalID string) (*location.Location, error) {
	loc, ok := m.byTerminal[terminalID]
	if !ok || !loc.IsActive {
		return nil, location.ErrNotFound
	}
	return loc, nil
}

func (m *mockLocationRepository) List() ([]*location.Location, error) {
	out := make([]*location.Location, 0, len(m.locations))
	for _, loc := range m.locations {
		out = append(out, loc)
	}
	return out, nil
}

func (m *mockLocationRepository) ListActive() ([]*location.Location, error) {
	var out []*location.Location
	for _, loc := range m.locations {
		if loc.IsActive {
			out = append(out, loc)
		}
	}
	return out, nil
}

func (m *mockLocationRepository) Create(loc *location.Location) error {
	if m.createErr != nil {
		return m.createErr
	}
	loc.ID = m.nextID
	m.nextID++
	m.locations[loc.ID] = loc
	m.byTerminal[loc.TerminalID] = loc
	return nil
}

func (m *mockLocationRepository) Update(loc *location.Location) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.locations[loc.ID] = loc
	m.byTerminal[loc.TerminalID] = loc
	return nil
}

var _ = Describe("LocationService", func() {
	var (
		service  *location.Service
		mockRepo *mockLocationRepository
	)

	BeforeEach(func() {
		mockRepo = newMockLocationRepository()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = location.NewService(mockRepo, logger)
	})

	Describe("CreateLocation", func() {
		It("should create an active location", func() {
			loc, err := service.CreateLocation(location.CreateLocationDTO{
				Name:       "Main Lobby",
				TerminalID: "T-LOBBY",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(loc.ID).To(BeNumerically(">", 0))
			Expect(loc.IsActive).To(BeTrue())
		})

		It("should reject a duplicate terminal ID", func() {
			_, err := service.CreateLocation(location.CreateLocationDTO{
				Name:       "Main Lobby",
				TerminalID: "T-LOBBY",
			})
			Expect(err).ToNot(HaveOccurred())

			_, err = service.CreateLocation(location.CreateLocationDTO{
				Name:       "Second Lobby",
				TerminalID: "T-LOBBY",
			})

			Expect(err).To(Equal(location.ErrAlreadyExists))
		})

		It("should reject a missing terminal ID", func() {
			_, err := service.CreateLocation(location.CreateLocationDTO{
				Name: "Main Lobby",
			})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateLocation", func() {
		It("should apply partial updates and leave the rest untouched", func() {
			loc, err := service.CreateLocation(location.CreateLocationDTO{
				Name:       "Main Lobby",
				TerminalID: "T-LOBBY",
			})
			Expect(err).ToNot(HaveOccurred())

			inactive := false
			updated, err := service.UpdateLocation(loc.ID, location.UpdateLocationDTO{
				IsActive: &inactive,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(updated.IsActive).To(BeFalse())
			Expect(updated.Name).To(Equal("Main Lobby"))
			Expect(updated.TerminalID).To(Equal("T-LOBBY"))
		})

		It("should return not found for unknown IDs", func() {
			name := "Anywhere"
			_, err := service.UpdateLocation(42, location.UpdateLocationDTO{Name: &name})

			Expect(err).To(Equal(location.ErrNotFound))
		})
	})

	Describe("ListActive", func() {
		It("should exclude deactivated terminals", func() {
			_, err := service.CreateLocation(location.CreateLocationDTO{
				Name:       "Main Lobby",
				TerminalID: "T-LOBBY",
			})
			Expect(err).ToNot(HaveOccurred())

			warehouse, err := service.CreateLocation(location.CreateLocationDTO{
				Name:       "Warehouse",
				TerminalID: "T-WAREHOUSE",
			})
			Expect(err).ToNot(HaveOccurred())

			inactive := false
			_, err = service.UpdateLocation(warehouse.ID, location.UpdateLocationDTO{IsActive: &inactive})
			Expect(err).ToNot(HaveOccurred())

			active, err := service.ListActive()

			Expect(err).ToNot(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].TerminalID).To(Equal("T-LOBBY"))
		})
	})
})
