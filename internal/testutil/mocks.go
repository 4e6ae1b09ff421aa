// Package testutil provides in-memory mock implementations of the domain
// repository interfaces, for use in service-layer tests without a database.
package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/newalexoa/cinerental-backend/internal/domain"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	Categories map[int32]*domain.Category
	NextID     int32

	GetFn                     func(id int32) (*domain.Category, error)
	GetByNameFn               func(name string) (*domain.Category, error)
	GetAllFn                  func(parentID *int32, page domain.Page) ([]*domain.Category, int64, error)
	GetChildrenFn             func(id int32) ([]*domain.Category, error)
	GetCategoryPathFromRootFn func(id int32) ([]domain.CategoryPathRow, error)
	CountNonDeletedEquipmentFn func(categoryID int32) (int64, error)
	GetSubcategoryPrefixFn    func(categoryID int32) (*domain.SubcategoryPrefix, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		Categories: make(map[int32]*domain.Category),
		NextID:     1,
	}
}

func (m *MockCategoryRepository) Get(id int32) (*domain.Category, error) {
	if m.GetFn != nil {
		return m.GetFn(id)
	}
	cat, ok := m.Categories[id]
	if !ok || cat.DeletedAt != nil {
		return nil, domain.NewNotFoundError("category not found", map[string]any{"id": id})
	}
	return cat, nil
}

func (m *MockCategoryRepository) GetByName(name string) (*domain.Category, error) {
	if m.GetByNameFn != nil {
		return m.GetByNameFn(name)
	}
	for _, cat := range m.Categories {
		if cat.Name == name && cat.DeletedAt == nil {
			return cat, nil
		}
	}
	return nil, nil
}

func (m *MockCategoryRepository) GetAll(parentID *int32, page domain.Page) ([]*domain.Category, int64, error) {
	if m.GetAllFn != nil {
		return m.GetAllFn(parentID, page)
	}
	var matched []*domain.Category
	for _, cat := range m.Categories {
		if cat.DeletedAt != nil {
			continue
		}
		if parentID != nil {
			if cat.ParentID == nil || *cat.ParentID != *parentID {
				continue
			}
		}
		matched = append(matched, cat)
	}
	return matched, int64(len(matched)), nil
}

func (m *MockCategoryRepository) GetChildren(id int32) ([]*domain.Category, error) {
	if m.GetChildrenFn != nil {
		return m.GetChildrenFn(id)
	}
	var children []*domain.Category
	for _, cat := range m.Categories {
		if cat.DeletedAt == nil && cat.ParentID != nil && *cat.ParentID == id {
			children = append(children, cat)
		}
	}
	return children, nil
}

func (m *MockCategoryRepository) GetCategoryPathFromRoot(id int32) ([]domain.CategoryPathRow, error) {
	if m.GetCategoryPathFromRootFn != nil {
		return m.GetCategoryPathFromRootFn(id)
	}
	var reversed []domain.CategoryPathRow
	current, ok := m.Categories[id]
	for ok && current != nil {
		reversed = append(reversed, domain.CategoryPathRow{ID: current.ID, Name: current.Name, ShowInPrintOverview: current.ShowInPrintOverview})
		if current.ParentID == nil {
			break
		}
		current, ok = m.Categories[*current.ParentID]
	}
	path := make([]domain.CategoryPathRow, len(reversed))
	for i, row := range reversed {
		path[len(reversed)-1-i] = row
	}
	return path, nil
}

func (m *MockCategoryRepository) GetAllWithEquipmentCount() ([]*domain.Category, error) {
	var all []*domain.Category
	for _, cat := range m.Categories {
		if cat.DeletedAt == nil {
			all = append(all, cat)
		}
	}
	return all, nil
}

func (m *MockCategoryRepository) Search(query string) ([]*domain.Category, error) {
	var matched []*domain.Category
	for _, cat := range m.Categories {
		if cat.DeletedAt == nil && containsFold(cat.Name, query) {
			matched = append(matched, cat)
		}
	}
	return matched, nil
}

func (m *MockCategoryRepository) Create(category *domain.Category) (*domain.Category, error) {
	category.ID = m.NextID
	m.NextID++
	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	m.Categories[category.ID] = category
	return category, nil
}

func (m *MockCategoryRepository) Update(category *domain.Category) (*domain.Category, error) {
	if _, ok := m.Categories[category.ID]; !ok {
		return nil, domain.NewNotFoundError("category not found", map[string]any{"id": category.ID})
	}
	category.UpdatedAt = time.Now()
	m.Categories[category.ID] = category
	return category, nil
}

func (m *MockCategoryRepository) SoftDelete(id int32) error {
	cat, ok := m.Categories[id]
	if !ok {
		return domain.NewNotFoundError("category not found", map[string]any{"id": id})
	}
	now := time.Now()
	cat.DeletedAt = &now
	return nil
}

func (m *MockCategoryRepository) CountNonDeletedEquipment(categoryID int32) (int64, error) {
	if m.CountNonDeletedEquipmentFn != nil {
		return m.CountNonDeletedEquipmentFn(categoryID)
	}
	return 0, nil
}

func (m *MockCategoryRepository) GetSubcategoryPrefix(categoryID int32) (*domain.SubcategoryPrefix, error) {
	if m.GetSubcategoryPrefixFn != nil {
		return m.GetSubcategoryPrefixFn(categoryID)
	}
	return nil, nil
}

// MockEquipmentRepository is a mock implementation of domain.EquipmentRepository
type MockEquipmentRepository struct {
	Equipment map[int32]*domain.Equipment
	NextID    int32

	ListFn   func(filter domain.EquipmentFilter, page domain.Page) ([]*domain.Equipment, int64, error)
	SearchFn func(query string, page domain.Page) ([]*domain.Equipment, int64, error)
}

func NewMockEquipmentRepository() *MockEquipmentRepository {
	return &MockEquipmentRepository{
		Equipment: make(map[int32]*domain.Equipment),
		NextID:    1,
	}
}

func (m *MockEquipmentRepository) Get(id int32, includeDeleted bool) (*domain.Equipment, error) {
	eq, ok := m.Equipment[id]
	if !ok {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"id": id})
	}
	if eq.DeletedAt != nil && !includeDeleted {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"id": id})
	}
	return eq, nil
}

func (m *MockEquipmentRepository) GetMany(ids []int32) ([]*domain.Equipment, error) {
	var result []*domain.Equipment
	for _, id := range ids {
		if eq, ok := m.Equipment[id]; ok && eq.DeletedAt == nil {
			result = append(result, eq)
		}
	}
	return result, nil
}

func (m *MockEquipmentRepository) GetByBarcode(barcode string) (*domain.Equipment, error) {
	for _, eq := range m.Equipment {
		if eq.Barcode == barcode && eq.DeletedAt == nil {
			return eq, nil
		}
	}
	return nil, domain.NewNotFoundError("equipment not found", map[string]any{"barcode": barcode})
}

func (m *MockEquipmentRepository) GetByCategory(categoryID int32, includeDeleted bool) ([]*domain.Equipment, error) {
	var result []*domain.Equipment
	for _, eq := range m.Equipment {
		if eq.CategoryID != categoryID {
			continue
		}
		if eq.DeletedAt != nil && !includeDeleted {
			continue
		}
		result = append(result, eq)
	}
	return result, nil
}

func (m *MockEquipmentRepository) List(filter domain.EquipmentFilter, page domain.Page) ([]*domain.Equipment, int64, error) {
	if m.ListFn != nil {
		return m.ListFn(filter, page)
	}
	var matched []*domain.Equipment
	for _, eq := range m.Equipment {
		if eq.DeletedAt != nil && !filter.IncludeDeleted {
			continue
		}
		if filter.Status != nil && eq.Status != *filter.Status {
			continue
		}
		if filter.CategoryID != nil && eq.CategoryID != *filter.CategoryID {
			continue
		}
		matched = append(matched, eq)
	}
	return matched, int64(len(matched)), nil
}

func (m *MockEquipmentRepository) Search(query string, page domain.Page) ([]*domain.Equipment, int64, error) {
	if m.SearchFn != nil {
		return m.SearchFn(query, page)
	}
	var matched []*domain.Equipment
	for _, eq := range m.Equipment {
		if eq.DeletedAt == nil && containsFold(eq.Name, query) {
			matched = append(matched, eq)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *MockEquipmentRepository) Create(equipment *domain.Equipment) (*domain.Equipment, error) {
	equipment.ID = m.NextID
	m.NextID++
	now := time.Now()
	equipment.CreatedAt = now
	equipment.UpdatedAt = now
	m.Equipment[equipment.ID] = equipment
	return equipment, nil
}

func (m *MockEquipmentRepository) Update(equipment *domain.Equipment) (*domain.Equipment, error) {
	if _, ok := m.Equipment[equipment.ID]; !ok {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"id": equipment.ID})
	}
	equipment.UpdatedAt = time.Now()
	m.Equipment[equipment.ID] = equipment
	return equipment, nil
}

func (m *MockEquipmentRepository) UpdateStatus(id int32, status domain.EquipmentStatus) (*domain.Equipment, error) {
	eq, ok := m.Equipment[id]
	if !ok {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"id": id})
	}
	eq.Status = status
	eq.UpdatedAt = time.Now()
	return eq, nil
}

func (m *MockEquipmentRepository) UpdateBarcode(id int32, barcode string) (*domain.Equipment, error) {
	eq, ok := m.Equipment[id]
	if !ok {
		return nil, domain.NewNotFoundError("equipment not found", map[string]any{"id": id})
	}
	eq.Barcode = barcode
	eq.UpdatedAt = time.Now()
	return eq, nil
}

func (m *MockEquipmentRepository) SoftDelete(id int32) error {
	eq, ok := m.Equipment[id]
	if !ok {
		return domain.NewNotFoundError("equipment not found", map[string]any{"id": id})
	}
	now := time.Now()
	eq.DeletedAt = &now
	return nil
}

// MockClientRepository is a mock implementation of domain.ClientRepository
type MockClientRepository struct {
	Clients map[int32]*domain.Client
	NextID  int32

	CountActiveBookingsFn func(clientID int32) (int64, error)
}

func NewMockClientRepository() *MockClientRepository {
	return &MockClientRepository{
		Clients: make(map[int32]*domain.Client),
		NextID:  1,
	}
}

func (m *MockClientRepository) Get(id int32, includeDeleted bool) (*domain.Client, error) {
	client, ok := m.Clients[id]
	if !ok {
		return nil, domain.NewNotFoundError("client not found", map[string]any{"id": id})
	}
	if client.DeletedAt != nil && !includeDeleted {
		return nil, domain.NewNotFoundError("client not found", map[string]any{"id": id})
	}
	return client, nil
}

func (m *MockClientRepository) GetMany(ids []int32) ([]*domain.Client, error) {
	var result []*domain.Client
	for _, id := range ids {
		if client, ok := m.Clients[id]; ok && client.DeletedAt == nil {
			result = append(result, client)
		}
	}
	return result, nil
}

func (m *MockClientRepository) List(filter domain.ClientFilter, page domain.Page) ([]*domain.Client, int64, error) {
	var matched []*domain.Client
	for _, client := range m.Clients {
		if client.DeletedAt != nil && !filter.IncludeDeleted {
			continue
		}
		if filter.Status != nil && client.Status != *filter.Status {
			continue
		}
		matched = append(matched, client)
	}
	return matched, int64(len(matched)), nil
}

func (m *MockClientRepository) Search(query string, page domain.Page) ([]*domain.Client, int64, error) {
	var matched []*domain.Client
	for _, client := range m.Clients {
		if client.DeletedAt == nil && containsFold(client.Name, query) {
			matched = append(matched, client)
		}
	}
	return matched, int64(len(matched)), nil
}

func (m *MockClientRepository) Create(client *domain.Client) (*domain.Client, error) {
	client.ID = m.NextID
	m.NextID++
	now := time.Now()
	client.CreatedAt = now
	client.UpdatedAt = now
	m.Clients[client.ID] = client
	return client, nil
}

func (m *MockClientRepository) Update(client *domain.Client) (*domain.Client, error) {
	if _, ok := m.Clients[client.ID]; !ok {
		return nil, domain.NewNotFoundError("client not found", map[string]any{"id": client.ID})
	}
	client.UpdatedAt = time.Now()
	m.Clients[client.ID] = client
	return client, nil
}

func (m *MockClientRepository) SoftDelete(id int32) error {
	client, ok := m.Clients[id]
	if !ok {
		return domain.NewNotFoundError("client not found", map[string]any{"id": id})
	}
	now := time.Now()
	client.DeletedAt = &now
	return nil
}

func (m *MockClientRepository) HardDelete(id int32) error {
	delete(m.Clients, id)
	return nil
}

func (m *MockClientRepository) CountActiveBookings(clientID int32) (int64, error) {
	if m.CountActiveBookingsFn != nil {
		return m.CountActiveBookingsFn(clientID)
	}
	return 0, nil
}

// MockBookingRepository is a mock implementation of domain.BookingRepository
type MockBookingRepository struct {
	Bookings map[int32]*domain.Booking
	NextID   int32

	FindConflictsFn            func(equipmentID int32, from, to time.Time, excludeBookingID int32) ([]*domain.Booking, error)
	CountBlockingByEquipmentFn func(equipmentID int32) (int64, error)
}

func NewMockBookingRepository() *MockBookingRepository {
	return &MockBookingRepository{
		Bookings: make(map[int32]*domain.Booking),
		NextID:   1,
	}
}

func (m *MockBookingRepository) Get(id int32) (*domain.Booking, error) {
	b, ok := m.Bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"id": id})
	}
	return b, nil
}

func (m *MockBookingRepository) GetMany(ids []int32) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, id := range ids {
		if b, ok := m.Bookings[id]; ok {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) GetByEquipment(equipmentID int32) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.Bookings {
		if b.EquipmentID == equipmentID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) GetByProject(projectID int32) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range m.Bookings {
		if b.ProjectID != nil && *b.ProjectID == projectID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *MockBookingRepository) List(filter domain.BookingFilter, page domain.Page) ([]*domain.Booking, int64, error) {
	var matched []*domain.Booking
	for _, b := range m.Bookings {
		if filter.EquipmentID != nil && b.EquipmentID != *filter.EquipmentID {
			continue
		}
		if filter.ClientID != nil && b.ClientID != *filter.ClientID {
			continue
		}
		if filter.ProjectID != nil && (b.ProjectID == nil || *b.ProjectID != *filter.ProjectID) {
			continue
		}
		if filter.BookingStatus != nil && b.BookingStatus != *filter.BookingStatus {
			continue
		}
		if filter.ActiveOnly && !domain.IsBlockingStatus(b.BookingStatus) {
			continue
		}
		matched = append(matched, b)
	}
	return matched, int64(len(matched)), nil
}

func (m *MockBookingRepository) Create(booking *domain.Booking) (*domain.Booking, error) {
	booking.ID = m.NextID
	m.NextID++
	now := time.Now()
	booking.CreatedAt = now
	booking.UpdatedAt = now
	if booking.BookingStatus == "" {
		booking.BookingStatus = domain.BookingActive
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = domain.PaymentPending
	}
	m.Bookings[booking.ID] = booking
	return booking, nil
}

func (m *MockBookingRepository) Update(booking *domain.Booking) (*domain.Booking, error) {
	if _, ok := m.Bookings[booking.ID]; !ok {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"id": booking.ID})
	}
	booking.UpdatedAt = time.Now()
	m.Bookings[booking.ID] = booking
	return booking, nil
}

func (m *MockBookingRepository) UpdateStatus(id int32, status domain.BookingStatus) (*domain.Booking, error) {
	b, ok := m.Bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"id": id})
	}
	b.BookingStatus = status
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *MockBookingRepository) UpdatePaymentStatus(id int32, status domain.PaymentStatus) (*domain.Booking, error) {
	b, ok := m.Bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"id": id})
	}
	b.PaymentStatus = status
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *MockBookingRepository) SetProject(id int32, projectID *int32) (*domain.Booking, error) {
	b, ok := m.Bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("booking not found", map[string]any{"id": id})
	}
	b.ProjectID = projectID
	b.UpdatedAt = time.Now()
	return b, nil
}

func (m *MockBookingRepository) ClearProjectReferences(projectID int32) error {
	for _, b := range m.Bookings {
		if b.ProjectID != nil && *b.ProjectID == projectID {
			b.ProjectID = nil
		}
	}
	return nil
}

func (m *MockBookingRepository) CountBlockingByEquipment(equipmentID int32) (int64, error) {
	if m.CountBlockingByEquipmentFn != nil {
		return m.CountBlockingByEquipmentFn(equipmentID)
	}
	var count int64
	for _, b := range m.Bookings {
		if b.EquipmentID == equipmentID && domain.IsBlockingStatus(b.BookingStatus) {
			count++
		}
	}
	return count, nil
}

func (m *MockBookingRepository) FindConflicts(equipmentID int32, from, to time.Time, excludeBookingID int32) ([]*domain.Booking, error) {
	if m.FindConflictsFn != nil {
		return m.FindConflictsFn(equipmentID, from, to, excludeBookingID)
	}
	var conflicts []*domain.Booking
	for _, b := range m.Bookings {
		if b.EquipmentID != equipmentID || b.ID == excludeBookingID {
			continue
		}
		if !domain.IsBlockingStatus(b.BookingStatus) {
			continue
		}
		if b.StartDate.After(to) || b.EndDate.Before(from) {
			continue
		}
		conflicts = append(conflicts, b)
	}
	return conflicts, nil
}

// MockProjectRepository is a mock implementation of domain.ProjectRepository
type MockProjectRepository struct {
	Projects map[int32]*domain.Project
	NextID   int32
}

func NewMockProjectRepository() *MockProjectRepository {
	return &MockProjectRepository{
		Projects: make(map[int32]*domain.Project),
		NextID:   1,
	}
}

func (m *MockProjectRepository) Get(id int32, includeDeleted bool) (*domain.Project, error) {
	p, ok := m.Projects[id]
	if !ok {
		return nil, domain.NewNotFoundError("project not found", map[string]any{"id": id})
	}
	if p.DeletedAt != nil && !includeDeleted {
		return nil, domain.NewNotFoundError("project not found", map[string]any{"id": id})
	}
	return p, nil
}

func (m *MockProjectRepository) List(filter domain.ProjectFilter, page domain.Page) ([]*domain.Project, int64, error) {
	var matched []*domain.Project
	for _, p := range m.Projects {
		if p.DeletedAt != nil && !filter.IncludeDeleted {
			continue
		}
		if filter.ClientID != nil && p.ClientID != *filter.ClientID {
			continue
		}
		if filter.Status != nil && p.Status != *filter.Status {
			continue
		}
		matched = append(matched, p)
	}
	return matched, int64(len(matched)), nil
}

func (m *MockProjectRepository) Create(project *domain.Project) (*domain.Project, error) {
	project.ID = m.NextID
	m.NextID++
	now := time.Now()
	project.CreatedAt = now
	project.UpdatedAt = now
	m.Projects[project.ID] = project
	return project, nil
}

func (m *MockProjectRepository) Update(project *domain.Project) (*domain.Project, error) {
	if _, ok := m.Projects[project.ID]; !ok {
		return nil, domain.NewNotFoundError("project not found", map[string]any{"id": project.ID})
	}
	project.UpdatedAt = time.Now()
	m.Projects[project.ID] = project
	return project, nil
}

func (m *MockProjectRepository) UpdatePaymentStatus(id int32, status domain.ProjectPaymentStatus) error {
	p, ok := m.Projects[id]
	if !ok {
		return domain.NewNotFoundError("project not found", map[string]any{"id": id})
	}
	p.PaymentStatus = status
	p.UpdatedAt = time.Now()
	return nil
}

func (m *MockProjectRepository) SoftDelete(id int32) error {
	p, ok := m.Projects[id]
	if !ok {
		return domain.NewNotFoundError("project not found", map[string]any{"id": id})
	}
	now := time.Now()
	p.DeletedAt = &now
	return nil
}

// MockDocumentRepository is a mock implementation of domain.DocumentRepository
type MockDocumentRepository struct {
	Documents map[int32]*domain.Document
	NextID    int32
}

func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{
		Documents: make(map[int32]*domain.Document),
		NextID:    1,
	}
}

func (m *MockDocumentRepository) Get(id int32, includeDeleted bool) (*domain.Document, error) {
	d, ok := m.Documents[id]
	if !ok {
		return nil, domain.NewNotFoundError("document not found", map[string]any{"id": id})
	}
	if d.DeletedAt != nil && !includeDeleted {
		return nil, domain.NewNotFoundError("document not found", map[string]any{"id": id})
	}
	return d, nil
}

func (m *MockDocumentRepository) List(filter domain.DocumentFilter, page domain.Page) ([]*domain.Document, int64, error) {
	var matched []*domain.Document
	for _, d := range m.Documents {
		if d.DeletedAt != nil && !filter.IncludeDeleted {
			continue
		}
		if filter.ClientID != nil && d.ClientID != *filter.ClientID {
			continue
		}
		if filter.BookingID != nil && (d.BookingID == nil || *d.BookingID != *filter.BookingID) {
			continue
		}
		if filter.Type != nil && d.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && d.Status != *filter.Status {
			continue
		}
		matched = append(matched, d)
	}
	return matched, int64(len(matched)), nil
}

func (m *MockDocumentRepository) Create(document *domain.Document) (*domain.Document, error) {
	document.ID = m.NextID
	m.NextID++
	now := time.Now()
	document.CreatedAt = now
	document.UpdatedAt = now
	m.Documents[document.ID] = document
	return document, nil
}

func (m *MockDocumentRepository) Update(document *domain.Document) (*domain.Document, error) {
	if _, ok := m.Documents[document.ID]; !ok {
		return nil, domain.NewNotFoundError("document not found", map[string]any{"id": document.ID})
	}
	document.UpdatedAt = time.Now()
	m.Documents[document.ID] = document
	return document, nil
}

func (m *MockDocumentRepository) SoftDelete(id int32) error {
	d, ok := m.Documents[id]
	if !ok {
		return domain.NewNotFoundError("document not found", map[string]any{"id": id})
	}
	now := time.Now()
	d.DeletedAt = &now
	return nil
}

func (m *MockDocumentRepository) ClearBookingReference(bookingID int32) error {
	for _, d := range m.Documents {
		if d.BookingID != nil && *d.BookingID == bookingID {
			d.BookingID = nil
		}
	}
	return nil
}

// MockScanSessionRepository is a mock implementation of domain.ScanSessionRepository
type MockScanSessionRepository struct {
	Sessions map[uuid.UUID]*domain.ScanSession
}

func NewMockScanSessionRepository() *MockScanSessionRepository {
	return &MockScanSessionRepository{
		Sessions: make(map[uuid.UUID]*domain.ScanSession),
	}
}

func (m *MockScanSessionRepository) Get(id uuid.UUID, userID *string) (*domain.ScanSession, error) {
	s, ok := m.Sessions[id]
	if !ok {
		return nil, domain.NewNotFoundError("scan session not found", map[string]any{"id": id.String()})
	}
	if !sameOwner(s.UserID, userID) {
		return nil, domain.NewNotFoundError("scan session not found", map[string]any{"id": id.String()})
	}
	return s, nil
}

// List matches the repository's deliberate nil-userID-returns-empty quirk.
func (m *MockScanSessionRepository) List(userID *string) ([]*domain.ScanSession, error) {
	if userID == nil {
		return []*domain.ScanSession{}, nil
	}
	now := time.Now()
	var result []*domain.ScanSession
	for _, s := range m.Sessions {
		if s.UserID != nil && *s.UserID == *userID && s.ExpiresAt.After(now) {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockScanSessionRepository) Create(session *domain.ScanSession) (*domain.ScanSession, error) {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now
	m.Sessions[session.ID] = session
	return session, nil
}

func (m *MockScanSessionRepository) ReplaceItems(id uuid.UUID, userID *string, items []domain.ScanSessionItem) (*domain.ScanSession, error) {
	s, ok := m.Sessions[id]
	if !ok || !sameOwner(s.UserID, userID) {
		return nil, domain.NewNotFoundError("scan session not found", map[string]any{"id": id.String()})
	}
	s.Items = items
	s.UpdatedAt = time.Now()
	return s, nil
}

func (m *MockScanSessionRepository) Delete(id uuid.UUID, userID *string) error {
	s, ok := m.Sessions[id]
	if !ok || !sameOwner(s.UserID, userID) {
		return domain.NewNotFoundError("scan session not found", map[string]any{"id": id.String()})
	}
	delete(m.Sessions, id)
	return nil
}

func (m *MockScanSessionRepository) PurgeExpired(now time.Time) (int64, error) {
	var purged int64
	for id, s := range m.Sessions {
		if s.ExpiresAt.Before(now) {
			delete(m.Sessions, id)
			purged++
		}
	}
	return purged, nil
}

func sameOwner(owned, requested *string) bool {
	if owned == nil || requested == nil {
		return owned == nil && requested == nil
	}
	return *owned == *requested
}

// MockBarcodeRepository is a mock implementation of domain.BarcodeRepository
type MockBarcodeRepository struct {
	Sequence int64
	// Prefixes is keyed by category ID -- the shape the hot barcode-compose
	// read path (GetSubcategoryPrefix) looks up by.
	Prefixes map[int32]*domain.SubcategoryPrefix
	// PrefixesByID backs the admin CRUD surface, keyed by the row's own ID.
	PrefixesByID map[int32]*domain.SubcategoryPrefix
	NextPrefixID int32
}

func NewMockBarcodeRepository() *MockBarcodeRepository {
	return &MockBarcodeRepository{
		Prefixes:     make(map[int32]*domain.SubcategoryPrefix),
		PrefixesByID: make(map[int32]*domain.SubcategoryPrefix),
		NextPrefixID: 1,
	}
}

func (m *MockBarcodeRepository) NextSequence() (int64, error) {
	m.Sequence++
	return m.Sequence, nil
}

func (m *MockBarcodeRepository) PeekSequence() (int64, error) {
	return m.Sequence, nil
}

func (m *MockBarcodeRepository) GetSubcategoryPrefix(categoryID int32) (*domain.SubcategoryPrefix, error) {
	if p, ok := m.Prefixes[categoryID]; ok {
		return p, nil
	}
	return nil, nil
}

func (m *MockBarcodeRepository) CreateSubcategoryPrefix(p *domain.SubcategoryPrefix) (*domain.SubcategoryPrefix, error) {
	p.ID = m.NextPrefixID
	m.NextPrefixID++
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.PrefixesByID[p.ID] = p
	m.Prefixes[p.CategoryID] = p
	return p, nil
}

func (m *MockBarcodeRepository) GetSubcategoryPrefixByID(id int32) (*domain.SubcategoryPrefix, error) {
	p, ok := m.PrefixesByID[id]
	if !ok {
		return nil, domain.NewNotFoundError("subcategory prefix not found", map[string]any{"id": id})
	}
	return p, nil
}

func (m *MockBarcodeRepository) ListSubcategoryPrefixes(filter domain.SubcategoryPrefixFilter) ([]*domain.SubcategoryPrefix, error) {
	var matched []*domain.SubcategoryPrefix
	for _, p := range m.PrefixesByID {
		if filter.CategoryID != nil && p.CategoryID != *filter.CategoryID {
			continue
		}
		if filter.Query != "" && !containsFold(p.Name, filter.Query) {
			continue
		}
		matched = append(matched, p)
	}
	return matched, nil
}

func (m *MockBarcodeRepository) UpdateSubcategoryPrefix(p *domain.SubcategoryPrefix) (*domain.SubcategoryPrefix, error) {
	if _, ok := m.PrefixesByID[p.ID]; !ok {
		return nil, domain.NewNotFoundError("subcategory prefix not found", map[string]any{"id": p.ID})
	}
	p.UpdatedAt = time.Now()
	m.PrefixesByID[p.ID] = p
	m.Prefixes[p.CategoryID] = p
	return p, nil
}

func (m *MockBarcodeRepository) DeleteSubcategoryPrefix(id int32) error {
	p, ok := m.PrefixesByID[id]
	if !ok {
		return domain.NewNotFoundError("subcategory prefix not found", map[string]any{"id": id})
	}
	delete(m.PrefixesByID, id)
	if current, ok := m.Prefixes[p.CategoryID]; ok && current.ID == id {
		delete(m.Prefixes, p.CategoryID)
	}
	return nil
}

// MockUnitOfWork bundles the mock repositories above into a single
// domain.UnitOfWork, so tests exercising Gateway.WithTx see the same
// writes across repositories within one scope, same as the Postgres
// implementation does within one transaction.
type MockUnitOfWork struct {
	CategoryRepo    *MockCategoryRepository
	EquipmentRepo   *MockEquipmentRepository
	ClientRepo      *MockClientRepository
	ProjectRepo     *MockProjectRepository
	BookingRepo     *MockBookingRepository
	DocumentRepo    *MockDocumentRepository
	ScanSessionRepo *MockScanSessionRepository
	BarcodeRepo     *MockBarcodeRepository
}

func (u *MockUnitOfWork) Categories() domain.CategoryRepository      { return u.CategoryRepo }
func (u *MockUnitOfWork) Equipment() domain.EquipmentRepository      { return u.EquipmentRepo }
func (u *MockUnitOfWork) Clients() domain.ClientRepository           { return u.ClientRepo }
func (u *MockUnitOfWork) Projects() domain.ProjectRepository         { return u.ProjectRepo }
func (u *MockUnitOfWork) Bookings() domain.BookingRepository         { return u.BookingRepo }
func (u *MockUnitOfWork) Documents() domain.DocumentRepository       { return u.DocumentRepo }
func (u *MockUnitOfWork) ScanSessions() domain.ScanSessionRepository { return u.ScanSessionRepo }
func (u *MockUnitOfWork) Barcodes() domain.BarcodeRepository         { return u.BarcodeRepo }

// MockGateway is an in-memory domain.Gateway: WithTx runs fn against the
// same long-lived MockUnitOfWork every call -- there is no real rollback,
// since nothing here is backed by a transactional store. A test asserting
// rollback behavior should call the Postgres-backed repositories against a
// real database instead.
type MockGateway struct {
	UoW *MockUnitOfWork
}

// NewMockGateway wires up a fresh set of mock repositories behind a single
// MockUnitOfWork.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		UoW: &MockUnitOfWork{
			CategoryRepo:    NewMockCategoryRepository(),
			EquipmentRepo:   NewMockEquipmentRepository(),
			ClientRepo:      NewMockClientRepository(),
			ProjectRepo:     NewMockProjectRepository(),
			BookingRepo:     NewMockBookingRepository(),
			DocumentRepo:    NewMockDocumentRepository(),
			ScanSessionRepo: NewMockScanSessionRepository(),
			BarcodeRepo:     NewMockBarcodeRepository(),
		},
	}
}

func (g *MockGateway) WithTx(fn func(uow domain.UnitOfWork) error) error {
	return fn(g.UoW)
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	sLower := toLower(s)
	substrLower := toLower(substr)
	return indexOf(sLower, substrLower) >= 0
}

func toLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

func indexOf(s, substr string) int {
	n := len(substr)
	if n == 0 {
		return 0
	}
	for i := 0; i+n <= len(s); i++ {
		if s[i:i+n] == substr {
			return i
		}
	}
	return -1
}
